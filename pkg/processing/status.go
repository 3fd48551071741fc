package processing

// Task identifies one of the concurrent analysis tasks in a run.
type Task string

const (
	TaskSeries     Task = "series"
	TaskStatistics Task = "statistics"
	TaskButterfly  Task = "butterfly"
	TaskInfluence  Task = "influence"
)

// Tasks returns all run tasks in execution order (the sequencer first, then
// the fan-out tasks).
func Tasks() []Task {
	return []Task{TaskSeries, TaskStatistics, TaskButterfly, TaskInfluence}
}

// RunStatus tracks per-task completion for one run. Flags transition
// monotonically false to true within a run and are never reversed; a fresh
// run starts from all-false. Copies are safe to hand out.
type RunStatus struct {
	Series     bool `json:"series"`
	Statistics bool `json:"statistics"`
	Butterfly  bool `json:"butterfly"`
	Influence  bool `json:"influence"`
}

// AllComplete reports whether every task has finished.
func (s RunStatus) AllComplete() bool {
	return s.Series && s.Statistics && s.Butterfly && s.Influence
}

func (s *RunStatus) mark(t Task) {
	switch t {
	case TaskSeries:
		s.Series = true
	case TaskStatistics:
		s.Statistics = true
	case TaskButterfly:
		s.Butterfly = true
	case TaskInfluence:
		s.Influence = true
	}
}
