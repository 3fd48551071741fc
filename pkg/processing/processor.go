package processing

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evanwhit/moodscope/pkg/analysis"
	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// ErrNilSnapshot is returned when Start is called without a snapshot. This
// is a programming-contract violation, not a data condition, so it fails
// fast instead of degrading.
var ErrNilSnapshot = errors.New("processing: nil snapshot")

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithTaskDelay installs a hook invoked at the start of each task. Used by
// tests to slow individual tasks down and exercise supersede semantics.
func WithTaskDelay(fn func(Task)) ProcessorOption {
	return func(p *Processor) {
		p.taskDelay = fn
	}
}

// Processor runs analyses over snapshots. Each Start captures the snapshot
// under a fresh epoch; the epoch counter is compared at every write to the
// shared result buffer, so a superseded run can finish its computation
// without its output ever becoming visible.
type Processor struct {
	epoch atomic.Uint64

	mu          sync.Mutex
	current     *Run
	lastResult  *model.Processed
	subscribers []chan *model.Processed

	taskDelay func(Task)
}

// NewProcessor creates a processor with no runs started.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins a new processing run over the snapshot and returns its
// handle. Any in-flight run is immediately marked superseded; its tasks may
// finish but their writes are discarded. Start never blocks on the
// superseded run.
func (p *Processor) Start(snap *Snapshot) (*Run, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}

	p.mu.Lock()
	epoch := p.epoch.Add(1)
	if p.current != nil {
		p.current.supersede()
	}
	run := &Run{
		epoch: epoch,
		snap:  snap,
		proc:  p,
		done:  make(chan struct{}),
	}
	p.current = run
	delay := p.taskDelay
	p.mu.Unlock()

	go run.execute(delay)
	return run, nil
}

// Current returns the handle of the most recently started run, or nil.
func (p *Processor) Current() *Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Result returns the most recently published result bundle, if any.
func (p *Processor) Result() (*model.Processed, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastResult, p.lastResult != nil
}

// Subscribe returns a channel that receives each published result exactly
// once. The channel is buffered; a slow consumer drops results rather than
// blocking publication.
func (p *Processor) Subscribe() <-chan *model.Processed {
	ch := make(chan *model.Processed, 1)
	p.mu.Lock()
	p.subscribers = append(p.subscribers, ch)
	p.mu.Unlock()
	return ch
}

// publish installs the result as the latest if the run's epoch is still
// current, and notifies subscribers. Returns false when a newer run started
// in the meantime, in which case nothing becomes visible.
func (p *Processor) publish(r *Run, result *model.Processed) bool {
	p.mu.Lock()
	if p.epoch.Load() != r.epoch {
		p.mu.Unlock()
		return false
	}
	p.lastResult = result
	subs := append([]chan *model.Processed(nil), p.subscribers...)
	p.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- result:
		default:
		}
	}
	return true
}

// Run is the handle for one processing run.
type Run struct {
	epoch uint64
	snap  *Snapshot
	proc  *Processor

	// mu guards the result buffer together with the completion flags, so
	// observing AllComplete is always consistent with the buffer contents.
	mu         sync.Mutex
	status     RunStatus
	buffer     *model.Processed
	result     *model.Processed
	superseded bool

	done chan struct{}
}

// Epoch returns the run's epoch identifier.
func (r *Run) Epoch() uint64 { return r.epoch }

// Done returns a channel closed when the run's tasks have all returned,
// whether or not the run published.
func (r *Run) Done() <-chan struct{} { return r.done }

// Superseded reports whether a newer run has invalidated this one.
func (r *Run) Superseded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.superseded
}

// Status returns a copy of the per-task completion flags.
func (r *Run) Status() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result returns the run's published bundle. The second return is false
// while the run is pending and forever for superseded runs.
func (r *Run) Result() (*model.Processed, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.result != nil
}

func (r *Run) supersede() {
	r.mu.Lock()
	r.superseded = true
	r.mu.Unlock()
}

// record applies one task's contribution to the run's result buffer and
// flips the task's completion flag. The epoch check and the write happen
// under the same lock: a superseded task neither writes nor flips its flag.
func (r *Run) record(task Task, apply func(*model.Processed)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.superseded || r.proc.epoch.Load() != r.epoch {
		r.superseded = true
		return false
	}
	apply(r.buffer)
	r.status.mark(task)
	return true
}

// execute runs the sequencer, fans out the independent analyses, and
// publishes the merged buffer once every task has completed. Workers only
// read the immutable snapshot and the shared read-only daily series; the
// buffer and flags are the sole mutable shared state.
func (r *Run) execute(delay func(Task)) {
	defer close(r.done)
	defer metrics.Timer(metrics.OpFullRun)()

	settings := r.snap.Settings

	r.mu.Lock()
	r.buffer = &model.Processed{
		Epoch:       r.epoch,
		GeneratedAt: time.Now().UTC(),
	}
	r.mu.Unlock()

	// The daily sequencer runs first; its output is shared read-only with
	// every fan-out task.
	if delay != nil {
		delay(TaskSeries)
	}
	series := analysis.BuildDailySeries(r.snap.Observations)
	r.record(TaskSeries, func(p *model.Processed) {
		p.Series = series
	})

	var g errgroup.Group

	g.Go(func() error {
		if delay != nil {
			delay(TaskStatistics)
		}
		done := metrics.Timer(metrics.OpStatistics)

		sliding := make(map[int]map[model.Dimension][]*float64)
		volatility := make(map[model.Dimension][]*float64)
		trends := make(map[model.Dimension]model.TrendResult)

		windows := append([]int{0}, settings.SlidingWindows...)
		for _, dim := range model.Dimensions() {
			values := analysis.FloatValues(series.Values(dim))
			for _, w := range windows {
				if sliding[w] == nil {
					sliding[w] = make(map[model.Dimension][]*float64)
				}
				sliding[w][dim] = analysis.SlidingAverage(values, w)
			}
			volatility[dim] = analysis.Volatility(values, settings.VolatilityWindowDays)
			trends[dim] = analysis.ClassifyTrend(values, settings.TrendWindowDays, settings.TrendThreshold)
		}
		correlations := analysis.BuildCorrelationMatrix(series, r.snap.Health)
		done()

		r.record(TaskStatistics, func(p *model.Processed) {
			p.Sliding = sliding
			p.Volatility = volatility
			p.Trends = trends
			p.Correlations = correlations
		})
		return nil
	})

	g.Go(func() error {
		if delay != nil {
			delay(TaskButterfly)
		}
		events := analysis.ExtractEvents(r.snap.Observations)
		impacts := analysis.EventImpacts(series, events, settings.ButterflyShortDays, settings.ButterflyLongDays)
		summaries := analysis.AggregateImpacts(impacts)

		r.record(TaskButterfly, func(p *model.Processed) {
			p.EventImpacts = impacts
			p.EventSummaries = summaries
		})
		return nil
	})

	g.Go(func() error {
		if delay != nil {
			delay(TaskInfluence)
		}
		categories := analysis.CollectCategories(series, settings.Symptoms, settings.Activities, settings.Social)
		scores := analysis.InfluenceScores(series, categories, settings.MinInfluenceSamples)

		r.record(TaskInfluence, func(p *model.Processed) {
			p.Influence = scores
		})
		return nil
	})

	// Tasks are pure CPU work and report discarded writes via the epoch
	// check, so Wait only synchronizes completion.
	_ = g.Wait()

	r.finish()
}

// finish publishes the buffer exactly once when all flags are set and the
// run has not been superseded. Observers are never shown a partial bundle.
func (r *Run) finish() {
	r.mu.Lock()
	if r.superseded || !r.status.AllComplete() || r.result != nil {
		r.mu.Unlock()
		return
	}
	result := r.buffer
	r.buffer = nil
	r.mu.Unlock()

	if !r.proc.publish(r, result) {
		r.supersede()
		return
	}

	r.mu.Lock()
	r.result = result
	r.mu.Unlock()
}
