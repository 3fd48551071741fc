package model

import "time"

// TrendDirection classifies the recent movement of a mood dimension.
// An empty direction means the comparison had no valid samples.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendResult compares the mean of the most recent window against the
// preceding window of equal length.
type TrendResult struct {
	Direction  TrendDirection `json:"direction,omitempty"`
	RecentMean *float64       `json:"recent_mean,omitempty"`
	PriorMean  *float64       `json:"prior_mean,omitempty"`
}

// InfluenceResult scores one category's association with one mood dimension:
// the mean level on days where the flag is present versus absent. All mean
// and delta fields are nil when either partition is below the sample
// threshold; a too-small sample is expected data sparsity, never an error.
type InfluenceResult struct {
	Category       Category  `json:"category"`
	Dimension      Dimension `json:"dimension"`
	MeanWith       *float64  `json:"mean_with,omitempty"`
	MeanWithout    *float64  `json:"mean_without,omitempty"`
	Delta          *float64  `json:"delta,omitempty"`
	SamplesWith    int       `json:"samples_with"`
	SamplesWithout int       `json:"samples_without"`
}

// Sufficient reports whether the result cleared the sample threshold.
func (r InfluenceResult) Sufficient() bool { return r.Delta != nil }

// EventOccurrence is a single discrete event: an explicit event entry or one
// hashtag occurrence, anchored to a calendar day.
type EventOccurrence struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

// EventWindowResult holds the butterfly window means for one event
// occurrence and one dimension. Each mean is nil when its window contains no
// present daily level.
type EventWindowResult struct {
	EventID   string    `json:"event_id,omitempty"`
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	Dimension Dimension `json:"dimension"`

	PreShort  *float64 `json:"pre_short,omitempty"`
	PostShort *float64 `json:"post_short,omitempty"`
	PreLong   *float64 `json:"pre_long,omitempty"`
	PostLong  *float64 `json:"post_long,omitempty"`
}

// CorrelationMatrix stores pairwise Pearson coefficients between named daily
// series. Cells[i][j] is nil when the pair had fewer than the minimum paired
// samples or a degenerate variance. The matrix is symmetric.
type CorrelationMatrix struct {
	Names []string     `json:"names"`
	Cells [][]*float64 `json:"cells"`
}

// At returns the coefficient for the named pair, or nil when either name is
// unknown or the pair was degenerate.
func (m CorrelationMatrix) At(a, b string) *float64 {
	ai, bi := -1, -1
	for i, n := range m.Names {
		if n == a {
			ai = i
		}
		if n == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return nil
	}
	return m.Cells[ai][bi]
}

// Processed is the complete derived-statistics bundle for one processing
// run. It is published atomically: consumers never observe a partially
// populated bundle.
type Processed struct {
	Epoch       uint64    `json:"epoch"`
	GeneratedAt time.Time `json:"generated_at"`

	Series DailySeries `json:"series"`

	// Sliding maps window length in days (0 = whole history) to per-dimension
	// trailing means, index-aligned with Series.Days.
	Sliding map[int]map[Dimension][]*float64 `json:"sliding"`

	// Volatility holds per-dimension rolling instability values.
	Volatility map[Dimension][]*float64 `json:"volatility"`

	Trends       map[Dimension]TrendResult `json:"trends"`
	Correlations CorrelationMatrix         `json:"correlations"`
	Influence    []InfluenceResult         `json:"influence"`
	EventImpacts []EventWindowResult       `json:"event_impacts"`

	// EventSummaries averages the present per-occurrence means for each
	// label+dimension pair, keyed by "label|dimension".
	EventSummaries map[string]EventWindowResult `json:"event_summaries"`
}
