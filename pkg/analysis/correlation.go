package analysis

import (
	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// Health metric series names as they appear in the correlation matrix.
const (
	SeriesWeight       = "weight"
	SeriesSleepHours   = "sleep_hours"
	SeriesDistance     = "distance"
	SeriesActiveEnergy = "active_energy"
)

// HealthDaily projects health observations onto the series calendar, one
// optional value per day per metric. Observations outside the series range
// are dropped; later same-day records win.
func HealthDaily(series model.DailySeries, health []model.HealthObservation) map[string][]*float64 {
	n := series.Len()
	out := map[string][]*float64{
		SeriesWeight:       make([]*float64, n),
		SeriesSleepHours:   make([]*float64, n),
		SeriesDistance:     make([]*float64, n),
		SeriesActiveEnergy: make([]*float64, n),
	}
	for i := range health {
		h := &health[i]
		idx := series.IndexOf(h.Date)
		if idx < 0 {
			continue
		}
		setIfPresent(out[SeriesWeight], idx, h.Weight)
		setIfPresent(out[SeriesSleepHours], idx, h.SleepHours)
		setIfPresent(out[SeriesDistance], idx, h.Distance)
		setIfPresent(out[SeriesActiveEnergy], idx, h.ActiveEnergy)
	}
	return out
}

func setIfPresent(dst []*float64, idx int, v *float64) {
	if v == nil {
		return
	}
	f := *v
	dst[idx] = &f
}

// BuildCorrelationMatrix computes pairwise Pearson coefficients between the
// four mood dimensions and each health metric carried by the snapshot. The
// matrix is symmetric with a unit diagonal wherever the series is
// non-degenerate.
func BuildCorrelationMatrix(series model.DailySeries, health []model.HealthObservation) model.CorrelationMatrix {
	defer metrics.Timer(metrics.OpCorrelation)()

	names := make([]string, 0, model.NumDimensions+4)
	columns := make([][]*float64, 0, model.NumDimensions+4)

	for _, dim := range model.Dimensions() {
		names = append(names, dim.String())
		columns = append(columns, FloatValues(series.Values(dim)))
	}

	healthCols := HealthDaily(series, health)
	for _, name := range []string{SeriesSleepHours, SeriesWeight, SeriesDistance, SeriesActiveEnergy} {
		names = append(names, name)
		columns = append(columns, healthCols[name])
	}

	cells := make([][]*float64, len(names))
	for i := range cells {
		cells[i] = make([]*float64, len(names))
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			r := Correlation(columns[i], columns[j])
			cells[i][j] = r
			cells[j][i] = r
		}
	}

	return model.CorrelationMatrix{Names: names, Cells: cells}
}
