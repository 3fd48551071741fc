package analysis

import (
	"fmt"
	"sort"

	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// Default butterfly window lengths in days.
const (
	DefaultShortWindowDays = 7
	DefaultLongWindowDays  = 28
)

// ExtractEvents derives discrete event occurrences from raw observations:
// explicit event entries plus one occurrence per hashtag per entry. The
// result is sorted by date then label for deterministic output.
func ExtractEvents(observations []model.Observation) []model.EventOccurrence {
	var events []model.EventOccurrence
	for i := range observations {
		o := &observations[i]
		if o.Timestamp.IsZero() {
			continue
		}
		if o.Kind == model.KindEvent && o.EventLabel != "" {
			events = append(events, model.EventOccurrence{
				ID:    o.ID,
				Label: o.EventLabel,
				Date:  o.Date(),
			})
		}
		for _, tag := range ExtractHashtags(o.Text) {
			events = append(events, model.EventOccurrence{
				ID:    o.ID + "#" + tag,
				Label: "#" + tag,
				Date:  o.Date(),
			})
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		if events[i].Label != events[j].Label {
			return events[i].Label < events[j].Label
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// EventImpacts computes, per event occurrence and per dimension, the mean
// mood inside four windows anchored at the event date: short and long spans
// before and after. Pre windows end the day before the event; post windows
// start the day after. Every occurrence yields a result, including events
// dated outside the series range; each window mean is nil when the window
// covers no present day.
func EventImpacts(series model.DailySeries, events []model.EventOccurrence, shortDays, longDays int) []model.EventWindowResult {
	defer metrics.Timer(metrics.OpButterfly)()

	if shortDays <= 0 {
		shortDays = DefaultShortWindowDays
	}
	if longDays <= 0 {
		longDays = DefaultLongWindowDays
	}

	var results []model.EventWindowResult
	if series.Empty() {
		return results
	}

	dims := model.Dimensions()
	for _, ev := range events {
		// Signed day offset from the series start: an event logged just
		// before the first mood entry still has post windows overlapping
		// the series, and the window clipping handles the rest.
		anchor := int(model.DateOf(ev.Date).Sub(series.Start()).Hours() / 24)
		for _, dim := range dims {
			values := FloatValues(series.Values(dim))
			results = append(results, model.EventWindowResult{
				EventID:   ev.ID,
				Label:     ev.Label,
				Date:      ev.Date,
				Dimension: dim,
				PreShort:  windowMean(values, anchor-shortDays, anchor-1),
				PostShort: windowMean(values, anchor+1, anchor+shortDays),
				PreLong:   windowMean(values, anchor-longDays, anchor-1),
				PostLong:  windowMean(values, anchor+1, anchor+longDays),
			})
		}
	}
	return results
}

// AggregateImpacts averages per-occurrence window means across all
// occurrences of each label, per dimension. Only present means participate
// in each average; a field stays nil when every occurrence was absent.
// Keys are "label|dimension".
func AggregateImpacts(results []model.EventWindowResult) map[string]model.EventWindowResult {
	type acc struct {
		preShort, postShort, preLong, postLong accMean
		count                                  int
	}
	groups := make(map[string]*acc)
	meta := make(map[string]model.EventWindowResult)

	for _, r := range results {
		key := SummaryKey(r.Label, r.Dimension)
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
			meta[key] = model.EventWindowResult{Label: r.Label, Dimension: r.Dimension}
		}
		g.count++
		g.preShort.add(r.PreShort)
		g.postShort.add(r.PostShort)
		g.preLong.add(r.PreLong)
		g.postLong.add(r.PostLong)
	}

	out := make(map[string]model.EventWindowResult, len(groups))
	for key, g := range groups {
		summary := meta[key]
		summary.PreShort = g.preShort.mean()
		summary.PostShort = g.postShort.mean()
		summary.PreLong = g.preLong.mean()
		summary.PostLong = g.postLong.mean()
		out[key] = summary
	}
	return out
}

// SummaryKey builds the EventSummaries map key for a label and dimension.
func SummaryKey(label string, dim model.Dimension) string {
	return fmt.Sprintf("%s|%s", label, dim)
}

type accMean struct {
	sum   float64
	count int
}

func (a *accMean) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.count++
}

func (a accMean) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}

// windowMean averages the present values in the inclusive index range
// [lo, hi], clipped to the series bounds. Nil when nothing is present.
func windowMean(values []*float64, lo, hi int) *float64 {
	if lo < 0 {
		lo = 0
	}
	if hi >= len(values) {
		hi = len(values) - 1
	}
	if lo > hi {
		return nil
	}
	return presentMean(values[lo : hi+1])
}
