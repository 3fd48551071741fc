package analysis

import (
	"sort"
	"time"

	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// BuildDailySeries converts raw observations into a gapless calendar series.
//
// The covered range is [earliest mood day, latest mood day]; with no mood
// observations the series is empty. When several mood entries land on the
// same day, the most recent observation wins per dimension (entries that
// leave a dimension nil do not clobber an earlier value). Categorical flags
// from every observation kind, plus hashtags extracted from note text, are
// unioned onto their day.
func BuildDailySeries(observations []model.Observation) model.DailySeries {
	defer metrics.Timer(metrics.OpSequencer)()

	var minDate, maxDate time.Time
	for i := range observations {
		o := &observations[i]
		if o.Kind != model.KindMood || o.Timestamp.IsZero() {
			continue
		}
		d := o.Date()
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
	}
	if minDate.IsZero() {
		return model.DailySeries{}
	}

	numDays := int(maxDate.Sub(minDate).Hours()/24) + 1
	days := make([]model.Day, numDays)
	for i := range days {
		days[i].Date = minDate.AddDate(0, 0, i)
	}
	series := model.DailySeries{Days: days}

	// Sort a copy by timestamp so "latest wins" is well defined regardless of
	// input order. The original slice is never mutated.
	sorted := make([]*model.Observation, 0, len(observations))
	for i := range observations {
		if !observations[i].Timestamp.IsZero() {
			sorted = append(sorted, &observations[i])
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for _, o := range sorted {
		idx := series.IndexOf(o.Timestamp)
		if idx < 0 {
			continue
		}
		day := &series.Days[idx]

		if o.Kind == model.KindMood {
			day.HasMood = true
			for dim, lv := range o.Levels {
				if lv != nil {
					v := clampLevel(*lv)
					day.Levels[dim] = &v
				}
			}
		}

		applyCategories(day, model.CategorySymptom, o.Symptoms)
		applyCategories(day, model.CategoryActivity, o.Activities)
		applyCategories(day, model.CategorySocial, o.Social)
		for _, tag := range ExtractHashtags(o.Text) {
			markCategory(day, model.Hashtag(tag))
		}
	}

	return series
}

func applyCategories(day *model.Day, kind model.CategoryKind, names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		markCategory(day, model.Category{Kind: kind, Name: name})
	}
}

func markCategory(day *model.Day, c model.Category) {
	if day.Categories == nil {
		day.Categories = make(map[string]bool)
	}
	day.Categories[c.Key()] = true
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > model.MaxLevel {
		return model.MaxLevel
	}
	return v
}
