package analysis

import (
	"sort"
	"strings"

	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// DefaultMinInfluenceSamples is the minimum day count required on both sides
// of a with/without partition before an influence delta is reported.
const DefaultMinInfluenceSamples = 3

// CollectCategories builds the evaluation set for influence scoring: the
// configured symptom/activity/social registries plus every hashtag observed
// anywhere in the series. Output order is deterministic.
func CollectCategories(series model.DailySeries, symptoms, activities, social []string) []model.Category {
	var categories []model.Category
	seen := make(map[string]bool)

	add := func(c model.Category) {
		key := c.Key()
		if c.Name == "" || seen[key] {
			return
		}
		seen[key] = true
		categories = append(categories, c)
	}

	for _, name := range symptoms {
		add(model.Category{Kind: model.CategorySymptom, Name: name})
	}
	for _, name := range activities {
		add(model.Category{Kind: model.CategoryActivity, Name: name})
	}
	for _, name := range social {
		add(model.Category{Kind: model.CategorySocial, Name: name})
	}

	var hashtags []string
	for key := range series.CategoryKeys() {
		if tag, ok := strings.CutPrefix(key, string(model.CategoryHashtag)+":"); ok {
			hashtags = append(hashtags, tag)
		}
	}
	sort.Strings(hashtags)
	for _, tag := range hashtags {
		add(model.Hashtag(tag))
	}

	return categories
}

// InfluenceScores computes, for each category and dimension, the mean mood
// on days where the flag is present versus absent, and their delta. Each
// category is evaluated in isolation. Results below minSamples on either
// side keep their sample counts but leave all mean fields nil; a zero
// "present" partition therefore reports absence, never a zero delta.
func InfluenceScores(series model.DailySeries, categories []model.Category, minSamples int) []model.InfluenceResult {
	defer metrics.Timer(metrics.OpInfluence)()

	if minSamples <= 0 {
		minSamples = DefaultMinInfluenceSamples
	}

	results := make([]model.InfluenceResult, 0, len(categories)*model.NumDimensions)
	dims := model.Dimensions()

	for _, cat := range categories {
		for _, dim := range dims {
			var with, without accMean
			for i := range series.Days {
				day := &series.Days[i]
				lv := day.Levels[dim]
				if lv == nil {
					continue
				}
				if day.HasCategory(cat) {
					with.sum += float64(*lv)
					with.count++
				} else {
					without.sum += float64(*lv)
					without.count++
				}
			}

			r := model.InfluenceResult{
				Category:       cat,
				Dimension:      dim,
				SamplesWith:    with.count,
				SamplesWithout: without.count,
			}
			if with.count >= minSamples && without.count >= minSamples {
				r.MeanWith = with.mean()
				r.MeanWithout = without.mean()
				delta := *r.MeanWith - *r.MeanWithout
				r.Delta = &delta
			}
			results = append(results, r)
		}
	}
	return results
}
