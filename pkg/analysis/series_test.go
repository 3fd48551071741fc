package analysis

import (
	"testing"
	"time"

	"github.com/evanwhit/moodscope/pkg/model"
	"github.com/evanwhit/moodscope/pkg/testutil"
)

func TestBuildDailySeries_Empty(t *testing.T) {
	series := BuildDailySeries(nil)
	if !series.Empty() {
		t.Errorf("expected empty series, got %d days", series.Len())
	}

	// Notes alone do not anchor a calendar range.
	gen := testutil.NewDefault()
	series = BuildDailySeries([]model.Observation{gen.Note(0, "just a note")})
	if !series.Empty() {
		t.Errorf("expected empty series from notes only, got %d days", series.Len())
	}
}

func TestBuildDailySeries_GaplessRange(t *testing.T) {
	gen := testutil.NewDefault()
	observations := []model.Observation{
		gen.Mood(0, 2),
		gen.Mood(4, 3), // days 1-3 have no entries
	}

	series := BuildDailySeries(observations)
	testutil.AssertSeriesLen(t, series, 5)

	for i, day := range series.Days {
		want := model.DateOf(gen.Day(i))
		if !day.Date.Equal(want) {
			t.Errorf("day %d date %v, want %v", i, day.Date, want)
		}
	}

	if series.Days[2].HasMood {
		t.Error("gap day should have no mood")
	}
	for _, dim := range model.Dimensions() {
		if series.Days[2].Levels[dim] != nil {
			t.Errorf("gap day should have absent %s", dim)
		}
	}
}

func TestBuildDailySeries_LatestEntryWinsPerDimension(t *testing.T) {
	gen := testutil.NewDefault()

	morning := gen.MoodLevels(0, 1, 1, 1, 1)
	morning.ID = "morning"
	morning.Timestamp = gen.Day(0).Add(-3 * time.Hour)

	// The evening entry only records anxiety; other dimensions keep the
	// morning values.
	evening := gen.MoodLevels(0, -1, -1, 3, -1)
	evening.ID = "evening"
	evening.Timestamp = gen.Day(0).Add(6 * time.Hour)

	// Input order deliberately reversed relative to timestamps.
	series := BuildDailySeries([]model.Observation{evening, morning})
	testutil.AssertSeriesLen(t, series, 1)

	day := series.Days[0]
	if day.Levels[model.Anxiety] == nil || *day.Levels[model.Anxiety] != 3 {
		t.Errorf("anxiety should come from the later entry, got %v", day.Levels[model.Anxiety])
	}
	if day.Levels[model.Depression] == nil || *day.Levels[model.Depression] != 1 {
		t.Errorf("depression should survive from the earlier entry, got %v", day.Levels[model.Depression])
	}
}

func TestBuildDailySeries_ClampsLevels(t *testing.T) {
	gen := testutil.NewDefault()
	obs := gen.Mood(0, 9)
	under := gen.Mood(0, 0)
	under.ID = "under"
	under.Levels[0] = testutil.Int(-2)
	under.Timestamp = obs.Timestamp.Add(-time.Hour)

	series := BuildDailySeries([]model.Observation{obs, under})
	day := series.Days[0]
	if *day.Levels[model.Elevation] != model.MaxLevel {
		t.Errorf("expected clamp to %d, got %d", model.MaxLevel, *day.Levels[model.Elevation])
	}
}

func TestBuildDailySeries_UnionsCategories(t *testing.T) {
	gen := testutil.NewDefault()
	mood := testutil.WithCategories(gen.Mood(0, 2), []string{"Fatigue"}, nil)
	note := gen.Note(0, "long walk today #sunshine")
	note.Activities = []string{"walking"}

	series := BuildDailySeries([]model.Observation{mood, note})
	day := series.Days[0]

	for _, cat := range []model.Category{
		{Kind: model.CategorySymptom, Name: "fatigue"},
		{Kind: model.CategoryActivity, Name: "walking"},
		model.Hashtag("sunshine"),
	} {
		if !day.HasCategory(cat) {
			t.Errorf("expected category %s on day 0", cat)
		}
	}
}

func TestBuildDailySeries_CategoriesOutsideMoodRangeDropped(t *testing.T) {
	gen := testutil.NewDefault()
	observations := []model.Observation{
		gen.Mood(5, 2),
		gen.Note(0, "before the mood range #early"),
	}

	series := BuildDailySeries(observations)
	testutil.AssertSeriesLen(t, series, 1)
	if series.Days[0].HasCategory(model.Hashtag("early")) {
		t.Error("note outside the mood range should not contribute categories")
	}
}
