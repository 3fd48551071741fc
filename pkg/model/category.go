package model

import "strings"

// CategoryKind identifies which registry a category belongs to.
type CategoryKind string

const (
	CategorySymptom  CategoryKind = "symptom"
	CategoryActivity CategoryKind = "activity"
	CategorySocial   CategoryKind = "social"
	CategoryHashtag  CategoryKind = "hashtag"
)

// Category is an interned categorical flag: a symptom, activity, social tag,
// or hashtag. Categories are keyed by kind+name rather than by registry
// position, so registries can grow without invalidating recorded flags.
type Category struct {
	Kind CategoryKind `json:"kind"`
	Name string       `json:"name"`
}

// Key returns the stable string key used to reference this category in
// per-day flag sets. Names are case-folded so "Coffee" and "coffee" intern
// to the same category.
func (c Category) Key() string {
	return string(c.Kind) + ":" + strings.ToLower(c.Name)
}

// String returns a human-readable label like "activity/coffee".
func (c Category) String() string {
	return string(c.Kind) + "/" + c.Name
}

// Hashtag builds a hashtag category from a normalized tag token.
func Hashtag(tag string) Category {
	return Category{Kind: CategoryHashtag, Name: tag}
}
