package analysis

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"no tags", "an ordinary note", nil},
		{"single tag", "slept badly #insomnia", []string{"insomnia"}},
		{"multiple tags", "#coffee then #gym then #coffee again", []string{"coffee", "gym"}},
		{"case folded", "Rough day #Work #WORK", []string{"work"}},
		{"punctuation adjacent", "late night (#insomnia, again)", []string{"insomnia"}},
		{"mid word", "what a great#day", []string{"day"}},
		{"hyphen and underscore", "#self-care and #deep_work", []string{"deep_work", "self-care"}},
		{"digits", "#day100", []string{"day100"}},
		{"bare hash", "just a # character", nil},
		{"sorted output", "#zebra #apple #mango", []string{"apple", "mango", "zebra"}},
		{"unicode letters", "promenade #café", []string{"café"}},
		{"empty", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ExtractHashtags(%q) = %v, expected %v", tc.text, got, tc.expected)
			}
		})
	}
}
