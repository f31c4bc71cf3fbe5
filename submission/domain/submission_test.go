package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"trims", "  doge \n", 200, "doge"},
		{"caps runes not bytes", "ééééé", 3, "ééé"},
		{"cut followed by space is trimmed", "ab   cd", 4, "ab"},
		{"empty", "   ", 10, ""},
		{"exact length kept", "abc", 3, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, tt.max))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "doge", "  espaço no fim  ", "a   b   c   d",
		strings.Repeat("x ", 300), strings.Repeat("ç", 600), "\t\nmeme\t\n",
	}
	for _, in := range inputs {
		for _, max := range []int{0, 1, 2, 3, 100, 254, 500} {
			once := Sanitize(in, max)
			assert.Equalf(t, once, Sanitize(once, max), "input %q max %d", in, max)
		}
	}
}

func TestSubmission_SanitizedAppliesLimits(t *testing.T) {
	s := Submission{
		Name:     strings.Repeat("n", 150),
		Email:    " a@b.co ",
		Favorite: strings.Repeat("f", 250),
		Why:      strings.Repeat("w", 600),
	}.Sanitized()

	assert.Len(t, s.Name, MaxNameLen)
	assert.Equal(t, "a@b.co", s.Email)
	assert.Len(t, s.Favorite, MaxFavoriteLen)
	assert.Len(t, s.Why, MaxWhyLen)
}

func TestFromFields_CoercesNonStringsToEmpty(t *testing.T) {
	s := FromFields(map[string]any{
		"name":     42.0,
		"email":    nil,
		"favorite": "doge",
		"why":      map[string]any{"x": 1},
		"extra":    "ignored",
	})

	assert.Equal(t, Submission{Favorite: "doge"}, s)
}

func TestFromFields_NilMap(t *testing.T) {
	assert.Equal(t, Submission{}, FromFields(nil))
}
