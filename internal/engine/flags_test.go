package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-multitime/internal/engine"
)

func TestCountryCode(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"Asia/Tokyo", "jp"},
		{"America/New_York", "us"},
		{"Europe/London", "gb"},
		{"America/Argentina/Buenos_Aires", "ar"},
		{"asia/TOKYO", "jp"},
		// No region fallback: an unmapped city gets no flag.
		{"America/Boise", ""},
		{"Europe/Nowhere", ""},
		{"UTC", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.CountryCode(tt.tz))
		})
	}
}

func TestFlagGlyph(t *testing.T) {
	assert.Equal(t, "\U0001F1EF\U0001F1F5", engine.FlagGlyph("jp"))
	assert.Equal(t, "\U0001F1FA\U0001F1F8", engine.FlagGlyph("US"))
	assert.Empty(t, engine.FlagGlyph("usa"))
	assert.Empty(t, engine.FlagGlyph("j1"))
	assert.Empty(t, engine.FlagGlyph(""))
}

func TestFlagFor(t *testing.T) {
	f := engine.FlagFor("Australia/Sydney")
	require.NotNil(t, f)
	assert.Equal(t, "au", f.CountryCode)
	assert.Equal(t, "\U0001F1E6\U0001F1FA", f.Glyph)

	assert.Nil(t, engine.FlagFor("Etc/GMT+5"))
}
