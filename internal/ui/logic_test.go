package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// TestApp_ValidatePort covers the feed port rules. Without a localizer the
// error text is the translation key itself.
func TestApp_ValidatePort(t *testing.T) {
	app := &MultiTimeApp{}

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Empty", "", config.TKeyErrPortReq},
		{"NotANumber", "80a", config.TKeyErrPortNum},
		{"Zero", "0", config.TKeyErrPortRange},
		{"TooHigh", "65536", config.TKeyErrPortRange},
		{"Lowest", "1", ""},
		{"Highest", "65535", ""},
		{"Default", config.DefaultFeedPort, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.validatePort(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPrefixValidator(t *testing.T) {
	assert.NoError(t, prefixValidator(""))
	assert.NoError(t, prefixValidator(strings.Repeat("é", config.MaxPrefixLength)), "Length is counted in runes")
	assert.Error(t, prefixValidator(strings.Repeat("x", config.MaxPrefixLength+1)))
}

func segmentTexts(segs []widget.RichTextSegment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.(*widget.TextSegment).Text
	}
	return out
}

func TestRichSegments_FlatRow(t *testing.T) {
	out := engine.RenderOutput{
		Layout: engine.LayoutFlat,
		Rows: [][]engine.ClockCell{{
			{Time: "3:04:05", Meridiem: "PM"},
			{Prefix: "TKY", Time: "4:04:05", Meridiem: "AM", DayDiff: 1},
		}},
	}

	segs := richSegments(out)

	assert.Equal(t, out.String(), strings.Join(segmentTexts(segs), ""), "Styled runs spell the plain rendering")
	for i, s := range segs {
		ts := s.(*widget.TextSegment)
		assert.True(t, ts.Style.TextStyle.Monospace)
		assert.Equal(t, i < len(segs)-1, ts.Style.Inline, "Only the last run closes the row")
	}

	first := segs[0].(*widget.TextSegment)
	assert.True(t, first.Style.TextStyle.Bold, "The time is bold")

	last := segs[len(segs)-1].(*widget.TextSegment)
	assert.Equal(t, " (+1d)", last.Text)
	assert.Equal(t, theme.ColorNamePlaceHolder, last.Style.ColorName)
}

func TestRichSegments_StackedRows(t *testing.T) {
	out := engine.RenderOutput{
		Layout: engine.LayoutStacked,
		Rows: [][]engine.ClockCell{
			{{Time: "15:04"}, {Time: "23:04"}},
			{{Time: "07:04", ShowFlag: true}},
		},
	}

	segs := richSegments(out)
	texts := segmentTexts(segs)

	assert.Equal(t, []string{"15:04", config.ColumnSeparator, "23:04", config.FlagPlaceholder, "07:04"}, texts)

	paragraphs := 0
	for _, s := range segs {
		if !s.(*widget.TextSegment).Style.Inline {
			paragraphs++
		}
	}
	assert.Equal(t, 2, paragraphs)
}

func TestRichSegments_Empty(t *testing.T) {
	require.Empty(t, richSegments(engine.RenderOutput{Layout: engine.LayoutFlat}))
}
