package engine

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-multitime/internal/config"
)

// TimezoneEntry is one configured clock, as stored by the timezone list.
// The engine only ever reads snapshots of it.
type TimezoneEntry struct {
	// ID is a stable UUID assigned when the entry is created.
	ID string `json:"id"`

	// TimezoneID is the IANA zone name (e.g., "Asia/Tokyo").
	TimezoneID string `json:"timezoneID"`

	// CustomPrefix is rendered before the time. Empty means none.
	CustomPrefix string `json:"customPrefix,omitempty"`

	// Order defines the display position. Unique within a list.
	Order int `json:"order"`

	// DisplayName is the city name picked by the user, if any.
	DisplayName string `json:"cityName,omitempty"`
}

// Label returns the human name of the entry for lists and logs.
func (e TimezoneEntry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.TimezoneID
}

// DisplaySettings is an immutable snapshot of the display toggles for one render pass.
type DisplaySettings struct {
	Use24Hour   bool
	ShowSeconds bool
	ShowFlags   bool
	ShowDayDiff bool
	StackClocks bool
}

// DefaultDisplaySettings returns the settings used before the user changes anything.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		Use24Hour:   config.DefaultUse24Hour,
		ShowSeconds: config.DefaultShowSeconds,
		ShowFlags:   config.DefaultShowFlags,
		ShowDayDiff: config.DefaultShowDayDiff,
		StackClocks: config.DefaultStackClocks,
	}
}

// Mode returns the refresh cadence these settings require.
func (s DisplaySettings) Mode() Mode {
	if s.ShowSeconds {
		return ModeSeconds
	}
	return ModeMinutes
}

// formatChanged reports whether switching from s to other alters the time format.
func (s DisplaySettings) formatChanged(other DisplaySettings) bool {
	return s.Use24Hour != other.Use24Hour || s.ShowSeconds != other.ShowSeconds
}

// Flag references a country flag. The sink decides whether to draw the glyph or an image.
type Flag struct {
	CountryCode string `json:"country_code"`
	Glyph       string `json:"glyph"`
}

// ClockCell is the render artifact for one timezone during one tick.
type ClockCell struct {
	Prefix   string `json:"prefix,omitempty"`
	Time     string `json:"time"`
	Meridiem string `json:"meridiem,omitempty"`
	Flag     *Flag  `json:"flag,omitempty"`
	ShowFlag bool   `json:"show_flag"`
	DayDiff  int    `json:"day_diff"`
}

// SegmentKind tags a piece of cell text so that sinks can style it.
type SegmentKind string

const (
	SegmentFlag        SegmentKind = "flag"
	SegmentPlaceholder SegmentKind = "placeholder"
	SegmentPrefix      SegmentKind = "prefix"
	SegmentTime        SegmentKind = "time"
	SegmentMeridiem    SegmentKind = "meridiem"
	SegmentDayDiff     SegmentKind = "day_diff"
	SegmentSpacing     SegmentKind = "spacing"
)

// Segment is a styled run of text.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Segments returns the cell as ordered, styleable runs.
// Concatenating their Text yields Text().
func (c ClockCell) Segments() []Segment {
	var segs []Segment

	if c.ShowFlag {
		if c.Flag != nil && c.Flag.Glyph != "" {
			segs = append(segs,
				Segment{Kind: SegmentFlag, Text: c.Flag.Glyph},
				Segment{Kind: SegmentSpacing, Text: config.TokenSeparator})
		} else {
			segs = append(segs, Segment{Kind: SegmentPlaceholder, Text: config.FlagPlaceholder})
		}
	}

	if c.Prefix != "" {
		segs = append(segs,
			Segment{Kind: SegmentPrefix, Text: c.Prefix},
			Segment{Kind: SegmentSpacing, Text: config.TokenSeparator})
	}

	segs = append(segs, Segment{Kind: SegmentTime, Text: c.Time})

	if c.Meridiem != "" {
		segs = append(segs,
			Segment{Kind: SegmentSpacing, Text: config.TokenSeparator},
			Segment{Kind: SegmentMeridiem, Text: c.Meridiem})
	}

	if suffix := DayDiffSuffix(c.DayDiff); suffix != "" {
		segs = append(segs, Segment{Kind: SegmentDayDiff, Text: suffix})
	}

	return segs
}

// Text renders the cell as plain text.
func (c ClockCell) Text() string {
	var b strings.Builder
	for _, s := range c.Segments() {
		b.WriteString(s.Text)
	}
	return b.String()
}

// DayDiffSuffix formats a day offset as " (+1d)" / " (-1d)". Zero yields "".
func DayDiffSuffix(diff int) string {
	switch {
	case diff > 0:
		return fmt.Sprintf(config.FormatDayDiffPositive, diff)
	case diff < 0:
		return fmt.Sprintf(config.FormatDayDiffNegative, diff)
	default:
		return ""
	}
}

// Layout identifies how RenderOutput rows are arranged.
type Layout string

const (
	LayoutFlat    Layout = "flat"
	LayoutStacked Layout = "stacked"
)

// RenderOutput is the structural description handed to the presentation layer.
// Flat output has a single row. Stacked output has two rows, column-aligned,
// and the second row may be one cell shorter.
type RenderOutput struct {
	Layout Layout        `json:"layout"`
	Rows   [][]ClockCell `json:"rows"`
}

// Len returns the number of cells across all rows.
func (o RenderOutput) Len() int {
	n := 0
	for _, row := range o.Rows {
		n += len(row)
	}
	return n
}

// IsEmpty reports whether no clock resolved.
func (o RenderOutput) IsEmpty() bool {
	return o.Len() == 0
}

// Cell returns the cell at (row, col), if present.
func (o RenderOutput) Cell(row, col int) (ClockCell, bool) {
	if row < 0 || row >= len(o.Rows) || col < 0 || col >= len(o.Rows[row]) {
		return ClockCell{}, false
	}
	return o.Rows[row][col], true
}

// Lines renders each row as plain text.
func (o RenderOutput) Lines() []string {
	sep := config.CellSeparator
	if o.Layout == LayoutStacked {
		sep = config.ColumnSeparator
	}

	lines := make([]string, 0, len(o.Rows))
	for _, row := range o.Rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.Text()
		}
		lines = append(lines, strings.Join(texts, sep))
	}
	return lines
}

// String renders the whole output, rows separated by newlines.
func (o RenderOutput) String() string {
	return strings.Join(o.Lines(), config.RowSeparator)
}
