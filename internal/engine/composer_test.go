package engine_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-multitime/internal/engine"
)

func entry(order int, tz, prefix string) engine.TimezoneEntry {
	return engine.TimezoneEntry{
		ID:           tz,
		TimezoneID:   tz,
		CustomPrefix: prefix,
		Order:        order,
	}
}

func scenarioSettings() engine.DisplaySettings {
	return engine.DisplaySettings{
		Use24Hour:   false,
		ShowSeconds: true,
		ShowFlags:   false,
		ShowDayDiff: true,
		StackClocks: false,
	}
}

func TestComposer_FlatScenario(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	entries := []engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Asia/Tokyo", "TKY"),
	}

	out := c.Compose(entries, scenarioSettings(), scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, engine.LayoutFlat, out.Layout)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "3:04:05 PM  TKY 4:04:05 AM (+1d)", out.String())

	tokyo, ok := out.Cell(0, 1)
	require.True(t, ok)
	assert.Equal(t, "TKY", tokyo.Prefix)
	assert.Equal(t, "4:04:05", tokyo.Time)
	assert.Equal(t, "AM", tokyo.Meridiem)
	assert.Equal(t, 1, tokyo.DayDiff)
	assert.Nil(t, tokyo.Flag)
}

func TestComposer_DayDiffDisabled(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.ShowDayDiff = false

	out := c.Compose([]engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Asia/Tokyo", "TKY"),
	}, settings, scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, "3:04:05 PM  TKY 4:04:05 AM", out.String())
	assert.NotContains(t, out.String(), "(")
}

func TestComposer_NegativeDayDiff(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())

	out := c.Compose([]engine.TimezoneEntry{entry(0, "America/New_York", "NYC")},
		scenarioSettings(), scenarioInstant, mustLoad("Asia/Tokyo"))

	assert.Equal(t, "NYC 3:04:05 PM (-1d)", out.String())
}

func TestComposer_Flags(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.ShowFlags = true
	settings.ShowDayDiff = false

	out := c.Compose([]engine.TimezoneEntry{
		entry(0, "Asia/Tokyo", "TKY"),
		entry(1, "Etc/UTC", ""),
	}, settings, scenarioInstant, mustLoad("America/New_York"))

	tokyo, _ := out.Cell(0, 0)
	require.NotNil(t, tokyo.Flag)
	assert.Equal(t, "jp", tokyo.Flag.CountryCode)
	assert.Equal(t, "\U0001F1EF\U0001F1F5 TKY 4:04:05 AM", tokyo.Text(), "flag shown alongside the prefix")

	utc, _ := out.Cell(0, 1)
	assert.Nil(t, utc.Flag)
	assert.True(t, utc.ShowFlag)
	assert.Equal(t, "   7:04:05 PM", utc.Text(), "unmapped zone keeps its alignment")
}

func TestComposer_OrderIsRespected(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.ShowDayDiff = false

	out := c.Compose([]engine.TimezoneEntry{
		entry(2, "Asia/Tokyo", "C"),
		entry(0, "America/New_York", "A"),
		entry(1, "Europe/London", "B"),
	}, settings, scenarioInstant, nil)

	require.Equal(t, 3, out.Len())
	for i, want := range []string{"A", "B", "C"} {
		cell, ok := out.Cell(0, i)
		require.True(t, ok)
		assert.Equal(t, want, cell.Prefix)
	}
}

func TestComposer_ExtremeOrders(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.ShowDayDiff = false

	out := c.Compose([]engine.TimezoneEntry{
		entry(math.MaxInt, "Asia/Tokyo", "C"),
		entry(math.MinInt, "America/New_York", "A"),
		entry(0, "Europe/London", "B"),
	}, settings, scenarioInstant, nil)

	require.Equal(t, 3, out.Len())
	for i, want := range []string{"A", "B", "C"} {
		cell, ok := out.Cell(0, i)
		require.True(t, ok)
		assert.Equal(t, want, cell.Prefix)
	}
}

func TestComposer_SkipsUnknownZones(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())

	out := c.Compose([]engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Mars/Olympus_Mons", "MARS"),
		entry(2, "Asia/Tokyo", "TKY"),
	}, scenarioSettings(), scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, 2, out.Len())
	assert.Equal(t, "3:04:05 PM  TKY 4:04:05 AM (+1d)", out.String())
	assert.NotContains(t, out.String(), "MARS")
}

func TestComposer_AllUnknown(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())

	out := c.Compose([]engine.TimezoneEntry{entry(0, "Bad/Zone", "")},
		scenarioSettings(), scenarioInstant, nil)

	assert.True(t, out.IsEmpty())
	assert.Empty(t, out.String())
}

func TestComposer_EmptyList(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())

	out := c.Compose(nil, scenarioSettings(), scenarioInstant, nil)

	assert.Equal(t, engine.LayoutFlat, out.Layout)
	assert.True(t, out.IsEmpty())
	assert.Empty(t, out.String())
}

func TestComposer_Stacked(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := engine.DisplaySettings{Use24Hour: true, ShowSeconds: true, StackClocks: true}
	entries := []engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Asia/Tokyo", ""),
		entry(2, "Europe/London", ""),
		entry(3, "Europe/Paris", ""),
		entry(4, "Australia/Sydney", ""),
	}

	out := c.Compose(entries, settings, scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, engine.LayoutStacked, out.Layout)
	require.Len(t, out.Rows, 2)
	assert.Len(t, out.Rows[0], 3)
	assert.Len(t, out.Rows[1], 2, "second row may be one shorter")

	// Entry i lands at row i%2, column i/2.
	for i, e := range entries {
		cell, ok := out.Cell(i%2, i/2)
		require.True(t, ok, e.TimezoneID)
		want := scenarioInstant.In(mustLoad(e.TimezoneID)).Format("15:04:05")
		assert.Equal(t, want, cell.Time, e.TimezoneID)
	}

	col := strings.Repeat(" ", 6)
	assert.Equal(t, "15:04:05"+col+"20:04:05"+col+"05:04:05\n04:04:05"+col+"21:04:05", out.String())
}

func TestComposer_StackedPair(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.StackClocks = true

	out := c.Compose([]engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Asia/Tokyo", "TKY"),
	}, settings, scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, engine.LayoutStacked, out.Layout)
	assert.Equal(t, []string{"3:04:05 PM", "TKY 4:04:05 AM (+1d)"}, out.Lines())
}

func TestComposer_StackedSingleFallsBackToFlat(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	settings := scenarioSettings()
	settings.StackClocks = true

	out := c.Compose([]engine.TimezoneEntry{entry(0, "Asia/Tokyo", "TKY")},
		settings, scenarioInstant, mustLoad("America/New_York"))

	assert.Equal(t, engine.LayoutFlat, out.Layout)
	assert.Equal(t, "TKY 4:04:05 AM (+1d)", out.String())
}

func TestComposer_Deterministic(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	entries := []engine.TimezoneEntry{
		entry(0, "America/New_York", ""),
		entry(1, "Asia/Tokyo", "TKY"),
	}
	local := mustLoad("America/New_York")

	first := c.Compose(entries, scenarioSettings(), scenarioInstant, local)
	second := c.Compose(entries, scenarioSettings(), scenarioInstant, local)
	fresh := engine.NewComposer(engine.NewLocationResolver()).Compose(entries, scenarioSettings(), scenarioInstant, local)

	assert.Equal(t, first, second)
	assert.Equal(t, first, fresh, "cache state must not leak into output")
}

func TestComposer_DoesNotMutateInput(t *testing.T) {
	c := engine.NewComposer(engine.NewLocationResolver())
	entries := []engine.TimezoneEntry{
		entry(1, "Asia/Tokyo", "TKY"),
		entry(0, "America/New_York", ""),
	}

	c.Compose(entries, scenarioSettings(), scenarioInstant, nil)

	assert.Equal(t, "Asia/Tokyo", entries[0].TimezoneID)
}
