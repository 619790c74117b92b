package engine

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
)

// FlagLookup maps a zone to its flag, or nil.
type FlagLookup func(timezoneID string) *Flag

// Composer builds RenderOutput from an entry snapshot. Apart from the formatter
// cache, which is transparent, it holds no state: identical inputs always yield
// identical output.
type Composer struct {
	resolver TimezoneResolver
	cache    *FormatterCache
	flags    FlagLookup
}

// NewComposer creates a composer with its own formatter cache.
func NewComposer(resolver TimezoneResolver) *Composer {
	return &Composer{
		resolver: resolver,
		cache:    NewFormatterCache(resolver),
		flags:    FlagFor,
	}
}

// Cache exposes the composer's formatter cache.
func (c *Composer) Cache() *FormatterCache {
	return c.cache
}

// Compose renders entries at instant now. Entries are laid out by Order, and
// entries whose zone does not resolve are left out.
func (c *Composer) Compose(entries []TimezoneEntry, settings DisplaySettings, now time.Time, local *time.Location) RenderOutput {
	if local == nil {
		local = time.Local
	}

	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b TimezoneEntry) int {
		return cmp.Compare(a.Order, b.Order)
	})

	cells := make([]ClockCell, 0, len(ordered))
	skipped := 0
	for _, e := range ordered {
		cell, err := c.cell(e, settings, now, local)
		if err != nil {
			skipped++
			slog.Debug(config.MsgSkippedEntry,
				config.LogKeyComponent, config.CompComposer,
				config.LogKeyTimezone, e.TimezoneID,
				config.LogKeyError, err)
			continue
		}
		cells = append(cells, cell)
	}

	out := arrange(cells, settings.StackClocks)
	slog.Debug(config.MsgComposed,
		config.LogKeyComponent, config.CompComposer,
		config.LogKeyLayout, string(out.Layout),
		config.LogKeyCells, len(cells),
		config.LogKeySkipped, skipped)
	return out
}

func (c *Composer) cell(e TimezoneEntry, settings DisplaySettings, now time.Time, local *time.Location) (ClockCell, error) {
	f, err := c.cache.Get(e.TimezoneID, settings.Use24Hour, settings.ShowSeconds)
	if err != nil {
		return ClockCell{}, err
	}

	diff, err := DayDiffFor(c.resolver, now, local, e.TimezoneID, settings.ShowDayDiff)
	if err != nil {
		return ClockCell{}, err
	}

	clock, meridiem := f.Split(now)
	cell := ClockCell{
		Prefix:   e.CustomPrefix,
		Time:     clock,
		Meridiem: meridiem,
		ShowFlag: settings.ShowFlags,
		DayDiff:  diff,
	}
	if settings.ShowFlags && c.flags != nil {
		cell.Flag = c.flags(e.TimezoneID)
	}
	return cell, nil
}

// arrange places cells in a flat row, or column-wise in two rows when stacking
// applies: cell i goes to row i%2, column i/2.
func arrange(cells []ClockCell, stack bool) RenderOutput {
	if len(cells) == 0 {
		return RenderOutput{Layout: LayoutFlat}
	}
	if !stack || len(cells) < config.MinStackedCells {
		return RenderOutput{Layout: LayoutFlat, Rows: [][]ClockCell{cells}}
	}

	columns := (len(cells) + 1) / config.StackedRows
	rows := make([][]ClockCell, config.StackedRows)
	for r := range rows {
		rows[r] = make([]ClockCell, 0, columns)
	}
	for i, cell := range cells {
		rows[i%config.StackedRows] = append(rows[i%config.StackedRows], cell)
	}
	return RenderOutput{Layout: LayoutStacked, Rows: rows}
}
