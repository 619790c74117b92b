package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// ShowClocksWindow displays the composed clocks in a small window.
// It implements a singleton pattern: if the window is already open, it requests focus.
func (app *MultiTimeApp) ShowClocksWindow() {
	if app.clocksWindow != nil {
		app.clocksWindow.RequestFocus()
		return
	}

	app.clocksWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinClocks))
	app.clocksWindow.Resize(fyne.NewSize(config.ClocksWindowWidth, config.ClocksWindowHeight))

	app.FrameMut.RLock()
	frame := app.Frame
	app.FrameMut.RUnlock()

	slog.Info(config.MsgOpenClocks,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCells, frame.Len())

	app.clocksText = widget.NewRichText()
	app.clocksText.Wrapping = fyne.TextWrapOff
	app.renderClocks(frame)

	app.clocksWindow.SetContent(container.NewPadded(app.clocksText))
	app.clocksWindow.SetOnClosed(func() {
		app.clocksWindow = nil
		app.clocksText = nil
	})
	app.clocksWindow.Show()
}

// renderClocks repaints the clocks window when it is open. Must run on the Fyne thread.
func (app *MultiTimeApp) renderClocks(out engine.RenderOutput) {
	if app.clocksText == nil {
		return
	}
	segs := richSegments(out)
	if len(segs) == 0 {
		segs = []widget.RichTextSegment{&widget.TextSegment{
			Text:  app.trayEmptyLabel(),
			Style: widget.RichTextStyle{ColorName: theme.ColorNamePlaceHolder},
		}}
	}
	app.clocksText.Segments = segs
	app.clocksText.Refresh()
}

// richSegments styles each row of out as one paragraph. Every run is
// monospaced so that stacked columns line up.
func richSegments(out engine.RenderOutput) []widget.RichTextSegment {
	sep := config.CellSeparator
	if out.Layout == engine.LayoutStacked {
		sep = config.ColumnSeparator
	}

	var segs []widget.RichTextSegment
	for _, row := range out.Rows {
		if len(row) == 0 {
			continue
		}
		for i, cell := range row {
			if i > 0 {
				segs = append(segs, textRun(sep, widget.RichTextStyle{}))
			}
			for _, s := range cell.Segments() {
				segs = append(segs, textRun(s.Text, styleFor(s.Kind)))
			}
		}
		// A non-inline run closes the paragraph.
		last := segs[len(segs)-1].(*widget.TextSegment)
		last.Style.Inline = false
	}
	return segs
}

func textRun(text string, style widget.RichTextStyle) *widget.TextSegment {
	style.Inline = true
	style.TextStyle.Monospace = true
	return &widget.TextSegment{Text: text, Style: style}
}

func styleFor(kind engine.SegmentKind) widget.RichTextStyle {
	switch kind {
	case engine.SegmentTime:
		return widget.RichTextStyle{TextStyle: fyne.TextStyle{Bold: true}}
	case engine.SegmentPrefix:
		return widget.RichTextStyle{ColorName: theme.ColorNamePrimary}
	case engine.SegmentMeridiem, engine.SegmentDayDiff:
		return widget.RichTextStyle{ColorName: theme.ColorNamePlaceHolder}
	default:
		return widget.RichTextStyle{}
	}
}
