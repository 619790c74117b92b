package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, up to MaxLength of them.
// It backs the feed port field.
type NumericalEntry struct {
	widget.Entry

	// MaxLength caps the number of digits; 0 means unlimited.
	MaxLength int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry(maxLength int) *NumericalEntry {
	entry := &NumericalEntry{MaxLength: maxLength}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit or would exceed MaxLength.
func (e *NumericalEntry) TypedRune(r rune) {
	if !isDigit(r) || e.full() {
		return
	}
	e.Entry.TypedRune(r)
}

// TypedShortcut filters pasted text through the same rules as typed runes.
// Other shortcuts keep the default Entry behavior.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	for _, r := range paste.Clipboard.Content() {
		e.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func (e *NumericalEntry) full() bool {
	return e.MaxLength > 0 && len([]rune(e.Text)) >= e.MaxLength
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
