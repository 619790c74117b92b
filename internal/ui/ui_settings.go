package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
	"github.com/tartampluch/go-multitime/internal/timezones"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	checkUse24Hour   *widget.Check
	checkShowSeconds *widget.Check
	checkShowFlags   *widget.Check
	checkShowDayDiff *widget.Check
	checkStackClocks *widget.Check

	cityEntry   *widget.SelectEntry
	prefixEntry *widget.Entry
	btnAdd      *widget.Button

	list      *widget.List
	listCard  *widget.Card
	entries   []engine.TimezoneEntry
	unsubList func()

	checkFeed *widget.Check
	entryPort *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog. Display toggles and
// list edits apply immediately; feed settings are saved when the window closes.
func (app *MultiTimeApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	sw := &settingsWidgets{}

	displayCard := app.buildDisplayCard(sw)
	addCard := app.buildAddCard(w, sw)
	listCard := app.buildListCard(w, sw)
	feedCard := app.buildFeedCard(sw)

	btnClose := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClose), theme.ConfirmIcon(), func() {
		if err := app.saveFeedSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnClose.Importance = widget.HighImportance

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		displayCard,
		addCard,
		listCard,
		feedCard,
		btnClose,
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetOnClosed(func() {
		if sw.unsubList != nil {
			sw.unsubList()
		}
		// Closing through the window decoration still keeps a valid port.
		if err := app.saveFeedSettings(sw); err != nil {
			slog.Warn(config.MsgFeedNotSaved,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyError, err)
		}
		app.Window = nil
	})
	w.Show()
}

// buildDisplayCard binds the five display toggles to the preferences.
// PrefSettings picks the writes up and the engine re-renders.
func (app *MultiTimeApp) buildDisplayCard(sw *settingsWidgets) *widget.Card {
	bind := func(key string, fallback bool, label string) *widget.Check {
		check := widget.NewCheck(app.GetMsg(label), nil)
		check.Checked = app.Preferences.BoolWithFallback(key, fallback)
		check.OnChanged = func(b bool) {
			app.Preferences.SetBool(key, b)
		}
		return check
	}

	sw.checkUse24Hour = bind(config.PrefUse24Hour, config.DefaultUse24Hour, config.TKeyLblUse24Hour)
	sw.checkShowSeconds = bind(config.PrefShowSeconds, config.DefaultShowSeconds, config.TKeyLblShowSeconds)
	sw.checkShowFlags = bind(config.PrefShowFlags, config.DefaultShowFlags, config.TKeyLblShowFlags)
	sw.checkShowDayDiff = bind(config.PrefShowDayDiff, config.DefaultShowDayDiff, config.TKeyLblShowDayDiff)
	sw.checkStackClocks = bind(config.PrefStackClocks, config.DefaultStackClocks, config.TKeyLblStackClocks)

	return widget.NewCard(app.GetMsg(config.TKeyLblDisplay), "", container.NewVBox(
		sw.checkUse24Hour,
		sw.checkShowSeconds,
		sw.checkShowFlags,
		sw.checkShowDayDiff,
		sw.checkStackClocks,
	))
}

// buildAddCard constructs the city search with catalog autocompletion.
func (app *MultiTimeApp) buildAddCard(w fyne.Window, sw *settingsWidgets) *widget.Card {
	sw.cityEntry = widget.NewSelectEntry(nil)
	sw.cityEntry.PlaceHolder = config.PlaceholderCity

	sw.prefixEntry = widget.NewEntry()
	sw.prefixEntry.PlaceHolder = config.PlaceholderPrefix
	sw.prefixEntry.Validator = prefixValidator

	sw.btnAdd = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddClock), theme.ContentAddIcon(), func() {
		if err := app.addCity(sw.cityEntry.Text, sw.prefixEntry.Text); err != nil {
			dialog.ShowError(err, w)
			return
		}
		sw.cityEntry.SetText("")
		sw.prefixEntry.SetText("")
	})
	sw.btnAdd.Disable()

	sw.cityEntry.OnChanged = func(text string) {
		sw.cityEntry.SetOptions(app.Catalog.Suggest(text, config.SuggestionLimit))
		if _, ok := app.Catalog.Lookup(text); ok {
			sw.btnAdd.Enable()
		} else {
			sw.btnAdd.Disable()
		}
	}

	prefixBox := container.NewGridWrap(fyne.NewSize(config.PrefixEntryWidth, sw.prefixEntry.MinSize().Height), sw.prefixEntry)
	row := container.NewBorder(nil, nil, nil, container.NewHBox(prefixBox, sw.btnAdd), sw.cityEntry)

	return widget.NewCard(app.GetMsg(config.TKeyLblAddTimezone), "", row)
}

// addCity resolves a catalog city and appends it to the list.
func (app *MultiTimeApp) addCity(name, prefix string) error {
	city, ok := app.Catalog.Lookup(name)
	if !ok {
		return errors.New(app.GetMsg(config.TKeyErrUnknownCity))
	}
	entry, err := app.Store.Add(city.Zone, city.Name)
	if err != nil {
		return err
	}
	if prefix = timezones.NormalizePrefix(prefix); prefix != "" {
		return app.Store.SetPrefix(entry.ID, prefix)
	}
	return nil
}

// buildListCard shows the configured clocks with reorder, edit and delete actions.
func (app *MultiTimeApp) buildListCard(w fyne.Window, sw *settingsWidgets) *widget.Card {
	sw.entries = app.Store.CurrentEntries()

	sw.list = widget.NewList(
		func() int {
			return len(sw.entries)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabel(config.PlaceholderCity)
			prefix := widget.NewLabel(config.PlaceholderPrefix)
			prefix.TextStyle = fyne.TextStyle{Monospace: true}
			buttons := container.NewHBox(
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
				widget.NewButtonWithIcon("", theme.MoveUpIcon(), nil),
				widget.NewButtonWithIcon("", theme.MoveDownIcon(), nil),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
			)
			return container.NewBorder(nil, nil, nil, buttons, container.NewHBox(name, prefix))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(sw.entries) {
				return
			}
			e := sw.entries[id]
			row := o.(*fyne.Container)
			labels := row.Objects[0].(*fyne.Container)
			buttons := row.Objects[1].(*fyne.Container)

			labels.Objects[0].(*widget.Label).SetText(e.Label())
			labels.Objects[1].(*widget.Label).SetText(e.CustomPrefix)

			btnEdit := buttons.Objects[0].(*widget.Button)
			btnUp := buttons.Objects[1].(*widget.Button)
			btnDown := buttons.Objects[2].(*widget.Button)
			btnDelete := buttons.Objects[3].(*widget.Button)

			btnEdit.OnTapped = func() { app.editPrefix(w, e) }
			btnUp.OnTapped = func() { app.moveEntry(w, id, id-1) }
			btnDown.OnTapped = func() { app.moveEntry(w, id, id+1) }
			btnDelete.OnTapped = func() { app.deleteEntry(w, e.ID) }

			setEnabled(btnUp, id > 0)
			setEnabled(btnDown, id < len(sw.entries)-1)
			setEnabled(btnDelete, len(sw.entries) > 1)
		},
	)

	sw.listCard = widget.NewCard(app.timezonesTitle(len(sw.entries)), "",
		container.NewGridWrap(fyne.NewSize(config.SettingsWindowWidth, config.SettingsListHeight), sw.list))

	sw.unsubList = app.Store.Subscribe(func() {
		fyne.Do(func() {
			sw.entries = app.Store.CurrentEntries()
			sw.listCard.SetTitle(app.timezonesTitle(len(sw.entries)))
			sw.list.Refresh()
		})
	})

	return sw.listCard
}

func (app *MultiTimeApp) timezonesTitle(count int) string {
	return app.GetCountMsg(config.TKeyLblTimezones, count, config.FallbackTimezones)
}

// editPrefix asks for a new prefix for e.
func (app *MultiTimeApp) editPrefix(w fyne.Window, e engine.TimezoneEntry) {
	entry := widget.NewEntry()
	entry.SetText(e.CustomPrefix)
	entry.PlaceHolder = config.PlaceholderPrefix
	entry.Validator = prefixValidator

	items := []*widget.FormItem{widget.NewFormItem(app.GetMsg(config.TKeyLblPrefix), entry)}
	dialog.ShowForm(e.Label(), app.GetMsg(config.TKeyBtnEdit), app.GetMsg(config.TKeyBtnClose), items, func(ok bool) {
		if !ok {
			return
		}
		if err := app.Store.SetPrefix(e.ID, entry.Text); err != nil {
			dialog.ShowError(err, w)
		}
	}, w)
}

func (app *MultiTimeApp) moveEntry(w fyne.Window, from, to int) {
	if err := app.Store.Move(from, to); err != nil {
		dialog.ShowError(err, w)
	}
}

func (app *MultiTimeApp) deleteEntry(w fyne.Window, id string) {
	err := app.Store.Delete(id)
	switch {
	case errors.Is(err, timezones.ErrLastEntry):
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrLastTimezone)), w)
	case err != nil:
		dialog.ShowError(err, w)
	}
}

// buildFeedCard constructs the optional HTTP feed controls.
func (app *MultiTimeApp) buildFeedCard(sw *settingsWidgets) *widget.Card {
	sw.checkFeed = widget.NewCheck(app.GetMsg(config.TKeyLblEnableFeed), nil)
	sw.checkFeed.Checked = app.Preferences.BoolWithFallback(config.PrefFeedEnabled, config.DefaultFeedEnabled)

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	sw.entryPort = NewNumericalEntry(config.MaxPortDigits)
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultFeedPort))
	sw.entryPort.Validator = app.validatePort

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	return widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", container.NewVBox(sw.checkFeed, widget.NewForm(itemPort)))
}

func (app *MultiTimeApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveFeedSettings persists the feed controls. An invalid port leaves the
// stored preferences untouched.
func (app *MultiTimeApp) saveFeedSettings(sw *settingsWidgets) error {
	if err := sw.entryPort.Validate(); err != nil {
		return err
	}
	app.Preferences.SetString(config.PrefFeedPort, sw.entryPort.Text)
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.checkFeed.Checked)

	slog.Info(config.MsgFeedSaved,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyPort, sw.entryPort.Text)
	return nil
}

func prefixValidator(s string) error {
	if len([]rune(s)) > config.MaxPrefixLength {
		return fmt.Errorf(config.ErrPrefixTooLong, config.MaxPrefixLength)
	}
	return nil
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
