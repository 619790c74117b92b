package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
	"github.com/tartampluch/go-multitime/internal/server"
	"github.com/tartampluch/go-multitime/internal/timezones"
)

//go:embed Icon.png
var appIconData []byte

// MultiTimeApp encapsulates the UI state, preferences, and the display engine.
// It is the engine's presentation sink: every composed frame lands in Present.
type MultiTimeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Engine   *engine.Engine
	Store    *timezones.Store
	Catalog  *timezones.Catalog
	Settings *PrefSettings

	Tray desktop.App
	Menu *fyne.Menu

	TrayClockItems   []*fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem
	TrayAboutItem    *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Last composed frame, shared with the windows.
	FrameMut sync.RWMutex
	Frame    engine.RenderOutput

	// Optional HTTP feed
	feedMut    sync.Mutex
	feed       *server.FeedServer
	feedPort   string
	feedCancel context.CancelFunc

	clocksWindow fyne.Window
	clocksText   *widget.RichText
	aboutWindow  fyne.Window
}

// NewMultiTimeApp constructs the application and wires the engine to the
// timezone store and the preference-backed settings.
func NewMultiTimeApp(a fyne.App, ctx context.Context, store *timezones.Store, catalog *timezones.Catalog, resolver engine.TimezoneResolver, clock engine.Clock) *MultiTimeApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	app := &MultiTimeApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Store:       store,
		Catalog:     catalog,
		Settings:    NewPrefSettings(a.Preferences()),
		configChan:  make(chan string, config.ChannelBufferSize),
	}
	app.Engine = engine.NewEngine(store, app.Settings, resolver, app, clock)
	return app
}

// Run launches the application services and the main UI loop.
func (app *MultiTimeApp) Run() {
	app.SetupI18n()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}
	app.setupTrayMenu()

	if err := app.Engine.Start(); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}

	app.watchPreferences()
	go app.feedWorker()

	app.App.Run()
	app.Engine.Stop()
	app.stopFeed()
}

// watchPreferences monitors feed settings so the server follows them.
// Display toggles are handled by PrefSettings.
func (app *MultiTimeApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefFeedEnabled:
		default:
		}
	})
}

// feedWorker starts, restarts, or stops the HTTP feed as preferences change.
func (app *MultiTimeApp) feedWorker() {
	app.syncFeed()
	for {
		select {
		case <-app.Ctx.Done():
			app.stopFeed()
			return
		case <-app.configChan:
			app.syncFeed()
		}
	}
}

// syncFeed reconciles the running feed with the feed preferences.
func (app *MultiTimeApp) syncFeed() {
	port := ""
	if app.Preferences.BoolWithFallback(config.PrefFeedEnabled, config.DefaultFeedEnabled) {
		port = app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultFeedPort)
	}

	app.feedMut.Lock()
	defer app.feedMut.Unlock()

	if port == app.feedPort {
		return
	}
	app.stopFeedLocked()
	if port == "" {
		return
	}

	srv := server.NewFeedServer(port)
	app.FrameMut.RLock()
	frame := app.Frame
	app.FrameMut.RUnlock()
	srv.Update(frame)

	ctx, cancel := context.WithCancel(app.Ctx)
	app.feed = srv
	app.feedPort = port
	app.feedCancel = cancel

	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, srv.Port)))
		}
	}()
}

func (app *MultiTimeApp) stopFeed() {
	app.feedMut.Lock()
	defer app.feedMut.Unlock()
	app.stopFeedLocked()
}

func (app *MultiTimeApp) stopFeedLocked() {
	if app.feedCancel != nil {
		app.feedCancel()
	}
	app.feed = nil
	app.feedPort = ""
	app.feedCancel = nil
}

// FeedPort returns the port the feed was started on, or "" when it is off.
func (app *MultiTimeApp) FeedPort() string {
	app.feedMut.Lock()
	defer app.feedMut.Unlock()
	return app.feedPort
}

// Present implements engine.PresentationSink. It runs on the scheduler's
// goroutine, so widget updates are handed to the Fyne thread.
func (app *MultiTimeApp) Present(out engine.RenderOutput) {
	app.FrameMut.Lock()
	app.Frame = out
	app.FrameMut.Unlock()

	app.feedMut.Lock()
	if app.feed != nil {
		app.feed.Update(out)
	}
	app.feedMut.Unlock()

	fyne.Do(func() {
		app.renderTray(out)
		app.renderClocks(out)
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *MultiTimeApp) setupTrayMenu() {
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShowClocks), func() {
		app.ShowClocksWindow()
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})
	app.TrayAboutItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuAbout), func() {
		app.ShowAboutWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName)
	app.renderTray(engine.RenderOutput{})

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *MultiTimeApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShowClocks)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.TrayAboutItem.Label = app.GetMsg(config.TKeyMenuAbout)
	app.Menu.Refresh()
}

// renderTray shows one header item per display row above the actions.
// Tray menus carry no rich text, so each row is rendered as plain text.
func (app *MultiTimeApp) renderTray(out engine.RenderOutput) {
	if app.Menu == nil {
		return
	}

	lines := out.Lines()
	if len(lines) == 0 {
		lines = []string{app.trayEmptyLabel()}
	}

	if len(lines) != len(app.TrayClockItems) {
		app.TrayClockItems = make([]*fyne.MenuItem, len(lines))
		for i := range lines {
			app.TrayClockItems[i] = fyne.NewMenuItem("", func() {
				app.ShowClocksWindow()
			})
		}
	}
	for i, line := range lines {
		app.TrayClockItems[i].Label = line
	}

	items := make([]*fyne.MenuItem, 0, len(app.TrayClockItems)+4)
	items = append(items, app.TrayClockItems...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TraySettingsItem,
		app.TrayAboutItem,
	)
	app.Menu.Items = items
	app.Menu.Refresh()
}

func (app *MultiTimeApp) trayEmptyLabel() string {
	label := app.GetMsg(config.TKeyTrayEmpty)
	if label == config.TKeyTrayEmpty {
		return config.FallbackTrayLabel
	}
	return label
}
