package ui

import (
	"fmt"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-multitime/internal/config"
)

// ShowAboutWindow displays the version and build details.
func (app *MultiTimeApp) ShowAboutWindow() {
	if app.aboutWindow != nil {
		app.aboutWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinAbout))
	app.aboutWindow = w

	icon := canvas.NewImageFromResource(app.App.Icon())
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSquareSize(config.AboutIconSize))

	title := widget.NewLabelWithStyle(config.AppName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	text := widget.NewLabel(app.GetMsg(config.TKeyLblAboutText))
	text.Alignment = fyne.TextAlignCenter
	text.Wrapping = fyne.TextWrapWord

	build := widget.NewLabel(fmt.Sprintf(config.FormatBuildInfo,
		config.Version, config.Commit, runtime.GOOS, runtime.GOARCH))
	build.Alignment = fyne.TextAlignCenter
	build.TextStyle = fyne.TextStyle{Italic: true}

	btnClose := widget.NewButton(app.GetMsg(config.TKeyBtnClose), func() { w.Close() })

	w.SetContent(container.NewPadded(container.NewVBox(icon, title, text, build, btnClose)))
	w.Resize(fyne.NewSize(config.AboutWindowWidth, config.AboutWindowHeight))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.aboutWindow = nil })
	w.Show()
}
