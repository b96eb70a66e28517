package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/gitdeck/git-clone-manager/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	app      fyne.App
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	catalogPathEntry *widget.Entry
	destRootEntry    *widget.Entry
	gitBinaryEntry   *widget.Entry
	darkModeCheck    *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onSaved is invoked after
// the settings were persisted.
func NewSettingsDialog(settings *config.Settings, app fyne.App, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		app:      app,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Catalog file location
	sd.catalogPathEntry = widget.NewEntry()
	sd.catalogPathEntry.SetPlaceHolder("repos.json")

	// Destination root selection
	sd.destRootEntry = widget.NewEntry()
	sd.destRootEntry.SetPlaceHolder("Destination root folder")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	destRootRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.destRootEntry)

	// Git binary name or path
	sd.gitBinaryEntry = widget.NewEntry()
	sd.gitBinaryEntry.SetPlaceHolder("git")

	sd.darkModeCheck = widget.NewCheck("Dark mode", nil)

	form := container.NewVBox(
		widget.NewLabel("Catalog Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Catalog File:"),
		sd.catalogPathEntry,

		widget.NewLabel("Destination Root:"),
		destRootRow,

		widget.NewSeparator(),
		widget.NewLabel("Clone Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Git Binary:"),
		sd.gitBinaryEntry,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		sd.darkModeCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.catalogPathEntry.SetText(sd.settings.GetCatalogPath())
	sd.destRootEntry.SetText(sd.settings.GetDestinationRoot())
	sd.gitBinaryEntry.SetText(sd.settings.GetGitBinary())
	sd.darkModeCheck.SetChecked(sd.settings.GetDarkMode())
}

// onBrowseDirectory handles destination root browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.destRootEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.catalogPathEntry.Text != "" {
		sd.settings.SetCatalogPath(sd.catalogPathEntry.Text)
	}

	if sd.destRootEntry.Text != "" {
		sd.settings.SetDestinationRoot(sd.destRootEntry.Text)
	}

	if sd.gitBinaryEntry.Text != "" {
		sd.settings.SetGitBinary(sd.gitBinaryEntry.Text)
	}

	if sd.darkModeCheck.Checked != sd.settings.GetDarkMode() {
		sd.settings.SetDarkMode(sd.darkModeCheck.Checked)
		sd.app.Settings().SetTheme(NewAppTheme(sd.darkModeCheck.Checked))
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}
