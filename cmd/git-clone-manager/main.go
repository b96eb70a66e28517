package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/gitdeck/git-clone-manager/internal/catalog"
	"github.com/gitdeck/git-clone-manager/internal/clone"
	"github.com/gitdeck/git-clone-manager/internal/config"
	"github.com/gitdeck/git-clone-manager/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.gitdeck.git-clone-manager")

	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.GetDarkMode()))

	myWindow := myApp.NewWindow("Git Clone Manager")
	myWindow.Resize(fyne.NewSize(900, 560))

	// Load the catalog; a missing file is replaced with the built-in
	// sample, a malformed one falls back without touching the file.
	store := catalog.NewStore(settings.GetCatalogPath())
	cat, created, err := store.Load()

	cloneSvc := clone.NewService(settings.GetGitBinary())

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, store, cat, cloneSvc)

	if created {
		rootUI.ShowSampleCreatedNotice()
	}
	if err != nil {
		dialog.ShowError(err, myWindow)
	}

	// Show and run
	myWindow.ShowAndRun()
}
