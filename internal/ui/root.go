package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/gitdeck/git-clone-manager/internal/catalog"
	"github.com/gitdeck/git-clone-manager/internal/clone"
	"github.com/gitdeck/git-clone-manager/internal/config"
	"github.com/gitdeck/git-clone-manager/internal/model"
	"github.com/gitdeck/git-clone-manager/internal/nav"
	"github.com/gitdeck/git-clone-manager/internal/platform"
)

// sidebarEntry is one row of the sidebar: a category header or a project
// beneath it.
type sidebarEntry struct {
	category string
	project  string // empty for category headers
}

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	settings *config.Settings

	store    *catalog.Store
	cat      catalog.Catalog
	state    *nav.State
	cloneSvc clone.Cloner

	sidebar        *widget.List
	sidebarEntries []sidebarEntry

	categorySelect  *widget.Select
	projectSelect   *widget.Select
	componentSelect *widget.Select
	destEntry       *widget.Entry
	cloneBtn        *widget.Button
	stopBtn         *widget.Button

	logLabel    *widget.Label
	logScroll   *container.Scroll
	logLines    []string
	statusLabel *widget.Label

	// Guards against onChanged feedback while selects are repopulated
	// programmatically.
	repopulating bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, store *catalog.Store, cat catalog.Catalog, cloneSvc clone.Cloner) *RootUI {
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:   window,
		app:      app,
		settings: settings,
		store:    store,
		cat:      cat,
		state:    nav.NewState(cat),
		cloneSvc: cloneSvc,
	}

	ui.state.SetDestinationRoot(settings.GetDestinationRoot())

	// Background clone events arrive on the worker goroutine and are
	// marshalled onto the UI thread here.
	ui.cloneSvc.SetLogCallback(ui.onCloneLog)
	ui.cloneSvc.SetFinishedCallback(ui.onCloneFinished)

	ui.setupUI()
	ui.repopulateSelects()
	ui.repopulateSidebar()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), ui.onOpenDestination),
		widget.NewToolbarAction(theme.DownloadIcon(), ui.onCloneClick),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), ui.onRefresh),
		widget.NewToolbarAction(theme.ContentAddIcon(), ui.onAddProject),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), ui.onToggleTheme),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onShowSettings),
	)

	ui.sidebar = widget.NewList(
		func() int { return len(ui.sidebarEntries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateSidebarItem(id, obj) },
	)
	ui.sidebar.OnSelected = ui.onSidebarSelected

	ui.categorySelect = widget.NewSelect(nil, ui.onCategoryChanged)
	ui.projectSelect = widget.NewSelect(nil, ui.onProjectChanged)
	ui.componentSelect = widget.NewSelect(nil, ui.onComponentChanged)

	selectionRow := container.NewHBox(
		widget.NewLabel("Category:"), ui.categorySelect,
		widget.NewLabel("Project:"), ui.projectSelect,
		widget.NewLabel("Component:"), ui.componentSelect,
	)

	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetPlaceHolder("Destination folder")
	ui.destEntry.SetText(ui.settings.GetDestinationRoot())

	browseBtn := widget.NewButton("Browse", ui.onBrowseDestination)

	ui.cloneBtn = widget.NewButton("Clone", ui.onCloneClick)
	ui.cloneBtn.Importance = widget.HighImportance

	ui.stopBtn = widget.NewButton("Stop", ui.onStopClick)
	ui.stopBtn.Disable()

	destRow := container.NewBorder(nil, nil,
		widget.NewLabel("Destination:"),
		container.NewHBox(browseBtn, ui.cloneBtn, ui.stopBtn),
		ui.destEntry,
	)

	ui.logLabel = widget.NewLabel("")
	ui.logLabel.Wrapping = fyne.TextWrapWord
	ui.logScroll = container.NewScroll(ui.logLabel)
	ui.logScroll.SetMinSize(fyne.NewSize(0, LogViewHeight))

	ui.statusLabel = widget.NewLabel(StatusReady)

	content := container.NewBorder(
		container.NewVBox(selectionRow, destRow, widget.NewLabel("Logs:")),
		nil, nil, nil,
		ui.logScroll,
	)

	sidebarScroll := container.NewScroll(ui.sidebar)
	sidebarScroll.SetMinSize(fyne.NewSize(SidebarWidth, 0))

	ui.window.SetContent(container.NewBorder(
		toolbar,
		ui.statusLabel,
		sidebarScroll,
		nil,
		content,
	))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Add Project", ui.onAddProject),
		fyne.NewMenuItem("Refresh", ui.onRefresh),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", ui.onShowSettings),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Dark Mode", ui.onToggleTheme),
	)

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))
}

// repopulateSelects fills the three selects from the current selection
// state without triggering change handlers.
func (ui *RootUI) repopulateSelects() {
	ui.repopulating = true
	defer func() { ui.repopulating = false }()

	ui.categorySelect.SetOptions(ui.state.Categories())
	ui.categorySelect.SetSelected(ui.state.Category())

	ui.projectSelect.SetOptions(ui.state.Projects())
	ui.projectSelect.SetSelected(ui.state.Project())

	ui.componentSelect.SetOptions(ui.state.Components())
	ui.componentSelect.SetSelected(ui.state.Component())
}

// repopulateSidebar rebuilds the flattened category/project rows.
func (ui *RootUI) repopulateSidebar() {
	ui.sidebarEntries = nil
	for _, cat := range ui.cat.Categories() {
		ui.sidebarEntries = append(ui.sidebarEntries, sidebarEntry{category: cat})
		for _, proj := range ui.cat.Projects(cat) {
			ui.sidebarEntries = append(ui.sidebarEntries, sidebarEntry{category: cat, project: proj})
		}
	}
	ui.sidebar.Refresh()
}

func (ui *RootUI) updateSidebarItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(ui.sidebarEntries) {
		return
	}

	label, ok := obj.(*widget.Label)
	if !ok {
		return
	}

	entry := ui.sidebarEntries[id]
	if entry.project == "" {
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(strings.ToUpper(entry.category))
	} else {
		label.TextStyle = fyne.TextStyle{}
		label.SetText(SidebarProjectIndent + entry.project)
	}
}

func (ui *RootUI) onSidebarSelected(id widget.ListItemID) {
	defer ui.sidebar.UnselectAll()

	if id >= len(ui.sidebarEntries) {
		return
	}

	entry := ui.sidebarEntries[id]
	if entry.project == "" {
		return // category headers are not selectable targets
	}

	ui.state.SelectCategory(entry.category)
	ui.state.SelectProject(entry.project)
	ui.repopulateSelects()
}

func (ui *RootUI) onCategoryChanged(value string) {
	if ui.repopulating || value == ui.state.Category() {
		return
	}
	ui.state.SelectCategory(value)
	ui.repopulateSelects()
}

func (ui *RootUI) onProjectChanged(value string) {
	if ui.repopulating || value == ui.state.Project() {
		return
	}
	ui.state.SelectProject(value)
	ui.repopulateSelects()
}

func (ui *RootUI) onComponentChanged(value string) {
	if ui.repopulating {
		return
	}
	ui.state.SelectComponent(value)
}

// onBrowseDestination lets the user pick the destination root folder.
func (ui *RootUI) onBrowseDestination() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.destEntry.SetText(uri.Path())
	}, ui.window)
}

// onOpenDestination opens the destination root in the system file manager.
func (ui *RootUI) onOpenDestination() {
	dest := strings.TrimSpace(ui.destEntry.Text)
	if dest == "" {
		dialog.ShowInformation("No destination", "Please select a destination folder first.", ui.window)
		return
	}

	if err := platform.OpenFolderInManager(dest); err != nil {
		log.Printf("Failed to open destination folder %s: %v", dest, err)
		dialog.ShowError(err, ui.window)
	}
}

// onRefresh reloads the catalog from disk and repopulates the UI.
func (ui *RootUI) onRefresh() {
	cat, created, err := ui.store.Load()
	if err != nil {
		var cfgErr *catalog.ConfigError
		if errors.As(err, &cfgErr) {
			dialog.ShowError(cfgErr, ui.window)
		} else {
			dialog.ShowError(err, ui.window)
		}
	}

	ui.cat = cat
	ui.state.Reload(cat)
	ui.repopulateSelects()
	ui.repopulateSidebar()
	ui.appendLog(fmt.Sprintf("Refreshed project list from %s", ui.store.Path))

	if created {
		ui.ShowSampleCreatedNotice()
	}
}

// ShowSampleCreatedNotice tells the user a fresh sample catalog was written
// because none existed at the configured path.
func (ui *RootUI) ShowSampleCreatedNotice() {
	ui.appendLog(fmt.Sprintf("Sample catalog created at %s", ui.store.Path))
	dialog.ShowInformation("Sample Catalog Created",
		fmt.Sprintf("No catalog was found, so a sample was created at %s.\nReplace its entries with your own repository links.", ui.store.Path),
		ui.window)
}

// onCloneClick validates the current selection and starts a clone task.
func (ui *RootUI) onCloneClick() {
	ui.state.SetDestinationRoot(strings.TrimSpace(ui.destEntry.Text))

	req, err := ui.state.Request()
	switch {
	case errors.Is(err, nav.ErrNoSelection):
		dialog.ShowInformation("Selection required", "Please select category, project and component.", ui.window)
		return
	case errors.Is(err, nav.ErrNoDestination):
		dialog.ShowInformation("Destination required", "Please select a destination folder.", ui.window)
		return
	case err != nil:
		dialog.ShowError(err, ui.window)
		return
	}

	if platform.DirectoryNonEmpty(req.Destination) {
		message := fmt.Sprintf("The destination folder %s already exists and is not empty. Overwrite?", req.Destination)
		dialog.ShowConfirm("Destination Not Empty", message, func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := platform.RemoveDirectory(req.Destination); err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			ui.startClone(req)
		}, ui.window)
		return
	}

	ui.startClone(req)
}

func (ui *RootUI) startClone(req model.CloneRequest) {
	ui.settings.SetDestinationRoot(ui.state.DestinationRoot())

	ui.appendLog(fmt.Sprintf("Cloning %s into %s ...", req.SourceURL, req.Destination))

	task, err := ui.cloneSvc.Start(req)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("Started clone task %s", task.ID)
	ui.cloneBtn.Disable()
	ui.stopBtn.Enable()
	ui.statusLabel.SetText(StatusCloning)
}

// onStopClick requests cancellation of the running clone.
func (ui *RootUI) onStopClick() {
	ui.cloneSvc.Stop()
	ui.stopBtn.Disable()
}

// onCloneLog receives a line of process output from the worker goroutine.
func (ui *RootUI) onCloneLog(line string) {
	fyne.Do(func() {
		ui.appendLog(line)
	})
}

// onCloneFinished receives the terminal outcome from the worker goroutine.
func (ui *RootUI) onCloneFinished(task *model.CloneTask, success bool, reason string) {
	fyne.Do(func() {
		ui.appendLog(fmt.Sprintf("Clone finished. success=%v, reason=%s", success, reason))
		ui.cloneBtn.Enable()
		ui.stopBtn.Disable()
		ui.statusLabel.SetText(StatusReady)

		ui.app.SendNotification(&fyne.Notification{
			Title:   "Clone Finished",
			Content: fmt.Sprintf("%s: success=%v (%s)", task.GetDisplayName(), success, reason),
		})

		dialog.ShowInformation("Clone Finished",
			fmt.Sprintf("Finished: success=%v, reason=%s", success, reason), ui.window)
	})
}

// onToggleTheme flips between the light and dark theme.
func (ui *RootUI) onToggleTheme() {
	dark := !ui.settings.GetDarkMode()
	ui.settings.SetDarkMode(dark)
	ui.app.Settings().SetTheme(NewAppTheme(dark))
}

// onAddProject opens the add-project dialog.
func (ui *RootUI) onAddProject() {
	ShowAddProjectDialog(ui.window, ui.cat, func(category, project, component, url string) {
		ui.cat.Upsert(category, project, component, url)

		if err := ui.store.Save(ui.cat); err != nil {
			// The in-memory catalog keeps the edit; the user can retry
			// saving after fixing the path.
			log.Printf("Failed to persist catalog: %v", err)
			dialog.ShowError(err, ui.window)
			return
		}

		ui.appendLog(fmt.Sprintf("Added project: %s/%s/%s", category, project, component))

		ui.state.Reload(ui.cat)
		ui.state.SelectCategory(category)
		ui.state.SelectProject(project)
		ui.state.SelectComponent(component)
		ui.repopulateSelects()
		ui.repopulateSidebar()
	})
}

// onShowSettings opens the settings dialog.
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.app, ui.window, ui.applySettings).Show()
}

// applySettings propagates freshly saved settings to the live objects so a
// new catalog path or git binary takes effect without a restart.
func (ui *RootUI) applySettings() {
	ui.destEntry.SetText(ui.settings.GetDestinationRoot())
	ui.cloneSvc.SetGitPath(ui.settings.GetGitBinary())

	if path := ui.settings.GetCatalogPath(); path != ui.store.Path {
		ui.store.Path = path
		ui.onRefresh()
	}
}

// appendLog adds one line to the log view and scrolls to the bottom.
func (ui *RootUI) appendLog(line string) {
	ui.logLines = append(ui.logLines, line)
	ui.logLabel.SetText(strings.Join(ui.logLines, "\n"))
	ui.logScroll.ScrollToBottom()
}
