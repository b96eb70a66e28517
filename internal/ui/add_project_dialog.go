package ui

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/gitdeck/git-clone-manager/internal/catalog"
)

// ShowAddProjectDialog asks for a new category/project/component/URL entry
// and invokes onAdd once all fields validate. The category can be picked
// from the existing ones or typed as a new name.
func ShowAddProjectDialog(window fyne.Window, cat catalog.Catalog, onAdd func(category, project, component, url string)) {
	categoryEntry := widget.NewEntry()
	categoryEntry.SetPlaceHolder("e.g. tools")

	categorySelect := widget.NewSelect(cat.Categories(), func(value string) {
		categoryEntry.SetText(value)
	})
	categorySelect.PlaceHolder = "(existing)"

	projectEntry := widget.NewEntry()
	projectEntry.SetPlaceHolder("e.g. MyProject")

	componentEntry := widget.NewEntry()
	componentEntry.SetPlaceHolder("e.g. backend")

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://github.com/user/repo.git")

	items := []*widget.FormItem{
		widget.NewFormItem("Category", categoryEntry),
		widget.NewFormItem("", categorySelect),
		widget.NewFormItem("Project", projectEntry),
		widget.NewFormItem("Component", componentEntry),
		widget.NewFormItem("Repo URL", urlEntry),
	}

	form := dialog.NewForm("Add Project", "Add", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		category := strings.TrimSpace(categoryEntry.Text)
		project := strings.TrimSpace(projectEntry.Text)
		component := strings.TrimSpace(componentEntry.Text)
		url := strings.TrimSpace(urlEntry.Text)

		if category == "" || project == "" || component == "" || url == "" {
			dialog.ShowError(errors.New("all fields are required"), window)
			return
		}

		onAdd(category, project, component, url)
	}, window)

	form.Resize(fyne.NewSize(AddProjectDialogWidth, AddProjectDialogHeight))
	form.Show()
}
