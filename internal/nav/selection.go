package nav

import (
	"errors"
	"path/filepath"

	"github.com/gitdeck/git-clone-manager/internal/catalog"
	"github.com/gitdeck/git-clone-manager/internal/model"
)

// Precondition errors surfaced synchronously before any clone task is
// created.
var (
	ErrNoSelection   = errors.New("no category, project and component selected")
	ErrNoDestination = errors.New("no destination folder selected")
	ErrURLNotFound   = errors.New("repo URL not found in catalog for selected item")
)

// State holds the current selection over a catalog snapshot.
type State struct {
	cat catalog.Catalog

	category  string
	project   string
	component string
	destRoot  string
}

// NewState builds a selection state over the catalog, selecting the first
// category and cascading down.
func NewState(cat catalog.Catalog) *State {
	s := &State{cat: cat}
	s.SelectCategory(first(cat.Categories()))
	return s
}

// Reload re-derives the state from a fresh catalog. The current selection
// is kept when it still exists, otherwise it cascades to the first
// available entries.
func (s *State) Reload(cat catalog.Catalog) {
	s.cat = cat

	if !contains(cat.Categories(), s.category) {
		s.SelectCategory(first(cat.Categories()))
		return
	}
	if !contains(cat.Projects(s.category), s.project) {
		s.SelectProject(first(cat.Projects(s.category)))
		return
	}
	if !contains(cat.Components(s.category, s.project), s.component) {
		s.SelectComponent(first(cat.Components(s.category, s.project)))
	}
}

// Categories returns all selectable categories, sorted.
func (s *State) Categories() []string {
	return s.cat.Categories()
}

// Projects returns the selectable projects for the current category, sorted.
func (s *State) Projects() []string {
	return s.cat.Projects(s.category)
}

// Components returns the selectable components for the current project,
// sorted.
func (s *State) Components() []string {
	return s.cat.Components(s.category, s.project)
}

// Category returns the currently selected category.
func (s *State) Category() string { return s.category }

// Project returns the currently selected project.
func (s *State) Project() string { return s.project }

// Component returns the currently selected component.
func (s *State) Component() string { return s.component }

// DestinationRoot returns the chosen destination root folder.
func (s *State) DestinationRoot() string { return s.destRoot }

// SelectCategory selects a category and resets the project and component
// selection to the first available entry, or empty when none exist.
func (s *State) SelectCategory(category string) {
	s.category = category
	s.SelectProject(first(s.cat.Projects(category)))
}

// SelectProject selects a project within the current category and resets
// the component selection similarly.
func (s *State) SelectProject(project string) {
	s.project = project
	s.SelectComponent(first(s.cat.Components(s.category, project)))
}

// SelectComponent selects a component within the current project.
func (s *State) SelectComponent(component string) {
	s.component = component
}

// SetDestinationRoot sets the root folder clones are placed under.
func (s *State) SetDestinationRoot(root string) {
	s.destRoot = root
}

// Request builds the clone request for the current selection. The
// destination is computed as root/project/component.
func (s *State) Request() (model.CloneRequest, error) {
	if s.category == "" || s.project == "" || s.component == "" {
		return model.CloneRequest{}, ErrNoSelection
	}
	if s.destRoot == "" {
		return model.CloneRequest{}, ErrNoDestination
	}

	url, ok := s.cat.URL(s.category, s.project, s.component)
	if !ok {
		return model.CloneRequest{}, ErrURLNotFound
	}

	return model.CloneRequest{
		SourceURL:   url,
		Destination: filepath.Join(s.destRoot, s.project, s.component),
	}, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
