package config

import (
	"fyne.io/fyne/v2"

	"github.com/gitdeck/git-clone-manager/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyCatalogPath     = "catalog_path"
	KeyDestinationRoot = "destination_root"
	KeyGitBinary       = "git_binary"
	KeyDarkMode        = "dark_mode"
)

// Default values
const (
	DefaultCatalogPath = "repos.json"
	DefaultGitBinary   = "git"
	DefaultDarkMode    = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetCatalogPath returns the path of the JSON catalog file
func (s *Settings) GetCatalogPath() string {
	path := s.app.Preferences().String(KeyCatalogPath)
	if path == "" {
		s.SetCatalogPath(DefaultCatalogPath)
		return DefaultCatalogPath
	}
	return path
}

// SetCatalogPath sets the catalog file path
func (s *Settings) SetCatalogPath(path string) {
	if path == "" {
		path = DefaultCatalogPath
	}
	s.app.Preferences().SetString(KeyCatalogPath, path)
}

// GetDestinationRoot returns the root folder clones are placed under
func (s *Settings) GetDestinationRoot() string {
	root := s.app.Preferences().String(KeyDestinationRoot)
	if root == "" {
		defaultRoot := platform.DefaultDestinationRoot()
		s.SetDestinationRoot(defaultRoot)
		return defaultRoot
	}
	return root
}

// SetDestinationRoot sets the destination root folder
func (s *Settings) SetDestinationRoot(root string) {
	s.app.Preferences().SetString(KeyDestinationRoot, root)
}

// GetGitBinary returns the configured git binary name or path
func (s *Settings) GetGitBinary() string {
	binary := s.app.Preferences().String(KeyGitBinary)
	if binary == "" {
		s.SetGitBinary(DefaultGitBinary)
		return DefaultGitBinary
	}
	return binary
}

// SetGitBinary sets the git binary name or path
func (s *Settings) SetGitBinary(binary string) {
	if binary == "" {
		binary = DefaultGitBinary
	}
	s.app.Preferences().SetString(KeyGitBinary, binary)
}

// GetDarkMode returns whether the dark theme is enabled
func (s *Settings) GetDarkMode() bool {
	return s.app.Preferences().BoolWithFallback(KeyDarkMode, DefaultDarkMode)
}

// SetDarkMode sets whether the dark theme is enabled
func (s *Settings) SetDarkMode(dark bool) {
	s.app.Preferences().SetBool(KeyDarkMode, dark)
}
