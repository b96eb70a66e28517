package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Fallback file managers tried on Linux when xdg-open is unavailable
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// DefaultCloneDirName is the folder created under the working directory
// when the user has not chosen a destination root yet.
const DefaultCloneDirName = "cloned"

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DirectoryNonEmpty reports whether path would block a fresh clone: a
// directory with at least one entry, or an existing non-directory. Used to
// decide whether an overwrite confirmation is needed before cloning into an
// existing destination.
func DirectoryNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// RemoveDirectory recursively removes the path. Called only after the user
// confirmed overwriting a non-empty destination.
func RemoveDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clear destination %s: %w", path, err)
	}
	return nil
}

// DefaultDestinationRoot returns the default root folder clones are placed
// under: "cloned" below the current working directory.
func DefaultDestinationRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return DefaultCloneDirName
		}
		return filepath.Join(home, DefaultCloneDirName)
	}
	return filepath.Join(wd, DefaultCloneDirName)
}

// OpenFolderInManager opens the folder in the system file manager.
func OpenFolderInManager(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux opens a directory on Linux, trying xdg-open first and
// falling back to common file managers.
func openFolderLinux(dirPath string) error {
	if err := exec.Command(XDGOpenCommand, dirPath).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dirPath).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
