package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Layout sizing
const (
	SidebarWidth  float32 = 220
	LogViewHeight float32 = 220

	AddProjectDialogWidth  float32 = 460
	AddProjectDialogHeight float32 = 280

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 320
)

// Sidebar indentation for project rows under their category header
const (
	SidebarProjectIndent = "  "
)

// Status bar messages
const (
	StatusReady   = "Ready"
	StatusCloning = "Cloning..."
)
