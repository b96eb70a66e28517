package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the catalog store, the
// selection state, and the clone service, and renders the sidebar,
// selection controls, clone log, and dialogs.
