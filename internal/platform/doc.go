package platform

// Package platform contains OS/platform integration glue: filesystem
// helpers for clone destinations and opening folders in the system file
// manager.
