package clone

// Package clone implements the background clone pipeline built on top of
// the system git binary (via os/exec). It runs a single cancellable clone
// task at a time, streams combined process output line-by-line to the UI,
// and reports exactly one terminal outcome per task.
