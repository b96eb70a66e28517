package model

import (
	"path/filepath"
	"strings"
	"time"
)

// CloneRequest is the (source URL, destination path) pair a clone task is
// constructed with. It is ephemeral and built per invocation.
type CloneRequest struct {
	SourceURL   string
	Destination string
}

// CloneTask represents a single repository clone attempt. A task runs at
// most once; a new task is required per attempt.
type CloneTask struct {
	ID          string
	SourceURL   string
	Destination string
	Status      TaskStatus
	Reason      string    // terminal reason: "success", "aborted", "exit <N>", ...
	StartedAt   time.Time // when the clone started
	FinishedAt  time.Time // when the task reached a terminal state
}

// Succeeded returns true once the task completed with a zero exit status.
func (ct *CloneTask) Succeeded() bool {
	return ct.Status == TaskStatusCompleted
}

// GetDisplayName returns a short human-readable name for the task, derived
// from the destination directory or the source URL.
func (ct *CloneTask) GetDisplayName() string {
	if ct.Destination != "" {
		return filepath.Base(ct.Destination)
	}

	if ct.SourceURL == "" {
		return ""
	}

	name := ct.SourceURL
	if idx := strings.LastIndex(name, "/"); idx >= 0 && idx < len(name)-1 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
