package model

// TaskStatus represents the status of a clone task
type TaskStatus string

const (
	// TaskStatusIdle means the task has been constructed but not started
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusRunning means the clone process is in progress
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusCompleted means the clone finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusCancelled means the task was stopped by the user
	TaskStatusCancelled TaskStatus = "Cancelled"

	// TaskStatusError means the clone failed
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRunning
}

// IsFinished returns true if the task is in a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}
