package clone

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gitdeck/git-clone-manager/internal/model"
)

// Terminal reasons delivered through the finished callback.
const (
	ReasonSuccess     = "success"
	ReasonAborted     = "aborted"
	ReasonGitNotFound = "git-not-found"
)

// DefaultGitBinary is the binary name resolved on PATH when no explicit
// git path is configured.
const DefaultGitBinary = "git"

const destinationDirPermissions = 0755

// ErrCloneInProgress is returned by Start while a previous task has not
// reached a terminal state yet. Only one clone runs at a time.
var ErrCloneInProgress = errors.New("a clone is already in progress")

// Service runs clone tasks against the system git binary. Log lines and
// the terminal outcome are delivered via callbacks; the caller's goroutine
// is never blocked on process I/O.
type Service struct {
	mu      sync.Mutex
	gitPath string
	active  *model.CloneTask
	stopped *atomic.Bool // cooperative cancel flag of the active task

	onLog      func(line string)
	onFinished func(task *model.CloneTask, success bool, reason string)
}

// NewService creates a clone service invoking the given git binary. An
// empty gitPath falls back to DefaultGitBinary.
func NewService(gitPath string) *Service {
	if gitPath == "" {
		gitPath = DefaultGitBinary
	}
	return &Service{gitPath: gitPath}
}

// SetGitPath changes the git binary used by subsequently started tasks. A
// task already in flight keeps the binary it was started with. An empty
// gitPath falls back to DefaultGitBinary.
func (s *Service) SetGitPath(gitPath string) {
	if gitPath == "" {
		gitPath = DefaultGitBinary
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gitPath = gitPath
}

// SetLogCallback sets the callback receiving combined process output, one
// line per call, in the order produced.
func (s *Service) SetLogCallback(callback func(line string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLog = callback
}

// SetFinishedCallback sets the callback receiving the single terminal
// outcome of each task.
func (s *Service) SetFinishedCallback(callback func(task *model.CloneTask, success bool, reason string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinished = callback
}

// Active returns the task currently in flight, or nil.
func (s *Service) Active() *model.CloneTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start launches a new clone task for the request. It fails with
// ErrCloneInProgress while a previous task is still active; a finished or
// cancelled clone is re-initiated with a brand-new task.
func (s *Service) Start(req model.CloneRequest) (*model.CloneTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, ErrCloneInProgress
	}

	task := &model.CloneTask{
		ID:          "clone-" + uuid.NewString(),
		SourceURL:   req.SourceURL,
		Destination: req.Destination,
		Status:      model.TaskStatusRunning,
		StartedAt:   time.Now(),
	}

	stopped := &atomic.Bool{}
	s.active = task
	s.stopped = stopped

	// Snapshot the binary so a settings change mid-task cannot affect a
	// process that is already running.
	go s.run(task, stopped, s.gitPath)

	return task, nil
}

// Stop requests cooperative cancellation of the active task. The flag is
// observed at the next line-read iteration, so a process producing no
// output is only reaped once it writes a line or exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped != nil {
		s.stopped.Store(true)
	}
}

// run executes the clone on a dedicated goroutine.
func (s *Service) run(task *model.CloneTask, stopped *atomic.Bool, gitPath string) {
	if err := os.MkdirAll(filepath.Dir(task.Destination), destinationDirPermissions); err != nil {
		s.emitLog(fmt.Sprintf("Error: failed to create destination parent: %v", err))
		s.finish(task, false, err.Error())
		return
	}

	s.emitLog(fmt.Sprintf("Starting clone: %s -> %s", task.SourceURL, task.Destination))

	cmd := exec.Command(gitPath, "clone", task.SourceURL, task.Destination)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.finish(task, false, err.Error())
		return
	}
	// Merge stderr into stdout so progress and errors arrive as one stream.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		// exec.ErrNotFound covers PATH lookups; an explicit binary path
		// that does not exist fails with fs.ErrNotExist instead.
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			s.emitLog(fmt.Sprintf("Error: '%s' not found. Please install Git and ensure it is on PATH.", gitPath))
			s.finish(task, false, ReasonGitNotFound)
			return
		}
		s.emitLog(fmt.Sprintf("Error: failed to start %s: %v", gitPath, err))
		s.finish(task, false, err.Error())
		return
	}

	aborted := false
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if stopped.Load() {
			aborted = true
			break
		}
		s.emitLog(scanner.Text())
	}

	// A stop requested before the process produced any output is observed
	// here, once the read loop ends.
	if !aborted && stopped.Load() {
		aborted = true
	}

	if aborted {
		if cmd.Process != nil {
			if killErr := cmd.Process.Kill(); killErr != nil {
				log.Printf("Failed to kill clone process for task %s: %v", task.ID, killErr)
			}
		}
		_ = cmd.Wait()
		s.emitLog("Clone aborted by user.")
		s.finish(task, false, ReasonAborted)
		return
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.emitLog(fmt.Sprintf("git exited with code %d", exitErr.ExitCode()))
			s.finish(task, false, fmt.Sprintf("exit %d", exitErr.ExitCode()))
			return
		}
		s.emitLog(fmt.Sprintf("Unexpected error: %v", err))
		s.finish(task, false, err.Error())
		return
	}

	s.emitLog("Clone completed successfully.")
	s.finish(task, true, ReasonSuccess)
}

// finish records the terminal state, frees the active slot, and delivers
// the outcome. Errors never cross the task boundary any other way.
func (s *Service) finish(task *model.CloneTask, success bool, reason string) {
	task.Reason = reason
	task.FinishedAt = time.Now()

	switch {
	case success:
		task.Status = model.TaskStatusCompleted
	case reason == ReasonAborted:
		task.Status = model.TaskStatusCancelled
	default:
		task.Status = model.TaskStatusError
	}

	s.mu.Lock()
	if s.active == task {
		s.active = nil
		s.stopped = nil
	}
	callback := s.onFinished
	s.mu.Unlock()

	log.Printf("Clone task %s finished: success=%v reason=%s", task.ID, success, reason)

	if callback != nil {
		callback(task, success, reason)
	}
}

func (s *Service) emitLog(line string) {
	s.mu.Lock()
	callback := s.onLog
	s.mu.Unlock()

	if callback != nil {
		callback(line)
	}
}
