package clone

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gitdeck/git-clone-manager/internal/model"
)

const finishTimeout = 15 * time.Second

type outcome struct {
	task    *model.CloneTask
	success bool
	reason  string
}

// writeFakeGit writes an executable shell script standing in for the git
// binary. The script receives the usual "clone <url> <dest>" arguments.
func writeFakeGit(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake git scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-git")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write fake git script: %v", err)
	}
	return path
}

func waitFinished(t *testing.T, done chan outcome) outcome {
	t.Helper()

	select {
	case result := <-done:
		return result
	case <-time.After(finishTimeout):
		t.Fatal("Timed out waiting for finished callback")
		return outcome{}
	}
}

func newTestService(gitPath string) (*Service, chan string, chan outcome) {
	service := NewService(gitPath)
	logs := make(chan string, 256)
	done := make(chan outcome, 1)

	service.SetLogCallback(func(line string) {
		logs <- line
	})
	service.SetFinishedCallback(func(task *model.CloneTask, success bool, reason string) {
		done <- outcome{task: task, success: success, reason: reason}
	})
	return service, logs, done
}

func TestNewService_DefaultBinary(t *testing.T) {
	service := NewService("")

	if service.gitPath != DefaultGitBinary {
		t.Errorf("Expected gitPath to be '%s', got '%s'", DefaultGitBinary, service.gitPath)
	}

	if service.Active() != nil {
		t.Error("Expected no active task on a fresh service")
	}
}

func TestStart_Success(t *testing.T) {
	gitPath := writeFakeGit(t, `echo "Cloning into '$3'..."
echo "remote: Enumerating objects: 3, done."
mkdir -p "$3"
exit 0`)
	service, logs, done := newTestService(gitPath)

	dest := filepath.Join(t.TempDir(), "cloned", "ProjectA", "Test")
	task, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/testrepo.git",
		Destination: dest,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if task.Status != model.TaskStatusRunning {
		t.Errorf("Expected status Running, got %s", task.Status)
	}

	result := waitFinished(t, done)
	if !result.success {
		t.Errorf("Expected success, got reason %q", result.reason)
	}
	if result.reason != ReasonSuccess {
		t.Errorf("Expected reason %q, got %q", ReasonSuccess, result.reason)
	}
	if result.task.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", result.task.Status)
	}

	// Destination parent must have been created before the process ran.
	if _, err := os.Stat(filepath.Dir(dest)); err != nil {
		t.Errorf("Destination parent was not created: %v", err)
	}

	// Process output must arrive line-by-line, in order.
	close(logs)
	var lines []string
	for line := range logs {
		lines = append(lines, line)
	}
	if len(lines) < 3 {
		t.Fatalf("Expected at least 3 log lines, got %d: %v", len(lines), lines)
	}
	if lines[1] != "Cloning into '"+dest+"'..." {
		t.Errorf("Unexpected first process line: %q", lines[1])
	}
	if lines[2] != "remote: Enumerating objects: 3, done." {
		t.Errorf("Unexpected second process line: %q", lines[2])
	}

	if service.Active() != nil {
		t.Error("Expected no active task after completion")
	}
}

func TestStart_NonzeroExit(t *testing.T) {
	gitPath := writeFakeGit(t, `echo "fatal: repository not found"
exit 128`)
	service, _, done := newTestService(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/missing.git",
		Destination: filepath.Join(t.TempDir(), "missing"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result := waitFinished(t, done)
	if result.success {
		t.Error("Expected failure for nonzero exit")
	}
	if result.reason != "exit 128" {
		t.Errorf("Expected reason 'exit 128', got %q", result.reason)
	}
	if result.task.Status != model.TaskStatusError {
		t.Errorf("Expected status Error, got %s", result.task.Status)
	}
}

func TestStart_GitNotFound(t *testing.T) {
	service, _, done := newTestService("git-clone-manager-no-such-binary")

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/testrepo.git",
		Destination: filepath.Join(t.TempDir(), "dest"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result := waitFinished(t, done)
	if result.success {
		t.Error("Expected failure when the binary cannot be located")
	}
	if result.reason != ReasonGitNotFound {
		t.Errorf("Expected reason %q, got %q", ReasonGitNotFound, result.reason)
	}
}

func TestStart_GitNotFound_ExplicitPath(t *testing.T) {
	// A configured absolute path that does not exist must map to the same
	// dedicated reason as a failed PATH lookup.
	service, _, done := newTestService(filepath.Join(t.TempDir(), "bin", "git"))

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/testrepo.git",
		Destination: filepath.Join(t.TempDir(), "dest"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result := waitFinished(t, done)
	if result.success {
		t.Error("Expected failure when the configured binary path does not exist")
	}
	if result.reason != ReasonGitNotFound {
		t.Errorf("Expected reason %q, got %q", ReasonGitNotFound, result.reason)
	}
}

func TestSetGitPath_AppliesToNextTask(t *testing.T) {
	gitPath := writeFakeGit(t, `exit 0`)
	service, _, done := newTestService("git-clone-manager-no-such-binary")

	service.SetGitPath(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/testrepo.git",
		Destination: filepath.Join(t.TempDir(), "dest"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result := waitFinished(t, done)
	if !result.success {
		t.Errorf("Expected success with the updated binary, got reason %q", result.reason)
	}
}

func TestSetGitPath_RunningTaskKeepsBinary(t *testing.T) {
	gitPath := writeFakeGit(t, `sleep 0.5
exit 0`)
	service, _, done := newTestService(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/testrepo.git",
		Destination: filepath.Join(t.TempDir(), "dest"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Switching the binary mid-task must not affect the running process.
	service.SetGitPath("git-clone-manager-no-such-binary")

	result := waitFinished(t, done)
	if !result.success {
		t.Errorf("Expected the running task to finish with its own binary, got reason %q", result.reason)
	}
}

func TestStop_MidStream(t *testing.T) {
	gitPath := writeFakeGit(t, `i=0
while [ $i -lt 100 ]; do
  echo "Receiving objects: $i%"
  i=$((i+1))
  sleep 0.1
done`)
	service, logs, done := newTestService(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/slow.git",
		Destination: filepath.Join(t.TempDir(), "slow"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Wait for the first process output line, then request cancellation.
	select {
	case <-logs:
	case <-time.After(finishTimeout):
		t.Fatal("Timed out waiting for first log line")
	}
	service.Stop()

	result := waitFinished(t, done)
	if result.success {
		t.Error("Expected cancelled task to report failure")
	}
	if result.reason != ReasonAborted {
		t.Errorf("Expected reason %q, got %q", ReasonAborted, result.reason)
	}
	if result.task.Status != model.TaskStatusCancelled {
		t.Errorf("Expected status Cancelled, got %s", result.task.Status)
	}
}

func TestStop_BeforeAnyOutput(t *testing.T) {
	// The process produces no output at all; the stop flag is only
	// observed once the read loop ends, but the terminal state must still
	// be Cancelled even though the process exited 0.
	gitPath := writeFakeGit(t, `sleep 0.3
exit 0`)
	service, _, done := newTestService(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/silent.git",
		Destination: filepath.Join(t.TempDir(), "silent"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	service.Stop()

	result := waitFinished(t, done)
	if result.reason != ReasonAborted {
		t.Errorf("Expected reason %q, got %q", ReasonAborted, result.reason)
	}
	if result.task.Status != model.TaskStatusCancelled {
		t.Errorf("Expected status Cancelled, got %s", result.task.Status)
	}
}

func TestStart_WhileRunning(t *testing.T) {
	gitPath := writeFakeGit(t, `sleep 2`)
	service, _, done := newTestService(gitPath)

	_, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/first.git",
		Destination: filepath.Join(t.TempDir(), "first"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, err = service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/user/second.git",
		Destination: filepath.Join(t.TempDir(), "second"),
	})
	if err != ErrCloneInProgress {
		t.Errorf("Expected ErrCloneInProgress, got %v", err)
	}

	service.Stop()
	waitFinished(t, done)
}

func TestStart_TaskIDsUnique(t *testing.T) {
	gitPath := writeFakeGit(t, `exit 0`)
	service, _, done := newTestService(gitPath)

	task1, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/a.git",
		Destination: filepath.Join(t.TempDir(), "a"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFinished(t, done)

	task2, err := service.Start(model.CloneRequest{
		SourceURL:   "https://example.com/b.git",
		Destination: filepath.Join(t.TempDir(), "b"),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFinished(t, done)

	if task1.ID == task2.ID {
		t.Error("Expected distinct task IDs per attempt")
	}
	if task1.ID == "" || task2.ID == "" {
		t.Error("Expected non-empty task IDs")
	}
}

// TestStart_RealGitLocalRepository clones an actual local repository with
// the real git binary when one is available.
func TestStart_RealGitLocalRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}

	source := t.TempDir()
	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = source
		cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	runGit("init")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "test")
	if err := os.WriteFile(filepath.Join(source, "README"), []byte("hello\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	runGit("add", "README")
	runGit("commit", "-m", "initial")

	service, _, done := newTestService("git")
	dest := filepath.Join(t.TempDir(), "cloned", "ProjectA", "Test")

	_, err := service.Start(model.CloneRequest{
		SourceURL:   source,
		Destination: dest,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result := waitFinished(t, done)
	if !result.success {
		t.Fatalf("Expected successful clone, got reason %q", result.reason)
	}

	// The destination must contain a working copy.
	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Errorf("Expected .git directory in destination: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "README")); err != nil {
		t.Errorf("Expected checked-out file in destination: %v", err)
	}
}
