// Package watcher holds process state for the reminder watcher: the
// single-instance PID file and delivery counters.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
)

var (
	ErrNotRunning     = errors.New("watcher is not running")
	ErrAlreadyRunning = errors.New("another watcher is already running")
)

// DefaultPIDFilePath is $XDG_STATE_HOME/tasksync/watch.pid.
func DefaultPIDFilePath() string {
	return filepath.Join(xdg.StateHome, "tasksync", "watch.pid")
}

// PIDFile keeps a second watcher from sending the same reminders.
type PIDFile struct {
	path string
}

// NewPIDFile manages the PID file at path, or at DefaultPIDFilePath when
// path is empty.
func NewPIDFile(path string) *PIDFile {
	if path == "" {
		path = DefaultPIDFilePath()
	}
	return &PIDFile{path: path}
}

func (p *PIDFile) Path() string { return p.path }

// Acquire creates the file exclusively for this process. A file left by a
// dead process is replaced; one held by a live process fails with
// ErrAlreadyRunning.
func (p *PIDFile) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create PID directory: %w", err)
	}
	self := os.Getpid()

	for range 2 {
		f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, err = f.WriteString(strconv.Itoa(self))
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			return err
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create PID file: %w", err)
		}

		switch pid := p.RunningPID(); pid {
		case self:
			return nil
		case 0:
			if err := p.Remove(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
	}
	return fmt.Errorf("%w: PID file keeps reappearing", ErrAlreadyRunning)
}

// Release removes the file when this process owns it.
func (p *PIDFile) Release() error {
	if pid, err := p.Read(); err == nil && pid == os.Getpid() {
		return p.Remove()
	}
	return nil
}

// WritePID overwrites the file with pid.
func (p *PIDFile) WritePID(pid int) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create PID directory: %w", err)
	}
	return os.WriteFile(p.path, []byte(strconv.Itoa(pid)), 0o644)
}

// Read returns the recorded PID, or ErrNotRunning when there is no file.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNotRunning
	}
	if err != nil {
		return 0, fmt.Errorf("read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("PID file %s: %w", p.path, err)
	}
	return pid, nil
}

func (p *PIDFile) Remove() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove PID file: %w", err)
	}
	return nil
}

// RunningPID returns the recorded PID while that process is alive, else 0.
func (p *PIDFile) RunningPID() int {
	if pid, err := p.Read(); err == nil && IsProcessRunning(pid) {
		return pid
	}
	return 0
}

// IsProcessRunning probes pid with signal 0.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	return err == nil && proc.Signal(syscall.Signal(0)) == nil
}
