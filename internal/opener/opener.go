// Package opener hands a finished PDF to the desktop: open it in the default
// viewer or reveal it in the file manager.
package opener

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrOpen indicates the platform command failed.
var ErrOpen = errors.New("failed to open file")

// CommandRunner abstracts command execution so tests don't spawn processes.
type CommandRunner interface {
	Run(name string, args ...string) error
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run starts the command, waits for it, and folds stderr into the error.
func (ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Opener runs the platform's open and reveal commands.
type Opener struct {
	GOOS   string
	Runner CommandRunner
}

// New returns an Opener for the running platform.
func New() *Opener {
	return &Opener{GOOS: runtime.GOOS, Runner: ExecRunner{}}
}

// Open opens path with the default application.
func (o *Opener) Open(path string) error {
	name, args := OpenCommand(o.GOOS, path)
	return o.run(name, args)
}

// Reveal shows path in the file manager, selected where the platform allows.
func (o *Opener) Reveal(path string) error {
	name, args := RevealCommand(o.GOOS, path)
	err := o.run(name, args)

	// explorer exits with status 1 even after selecting the file.
	var exitErr *exec.ExitError
	if o.GOOS == "windows" && errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func (o *Opener) run(name string, args []string) error {
	runner := o.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	if err := runner.Run(name, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, name, err)
	}
	return nil
}

// OpenCommand returns the command that opens path on goos.
func OpenCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		// The empty argument is start's window title.
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// RevealCommand returns the command that reveals path on goos. Without a
// portable "select" on Linux, the containing directory is opened instead.
func RevealCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{"-R", path}
	case "windows":
		return "explorer", []string{"/select," + path}
	default:
		return "xdg-open", []string{filepath.Dir(path)}
	}
}
