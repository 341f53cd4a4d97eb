// Package run executes external commands on behalf of the scaffolder.
package run

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and captures its output. The single
// method keeps the surface small enough to fake in tests without shelling
// out.
type Runner interface {
	// Run executes name with args in dir (empty means the current
	// directory) and returns combined output with surrounding whitespace
	// trimmed.
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that shells out for real.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner. A command that exits non-zero comes back as an
// *ExitError carrying the program name and status; a command that could not
// be started at all (typically a missing binary) is wrapped and returned
// as-is.
func (ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Prog:   name,
				Code:   exitErr.ExitCode(),
				Output: strings.TrimSpace(string(out)),
			}
		}
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}
