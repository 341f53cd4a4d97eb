package scaffold

import (
	"log/slog"

	"hatch-cli/internal/run"
)

// InitRepo turns dir into a git repository with the generated files in a
// single initial commit. Any git failure here is returned to the caller
// unwrapped, typically as a *run.ExitError, and ends the scaffold.
func InitRepo(dir string, runner run.Runner) error {
	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", "Initial commit"},
	}

	for _, args := range steps {
		if _, err := runner.Run(dir, "git", args...); err != nil {
			return err
		}
		slog.Debug("ran git step", "args", args)
	}
	return nil
}
