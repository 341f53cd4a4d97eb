package run

import "fmt"

// ExitError reports an external program that ran but exited with a non-zero
// status. Callers decide what it means: the git metadata lookup reads it as
// absence, the scaffold steps fail on it.
type ExitError struct {
	Prog   string // program name, e.g. "git"
	Code   int    // exit status
	Output string // combined stdout and stderr, trimmed
}

func (e *ExitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Prog, e.Code, e.Output)
	}
	return fmt.Sprintf("%s exited with status %d", e.Prog, e.Code)
}
