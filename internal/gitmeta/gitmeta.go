// Package gitmeta reads values from the local git configuration.
package gitmeta

import (
	"log/slog"
	"strings"

	"hatch-cli/internal/run"
)

// Source answers option lookups from `git config`. Every failure mode, from
// a missing git binary to an unset key, is reported as plain absence so the
// resolution chain can fall through to the next stage.
type Source struct {
	runner run.Runner
}

// NewSource returns a Source that invokes git through runner.
func NewSource(runner run.Runner) *Source {
	return &Source{runner: runner}
}

// ConfigValue returns the first line of `git config --get key`. Absence
// covers an unset key, a failed invocation and empty output alike.
func (s *Source) ConfigValue(key string) (string, bool) {
	out, err := s.runner.Run("", "git", "config", "--get", key)
	if err != nil {
		slog.Debug("git config lookup failed", "key", key, "error", err)
		return "", false
	}
	line := out
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}
