// Package scaffold writes out the files of a freshly hatched project and
// runs the optional repository steps around them.
package scaffold

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrTargetExists reports that the scaffold target directory is already
// taken.
var ErrTargetExists = errors.New("target directory already exists")

// Project carries everything the scaffold templates need.
type Project struct {
	Name        string // project and directory name
	Module      string // module path for the generated go.mod
	Author      string
	Email       string
	Description string
	License     string // catalog identifier, e.g. "MIT"
	Year        int    // copyright year for the license text
}

// files maps scaffold outputs to the templates that produce them, in write
// order.
var files = []struct {
	target   string
	template string
}{
	{"go.mod", "gomod.tmpl"},
	{"main.go", "main.go.tmpl"},
	{"README.md", "readme.md.tmpl"},
	{".gitignore", "gitignore.tmpl"},
}

// Generate writes the scaffold for p into dir, which must not exist yet.
// licenseText is the raw catalog text; its conventional owner and year
// placeholders are filled in from the project.
func Generate(dir string, p Project, licenseText string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, dir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check target directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory %s: %w", dir, err)
	}

	for _, f := range files {
		content, err := render(f.template, p)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, f.target)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		slog.Debug("wrote scaffold file", "path", path)
	}

	licensePath := filepath.Join(dir, "LICENSE")
	if err := os.WriteFile(licensePath, []byte(fillLicense(licenseText, p)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", licensePath, err)
	}
	slog.Debug("wrote scaffold file", "path", licensePath)

	return nil
}

// fillLicense substitutes the owner and year placeholders that license
// bodies conventionally carry. Texts without placeholders pass through
// untouched.
func fillLicense(text string, p Project) string {
	year := strconv.Itoa(p.Year)
	r := strings.NewReplacer(
		"[year]", year,
		"[yyyy]", year,
		"[fullname]", p.Author,
		"[name of copyright owner]", p.Author,
	)
	return r.Replace(text)
}
