// Package license ships the catalog of licenses offered during scaffolding.
package license

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"hatch-cli/internal/resolve"
)

//go:embed data
var dataFS embed.FS

// Suffix marks catalog files inside the data directory; the identifier is
// the file name with the suffix stripped.
const Suffix = ".license"

const dataDir = "data"

// ErrUnknown reports a license identifier outside the catalog.
var ErrUnknown = errors.New("unknown license")

// IDs returns the catalog identifiers. The listing comes back name-sorted
// from the embedded directory, so the order is stable across runs.
func IDs() []string {
	entries, err := fs.ReadDir(dataFS, dataDir)
	if err != nil {
		// The directory is embedded at build time; nothing to enumerate
		// means an empty catalog, not a runtime failure.
		return nil
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, Suffix))
	}
	return ids
}

// Text returns the full license text for id.
func Text(id string) (string, error) {
	data, err := dataFS.ReadFile(dataDir + "/" + id + Suffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrUnknown, id)
		}
		return "", fmt.Errorf("failed to read license %s: %w", id, err)
	}
	return string(data), nil
}

// Choose resolves the license for a new project. A configured default that
// names a catalog member is used directly; an unknown or missing default
// falls through to the selection prompt, and the choice is remembered for
// the rest of the run.
func Choose(r *resolve.Resolver) (string, error) {
	return r.StringOrSelect(resolve.KeyLicense, "license", IDs())
}
