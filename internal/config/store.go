// Package config loads the persisted option store.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// appDirName is the directory under the user configuration root that
	// holds the primary config file.
	appDirName = "hatch"
	// appFileName is the file name inside that directory.
	appFileName = "config.yaml"
	// homeFileName is the dotfile consulted in the user's home directory.
	homeFileName = ".hatch.yaml"
)

// Store is the persisted configuration, loaded once at startup and read-only
// afterwards. Values come back as text; callers convert as needed.
type Store struct {
	v     *viper.Viper
	files []string // files that actually existed, in load order
}

// Locations returns the well-known config file paths in load order: the
// application-data file first, the home dotfile second. On duplicate keys
// the later file wins.
func Locations() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appDirName, appFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, homeFileName))
	}
	return paths
}

// Load reads the given files in order, merging each over the previous one.
// Files that do not exist are skipped silently; a file that exists but does
// not parse is an error.
func Load(paths ...string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	s := &Store{v: v}
	for _, path := range paths {
		if path == "" {
			continue
		}
		path = expandPath(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		s.files = append(s.files, path)
	}
	return s, nil
}

// Lookup returns the text form of the value stored under key. Keys are
// dot-namespaced, e.g. "defaults.author".
func (s *Store) Lookup(key string) (string, bool) {
	if !s.v.IsSet(key) {
		return "", false
	}
	return s.v.GetString(key), true
}

// Files lists the config files that were actually loaded, in load order.
func (s *Store) Files() []string {
	return append([]string(nil), s.files...)
}

// Settings returns the merged settings tree, for display.
func (s *Store) Settings() map[string]any {
	return s.v.AllSettings()
}

// expandPath expands ~ to the user home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
