package main

import (
	"testing"

	"github.com/spf13/cobra"

	"hatch-cli/internal/resolve"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{}

	// Mirror the root command flags buildRequestFromFlags reads
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("author", "", "")
	cmd.Flags().String("email", "", "")
	cmd.Flags().String("license", "", "")
	cmd.Flags().String("module", "", "")
	cmd.Flags().String("description", "", "")
	cmd.Flags().String("dir", "", "")
	cmd.Flags().Bool("create-repo", false, "")
	cmd.Flags().Bool("private", false, "")
	cmd.Flags().Bool("no-git", false, "")

	return cmd
}

func TestBuildRequestFromFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		flags         map[string]string
		wantName      string
		wantConfig    string
		wantDir       string
		wantOverrides map[string]string
		wantErr       bool
	}{
		{
			name:          "bare request",
			args:          []string{"demo"},
			wantName:      "demo",
			wantOverrides: map[string]string{},
		},
		{
			name: "option flags become overrides",
			args: []string{"demo"},
			flags: map[string]string{
				"author":  "Ada Lovelace",
				"license": "MIT",
				"module":  "example.com/ada/demo",
			},
			wantName: "demo",
			wantOverrides: map[string]string{
				resolve.KeyAuthor:  "Ada Lovelace",
				resolve.KeyLicense: "MIT",
				resolve.KeyModule:  "example.com/ada/demo",
			},
		},
		{
			name: "explicit false still overrides",
			args: []string{"demo"},
			flags: map[string]string{
				"create-repo": "false",
			},
			wantName: "demo",
			wantOverrides: map[string]string{
				resolve.KeyRepoCreate: "false",
			},
		},
		{
			name: "boolean flags become literals",
			args: []string{"demo"},
			flags: map[string]string{
				"create-repo": "true",
				"private":     "true",
			},
			wantName: "demo",
			wantOverrides: map[string]string{
				resolve.KeyRepoCreate:  "true",
				resolve.KeyRepoPrivate: "true",
			},
		},
		{
			name: "no-git disables git init",
			args: []string{"demo"},
			flags: map[string]string{
				"no-git": "true",
			},
			wantName: "demo",
			wantOverrides: map[string]string{
				resolve.KeyGitInit: "false",
			},
		},
		{
			name: "config and dir pass through",
			args: []string{"demo"},
			flags: map[string]string{
				"config": "/etc/hatch.yaml",
				"dir":    "/src/demo",
			},
			wantName:      "demo",
			wantConfig:    "/etc/hatch.yaml",
			wantDir:       "/src/demo",
			wantOverrides: map[string]string{},
		},
		{
			name:    "blank name",
			args:    []string{"   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCommand()
			for flag, value := range tt.flags {
				if err := cmd.Flags().Set(flag, value); err != nil {
					t.Fatalf("failed to set flag %s: %v", flag, err)
				}
			}

			result, err := buildRequestFromFlags(cmd, tt.args)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if result.Name != tt.wantName {
				t.Errorf("Name = %q, expected %q", result.Name, tt.wantName)
			}

			if result.ConfigPath != tt.wantConfig {
				t.Errorf("ConfigPath = %q, expected %q", result.ConfigPath, tt.wantConfig)
			}

			if result.Dir != tt.wantDir {
				t.Errorf("Dir = %q, expected %q", result.Dir, tt.wantDir)
			}

			if len(result.Overrides) != len(tt.wantOverrides) {
				t.Errorf("Overrides = %v, expected %v", result.Overrides, tt.wantOverrides)
			}
			for key, want := range tt.wantOverrides {
				if got, ok := result.Overrides[key]; !ok || got != want {
					t.Errorf("Overrides[%q] = (%q, %v), expected %q", key, got, ok, want)
				}
			}
		})
	}
}

func TestBuildRequestFromFlags_UntouchedFlagsStayOut(t *testing.T) {
	cmd := newFlagCommand()

	result, err := buildRequestFromFlags(cmd, []string{"demo"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Defaults of unset flags must not mask configured values, so none of
	// them may appear in the override map.
	if len(result.Overrides) != 0 {
		t.Errorf("Overrides for a bare invocation = %v, expected none", result.Overrides)
	}
}

func TestBuildRequestFromFlags_TrimsName(t *testing.T) {
	cmd := newFlagCommand()

	result, err := buildRequestFromFlags(cmd, []string{"  demo  "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Name != "demo" {
		t.Errorf("Name = %q, expected trimmed %q", result.Name, "demo")
	}
}
