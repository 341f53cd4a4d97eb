package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hatch-cli/internal/interactive"
	"hatch-cli/internal/resolve"
	"hatch-cli/internal/session"
	"hatch-cli/pkg/models"
)

// mapSource backs the resolver with literal values in tests.
type mapSource map[string]string

func (m mapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// gitStub answers git config lookups from a map.
type gitStub map[string]string

func (g gitStub) ConfigValue(key string) (string, bool) {
	v, ok := g[key]
	return v, ok
}

func newTestResolver(store mapSource, git gitStub, input string) (*resolve.Resolver, *session.Cache, *bytes.Buffer) {
	cache := session.New()
	out := &bytes.Buffer{}
	prompter := interactive.NewPrompter(cache, strings.NewReader(input), out)
	return resolve.New(cache, store, git, prompter, out), cache, out
}

func TestCollectProject_EverythingPrompted(t *testing.T) {
	input := strings.Join([]string{
		"Ada Lovelace",    // author
		"ada@example.com", // email
		"MIT",             // license
		"",                // module path, empty accepts the pre-fill
		"A neat tool",     // description
		"y",               // create a GitHub repository
	}, "\n") + "\n"
	resolver, cache, _ := newTestResolver(mapSource{}, nil, input)

	request := &models.Request{Name: "demo"}
	project, err := collectProject(request, resolver)
	if err != nil {
		t.Fatalf("collectProject failed: %v", err)
	}

	if project.Name != "demo" {
		t.Errorf("Name = %q, want %q", project.Name, "demo")
	}
	if project.Author != "Ada Lovelace" {
		t.Errorf("Author = %q, want %q", project.Author, "Ada Lovelace")
	}
	if project.Email != "ada@example.com" {
		t.Errorf("Email = %q, want %q", project.Email, "ada@example.com")
	}
	if project.License != "MIT" {
		t.Errorf("License = %q, want %q", project.License, "MIT")
	}
	// No configured GitHub user, so the pre-fill is the bare name.
	if project.Module != "demo" {
		t.Errorf("Module = %q, want %q", project.Module, "demo")
	}
	if project.Description != "A neat tool" {
		t.Errorf("Description = %q, want %q", project.Description, "A neat tool")
	}
	if project.Year != time.Now().Year() {
		t.Errorf("Year = %d, want the current year", project.Year)
	}
	if v, ok := cache.Lookup(resolve.KeyRepoCreate); !ok || v != "true" {
		t.Errorf("repo.create after collect = (%q, %v), want cached true", v, ok)
	}
}

func TestCollectProject_GitFallbackSkipsIdentityPrompts(t *testing.T) {
	store := mapSource{
		resolve.KeyGitEnable:  "true",
		resolve.KeyLicense:    "MIT",
		resolve.KeyModule:     "example.com/grace/demo",
		resolve.KeyRepoCreate: "false",
	}
	git := gitStub{
		"user.name":  "Grace Hopper",
		"user.email": "grace@example.com",
	}
	// Only the description is left to ask.
	resolver, _, out := newTestResolver(store, git, "Compiles things\n")

	project, err := collectProject(&models.Request{Name: "demo"}, resolver)
	if err != nil {
		t.Fatalf("collectProject failed: %v", err)
	}

	if project.Author != "Grace Hopper" || project.Email != "grace@example.com" {
		t.Errorf("identity = (%q, %q), want the git values", project.Author, project.Email)
	}
	if strings.Contains(out.String(), "Author name") || strings.Contains(out.String(), "Author email") {
		t.Errorf("identity was prompted despite git fallback:\n%s", out.String())
	}
}

func TestCollectProject_ConfiguredRunIsSilent(t *testing.T) {
	store := mapSource{
		resolve.KeyAuthor:      "Grace Hopper",
		resolve.KeyEmail:       "grace@example.com",
		resolve.KeyLicense:     "MIT",
		resolve.KeyModule:      "example.com/grace/demo",
		resolve.KeyDescription: "Fully configured",
		resolve.KeyRepoCreate:  "false",
	}
	resolver, _, out := newTestResolver(store, nil, "")

	project, err := collectProject(&models.Request{Name: "demo"}, resolver)
	if err != nil {
		t.Fatalf("collectProject failed: %v", err)
	}

	if project.Module != "example.com/grace/demo" {
		t.Errorf("Module = %q, want configured value", project.Module)
	}
	if out.Len() != 0 {
		t.Errorf("fully configured run still wrote prompts:\n%s", out.String())
	}
}

func TestCollectProject_OverridesBeatStore(t *testing.T) {
	store := mapSource{
		resolve.KeyAuthor:      "Store Author",
		resolve.KeyEmail:       "store@example.com",
		resolve.KeyLicense:     "MIT",
		resolve.KeyModule:      "example.com/store/demo",
		resolve.KeyDescription: "From the store",
		resolve.KeyRepoCreate:  "false",
	}
	resolver, cache, out := newTestResolver(store, nil, "")

	request := models.NewRequest()
	request.Name = "demo"
	request.Overrides[resolve.KeyAuthor] = "Flag Author"
	request.Overrides[resolve.KeyLicense] = "ISC"
	seedOverrides(cache, request)

	project, err := collectProject(request, resolver)
	if err != nil {
		t.Fatalf("collectProject failed: %v", err)
	}

	if project.Author != "Flag Author" {
		t.Errorf("Author = %q, want the flag override", project.Author)
	}
	if project.License != "ISC" {
		t.Errorf("License = %q, want the flag override", project.License)
	}
	if project.Module != "example.com/store/demo" {
		t.Errorf("Module = %q, want the store value for keys without overrides", project.Module)
	}
	if out.Len() != 0 {
		t.Errorf("overridden run still wrote prompts:\n%s", out.String())
	}
}

func TestCollectProject_UnknownLicenseOverrideReplacedBySelection(t *testing.T) {
	store := mapSource{
		resolve.KeyAuthor:      "Store Author",
		resolve.KeyEmail:       "store@example.com",
		resolve.KeyModule:      "example.com/store/demo",
		resolve.KeyDescription: "From the store",
		resolve.KeyRepoCreate:  "false",
	}
	// Only the license selection is left to answer.
	resolver, cache, out := newTestResolver(store, nil, "MIT\n")

	request := models.NewRequest()
	request.Name = "demo"
	request.Overrides[resolve.KeyLicense] = "WTFPL"
	seedOverrides(cache, request)

	project, err := collectProject(request, resolver)
	if err != nil {
		t.Fatalf("collectProject failed: %v", err)
	}

	if project.License != "MIT" {
		t.Errorf("License = %q, want the selected replacement, not the flag value", project.License)
	}
	if !strings.Contains(out.String(), "WTFPL") {
		t.Errorf("output does not warn about the rejected value:\n%s", out.String())
	}
}

func TestSeedOverrides(t *testing.T) {
	cache := session.New()
	request := models.NewRequest()
	request.Overrides[resolve.KeyAuthor] = "Flag Author"
	request.Overrides[resolve.KeyLicense] = "ISC"

	seedOverrides(cache, request)

	if v, _ := cache.Lookup(resolve.KeyAuthor); v != "Flag Author" {
		t.Errorf("cache author = %q, want the flag value", v)
	}
	if cache.Len() != 2 {
		t.Errorf("cache has %d entries, want 2", cache.Len())
	}
}

func TestModuleGuess(t *testing.T) {
	withUser, _, _ := newTestResolver(mapSource{resolve.KeyGithubUser: "ada"}, nil, "")
	if got := moduleGuess(withUser, "demo"); got != "github.com/ada/demo" {
		t.Errorf("moduleGuess with user = %q, want %q", got, "github.com/ada/demo")
	}

	without, _, _ := newTestResolver(mapSource{}, nil, "")
	if got := moduleGuess(without, "demo"); got != "demo" {
		t.Errorf("moduleGuess without user = %q, want %q", got, "demo")
	}
}

func TestLicenseTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "MIT License\n\nCopyright...", "MIT License"},
		{"leading blank lines", "\n\n  ISC License  \nbody", "ISC License"},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := licenseTitle(tt.text); got != tt.want {
				t.Errorf("licenseTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchedPaths(t *testing.T) {
	if got := searchedPaths("/etc/hatch.yaml"); len(got) != 1 || got[0] != "/etc/hatch.yaml" {
		t.Errorf("searchedPaths with explicit file = %v, want just that file", got)
	}
	if got := searchedPaths(""); len(got) == 0 {
		t.Error("searchedPaths without explicit file returned nothing")
	}
}

func TestContractPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "inside home",
			path: filepath.Join(homeDir, ".hatch.yaml"),
			want: "~/.hatch.yaml",
		},
		{
			name: "home itself",
			path: homeDir,
			want: "~",
		},
		{
			name: "outside home",
			path: "/etc/hatch.yaml",
			want: "/etc/hatch.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contractPath(tt.path); got != tt.want {
				t.Errorf("contractPath(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}
