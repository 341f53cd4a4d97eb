// Package app wires the resolution chain to the scaffold steps and backs
// the CLI commands.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"hatch-cli/internal/config"
	"hatch-cli/internal/gitmeta"
	"hatch-cli/internal/interactive"
	"hatch-cli/internal/license"
	"hatch-cli/internal/resolve"
	"hatch-cli/internal/run"
	"hatch-cli/internal/scaffold"
	"hatch-cli/internal/session"
	"hatch-cli/pkg/models"
)

// Run executes a full scaffolding pass: resolve every option through the
// chain, write the project files, then run the optional repository steps.
func Run(request *models.Request) error {
	store, err := loadStore(request.ConfigPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cache := session.New()
	seedOverrides(cache, request)

	runner := run.NewExecRunner()
	prompter := interactive.NewPrompter(cache, os.Stdin, os.Stdout)
	resolver := resolve.New(cache, store, gitmeta.NewSource(runner), prompter, os.Stdout)

	project, err := collectProject(request, resolver)
	if err != nil {
		return err
	}

	licenseText, err := license.Text(project.License)
	if err != nil {
		return err
	}

	dir := request.TargetDir()
	if err := scaffold.Generate(dir, project, licenseText); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", dir)

	err = resolver.RunUnless(resolve.KeyGitInit, resolve.IsFalse, func() error {
		return scaffold.InitRepo(dir, runner)
	})
	if err != nil {
		return err
	}

	err = resolver.RunWhen(resolve.KeyRepoCreate, resolve.IsTrue, func() error {
		token, err := resolver.SecretOrAsk(resolve.KeyGithubToken, "GitHub access token")
		if err != nil {
			return err
		}
		url, err := scaffold.CreateRemote(context.Background(), scaffold.RemoteOptions{
			Name:        project.Name,
			Description: project.Description,
			Token:       token,
			Private:     resolver.BoolDefault(resolve.KeyRepoPrivate, false),
			Dir:         dir,
		}, runner)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", url)
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// collectProject resolves everything the scaffold needs, prompting where
// configuration and git leave gaps. All questions are asked here, before
// any file is written.
func collectProject(request *models.Request, resolver *resolve.Resolver) (scaffold.Project, error) {
	var p scaffold.Project
	var err error

	p.Name = request.Name
	p.Year = time.Now().Year()

	if p.Author, err = resolver.StringOrGitOrAsk(resolve.KeyAuthor, "user.name", "Author name", ""); err != nil {
		return p, err
	}
	if p.Email, err = resolver.StringOrGitOrAsk(resolve.KeyEmail, "user.email", "Author email", ""); err != nil {
		return p, err
	}
	if p.License, err = license.Choose(resolver); err != nil {
		return p, err
	}
	if p.Module, err = resolver.StringOrAsk(resolve.KeyModule, "Module path", moduleGuess(resolver, request.Name)); err != nil {
		return p, err
	}
	if p.Description, err = resolver.StringOrAsk(resolve.KeyDescription, "Description", ""); err != nil {
		return p, err
	}

	// Asked up front so the remote question comes with the others; the
	// answer lands in the cache, where RunWhen reads it back after the
	// files exist.
	if _, err = resolver.BoolOrAsk(resolve.KeyRepoCreate, "Create a GitHub repository"); err != nil {
		return p, err
	}

	return p, nil
}

// seedOverrides pre-loads the session cache with the values fixed on the
// command line. Being first into the cache, they win over every other
// source for the rest of the run.
func seedOverrides(cache *session.Cache, request *models.Request) {
	for key, value := range request.Overrides {
		cache.Put(key, value)
	}
}

// moduleGuess builds the editable pre-fill for the module path prompt. A
// configured GitHub user turns it into a github.com path; otherwise the
// bare project name is offered.
func moduleGuess(resolver *resolve.Resolver, name string) string {
	if user, ok := resolver.Lookup(resolve.KeyGithubUser); ok && user != "" {
		return "github.com/" + user + "/" + name
	}
	return name
}

// ShowConfig prints the persisted configuration as YAML together with the
// files it came from.
func ShowConfig(request *models.Request) error {
	store, err := loadStore(request.ConfigPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	files := store.Files()
	if len(files) == 0 {
		fmt.Println("No configuration files found. Searched:")
		for _, path := range searchedPaths(request.ConfigPath) {
			fmt.Printf("  - %s\n", contractPath(path))
		}
		return nil
	}

	fmt.Println("Configuration files (later wins on duplicate keys):")
	for _, path := range files {
		fmt.Printf("  - %s\n", contractPath(path))
	}
	fmt.Println()

	out, err := yaml.Marshal(store.Settings())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// ListLicenses renders the license catalog as a table.
func ListLicenses() error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title"})

	for _, id := range license.IDs() {
		text, err := license.Text(id)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{id, licenseTitle(text)})
	}

	t.Render()
	return nil
}

// licenseTitle extracts the first non-blank line of a license text.
func licenseTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// loadStore loads the persisted store from the explicit file when given,
// or from the well-known locations otherwise.
func loadStore(explicit string) (*config.Store, error) {
	return config.Load(searchedPaths(explicit)...)
}

// searchedPaths lists the config files a run would consult, in load order.
func searchedPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	return config.Locations()
}

// contractPath converts a full path back to use ~ for the home directory.
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
