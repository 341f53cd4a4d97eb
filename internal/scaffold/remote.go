package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"hatch-cli/internal/run"
)

// RemoteOptions configures remote repository creation.
type RemoteOptions struct {
	Name        string // repository name, normally the project name
	Description string
	Token       string // personal access token with repo scope
	Private     bool
	Dir         string // local repository to point at the new remote
}

// CreateRemote creates the repository on GitHub under the authenticated
// user, wires the local repository's origin to it and pushes the initial
// branch. It returns the web URL of the new repository.
func CreateRemote(ctx context.Context, opts RemoteOptions, runner run.Runner) (string, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Creating repository on GitHub..."
	s.Start()
	repo, _, err := client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(opts.Name),
		Description: github.String(opts.Description),
		Private:     github.Bool(opts.Private),
	})
	s.Stop()
	if err != nil {
		return "", fmt.Errorf("failed to create repository on GitHub: %w", err)
	}
	slog.Debug("created remote repository", "url", repo.GetHTMLURL())

	if err := wireRemote(opts.Dir, repo.GetCloneURL(), runner); err != nil {
		return "", err
	}
	return repo.GetHTMLURL(), nil
}

// wireRemote registers url as origin in dir and pushes the current branch.
func wireRemote(dir, url string, runner run.Runner) error {
	if _, err := runner.Run(dir, "git", "remote", "add", "origin", url); err != nil {
		return err
	}
	if _, err := runner.Run(dir, "git", "push", "-u", "origin", "HEAD"); err != nil {
		return err
	}
	return nil
}
