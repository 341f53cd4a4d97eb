// Package resolve turns option keys into values by walking a fixed chain of
// sources: the session cache, the persisted store, an optional git fallback
// and finally the interactive prompt. Whatever a terminal stage produces is
// written back to the session cache, so no option is resolved twice in one
// run.
package resolve

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"hatch-cli/internal/session"
)

// Source supplies option values by key. Sources are consulted in order and
// the first hit wins; a miss carries no error, absence is an ordinary
// outcome here.
type Source interface {
	Lookup(key string) (string, bool)
}

// GitSource reads a key from the version-control tool's own configuration.
type GitSource interface {
	ConfigValue(key string) (string, bool)
}

// Prompter supplies the interactive primitives the chain bottoms out in.
type Prompter interface {
	AskString(key, label, initial string) (string, error)
	AskBool(key, label string) (bool, error)
	AskSecret(key, label string) (string, error)
	Select(label string, options []string) (string, error)
}

// Resolver resolves option keys for one run.
type Resolver struct {
	cache   *session.Cache
	sources []Source
	git     GitSource
	prompt  Prompter
	warn    io.Writer
}

// New returns a Resolver over the given collaborators. store and git may be
// nil, which simply shortens the chain. warn receives user-facing
// diagnostics such as a configured value that is no longer valid; nil means
// standard output.
func New(cache *session.Cache, store Source, git GitSource, prompt Prompter, warn io.Writer) *Resolver {
	if warn == nil {
		warn = os.Stdout
	}
	sources := []Source{cache}
	if store != nil {
		sources = append(sources, store)
	}
	return &Resolver{
		cache:   cache,
		sources: sources,
		git:     git,
		prompt:  prompt,
		warn:    warn,
	}
}

// Lookup walks the non-interactive sources and returns the first hit. It
// never prompts and writes nothing on a miss.
func (r *Resolver) Lookup(key string) (string, bool) {
	for _, src := range r.sources {
		if v, ok := src.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// LookupDefault is Lookup with def substituted on a miss. The default is not
// cached: a later prompt for the same key must still run.
func (r *Resolver) LookupDefault(key, def string) string {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	return def
}

// LookupBool is Lookup with boolean conversion. A present value that does
// not parse as a boolean reads as false rather than failing, so a broken
// config line degrades to the conservative answer.
func (r *Resolver) LookupBool(key string) (bool, bool) {
	v, ok := r.Lookup(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Debug("option does not parse as a boolean, reading it as false", "key", key, "value", v)
		return false, true
	}
	return b, true
}

// BoolDefault is LookupBool with def substituted on a miss.
func (r *Resolver) BoolDefault(key string, def bool) bool {
	if b, ok := r.LookupBool(key); ok {
		return b
	}
	return def
}

// StringOrAsk resolves key through the chain, falling back to the free-text
// prompt. Prompted answers are cached before they are returned.
func (r *Resolver) StringOrAsk(key, label, initial string) (string, error) {
	if v, ok := r.Lookup(key); ok {
		return v, nil
	}
	return r.prompt.AskString(key, label, initial)
}

// BoolOrAsk resolves key as a boolean, falling back to the yes/no prompt.
func (r *Resolver) BoolOrAsk(key, label string) (bool, error) {
	if b, ok := r.LookupBool(key); ok {
		return b, nil
	}
	return r.prompt.AskBool(key, label)
}

// SecretOrAsk resolves key through the chain, falling back to the masked
// prompt. Nothing here ever writes the value anywhere but the session
// cache.
func (r *Resolver) SecretOrAsk(key, label string) (string, error) {
	if v, ok := r.Lookup(key); ok {
		return v, nil
	}
	return r.prompt.AskSecret(key, label)
}

// StringOrGitOrAsk resolves key through the chain, then from the git
// configuration under gitKey, then from the free-text prompt. The git stage
// only runs when the git.enable option reads true, and a git hit is cached
// exactly like a prompted answer. Git failing in any way just means the
// prompt runs.
func (r *Resolver) StringOrGitOrAsk(key, gitKey, label, initial string) (string, error) {
	if v, ok := r.Lookup(key); ok {
		return v, nil
	}
	if r.git != nil && r.BoolDefault(KeyGitEnable, false) {
		if v, ok := r.git.ConfigValue(gitKey); ok {
			return r.cache.Put(key, v), nil
		}
	}
	return r.prompt.AskString(key, label, initial)
}

// StringOrSelect resolves key against a closed set of options. A value from
// the chain that matches an option is returned as-is; one that does not is
// reported to the user and replaced through the selection prompt. The
// caller always receives the prompted choice, even when a rejected seed
// still occupies the session cache under key.
func (r *Resolver) StringOrSelect(key, label string, options []string) (string, error) {
	if v, ok := r.Lookup(key); ok {
		for _, option := range options {
			if v == option {
				return v, nil
			}
		}
		fmt.Fprintf(r.warn, "Configured %s %q is not available, pick one of the options below.\n", label, v)
	}
	choice, err := r.prompt.Select(label, options)
	if err != nil {
		return "", err
	}
	// Put is first-write-wins: when the rejected value came from the cache
	// itself it keeps the slot, so the choice must not be read back from it.
	r.cache.Put(key, choice)
	return choice, nil
}

// RunUnless executes fn unless key resolves to a value satisfying pred.
// An absent key runs fn; the option has to be set explicitly to turn the
// step off.
func (r *Resolver) RunUnless(key string, pred func(string) bool, fn func() error) error {
	if v, ok := r.Lookup(key); ok && pred(v) {
		return nil
	}
	return fn()
}

// RunWhen executes fn only when key resolves to a value satisfying pred.
// An absent key skips fn; the option has to be set explicitly to turn the
// step on.
func (r *Resolver) RunWhen(key string, pred func(string) bool, fn func() error) error {
	if v, ok := r.Lookup(key); ok && pred(v) {
		return fn()
	}
	return nil
}

// IsTrue reports whether a resolved value reads as boolean true. Values
// that fail boolean conversion read as neither true nor false.
func IsTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// IsFalse reports whether a resolved value reads as boolean false.
func IsFalse(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && !b
}
