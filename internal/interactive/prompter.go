// Package interactive implements the terminal prompts used when an option
// cannot be resolved from configuration.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/chzyer/readline"
	"golang.org/x/term"

	"hatch-cli/internal/session"
)

// ErrCancelled reports end-of-input during a prompt. It unwinds to the top
// of the command, which turns it into a non-zero exit; prompt code never
// terminates the process on its own.
var ErrCancelled = errors.New("cancelled")

// Prompter collects option values from the terminal. Primitives that take a
// cache key consult the session cache before asking and write their answer
// back, so the same question is asked at most once per run even when two
// call sites need the same option.
//
// When in is not a terminal the line editing degrades to plain buffered
// reads, which is also what makes the primitives testable against piped
// input.
type Prompter struct {
	cache *session.Cache
	out   io.Writer
	buf   *bufio.Reader
	tty   *os.File // set when in is an interactive terminal
}

// NewPrompter returns a Prompter reading from in and writing prompts to out.
func NewPrompter(cache *session.Cache, in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		cache: cache,
		out:   out,
		buf:   bufio.NewReader(in),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
	}
	return p
}

// AskString resolves key through the cache or prompts for a line of text.
// On a terminal the line comes pre-filled with initial so the user can edit
// it in place instead of retyping.
func (p *Prompter) AskString(key, label, initial string) (string, error) {
	if v, ok := p.cache.Lookup(key); ok {
		return v, nil
	}
	text, err := p.readLine(label+": ", initial, nil)
	if err != nil {
		return "", err
	}
	return p.cache.Put(key, text), nil
}

// AskBool resolves key through the cache or asks a yes/no question answered
// with a single keystroke: y/Y means yes, n/N means no, anything else keeps
// waiting. The answer is cached as the literal text "true" or "false" so a
// later typed lookup round-trips.
func (p *Prompter) AskBool(key, label string) (bool, error) {
	if v, ok := p.cache.Lookup(key); ok {
		return truthy(v), nil
	}

	fmt.Fprintf(p.out, "%s [y/n] ", label)
	answer, err := p.readYesNo()
	if err != nil {
		return false, err
	}
	p.cache.Put(key, strconv.FormatBool(answer))
	return answer, nil
}

// AskSecret resolves key through the cache or prompts with masked input.
// The answer lives in the session cache only and is never persisted.
func (p *Prompter) AskSecret(key, label string) (string, error) {
	if v, ok := p.cache.Lookup(key); ok {
		return v, nil
	}

	if p.tty == nil {
		// No terminal means no masking; read the line as-is.
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.buf.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", ErrCancelled
		}
		return p.cache.Put(key, strings.TrimRight(line, "\r\n")), nil
	}

	var value string
	prompt := &survey.Password{Message: label}
	if err := survey.AskOne(prompt, &value); err != nil {
		if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read secret input: %w", err)
	}
	return p.cache.Put(key, value), nil
}

// Select asks the user to pick one of options from a numbered listing. Both
// the exact option name and its 1-based number are accepted; "?" prints the
// listing again and any other input is rejected with a hint. Select takes no
// cache key: memoization of chosen values is the caller's concern.
func (p *Prompter) Select(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select a %s from", label)
	}

	p.printOptions(label, options)
	for {
		line, err := p.readLine(label+"? ", "", options)
		if err != nil {
			return "", err
		}

		input := strings.TrimSpace(line)
		if input == "?" {
			p.printOptions(label, options)
			continue
		}
		for _, option := range options {
			if input == option {
				return option, nil
			}
		}
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q: enter an option name, a number between 1 and %d, or ? to list the options\n", input, len(options))
	}
}

// printOptions displays the numbered listing Select chooses from.
func (p *Prompter) printOptions(label string, options []string) {
	fmt.Fprintf(p.out, "Available %s options:\n", label)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, option)
	}
}

// readLine reads one line of input. On a terminal it uses a line editor
// with the prompt shown, initial as editable pre-filled text and optional
// word completion; otherwise it falls back to a plain buffered read where an
// empty line stands in for the initial text.
func (p *Prompter) readLine(prompt, initial string, completions []string) (string, error) {
	if p.tty == nil {
		fmt.Fprint(p.out, prompt)
		line, err := p.buf.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", ErrCancelled
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return initial, nil
		}
		return line, nil
	}

	cfg := &readline.Config{
		Prompt:          prompt,
		Stdin:           p.tty,
		Stdout:          p.out,
		InterruptPrompt: "^C",
	}
	if len(completions) > 0 {
		items := make([]readline.PrefixCompleterInterface, len(completions))
		for i, c := range completions {
			items[i] = readline.PcItem(c)
		}
		cfg.AutoComplete = readline.NewPrefixCompleter(items...)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize line editor: %w", err)
	}
	defer rl.Close()

	line, err := rl.ReadlineWithDefault(initial)
	switch {
	case err == readline.ErrInterrupt || err == io.EOF:
		return "", ErrCancelled
	case err != nil:
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// readYesNo waits for a y/n keystroke. On a terminal it switches to raw
// mode so a single key answers without Enter; otherwise it reads lines
// until one is exactly y, Y, n or N.
func (p *Prompter) readYesNo() (bool, error) {
	if p.tty == nil {
		for {
			line, err := p.buf.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return false, ErrCancelled
			}
			switch strings.TrimSpace(line) {
			case "y", "Y":
				return true, nil
			case "n", "N":
				return false, nil
			}
			if err == io.EOF {
				return false, ErrCancelled
			}
		}
	}

	fd := int(p.tty.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("failed to enter raw terminal mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	buffer := make([]byte, 1)
	for {
		if _, err := p.tty.Read(buffer); err != nil {
			return false, ErrCancelled
		}

		char := buffer[0]
		switch char {
		case 'y', 'Y':
			fmt.Fprintf(p.out, "%c\n", char)
			return true, nil
		case 'n', 'N':
			fmt.Fprintf(p.out, "%c\n", char)
			return false, nil
		case 3, 4: // Ctrl+C, Ctrl+D
			fmt.Fprintln(p.out)
			return false, ErrCancelled
		}

		// For any other key, continue waiting
	}
}

// truthy reads a cached boolean literal; any value that does not parse as a
// boolean reads as false.
func truthy(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
