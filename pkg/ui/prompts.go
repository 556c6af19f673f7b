package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive answers from an input stream. Tests supply a
// strings.Reader instead of stdin.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// StdPrompter prompts on the real terminal.
func StdPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// AskChoice shows a numbered menu and returns the zero-based index of the
// selected option. Invalid input re-prompts.
func (p *Prompter) AskChoice(question string, options []string) (int, error) {
	fmt.Fprintln(p.out, Cyan(question))
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(p.out, Yellow(fmt.Sprintf("enter a number between 1 and %d", len(options))))
	}
}

// AskYesNo asks a y/n question. Empty input selects the default.
func (p *Prompter) AskYesNo(question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", Cyan(question), hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AskInt asks for an integer in [min, max]. Invalid input re-prompts.
func (p *Prompter) AskInt(question string, min, max int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s (%d-%d): ", Cyan(question), min, max)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		fmt.Fprintln(p.out, Yellow("invalid number"))
	}
}

// AskOptionalInt asks for an integer; empty input returns (0, false, nil).
func (p *Prompter) AskOptionalInt(question string) (int, bool, error) {
	fmt.Fprintf(p.out, "%s (blank to skip): ", Cyan(question))
	line, err := p.readLine()
	if err != nil {
		return 0, false, err
	}
	if line == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", line)
	}
	return n, true, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads a line from the terminal without echoing it. Falls back
// to a plain read when stdin is not a terminal.
func ReadSecret(prompt string) (string, error) {
	fmt.Print(Cyan(prompt))
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
