package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// prompter renders interactive questions on stderr and reads answers from
// stdin. Prompt rendering stays here, outside the provisioning and seeding
// logic, which only ever sees resolved values.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// interactive reports whether stdin is a terminal.
func (p *prompter) interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm asks a yes/no question, returning the default on an empty answer.
func (p *prompter) Confirm(question string, defaultYes bool) bool {
	suffix := "[Y/n]"
	if !defaultYes {
		suffix = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s ", question, suffix)
	answer := strings.ToLower(p.readLine())
	if answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}

// Input asks for a string, returning the default on an empty answer.
func (p *prompter) Input(question, def string) string {
	fmt.Fprintf(p.out, "%s (%s) ", question, def)
	if answer := p.readLine(); answer != "" {
		return answer
	}
	return def
}

// Int asks for a number, returning the default on an empty or invalid answer.
func (p *prompter) Int(question string, def int) int {
	fmt.Fprintf(p.out, "%s (%d) ", question, def)
	answer := p.readLine()
	if answer == "" {
		return def
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(p.out, "not a number, using %d\n", def)
		return def
	}
	return n
}

// Password asks for a secret without echoing. Falls back to a plain read when
// stdin is not a terminal.
func (p *prompter) Password(question, def string) string {
	if !p.interactive() {
		return p.Input(question, def)
	}
	fmt.Fprintf(p.out, "%s ", question)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil || len(data) == 0 {
		return def
	}
	return string(data)
}

func (p *prompter) readLine() string {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
