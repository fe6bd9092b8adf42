// Package prompt implements the interactive saltpass shell: field prompts
// with hidden input and re-prompting on invalid answers, and the session
// loop that turns answers into salted passwords.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Field describes one question.
type Field struct {
	// Description is printed before the colon.
	Description string
	// Hidden disables echo when reading from a terminal.
	Hidden bool
	// Required rejects an empty answer.
	Required bool
	// Default replaces an empty answer and is shown in parentheses.
	Default string
	// Conform, when set, must accept the answer.
	Conform func(string) bool
	// Message is printed when the answer is rejected.
	Message string
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New returns a Prompter. When in is a terminal, hidden fields are read
// without echo.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Ask prints the field's prompt until an acceptable answer is read. It
// returns io.EOF if the input ends before any answer is given.
func (p *Prompter) Ask(f Field) (string, error) {
	for {
		if f.Default != "" {
			fmt.Fprintf(p.out, "%s: (%s) ", f.Description, f.Default)
		} else {
			fmt.Fprintf(p.out, "%s: ", f.Description)
		}

		answer, err := p.read(f.Hidden)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = f.Default
		}

		if (f.Required && answer == "") || (f.Conform != nil && !f.Conform(answer)) {
			fmt.Fprintln(p.out, f.Message)
			continue
		}
		return answer, nil
	}
}

func (p *Prompter) read(hidden bool) (string, error) {
	if hidden && p.tty {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read hidden input: %w", err)
		}
		return string(b), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
