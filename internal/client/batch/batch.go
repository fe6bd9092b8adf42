// Package batch implements the non-interactive mode: a master password on
// the first line followed by tab-separated domain lines, one salted
// password written per domain.
package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/atinyakov/saltpass/internal/service"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// ErrDomainNameFlag is returned when a fixed domain name is configured and
// domain lines arrive on the input.
var ErrDomainNameFlag = errors.New("domain-name option cannot be used with domain names piped in from STDIN")

// Salter derives passwords for the runner.
type Salter interface {
	Salt(req saltpass.Request) (service.Result, error)
}

// Runner reads requests from an input stream and writes results.
type Runner struct {
	Salter    Salter
	Algorithm saltpass.Algorithm
	// NulSeparated joins output fields with NUL and ends records with NUL
	// instead of tab and newline.
	NulSeparated bool
	// DomainNameSet marks that a domain name was given on the command
	// line, which is an error once a domain line is read.
	DomainNameSet bool
	Log           *zap.Logger
}

// Stats summarises a run.
type Stats struct {
	Derived  int
	Rejected int
}

// Run processes in until EOF. Lines failing validation are logged and
// skipped; write errors and setup errors stop the run.
func (r *Runner) Run(in io.Reader, out io.Writer) (Stats, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	var (
		stats  Stats
		master string
		lineNo int
	)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if master == "" {
			master = line
			continue
		}
		if r.DomainNameSet {
			return stats, ErrDomainNameFlag
		}
		if line == "" {
			continue
		}

		name, phrase := splitLine(line)
		res, err := r.Salter.Salt(saltpass.Request{
			Algorithm:      r.Algorithm,
			MasterPassword: master,
			DomainName:     name,
			DomainPhrase:   phrase,
		})
		if err != nil {
			if errors.Is(err, saltpass.ErrUnsupportedAlgorithm) {
				return stats, err
			}
			stats.Rejected++
			log.Warn("skipping line", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		if err := r.write(out, res); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		stats.Derived++
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	log.Debug("batch finished", zap.Int("derived", stats.Derived), zap.Int("rejected", stats.Rejected))
	return stats, nil
}

// splitLine returns the first two tab-separated columns.
func splitLine(line string) (name, phrase string) {
	cols := strings.SplitN(line, "\t", 3)
	name = cols[0]
	if len(cols) > 1 {
		phrase = cols[1]
	}
	return name, phrase
}

// write emits one record: password, domain name and phrase.
func (r *Runner) write(w io.Writer, res service.Result) error {
	sep, term := "\t", "\n"
	if r.NulSeparated {
		sep, term = "\x00", "\x00"
	}
	_, err := io.WriteString(w, strings.Join([]string{res.Password, res.DomainName, res.DomainPhrase}, sep)+term)
	return err
}
