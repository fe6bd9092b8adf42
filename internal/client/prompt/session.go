package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/atinyakov/saltpass/internal/service"
)

// ErrKeepWithDomainName is returned by Run when keep mode is combined with
// a fixed domain name, which would derive the same password forever.
var ErrKeepWithDomainName = errors.New("keep mode is not compatible with a fixed domain name")

// Salter derives passwords for the session. *service.SaltService is the
// production implementation.
type Salter interface {
	Salt(req saltpass.Request) (service.Result, error)
}

// Session runs the interactive question-and-answer loop.
type Session struct {
	Prompter *Prompter
	Salter   Salter
	// Out receives the derived passwords.
	Out io.Writer

	// Algorithm, when set, is used instead of asking.
	Algorithm saltpass.Algorithm
	// DefaultAlgorithm replaces saltpass.Default as the prompt's default.
	DefaultAlgorithm saltpass.Algorithm
	// DomainName, when set, is used instead of asking for the domain name
	// and phrase; DomainPhrase then supplies the phrase.
	DomainName   string
	DomainPhrase string
	// Keep asks for another domain after each password until input ends.
	Keep bool

	master string
}

// Fields used by the session, in prompt order.
var (
	MasterPasswordField = Field{
		Description: "Master Password",
		Hidden:      true,
		Required:    true,
		Message:     "Master Password cannot be empty",
	}
	DomainNameField = Field{
		Description: "Domain Name",
		Required:    true,
		Message:     "Domain Name cannot be empty",
	}
	DomainPhraseField = Field{
		Description: "Domain Phrase",
		Hidden:      true,
	}
	AlgorithmField = Field{
		Description: "Algorithm",
		Default:     string(saltpass.Default),
		Conform: func(s string) bool {
			_, err := saltpass.Resolve(s)
			return err == nil
		},
		Message: "Algorithm must be one of " + strings.Join(saltpass.Names(), ", "),
	}
)

// Run asks for a master password and the first domain, prints its
// password and, in keep mode, repeats for further domains reusing the
// master password. Input ending before the first password is an error;
// in keep mode it ends the session normally afterwards.
func (s *Session) Run() error {
	if s.Keep && s.DomainName != "" {
		return ErrKeepWithDomainName
	}

	if err := s.round(); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("prompt: %w", io.ErrUnexpectedEOF)
		}
		return err
	}

	for s.Keep {
		if err := s.round(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Session) round() error {
	req := saltpass.Request{
		Algorithm:      s.Algorithm,
		MasterPassword: s.master,
		DomainName:     s.DomainName,
		DomainPhrase:   s.DomainPhrase,
	}

	var err error
	if req.MasterPassword == "" {
		if req.MasterPassword, err = s.Prompter.Ask(MasterPasswordField); err != nil {
			return err
		}
		s.master = req.MasterPassword
	}
	if req.DomainName == "" {
		if req.DomainName, err = s.Prompter.Ask(DomainNameField); err != nil {
			return err
		}
		if req.DomainPhrase, err = s.Prompter.Ask(DomainPhraseField); err != nil {
			return err
		}
	}
	if req.Algorithm == "" {
		field := AlgorithmField
		if s.DefaultAlgorithm != "" {
			field.Default = string(s.DefaultAlgorithm)
		}
		answer, err := s.Prompter.Ask(field)
		if err != nil {
			return err
		}
		req.Algorithm = saltpass.Algorithm(answer)
	}

	res, err := s.Salter.Salt(req)
	if err != nil {
		// Reported like a prompt error so keep mode can carry on.
		fmt.Fprintln(s.Out, err)
		return nil
	}

	fmt.Fprintf(s.Out, "Your password for '%s' is:\n  %s\n", res.DomainName, res.Password)
	return nil
}
