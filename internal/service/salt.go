// Package service provides the password-salting business logic used by the
// interactive and batch shells, delegating the derivation itself to a
// Deriver.
package service

import (
	"go.uber.org/zap"

	"github.com/atinyakov/saltpass/internal/saltpass"
)

// Deriver defines the derivation operation required by the salt service.
// saltpass.Engine is the production implementation.
type Deriver interface {
	// Derive returns the salted password for req, or an error matching
	// saltpass.ErrUnsupportedAlgorithm or saltpass.ErrInvalidInput.
	Derive(req saltpass.Request) (string, error)
}

// Result is a derived password together with the inputs that are safe to
// print next to it.
type Result struct {
	// Password is the salted password.
	Password string
	// DomainName is the domain actually salted, after standardization.
	DomainName string
	// DomainPhrase is echoed back for batch output.
	DomainPhrase string
	// Algorithm is the canonical algorithm name used.
	Algorithm saltpass.Algorithm
}

// SaltService implements password salting by delegating to a Deriver.
type SaltService struct {
	// deriver performs the derivation.
	deriver Deriver
	// log receives debug records; it never sees secrets.
	log *zap.Logger
	// standardize reduces URLs to bare domains before deriving.
	standardize bool
}

// Option configures a SaltService.
type Option func(*SaltService)

// WithStandardizeDomain enables saltpass.StandardizeDomain on every
// request's domain name.
func WithStandardizeDomain(on bool) Option {
	return func(s *SaltService) { s.standardize = on }
}

// NewSaltService constructs a SaltService using the provided deriver.
// A nil logger is replaced by a no-op logger.
func NewSaltService(deriver Deriver, log *zap.Logger, opts ...Option) *SaltService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SaltService{deriver: deriver, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Salt derives the password for req. Validation errors from the deriver
// are returned unchanged so callers can match them with errors.Is.
func (s *SaltService) Salt(req saltpass.Request) (Result, error) {
	if s.standardize {
		req.DomainName = saltpass.StandardizeDomain(req.DomainName)
	}

	alg, err := saltpass.Resolve(string(req.Algorithm))
	if err != nil {
		return Result{}, err
	}
	req.Algorithm = alg

	password, err := s.deriver.Derive(req)
	if err != nil {
		s.log.Debug("derivation rejected", zap.String("algorithm", string(alg)), zap.Error(err))
		return Result{}, err
	}

	s.log.Debug("password derived",
		zap.String("algorithm", string(alg)),
		zap.Bool("phrase", req.DomainPhrase != ""),
		zap.Bool("standardized", s.standardize),
	)

	return Result{
		Password:     password,
		DomainName:   req.DomainName,
		DomainPhrase: req.DomainPhrase,
		Algorithm:    alg,
	}, nil
}
