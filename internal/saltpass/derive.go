package saltpass

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Alphabet lists every character a derived password can contain.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var encoding = base64.NewEncoding(Alphabet).WithPadding(base64.NoPadding)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// Request carries the inputs of a single derivation. None of the string
// fields are trimmed or case-folded.
type Request struct {
	Algorithm      Algorithm
	MasterPassword string `validate:"required" label:"master password"`
	DomainName     string `validate:"required" label:"domain name"`
	// DomainPhrase is optional and may be empty.
	DomainPhrase string
}

// Validate checks that the required fields are present.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, verrs[0].Field())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// Engine computes salted passwords. The zero value is ready to use and
// safe for concurrent use.
type Engine struct{}

// Derive resolves the request's algorithm, validates the request and
// returns the salted password.
func (Engine) Derive(req Request) (string, error) {
	alg, err := Resolve(string(req.Algorithm))
	if err != nil {
		return "", err
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	return salt(alg, req.MasterPassword+req.DomainName+req.DomainPhrase), nil
}

// Derive is the package-level entry point: it dispatches to the formula
// registered for algorithm.
func Derive(algorithm Algorithm, masterPassword, domainName, domainPhrase string) (string, error) {
	return Engine{}.Derive(Request{
		Algorithm:      algorithm,
		MasterPassword: masterPassword,
		DomainName:     domainName,
		DomainPhrase:   domainPhrase,
	})
}

// salt hashes input once and maps the digest onto Alphabet, six bits per
// character, most significant first.
func salt(alg Algorithm, input string) string {
	s := schemes[alg]
	h := s.newHash()
	h.Write([]byte(input))
	out := encoding.EncodeToString(h.Sum(nil))
	if len(out) > s.length {
		out = out[:s.length]
	}
	return out
}
