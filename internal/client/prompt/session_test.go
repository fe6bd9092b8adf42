package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/atinyakov/saltpass/internal/service"
)

type fakeSalter struct {
	reqs []saltpass.Request
	err  error
}

func (f *fakeSalter) Salt(req saltpass.Request) (service.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return service.Result{}, f.err
	}
	return service.Result{
		Password:   "pw-" + req.DomainName,
		DomainName: req.DomainName,
		Algorithm:  req.Algorithm,
	}, nil
}

func newSession(input string, salter Salter) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return &Session{
		Prompter: New(strings.NewReader(input), &out),
		Salter:   salter,
		Out:      &out,
	}, &out
}

func TestSession_SinglePassword(t *testing.T) {
	salter := &fakeSalter{}
	s, out := newSession("secret\nexample.com\nphrase\nmd5\n", salter)

	require.NoError(t, s.Run())
	require.Len(t, salter.reqs, 1)
	assert.Equal(t, saltpass.Request{
		Algorithm:      "md5",
		MasterPassword: "secret",
		DomainName:     "example.com",
		DomainPhrase:   "phrase",
	}, salter.reqs[0])
	assert.Contains(t, out.String(), "Your password for 'example.com' is:\n  pw-example.com\n")
}

func TestSession_DefaultAlgorithm(t *testing.T) {
	salter := &fakeSalter{}
	s, _ := newSession("secret\nexample.com\n\n\n", salter)

	require.NoError(t, s.Run())
	require.Len(t, salter.reqs, 1)
	assert.Equal(t, saltpass.Algorithm("sha3"), salter.reqs[0].Algorithm)
	assert.Empty(t, salter.reqs[0].DomainPhrase)
}

func TestSession_FixedAlgorithmSkipsPrompt(t *testing.T) {
	salter := &fakeSalter{}
	s, out := newSession("secret\nexample.com\n\n", salter)
	s.Algorithm = saltpass.SHA1

	require.NoError(t, s.Run())
	assert.Equal(t, saltpass.SHA1, salter.reqs[0].Algorithm)
	assert.NotContains(t, out.String(), "Algorithm:")
}

func TestSession_FixedDomainSkipsPrompts(t *testing.T) {
	salter := &fakeSalter{}
	s, out := newSession("secret\n\n", salter)
	s.DomainName = "fixed.example"
	s.DomainPhrase = "p"

	require.NoError(t, s.Run())
	assert.Equal(t, "fixed.example", salter.reqs[0].DomainName)
	assert.Equal(t, "p", salter.reqs[0].DomainPhrase)
	assert.NotContains(t, out.String(), "Domain Name:")
	assert.NotContains(t, out.String(), "Domain Phrase:")
}

func TestSession_KeepReusesMaster(t *testing.T) {
	salter := &fakeSalter{}
	s, out := newSession("secret\na.com\n\nsha2\nb.com\nph\n\n", salter)
	s.Keep = true

	require.NoError(t, s.Run())
	require.Len(t, salter.reqs, 2)
	assert.Equal(t, "secret", salter.reqs[1].MasterPassword)
	assert.Equal(t, "b.com", salter.reqs[1].DomainName)
	assert.Equal(t, "ph", salter.reqs[1].DomainPhrase)
	assert.Equal(t, saltpass.Algorithm("sha3"), salter.reqs[1].Algorithm)
	assert.Equal(t, 1, strings.Count(out.String(), "Master Password: "))
}

func TestSession_EOFBeforeFirstPassword(t *testing.T) {
	s, _ := newSession("secret\n", &fakeSalter{})

	err := s.Run()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSession_KeepWithDomainName(t *testing.T) {
	s, _ := newSession("", &fakeSalter{})
	s.Keep = true
	s.DomainName = "x"

	assert.ErrorIs(t, s.Run(), ErrKeepWithDomainName)
}

func TestSession_SaltErrorIsPrinted(t *testing.T) {
	salter := &fakeSalter{err: errors.New("nope")}
	s, out := newSession("secret\nexample.com\n\n\n", salter)

	require.NoError(t, s.Run())
	assert.Contains(t, out.String(), "nope\n")
}

func TestSession_WithRealService(t *testing.T) {
	svc := service.NewSaltService(saltpass.Engine{}, nil)
	s, out := newSession("masterpassword\ndomainname\ndomainphrase\nRIPEMD160\n", svc)

	require.NoError(t, s.Run())
	assert.Contains(t, out.String(), "Your password for 'domainname' is:\n  Ngf-Tq1fIVzZ6bCXKoo7pWABbO0\n")
}

func TestSession_ConfiguredDefaultAlgorithm(t *testing.T) {
	salter := &fakeSalter{}
	s, out := newSession("secret\nexample.com\n\n\n", salter)
	s.DefaultAlgorithm = saltpass.MD5

	require.NoError(t, s.Run())
	assert.Equal(t, saltpass.Algorithm("md5"), salter.reqs[0].Algorithm)
	assert.Contains(t, out.String(), "Algorithm: (md5) ")
}
