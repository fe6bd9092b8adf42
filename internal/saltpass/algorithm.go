// Package saltpass implements the SaltThePass derivation scheme: a fixed
// registry of digest algorithms and the formula that turns a master
// password, domain name and domain phrase into a site password.
//
// Every function in this package is pure. Results must stay bit-for-bit
// identical across releases, so the tables below are a compatibility
// contract and are not configurable.
package saltpass

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha512"
	"hash"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the scheme
	"golang.org/x/crypto/sha3"
)

// Algorithm names a derivation scheme. Values are lowercase.
type Algorithm string

const (
	MD5       Algorithm = "md5"
	SHA1      Algorithm = "sha1"
	SHA2      Algorithm = "sha2"
	SHA3      Algorithm = "sha3"
	RIPEMD160 Algorithm = "ripemd160"
)

// Default is the algorithm used when the caller does not choose one.
const Default = SHA3

type scheme struct {
	newHash func() hash.Hash
	// length of the emitted password in characters.
	length int
}

// order is the documented listing order.
var order = []Algorithm{MD5, SHA1, SHA2, SHA3, RIPEMD160}

// SHA3 maps to Keccak-512 with the original padding, not FIPS 202
// SHA3-512. Passwords generated by existing clients depend on it.
var schemes = map[Algorithm]scheme{
	MD5:       {newHash: md5.New, length: 22},
	SHA1:      {newHash: sha1.New, length: 27},
	SHA2:      {newHash: sha512.New, length: 86},
	SHA3:      {newHash: sha3.NewLegacyKeccak512, length: 86},
	RIPEMD160: {newHash: ripemd160.New, length: 27},
}

// List returns the supported algorithms in their stable order.
func List() []Algorithm {
	out := make([]Algorithm, len(order))
	copy(out, order)
	return out
}

// Names returns List as plain strings, for help text and flag validation.
func Names() []string {
	out := make([]string, len(order))
	for i, a := range order {
		out[i] = string(a)
	}
	return out
}

// Resolve matches name case-insensitively against the registry.
func Resolve(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(name))
	if _, ok := schemes[a]; !ok {
		return "", &UnsupportedAlgorithmError{Name: name, Supported: List()}
	}
	return a, nil
}

// Length reports the number of characters a password derived with a has,
// or 0 for an unknown algorithm.
func (a Algorithm) Length() int {
	return schemes[a].length
}

func (a Algorithm) String() string {
	return string(a)
}
