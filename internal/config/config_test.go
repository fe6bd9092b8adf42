package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfig, "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, string(saltpass.SHA3), opts.Algorithm)
	assert.False(t, opts.Keep)
	assert.False(t, opts.NulSeparator)
	assert.False(t, opts.StandardizeDomain)
	assert.Equal(t, "warn", opts.Log.Level)
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "saltpass", "config.yaml"), "algorithm: SHA2\nkeep: true\n")

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sha2", opts.Algorithm)
	assert.True(t, opts.Keep)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
algorithm: md5
nulSeparator: true
standardizeDomain: true
log:
  level: debug
`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "md5", opts.Algorithm)
	assert.True(t, opts.NulSeparator)
	assert.True(t, opts.StandardizeDomain)
	assert.Equal(t, "debug", opts.Log.Level)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.yaml")
	writeFile(t, path, "algorithm: ripemd160\n")
	t.Setenv(EnvConfig, path)

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ripemd160", opts.Algorithm)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "algorithm: md5\nnulSeparator: false\nlog:\n  level: info\n")

	t.Setenv("SALTPASS_ALGORITHM", "sha1")
	t.Setenv("SALTPASS_NUL_SEPARATOR", "true")
	t.Setenv("SALTPASS_LOG_LEVEL", "error")
	t.Setenv("SALTPASS_UNKNOWN", "ignored")

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sha1", opts.Algorithm)
	assert.True(t, opts.NulSeparator)
	assert.Equal(t, "error", opts.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "algorithm: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_UnknownAlgorithm(t *testing.T) {
	isolate(t)
	t.Setenv("SALTPASS_ALGORITHM", "whirlpool")

	_, err := Load("")
	require.ErrorIs(t, err, saltpass.ErrUnsupportedAlgorithm)
}

func TestValidate_Canonicalises(t *testing.T) {
	opts := Defaults()
	opts.Algorithm = "RIPEMD160"
	require.NoError(t, opts.Validate())
	assert.Equal(t, "ripemd160", opts.Algorithm)
}
