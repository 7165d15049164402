package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OSPACK_DEBUG", "OSPACK_DRY_RUN", "OSPACK_STATE_PATH", "OSPACK_EXTRA_PATHS",
		"OSPACK_OVERRIDES", "OSPACK_FALLBACK_TOOL", "OSPACK_FALLBACK_RUNTIME",
		"OSPACK_FALLBACK_COMMAND", "OSPACK_FALLBACK_PROBE", "OSPACK_FALLBACK_SKIP_PROBE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "state.json", filepath.Base(cfg.StatePath))
	assert.Empty(t, cfg.ExtraPaths)
	assert.Empty(t, cfg.File)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "ospack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug: true
extra_paths:
  - /opt/perl/bin
fallback:
  tool: cpm
  command: "{{ .Tool }} install -g {{ .Module }}"
`), 0o644))

	t.Setenv("OSPACK_DRY_RUN", "1")
	t.Setenv("OSPACK_FALLBACK_TOOL", "cpanm")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"/opt/perl/bin"}, cfg.ExtraPaths)
	assert.Equal(t, "cpanm", cfg.Fallback.Tool, "environment beats the file")
	assert.Equal(t, "{{ .Tool }} install -g {{ .Module }}", cfg.Fallback.Command)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_ExtraPathsFromEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("OSPACK_EXTRA_PATHS", "/a/bin:/b/bin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/bin", "/b/bin"}, cfg.ExtraPaths)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OSPACK_DEBUG=true\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "true", os.Getenv("OSPACK_DEBUG"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
