package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server_url = "https://journal.example.com"
data_dir = "/var/lib/learnlog"
log_level = "debug"
probe_interval = "10s"
request_timeout = "5s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://journal.example.com", cfg.ServerURL)
	assert.Equal(t, "/var/lib/learnlog", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ProbeInterval.Duration)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout.Duration)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server_url = "http://10.0.0.5:5000"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5000", cfg.ServerURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ProbeInterval.Duration)
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `sever_url = "http://localhost:5000"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
	assert.Contains(t, err.Error(), "sever_url")
}

func TestLoad_BadDurationFails(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `probe_interval = "soon"`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"relative server url", `server_url = "localhost:5000"`},
		{"empty server url", `server_url = ""`},
		{"bad log level", `log_level = "verbose"`},
		{"zero probe interval", `probe_interval = "0s"`},
		{"negative request timeout", `request_timeout = "-1s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
}

func TestResolve_PrecedenceChain(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server_url = "http://from-file:5000"
data_dir = "/from-file"
`)

	// File < env < CLI.
	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, ServerURL: "http://from-env:5000", DataDir: "/from-env"},
		CLIOverrides{ServerURL: "http://from-cli:5000"},
	)
	require.NoError(t, err)

	assert.Equal(t, "http://from-cli:5000", cfg.ServerURL)
	assert.Equal(t, "/from-env", cfg.DataDir, "env wins where no flag is set")
}

func TestResolve_CLIConfigPathWinsOverEnv(t *testing.T) {
	t.Parallel()

	envPath := writeConfig(t, `server_url = "http://env-file:5000"`)
	cliPath := writeConfig(t, `server_url = "http://cli-file:5000"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: envPath},
		CLIOverrides{ConfigPath: cliPath},
	)
	require.NoError(t, err)
	assert.Equal(t, "http://cli-file:5000", cfg.ServerURL)
}

func TestResolve_ValidatesAfterOverrides(t *testing.T) {
	t.Parallel()

	_, err := Resolve(
		EnvOverrides{ConfigPath: filepath.Join(t.TempDir(), "absent.toml")},
		CLIOverrides{ServerURL: "not a url"},
	)
	assert.Error(t, err)
}
