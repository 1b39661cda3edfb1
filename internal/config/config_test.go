package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()

	dir := Dir(home)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, filepath.Join(home, ".srp", "credentials.toml"), cfg.CredentialsPath)
	assert.Equal(t, filepath.Join(home, ".srp", "secrets"), cfg.SecretsDir)
	assert.Equal(t, DefaultPassPrefix, cfg.PassPrefix)
	assert.Equal(t, SecretBackendAuto, cfg.SecretBackend)
	assert.Equal(t, domain.Credentials{}, cfg.Credentials())
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, `
base_url = "http://127.0.0.1:8080"
region = "prod_official_eur"
timeout = "5s"
log_level = "DEBUG"
log_format = "json"
uid = "800000001"
`)

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, "prod_official_eur", cfg.Region)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, domain.UID("800000001"), cfg.Credentials().Identifier)
}

func TestLoadEnvOverridesConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, `
uid = "800000001"
timeout = "5s"
`)
	t.Setenv("SRP_UID", "800000002")
	t.Setenv("SRP_LTUID", "42")
	t.Setenv("SRP_LTOKEN", " tok-env ")
	t.Setenv("SRP_TIMEOUT", "2s")

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, domain.Credentials{Identifier: "800000002", UserID: "42", SessionToken: "tok-env"}, cfg.Credentials())
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, "base_url = [")

	_, err := Load(viper.New(), home)
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "base url", env: map[string]string{"SRP_BASE_URL": "not a url"}, wantErr: "base_url"},
		{name: "log level", env: map[string]string{"SRP_LOG_LEVEL": "verbose"}, wantErr: "log_level"},
		{name: "log format", env: map[string]string{"SRP_LOG_FORMAT": "xml"}, wantErr: "log_format"},
		{name: "secret backend", env: map[string]string{"SRP_SECRET_BACKEND": "vault"}, wantErr: "secret_backend"},
		{name: "timeout", env: map[string]string{"SRP_TIMEOUT": "0s"}, wantErr: "timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New(), t.TempDir())
			require.Error(t, err)
			assert.ErrorContains(t, err, "invalid configuration")
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadRequiresHomeDir(t *testing.T) {
	_, err := Load(nil, " ")
	require.Error(t, err)
}

func TestLoadDotEnvSetsMissingVariablesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SRP_REGION=prod_official_asia\nSRP_LOG_FORMAT=json\n"), 0o600))

	t.Setenv("SRP_LOG_FORMAT", "text")
	t.Setenv("SRP_REGION", "")
	require.NoError(t, os.Unsetenv("SRP_REGION"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "prod_official_asia", os.Getenv("SRP_REGION"))
	assert.Equal(t, "text", os.Getenv("SRP_LOG_FORMAT"))
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
