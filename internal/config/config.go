// Package config loads CLI settings from defaults, an optional config.toml,
// SRP_* environment variables and a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SRP"
	DirName    = ".srp"
	configName = "config"
	configType = "toml"

	DefaultTimeout    = 30 * time.Second
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultPassPrefix = "srp"

	SecretBackendAuto = "auto"
	SecretBackendPass = "pass"
	SecretBackendFile = "file"
)

const (
	KeyBaseURL         = "base_url"
	KeyRegion          = "region"
	KeyUserAgent       = "user_agent"
	KeyTimeout         = "timeout"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyCredentialsPath = "credentials_path"
	KeySecretsDir      = "secrets_dir"
	KeyPassPrefix      = "pass_prefix"
	KeySecretBackend   = "secret_backend"
	KeyUID             = "uid"
	KeyUserID          = "ltuid"
	KeySessionToken    = "ltoken"
)

var validate = validator.New()

type Config struct {
	// BaseURL overrides the production game-record host. Empty means production.
	BaseURL         string        `mapstructure:"base_url" validate:"omitempty,url"`
	Region          string        `mapstructure:"region"`
	UserAgent       string        `mapstructure:"user_agent"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"oneof=text json"`
	CredentialsPath string        `mapstructure:"credentials_path" validate:"required"`
	SecretsDir      string        `mapstructure:"secrets_dir" validate:"required"`
	PassPrefix      string        `mapstructure:"pass_prefix"`
	// SecretBackend selects where ltoken values live: pass with a file
	// fallback (auto), pass only, or files only.
	SecretBackend   string        `mapstructure:"secret_backend" validate:"oneof=auto pass file"`

	UID          string `mapstructure:"uid"`
	UserID       string `mapstructure:"ltuid"`
	SessionToken string `mapstructure:"ltoken"`
}

// Credentials returns the credential values supplied through config or env.
// Empty fields are filled later from the stored record.
func (c Config) Credentials() domain.Credentials {
	return domain.Credentials{
		Identifier:   domain.UID(c.UID),
		UserID:       c.UserID,
		SessionToken: c.SessionToken,
	}
}

// Dir is the per-user directory holding config.toml, credentials.toml and
// the file secret fallback.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, DirName)
}

func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if strings.TrimSpace(homeDir) == "" {
		return Config{}, errors.New("home directory is empty")
	}

	dir := Dir(homeDir)
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyRegion, "")
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyCredentialsPath, filepath.Join(dir, "credentials.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyPassPrefix, DefaultPassPrefix)
	v.SetDefault(KeySecretBackend, SecretBackendAuto)
	v.SetDefault(KeyUID, "")
	v.SetDefault(KeyUserID, "")
	v.SetDefault(KeySessionToken, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.Region = strings.TrimSpace(c.Region)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.SecretBackend = strings.ToLower(strings.TrimSpace(c.SecretBackend))
	c.UID = strings.TrimSpace(c.UID)
	c.UserID = strings.TrimSpace(c.UserID)
	c.SessionToken = strings.TrimSpace(c.SessionToken)
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q check", configKey(first.StructField()), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

func configKey(field string) string {
	switch field {
	case "BaseURL":
		return KeyBaseURL
	case "Timeout":
		return KeyTimeout
	case "LogLevel":
		return KeyLogLevel
	case "LogFormat":
		return KeyLogFormat
	case "CredentialsPath":
		return KeyCredentialsPath
	case "SecretsDir":
		return KeySecretsDir
	case "SecretBackend":
		return KeySecretBackend
	default:
		return field
	}
}
