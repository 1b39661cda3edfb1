package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/adapters/hoyolab"
	profilerender "github.com/bnema/starrail-profile-cli/internal/adapters/render/profile"
	tomlrepo "github.com/bnema/starrail-profile-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/starrail-profile-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/starrail-profile-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/starrail-profile-cli/internal/adapters/secrets/pass"
	"github.com/bnema/starrail-profile-cli/internal/application"
	"github.com/bnema/starrail-profile-cli/internal/config"
	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/bnema/starrail-profile-cli/internal/ports"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type app struct {
	cfg             config.Config
	service         *application.Service
	clock           ports.Clock
	profileRenderer func(*domain.Profile, profilerender.RenderOptions) (string, error)
	newSource       func(sourceOptions) ports.ProfileSource
}

// sourceOptions are the per-invocation settings of the game-record client,
// after flags have been applied over config.
type sourceOptions struct {
	BaseURL   string
	Region    string
	UserAgent string
	Timeout   time.Duration
}

func wireApp() (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, err
	}

	repo, err := tomlrepo.NewRepository(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("wire credential repository: %w", err)
	}

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		cfg:             cfg,
		service:         application.NewService(repo, secretStore, clock),
		clock:           clock,
		profileRenderer: profilerender.Render,
		newSource:       newHoyolabSource,
	}, nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.SecretBackend {
	case config.SecretBackendFile:
		return filestore.NewStore(afero.NewOsFs(), cfg.SecretsDir), nil
	case config.SecretBackendPass:
		return passstore.NewStore(cfg.PassPrefix), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(afero.NewOsFs(), cfg.SecretsDir, cfg.PassPrefix)
	}
}

func newHoyolabSource(opts sourceOptions) ports.ProfileSource {
	return hoyolab.Client{
		API:            hoyolab.DefaultAPI(opts.BaseURL),
		HTTPClient:     &http.Client{Timeout: opts.Timeout},
		UserAgent:      opts.UserAgent,
		Region:         opts.Region,
		RequestTimeout: opts.Timeout,
	}
}
