package ports

import (
	"context"

	"github.com/bnema/starrail-profile-cli/internal/domain"
)

type CredentialRepository interface {
	Get(ctx context.Context) (domain.StoredCredentials, error)
	Save(ctx context.Context, credentials domain.StoredCredentials) error
	Delete(ctx context.Context) error
}
