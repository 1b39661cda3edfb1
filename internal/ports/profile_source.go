package ports

import (
	"context"

	"github.com/bnema/starrail-profile-cli/internal/domain"
)

// ProfileSource fetches the two halves of a player profile. Errors are
// *domain.FetchError values.
type ProfileSource interface {
	FetchRoleSummary(ctx context.Context, creds domain.Credentials) (domain.RoleSummary, error)
	FetchCharacters(ctx context.Context, creds domain.Credentials) ([]domain.Character, error)
}
