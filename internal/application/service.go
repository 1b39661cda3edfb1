package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/bnema/starrail-profile-cli/internal/ports"
)

var (
	ErrUserIDRequired       = errors.New("user id is required")
	ErrSessionTokenRequired = errors.New("session token is required")
)

// Service manages the single stored credential record. The ltoken lives in
// the secret store; the record only keeps a reference to it.
type Service struct {
	repo  ports.CredentialRepository
	store ports.SecretStore
	clock ports.Clock
}

func NewService(repo ports.CredentialRepository, store ports.SecretStore, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

func (s *Service) SetAuth(ctx context.Context, identifier domain.UID, userID, sessionToken string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}
	if strings.TrimSpace(sessionToken) == "" {
		return ErrSessionTokenRequired
	}

	previous, err := s.repo.Get(ctx)
	hasPrevious := true
	if err != nil {
		if !errors.Is(err, domain.ErrCredentialsNotFound) {
			return fmt.Errorf("get stored credentials: %w", err)
		}
		hasPrevious = false
	}

	secretKey := domain.SessionTokenSecretKey(userID)
	if err := s.store.Put(ctx, secretKey, sessionToken); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	record := domain.StoredCredentials{
		Identifier: domain.UID(strings.TrimSpace(string(identifier))),
		UserID:     userID,
		SecretRef:  secretKey,
		UpdatedAt:  s.clock.Now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return fmt.Errorf("save credentials and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("save credentials: %w", err)
	}

	if !hasPrevious || previous.SecretRef == "" || previous.SecretRef == secretKey {
		return nil
	}

	if err := s.store.Delete(ctx, previous.SecretRef); err != nil {
		var rollbackErr error
		if restoreErr := s.repo.Save(ctx, previous); restoreErr != nil {
			rollbackErr = errors.Join(rollbackErr, restoreErr)
		}
		if newSecretDeleteErr := s.store.Delete(ctx, secretKey); newSecretDeleteErr != nil {
			rollbackErr = errors.Join(rollbackErr, newSecretDeleteErr)
		}
		if rollbackErr != nil {
			return fmt.Errorf("delete previous session token and rollback credentials update: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("delete previous session token: %w", err)
	}

	return nil
}

func (s *Service) RemoveAuth(ctx context.Context) error {
	record, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("get stored credentials: %w", err)
	}

	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete stored credentials: %w", err)
	}

	if record.SecretRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, record.SecretRef); err != nil {
		if restoreErr := s.repo.Save(ctx, record); restoreErr != nil {
			return fmt.Errorf("delete session token and restore credentials: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete session token: %w", err)
	}

	return nil
}

func (s *Service) GetAuth(ctx context.Context) (domain.StoredCredentials, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		return domain.StoredCredentials{}, fmt.Errorf("get stored credentials: %w", err)
	}

	return record, nil
}

// ResolveCredentials fills the empty fields of overrides from the stored
// record. The stored ltoken is only used when the effective ltuid matches the
// stored one. A missing record is not an error.
func (s *Service) ResolveCredentials(ctx context.Context, overrides domain.Credentials) (domain.Credentials, error) {
	resolved := domain.Credentials{
		Identifier:   domain.UID(strings.TrimSpace(string(overrides.Identifier))),
		SessionToken: strings.TrimSpace(overrides.SessionToken),
		UserID:       strings.TrimSpace(overrides.UserID),
	}
	if resolved.Identifier != "" && resolved.UserID != "" && resolved.SessionToken != "" {
		return resolved, nil
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialsNotFound) {
			return resolved, nil
		}
		return domain.Credentials{}, fmt.Errorf("get stored credentials: %w", err)
	}

	if resolved.Identifier == "" {
		resolved.Identifier = stored.Identifier
	}
	if resolved.UserID == "" {
		resolved.UserID = stored.UserID
	}

	if resolved.SessionToken == "" && stored.SecretRef != "" && resolved.UserID == stored.UserID {
		token, err := s.store.Get(ctx, stored.SecretRef)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("load session token: %w", err)
		}
		resolved.SessionToken = strings.TrimSpace(token)
	}

	return resolved, nil
}
