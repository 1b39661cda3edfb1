package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/bnema/starrail-profile-cli/internal/ports"
	"github.com/google/uuid"
)

// FetchStage is the request a profile fetch is about to issue.
type FetchStage int

const (
	StageRoleSummary FetchStage = iota + 1
	StageCharacters
)

// FetchProgress is reported before each request. Role is set once the role
// summary has been read.
type FetchProgress struct {
	Stage FetchStage
	Role  domain.RoleSummary
}

type ProfileService struct {
	source ports.ProfileSource
	clock  ports.Clock
	logger *slog.Logger
}

func NewProfileService(source ports.ProfileSource, clock ports.Clock, logger *slog.Logger) *ProfileService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ProfileService{source: source, clock: clock, logger: logger}
}

// Fetch reads the role summary, then the character roster, and merges them.
// On any failure it logs a single diagnostic record and returns a nil profile
// together with the *domain.FetchError that stopped it. The character request
// is never issued when the role summary request fails.
func (s *ProfileService) Fetch(ctx context.Context, creds domain.Credentials) (*domain.Profile, error) {
	return s.FetchWithProgress(ctx, creds, nil)
}

// FetchWithProgress is Fetch with a callback invoked before each request.
func (s *ProfileService) FetchWithProgress(ctx context.Context, creds domain.Credentials, progress func(FetchProgress)) (*domain.Profile, error) {
	if progress == nil {
		progress = func(FetchProgress) {}
	}
	logger := s.logger.With("request_id", uuid.NewString(), "uid", string(creds.Identifier))

	progress(FetchProgress{Stage: StageRoleSummary})
	logger.Debug("fetching role summary", "endpoint", "role")
	role, err := s.source.FetchRoleSummary(ctx, creds)
	if err != nil {
		return nil, s.fail(logger, fmt.Errorf("fetch role summary: %w", err))
	}

	progress(FetchProgress{Stage: StageCharacters, Role: role})
	logger.Debug("fetching characters", "endpoint", "characters")
	characters, err := s.source.FetchCharacters(ctx, creds)
	if err != nil {
		return nil, s.fail(logger, fmt.Errorf("fetch characters: %w", err))
	}
	if characters == nil {
		characters = []domain.Character{}
	}

	logger.Debug("profile fetched", "characters", len(characters))

	return &domain.Profile{
		Role:       role,
		Characters: characters,
		FetchedAt:  s.clock.Now(),
	}, nil
}

func (s *ProfileService) fail(logger *slog.Logger, err error) error {
	kind := "unknown"
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		kind = string(fetchErr.Kind)
	}

	logger.Error("fetch profile failed", "kind", kind, "error", err)
	return err
}
