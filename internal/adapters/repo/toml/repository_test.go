package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	repo, err := NewRepository(path)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "credentials.toml"))

	record := domain.StoredCredentials{
		Identifier: "800000001",
		UserID:     "42",
		SecretRef:  "hoyolab/42/ltoken",
		UpdatedAt:  time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), record))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestRepositorySaveReplacesExistingRecord(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "credentials.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.StoredCredentials{Identifier: "1", UserID: "41", SecretRef: "hoyolab/41/ltoken"}))
	require.NoError(t, repo.Save(context.Background(), domain.StoredCredentials{Identifier: "2", UserID: "42", SecretRef: "hoyolab/42/ltoken"}))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UID("2"), got.Identifier)
	assert.Equal(t, "42", got.UserID)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "credentials.toml"))

	require.ErrorIs(t, repo.Delete(context.Background()), domain.ErrCredentialsNotFound)

	require.NoError(t, repo.Save(context.Background(), domain.StoredCredentials{Identifier: "1", UserID: "42", SecretRef: "hoyolab/42/ltoken"}))
	require.NoError(t, repo.Delete(context.Background()))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialsNotFound)
}

func TestRepositoryMissingSecretRefFallsBackToDerivedKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[credentials]",
		"uid = \"800000001\"",
		"user_id = \"42\"",
		"",
	}, "\n")), 0o600))

	got, err := newTestRepository(t, path).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hoyolab/42/ltoken", got.SecretRef)
	assert.True(t, got.UpdatedAt.IsZero())
}

func TestRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".srp", "credentials.toml")
	repo := newTestRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.StoredCredentials{Identifier: "1", UserID: "42"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestRepositoryMissingFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "credentials.toml"))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialsNotFound)
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("credentials = ["), 0o600))

	_, err := newTestRepository(t, path).Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode credentials file")
}

func TestRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("  ")
	require.Error(t, err)
	assert.ErrorContains(t, err, "credentials path is empty")
}

func TestRepositoryRelativePathIsMadeAbsolute(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "credentials.toml")
	assert.True(t, filepath.IsAbs(repo.Path()))
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "credentials.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.StoredCredentials{Identifier: "1", UserID: "42"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesKeepFileReadable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	repoA := newTestRepository(t, path)
	repoB := newTestRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.StoredCredentials{
				Identifier: domain.UID(prefix + strconv.Itoa(i)),
				UserID:     prefix,
			})
		}
	}

	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Get(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b"}, got.UserID)
	assert.True(t, strings.HasPrefix(string(got.Identifier), got.UserID))
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	repo := newTestRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.StoredCredentials{Identifier: "1", UserID: "42", SecretRef: "hoyolab/42/ltoken"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[credentials]")
	assert.NotContains(t, string(data), "ltoken =")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))

	_, err := newTestRepository(t, path).Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported credentials schema version")
}
