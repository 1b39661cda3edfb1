package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/bnema/starrail-profile-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	credentialsFileMode = 0o600
	credentialsDirMode  = 0o700
	tempFilePattern     = ".credentials-*.toml.tmp"
)

// Repository stores the single credential record in a TOML file. Writes go
// through a temp file and a rename so readers never see a partial file.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CredentialRepository = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("credentials path is empty")
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Get(ctx context.Context) (domain.StoredCredentials, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredCredentials{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.StoredCredentials{}, err
	}
	if file.Credentials == nil {
		return domain.StoredCredentials{}, domain.ErrCredentialsNotFound
	}

	return fromSchema(*file.Credentials), nil
}

func (r *Repository) Save(ctx context.Context, credentials domain.StoredCredentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(credentials)
	file.Credentials = &encoded

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	if file.Credentials == nil {
		return domain.ErrCredentialsNotFound
	}

	file.Credentials = nil
	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read credentials file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode credentials file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), credentialsDirMode); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode credentials file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp credentials file: %w", err)
	}

	if err := tempFile.Chmod(credentialsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp credentials file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.path, credentialsFileMode); err != nil {
		return fmt.Errorf("chmod credentials file: %w", err)
	}

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve credentials path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(credentials domain.StoredCredentials) credentialsSchema {
	return credentialsSchema{
		UID:       string(credentials.Identifier),
		UserID:    credentials.UserID,
		SecretRef: credentials.SecretRef,
		UpdatedAt: formatTime(credentials.UpdatedAt),
	}
}

func fromSchema(entry credentialsSchema) domain.StoredCredentials {
	secretRef := entry.SecretRef
	if secretRef == "" && entry.UserID != "" {
		secretRef = domain.SessionTokenSecretKey(entry.UserID)
	}

	return domain.StoredCredentials{
		Identifier: domain.UID(entry.UID),
		UserID:     entry.UserID,
		SecretRef:  secretRef,
		UpdatedAt:  parseTime(entry.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
