package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Credentials *credentialsSchema `toml:"credentials,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported credentials schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type credentialsSchema struct {
	UID       string `toml:"uid"`
	UserID    string `toml:"user_id"`
	SecretRef string `toml:"secret_ref"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}
