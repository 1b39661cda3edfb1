package domain

import (
	"fmt"
	"strings"
	"time"
)

type StoredCredentials struct {
	Identifier UID
	UserID     string
	// SecretRef points to the secret-store entry holding the ltoken.
	SecretRef string
	UpdatedAt time.Time
}

// SessionTokenSecretKey returns the secret-store key for a user id's ltoken.
func SessionTokenSecretKey(userID string) string {
	return fmt.Sprintf("hoyolab/%s/ltoken", strings.TrimSpace(userID))
}
