package domain

import (
	"fmt"
	"time"
)

// UID is the in-game account identifier queried on the game-record API.
type UID string

type Credentials struct {
	Identifier   UID
	SessionToken string
	UserID       string
}

// Cookie renders the credential pair in the form the game-record API expects.
func (c Credentials) Cookie() string {
	return fmt.Sprintf("ltoken=%s; ltuid=%s", c.SessionToken, c.UserID)
}

type RoleSummary struct {
	DisplayName string `json:"nickname"`
	Level       int    `json:"level,omitempty"`
	Region      string `json:"region,omitempty"`
}

type Character struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Element string `json:"element,omitempty"`
	Rarity  int    `json:"rarity,omitempty"`
	Rank    int    `json:"rank,omitempty"`
}

// Profile is the merged role summary and character roster of one fetch.
type Profile struct {
	Role       RoleSummary `json:"role_info"`
	Characters []Character `json:"characters"`
	FetchedAt  time.Time   `json:"fetched_at"`
}

func (p Profile) HighestLevel() (Character, bool) {
	if len(p.Characters) == 0 {
		return Character{}, false
	}

	best := p.Characters[0]
	for _, character := range p.Characters[1:] {
		if character.Level > best.Level {
			best = character
		}
	}

	return best, true
}
