package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *domain.Profile {
	return &domain.Profile{
		Role: domain.RoleSummary{DisplayName: "Stelle", Level: 70, Region: "prod_official_usa"},
		Characters: []domain.Character{
			{ID: 1001, Name: "March 7th", Level: 60, Element: "ice", Rarity: 4, Rank: 6},
			{ID: 1005, Name: "Kafka", Level: 80, Element: "lightning", Rarity: 5, Rank: 2},
		},
		FetchedAt: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC),
	}
}

func TestRenderProfileSummaryAndRoster(t *testing.T) {
	output, err := Render(sampleProfile(), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "Stelle (TL 70) [prod_official_usa]")
	assert.Contains(t, output, "characters: 2")
	assert.Contains(t, output, "highest: Kafka (Lv. 80)")
	assert.Contains(t, output, "March 7th")
	assert.Contains(t, output, "Lv. 60")
	assert.Contains(t, output, "Lightning 5★ E2")
	assert.Contains(t, output, "Ice 4★ E6")
	assert.NotContains(t, output, "fetched:")
}

func TestRenderKeepsCharacterOrder(t *testing.T) {
	output, err := Render(sampleProfile(), RenderOptions{})
	require.NoError(t, err)

	assert.Less(t, strings.Index(output, "March 7th"), strings.Index(output, "Kafka  "))
}

func TestRenderLevelBarScalesWithMaxLevel(t *testing.T) {
	output, err := Render(&domain.Profile{
		Role:       domain.RoleSummary{DisplayName: "Caelus"},
		Characters: []domain.Character{{Name: "Dan Heng", Level: 40}},
	}, RenderOptions{MaxLevel: 80})
	require.NoError(t, err)

	assert.Contains(t, output, "[========--------]")
}

func TestRenderMinimalFieldsOmitsOptionalMeta(t *testing.T) {
	output, err := Render(&domain.Profile{
		Role:       domain.RoleSummary{DisplayName: "Caelus"},
		Characters: []domain.Character{{Name: "Dan Heng", Level: 80}},
	}, RenderOptions{})
	require.NoError(t, err)

	lines := strings.Split(output, "\n")
	assert.Equal(t, "Caelus", strings.TrimSpace(lines[0]))
	assert.NotContains(t, output, "★")
	assert.Contains(t, output, "[================]")
}

func TestRenderEmptyRoster(t *testing.T) {
	output, err := Render(&domain.Profile{
		Role:       domain.RoleSummary{DisplayName: "Stelle"},
		Characters: []domain.Character{},
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "characters: 0")
	assert.Contains(t, output, "No characters returned.")
	assert.NotContains(t, output, "highest:")
}

func TestRenderShowsFetchedAtWhenRequested(t *testing.T) {
	output, err := Render(sampleProfile(), RenderOptions{ShowFetchedAt: true})
	require.NoError(t, err)

	assert.Contains(t, output, "fetched: 2026-02-14T11:00:00Z")
}

func TestRenderNilProfile(t *testing.T) {
	_, err := Render(nil, RenderOptions{})
	require.ErrorIs(t, err, ErrNoProfile)
}
