package profile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxLevel is the character level cap used to scale the level bars.
const DefaultMaxLevel = 80

const levelBarWidth = 16

type RenderOptions struct {
	// MaxLevel scales the level bars. Zero means DefaultMaxLevel.
	MaxLevel int
	// ShowFetchedAt adds the fetch timestamp under the header.
	ShowFetchedAt bool
}

var titleCaser = cases.Title(language.English)

func renderView(profile domain.Profile, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(roleTitle(profile.Role)),
		s.header.Render(fmt.Sprintf("characters: %d", len(profile.Characters))),
	}

	if opts.ShowFetchedAt && !profile.FetchedAt.IsZero() {
		lines = append(lines, s.header.Render("fetched: "+profile.FetchedAt.UTC().Format(time.RFC3339)))
	}

	if len(profile.Characters) == 0 {
		lines = append(lines, s.empty.Render("No characters returned."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if top, ok := profile.HighestLevel(); ok {
		lines = append(lines, s.highlight.Render(fmt.Sprintf("highest: %s (Lv. %d)", top.Name, top.Level)))
	}

	nameWidth := 0
	for _, character := range profile.Characters {
		nameWidth = max(nameWidth, lipgloss.Width(character.Name))
	}

	rows := make([]string, 0, len(profile.Characters))
	for _, character := range profile.Characters {
		rows = append(rows, characterLine(character, nameWidth, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func roleTitle(role domain.RoleSummary) string {
	title := strings.TrimSpace(role.DisplayName)
	if role.Level > 0 {
		title = fmt.Sprintf("%s (TL %d)", title, role.Level)
	}
	if region := strings.TrimSpace(role.Region); region != "" {
		title = fmt.Sprintf("%s [%s]", title, region)
	}
	return title
}

func characterLine(character domain.Character, nameWidth int, opts RenderOptions, s styles) string {
	maxLevel := opts.MaxLevel
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}

	parts := []string{
		s.name.Width(nameWidth).Render(character.Name),
		" ",
		s.level.Render(fmt.Sprintf("Lv. %2d", character.Level)),
		" ",
		renderLevelBar(character.Level, maxLevel, levelBarWidth, s),
	}

	if meta := characterMeta(character); meta != "" {
		parts = append(parts, " ", s.meta.Render(meta))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func characterMeta(character domain.Character) string {
	fields := make([]string, 0, 3)
	if element := strings.TrimSpace(character.Element); element != "" {
		fields = append(fields, titleCaser.String(element))
	}
	if character.Rarity > 0 {
		fields = append(fields, fmt.Sprintf("%d★", character.Rarity))
	}
	if character.Rank > 0 {
		fields = append(fields, fmt.Sprintf("E%d", character.Rank))
	}
	return strings.Join(fields, " ")
}

func renderLevelBar(level, maxLevel, width int, s styles) string {
	if width <= 0 || maxLevel <= 0 {
		return ""
	}

	fraction := clampFraction(float64(level) / float64(maxLevel))
	filled := int(math.Round(float64(width) * fraction))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
