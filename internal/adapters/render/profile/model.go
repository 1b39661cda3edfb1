package profile

import (
	"errors"
	"io"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")
	ErrNoProfile             = errors.New("no profile to render")
)

type renderReadyMsg struct{}

type model struct {
	profile domain.Profile
	opts    RenderOptions
	styles  styles
	output  string
}

func newModel(profile domain.Profile, opts RenderOptions) model {
	return model{
		profile: profile,
		opts:    opts,
		styles:  newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.profile, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func Render(profile *domain.Profile, opts RenderOptions) (string, error) {
	if profile == nil {
		return "", ErrNoProfile
	}

	p := tea.NewProgram(
		newModel(*profile, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
