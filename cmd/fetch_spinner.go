package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/starrail-profile-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const fetchStageCount = 2

type fetchDoneMsg struct {
	err error
}

type fetchStageMsg application.FetchProgress

type fetchSpinnerModel struct {
	spinner  spinner.Model
	progress application.FetchProgress
	step     lipgloss.Style
	fetch    tea.Cmd
	err      error
	done     bool
}

func newFetchSpinnerModel(fetch tea.Cmd) fetchSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("221"))),
	)

	return fetchSpinnerModel{
		spinner:  s,
		progress: application.FetchProgress{Stage: application.StageRoleSummary},
		step:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		fetch:    fetch,
	}
}

func (m fetchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m fetchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchStageMsg:
		m.progress = application.FetchProgress(msg)
		return m, nil
	case fetchDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m fetchSpinnerModel) View() string {
	if m.done {
		return ""
	}

	step := m.step.Render(fmt.Sprintf("[%d/%d]", m.progress.Stage, fetchStageCount))
	return fmt.Sprintf("%s %s %s", m.spinner.View(), step, fetchStageLabel(m.progress))
}

func fetchStageLabel(progress application.FetchProgress) string {
	if progress.Stage != application.StageCharacters {
		return "Fetching role summary..."
	}
	if progress.Role.DisplayName == "" {
		return "Fetching characters..."
	}
	return fmt.Sprintf("Fetching characters for %s (TL %d)...", progress.Role.DisplayName, progress.Role.Level)
}

// runFetchSpinner runs fetch under a spinner that follows its progress
// reports.
func runFetchSpinner(ctx context.Context, output io.Writer, fetch func(context.Context, func(application.FetchProgress)) error) error {
	var p *tea.Program
	report := func(progress application.FetchProgress) {
		p.Send(fetchStageMsg(progress))
	}
	fetchCmd := func() tea.Msg {
		return fetchDoneMsg{err: fetch(ctx, report)}
	}

	p = tea.NewProgram(
		newFetchSpinnerModel(fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(fetchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

// isTerminal reports whether w is an interactive terminal. The spinner only
// runs there so piped stderr carries nothing but diagnostics.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(f.Fd())
}
