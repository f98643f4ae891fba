package cli

import (
	"context"
	"fmt"
	"io"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/mortydex/internal/session"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

// episodeMsg carries the result of one episode fetch.
type episodeMsg struct {
	index int
	title string
	err   error
}

// progressModel is the bubbletea model for episode resolution.
// Episodes are fetched one at a time; the next fetch is only issued once
// the previous one has returned.
type progressModel struct {
	ctx      context.Context
	api      session.API
	urls     []string
	titles   []string
	progress progress.Model
	theme    Theme
	done     bool
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(ctx context.Context, api session.API, urls []string) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		ctx:      ctx,
		api:      api,
		urls:     urls,
		titles:   make([]string, 0, len(urls)),
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init starts the first fetch.
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchEpisode(0),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case episodeMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("episode %s: %w", m.urls[msg.index], msg.err)
			m.done = true
			return m, tea.Quit
		}

		m.titles = append(m.titles, msg.title)
		if len(m.titles) == len(m.urls) {
			m.done = true
			return m, tea.Quit
		}

		return m, m.fetchEpisode(len(m.titles))

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.done {
		if m.err != nil {
			return m.theme.errorStyle().Render("✗ Episode lookup failed") + "\n"
		}
		return m.theme.completedStyle().Render(fmt.Sprintf("✓ %d episodes resolved", len(m.titles))) + "\n"
	}

	pct := float64(len(m.titles)) / float64(len(m.urls))
	status := m.theme.statusStyle().Render("[episodes]")
	counts := fmt.Sprintf("%d/%d", len(m.titles), len(m.urls))

	return fmt.Sprintf("%s %s %s\n", status, m.progress.ViewAs(pct), counts)
}

// fetchEpisode fetches the episode at index i.
// Runs as a command so Update() never blocks.
func (m progressModel) fetchEpisode(i int) tea.Cmd {
	u := m.urls[i]
	return func() tea.Msg {
		title, err := m.api.EpisodeName(m.ctx, u)
		return episodeMsg{index: i, title: title, err: err}
	}
}

// progressResolver returns a Resolver that renders a progress bar on out
// while episodes are fetched.
func progressResolver(api session.API, out io.Writer) session.Resolver {
	return func(ctx context.Context, urls []string) ([]string, error) {
		if len(urls) == 0 {
			return []string{}, nil
		}

		p := tea.NewProgram(
			newProgressModel(ctx, api, urls),
			tea.WithContext(ctx),
			tea.WithInput(nil),
			tea.WithOutput(out),
		)

		finalModel, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("progress UI error: %w", err)
		}

		m, ok := finalModel.(progressModel)
		if !ok {
			return nil, fmt.Errorf("progress UI error: unexpected model %T", finalModel)
		}
		if m.err != nil {
			return nil, m.err
		}
		return m.titles, nil
	}
}
