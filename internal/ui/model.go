// Package ui renders the portfolio screen in the terminal.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/links"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	metricStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Holder is the part of viewstate.Holder the screen drives.
type Holder interface {
	Snapshot() viewstate.Snapshot[*domain.AggregateView]
	Load(ctx context.Context) viewstate.Snapshot[*domain.AggregateView]
	Refresh(ctx context.Context) viewstate.Snapshot[*domain.AggregateView]
}

// LinkOpener opens an outbound link, fire-and-forget.
type LinkOpener interface {
	Open(url string)
}

// StateMsg carries a holder snapshot, either returned by a load or refresh
// command or pushed by the holder on every transition.
type StateMsg viewstate.Snapshot[*domain.AggregateView]

// Forward returns a holder observer that delivers each snapshot to the
// program through send, typically (*tea.Program).Send.
func Forward(send func(tea.Msg)) func(viewstate.Snapshot[*domain.AggregateView]) {
	return func(s viewstate.Snapshot[*domain.AggregateView]) {
		send(StateMsg(s))
	}
}

// Model is the bubbletea model of the portfolio screen.
type Model struct {
	ctx      context.Context
	holder   Holder
	launcher LinkOpener
	account  string
	identity links.Identity
	keys     KeyMap
	spinner  spinner.Model
	state    viewstate.Snapshot[*domain.AggregateView]
	cursor   int
}

// NewModel creates the screen model. ctx bounds every fetch it starts.
func NewModel(ctx context.Context, holder Holder, launcher LinkOpener, account string) Model {
	return Model{
		ctx:      ctx,
		holder:   holder,
		launcher: launcher,
		account:  account,
		identity: links.Owner,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		state:    viewstate.Snapshot[*domain.AggregateView]{Status: viewstate.StatusLoading},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m Model) load() tea.Msg {
	return StateMsg(m.holder.Load(m.ctx))
}

func (m Model) refresh() tea.Msg {
	return StateMsg(m.holder.Refresh(m.ctx))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.state = viewstate.Snapshot[*domain.AggregateView](msg)
		m.cursor = min(m.cursor, max(len(m.repositories())-1, 0))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		// Refresh is disabled while a load or another refresh is running.
		if m.state.Status == viewstate.StatusLoading || m.state.Refreshing {
			return m, nil
		}
		m.state.Refreshing = true
		return m, m.refresh

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.repositories())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if repos := m.repositories(); m.cursor < len(repos) {
			m.launcher.Open(repos[m.cursor].URL)
		}

	case key.Matches(msg, m.keys.Profile):
		m.launcher.Open(links.ProfileURL(m.account))
	}
	return m, nil
}

// visible returns the view to render: the current one or, after a failed
// refresh, the last good one.
func (m Model) visible() *domain.AggregateView {
	if m.state.View != nil {
		return m.state.View
	}
	if m.state.HasLastGood {
		return m.state.LastGood
	}
	return nil
}

func (m Model) repositories() []domain.Repository {
	if v := m.visible(); v != nil {
		return v.TopRepositories
	}
	return nil
}

// View implements tea.Model
func (m Model) View() string {
	view := m.visible()

	if m.state.Status == viewstate.StatusLoading && view == nil {
		return fmt.Sprintf("\n  %s Loading %s...\n", m.spinner.View(), m.account)
	}

	var b strings.Builder
	if m.state.Refreshing {
		b.WriteString(dimStyle.Render(m.spinner.View()+" refreshing") + "\n")
	}
	if m.state.Status == viewstate.StatusError {
		b.WriteString(errorStyle.Render(m.state.Error) + "\n")
		if view == nil {
			b.WriteString(dimStyle.Render("press r to try again") + "\n")
			return b.String()
		}
	}

	b.WriteString(titleStyle.Render(m.identity.Name) + "\n")
	b.WriteString(roleStyle.Render(m.identity.Role) + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		metricStyle.Render("Repositories\n"+humanize.Comma(int64(view.Profile.PublicRepoCount))),
		metricStyle.Render("Followers\n"+humanize.Comma(int64(view.Profile.FollowerCount))),
		metricStyle.Render("Total Stars\n"+humanize.Comma(int64(view.TotalStars))),
	) + "\n\n")

	b.WriteString(titleStyle.Render("Popular Repositories") + "\n")
	if len(view.TopRepositories) == 0 {
		b.WriteString(dimStyle.Render("  no public repositories") + "\n")
	}
	for i, repo := range view.TopRepositories {
		style, marker := normalStyle, "  "
		if i == m.cursor {
			style, marker = selectedStyle, "> "
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s ★ %s", marker, repo.Name, humanize.Comma(int64(repo.StarCount)))) + "\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s · %s · updated %s",
			repo.Description, repo.Language, humanize.Time(repo.UpdatedAt))) + "\n")
	}

	b.WriteString("\n" + m.help())
	return b.String()
}

func (m Model) help() string {
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, binding := range m.keys.bindings() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}
