package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

type snapshot = viewstate.Snapshot[*domain.AggregateView]

type mockHolder struct {
	mock.Mock
}

func (m *mockHolder) Snapshot() snapshot {
	return m.Called().Get(0).(snapshot)
}

func (m *mockHolder) Load(ctx context.Context) snapshot {
	return m.Called(ctx).Get(0).(snapshot)
}

func (m *mockHolder) Refresh(ctx context.Context) snapshot {
	return m.Called(ctx).Get(0).(snapshot)
}

type mockLauncher struct {
	mock.Mock
}

func (m *mockLauncher) Open(url string) {
	m.Called(url)
}

func testView() *domain.AggregateView {
	updated := time.Now().Add(-48 * time.Hour)
	return &domain.AggregateView{
		Profile: domain.Profile{AvatarURL: "a.png", PublicRepoCount: 42, FollowerCount: 1200},
		TopRepositories: []domain.Repository{
			{ID: 2, Name: "expo-demos", Description: "demos", StarCount: 50, Language: "TypeScript", UpdatedAt: updated, URL: "https://github.com/betomoedano/expo-demos"},
			{ID: 1, Name: "dotfiles", Description: domain.NoDescription, StarCount: 10, Language: domain.UnknownLanguage, UpdatedAt: updated, URL: "https://github.com/betomoedano/dotfiles"},
		},
		TotalStars: 60,
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_LoadingThenReady(t *testing.T) {
	ready := snapshot{Status: viewstate.StatusReady, View: testView()}
	holder := new(mockHolder)
	holder.On("Load", mock.Anything).Return(ready)

	m := NewModel(context.Background(), holder, new(mockLauncher), "betomoedano")
	assert.Contains(t, m.View(), "Loading betomoedano")

	msg := m.load()
	m, _ = update(t, m, msg)

	out := m.View()
	assert.Contains(t, out, "Beto")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "Total Stars")
	assert.Contains(t, out, "expo-demos")
	assert.Contains(t, out, domain.NoDescription)
	assert.Contains(t, out, "2 days ago")
	holder.AssertExpectations(t)
}

func TestModel_ErrorWithoutContent(t *testing.T) {
	m := NewModel(context.Background(), new(mockHolder), new(mockLauncher), "betomoedano")
	m, _ = update(t, m, StateMsg(snapshot{Status: viewstate.StatusError, Error: "Failed to load data"}))

	out := m.View()
	assert.Contains(t, out, "Failed to load data")
	assert.Contains(t, out, "press r to try again")
	assert.NotContains(t, out, "Popular Repositories")
}

func TestModel_FailedRefreshShowsLastGood(t *testing.T) {
	m := NewModel(context.Background(), new(mockHolder), new(mockLauncher), "betomoedano")
	m, _ = update(t, m, StateMsg(snapshot{
		Status:      viewstate.StatusError,
		Error:       "Failed to load data",
		LastGood:    testView(),
		HasLastGood: true,
	}))

	out := m.View()
	assert.Contains(t, out, "Failed to load data")
	assert.Contains(t, out, "expo-demos")
}

func TestModel_Refresh(t *testing.T) {
	refreshed := snapshot{Status: viewstate.StatusReady, View: testView()}
	holder := new(mockHolder)
	holder.On("Refresh", mock.Anything).Return(refreshed).Once()

	m := NewModel(context.Background(), holder, new(mockLauncher), "betomoedano")
	m, _ = update(t, m, StateMsg(snapshot{Status: viewstate.StatusReady, View: testView()}))

	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.state.Refreshing)
	assert.Contains(t, m.View(), "refreshing")

	// A second press while refreshing is ignored.
	_, again := update(t, m, keyMsg("r"))
	assert.Nil(t, again)

	m, _ = update(t, m, cmd())
	assert.False(t, m.state.Refreshing)
	holder.AssertExpectations(t)
}

func TestModel_RefreshIgnoredWhileLoading(t *testing.T) {
	m := NewModel(context.Background(), new(mockHolder), new(mockLauncher), "betomoedano")
	_, cmd := update(t, m, keyMsg("r"))
	assert.Nil(t, cmd)
}

func TestModel_NavigateAndOpen(t *testing.T) {
	launcher := new(mockLauncher)
	launcher.On("Open", "https://github.com/betomoedano/dotfiles").Return()
	launcher.On("Open", "https://github.com/betomoedano").Return()

	m := NewModel(context.Background(), new(mockHolder), launcher, "betomoedano")
	m, _ = update(t, m, StateMsg(snapshot{Status: viewstate.StatusReady, View: testView()}))

	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 1, m.cursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, keyMsg("g"))
	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.cursor)

	launcher.AssertExpectations(t)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), new(mockHolder), new(mockLauncher), "betomoedano")
	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestForward_PushesHolderTransitions(t *testing.T) {
	var msgs []tea.Msg
	holder := viewstate.New(func(ctx context.Context) (*domain.AggregateView, error) {
		return testView(), nil
	}, viewstate.WithOnChange(Forward(func(msg tea.Msg) { msgs = append(msgs, msg) })))

	m := NewModel(context.Background(), holder, new(mockLauncher), "betomoedano")
	holder.Load(context.Background())

	require.Len(t, msgs, 2)
	m, _ = update(t, m, msgs[0])
	assert.Contains(t, m.View(), "Loading betomoedano")

	m, _ = update(t, m, msgs[1])
	assert.Contains(t, m.View(), "expo-demos")
}
