package history

import (
	"net/http"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/apitest"
	hist "github.com/abhisek/lingoflow/internal/history"
	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/screen/screentest"
	"github.com/abhisek/lingoflow/internal/screens/transcript"
	"github.com/abhisek/lingoflow/internal/session"
)

func entries() []api.HistoryEntry {
	return []api.HistoryEntry{
		{ID: 2, ScenarioID: "train_ticket", PracticeLanguage: "Japanese", Model: "gemma3:4b", Timestamp: api.ParseTimestamp("2025-03-02 10:00:00")},
		{ID: 1, ScenarioID: "cafe_order", PracticeLanguage: "Spanish", Model: "hf.co/some-org/very-long-model-name:q4", Timestamp: api.ParseTimestamp("2025-03-01 09:30:00")},
	}
}

func open(t *testing.T, state apitest.State) (*HistoryScreen, screen.Deps, *apitest.Server) {
	t.Helper()
	deps, srv := screentest.Deps(t, state)
	require.NoError(t, deps.Session.OpenHistory())
	h := New(deps)
	s, _ := screentest.Feed(h, h.Init())
	return s.(*HistoryScreen), deps, srv
}

func TestLoadsEntries(t *testing.T) {
	h, _, _ := open(t, apitest.State{History: entries()})

	require.Len(t, h.browser.Entries, 2)
	view := h.View(100, 30)
	assert.Contains(t, view, "train ticket")
	assert.Contains(t, view, "🇪🇸 Spanish")
	assert.Contains(t, view, "gemma3:4b")
	assert.Contains(t, view, "hf.co/some-org/very-…")
	assert.NotContains(t, view, "long-model-name")
}

func TestRowsFitContentWidth(t *testing.T) {
	h, _, _ := open(t, apitest.State{History: entries()})

	rows := h.renderEntries(76, 10)
	assert.Equal(t, 2, lipgloss.Height(rows), "no row wraps")
}

func TestEmptyAndFailedStates(t *testing.T) {
	h, _, _ := open(t, apitest.State{})
	assert.Contains(t, h.View(100, 30), hist.EmptyText)

	deps, srv := screentest.Deps(t, apitest.State{})
	srv.FailWith(apitest.RouteHistory, http.StatusInternalServerError)
	require.NoError(t, deps.Session.OpenHistory())
	failed := New(deps)
	s, _ := screentest.Feed(failed, failed.Init())
	assert.Contains(t, s.View(100, 30), hist.LoadFailedText)
}

func TestOpenDetail(t *testing.T) {
	h, deps, _ := open(t, apitest.State{History: entries()})

	s, _ := screentest.Press(h, "down")
	_, msgs := screentest.Press(s, "enter")

	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &transcript.TranscriptScreen{}, push.Screen)
	assert.Equal(t, session.ViewHistoryDetail, deps.Session.View())
	assert.Equal(t, int64(1), deps.Session.HistoryID())
}

func TestDeleteOne(t *testing.T) {
	h, _, srv := open(t, apitest.State{History: entries()})

	s, _ := screentest.Press(h, "d")
	assert.Equal(t, confirmDelete, s.(*HistoryScreen).confirm)

	s, _ = screentest.Press(s, "y")
	h = s.(*HistoryScreen)

	require.Len(t, h.browser.Entries, 1)
	assert.Equal(t, int64(1), h.browser.Entries[0].ID)
	assert.Equal(t, 1, srv.Calls(apitest.RouteDeleteHistory))
	assert.Equal(t, 1, srv.Calls(apitest.RouteHistory), "single delete does not re-fetch")
}

func TestDeleteCancelled(t *testing.T) {
	h, _, srv := open(t, apitest.State{History: entries()})

	s, _ := screentest.Press(h, "d")
	s, _ = screentest.Press(s, "n")

	assert.Len(t, s.(*HistoryScreen).browser.Entries, 2)
	assert.Zero(t, srv.Calls(apitest.RouteDeleteHistory))
}

func TestDeleteFailure(t *testing.T) {
	h, _, srv := open(t, apitest.State{History: entries()})
	srv.FailWith(apitest.RouteDeleteHistory, http.StatusInternalServerError)

	s, _ := screentest.Press(h, "d")
	s, _ = screentest.Press(s, "y")
	h = s.(*HistoryScreen)

	assert.Len(t, h.browser.Entries, 2)
	assert.Contains(t, h.View(100, 30), deleteFailedText)
}

func TestClearAllRefetches(t *testing.T) {
	h, _, srv := open(t, apitest.State{History: entries()})

	s, _ := screentest.Press(h, "c")
	assert.Equal(t, confirmClear, s.(*HistoryScreen).confirm)
	s, _ = screentest.Press(s, "y")
	h = s.(*HistoryScreen)

	assert.Equal(t, 1, srv.Calls(apitest.RouteClearHistory))
	assert.Equal(t, 2, srv.Calls(apitest.RouteHistory))
	assert.True(t, h.browser.Empty())
}

func TestEscClosesHistory(t *testing.T) {
	h, deps, _ := open(t, apitest.State{})

	_, msgs := screentest.Press(h, "esc")

	assert.Equal(t, []tea.Msg{router.PopScreenMsg{}}, msgs)
	assert.Equal(t, session.ViewDashboard, deps.Session.View())
}

func TestResultsForOtherInstanceIgnored(t *testing.T) {
	h, _, _ := open(t, apitest.State{History: entries()})

	h.Update(historyLoadedMsg{Owner: h.id + 1000})
	assert.Len(t, h.browser.Entries, 2)
}
