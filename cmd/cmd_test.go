package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/apitest"
)

// execute runs the root command against srv with the given stdin and
// returns what it printed.
func execute(t *testing.T, srv *apitest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeEnv(t, srv, nil, stdin, args...)
}

// executeEnv is execute with extra LINGOFLOW_* variables set.
func executeEnv(t *testing.T, srv *apitest.Server, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"LINGOFLOW_CONFIG", "LINGOFLOW_SERVER_URL", "LINGOFLOW_LOG_FILE", "LINGOFLOW_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--server", srv.URL}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default. Cobra keeps
// flag values between Execute calls on the same command.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func newServer(t *testing.T, st apitest.State) *apitest.Server {
	t.Helper()
	srv := apitest.NewServer(st)
	t.Cleanup(srv.Close)
	return srv
}

func sampleHistory() apitest.State {
	return apitest.State{
		History: []api.HistoryEntry{
			{ID: 2, ScenarioID: "ordering_ramen", Timestamp: api.ParseTimestamp("2026-03-04 12:30:00"), PracticeLanguage: "Japanese", Model: "gemma3:4b"},
			{ID: 1, ScenarioID: "asking_directions", Timestamp: api.ParseTimestamp("2026-03-01T08:00:00Z"), PracticeLanguage: "Spanish", Model: "llama3.1:8b"},
		},
		Transcripts: map[int64][]api.Message{
			2: {
				{Speaker: api.SpeakerBot, Content: "いらっしゃいませ!"},
				{Speaker: api.SpeakerUser, Content: "ラーメンをください"},
			},
		},
		Summaries: map[int64]string{2: "**Great** use of ください."},
	}
}

func TestVersion(t *testing.T) {
	srv := newServer(t, apitest.State{})
	out, err := execute(t, srv, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lingoflow")
}

func TestScenariosList(t *testing.T) {
	srv := newServer(t, apitest.State{
		Scenarios: []api.Scenario{
			{ID: "ordering_ramen", Setting: "A ramen shop", Goal: "Order a bowl"},
			{ID: "asking_directions", Setting: "A train station", Goal: "Find platform 3"},
		},
	})

	out, err := execute(t, srv, "", "scenarios", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ordering_ramen")
	assert.Contains(t, out, "Find platform 3")
	assert.Contains(t, out, "2 scenarios")
}

func TestScenariosListEmpty(t *testing.T) {
	srv := newServer(t, apitest.State{})
	out, err := execute(t, srv, "", "scenarios", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios")
}

func TestScenariosGenerate(t *testing.T) {
	srv := newServer(t, apitest.State{
		Generated: []api.Scenario{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	})

	out, err := execute(t, srv, "", "scenarios", "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 3 scenarios.")
	assert.Len(t, srv.Snapshot().Scenarios, 3)
}

func TestScenariosGenerateFailure(t *testing.T) {
	srv := newServer(t, apitest.State{})
	_, err := execute(t, srv, "", "scenarios", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate scenarios")
}

func TestScenariosClipart(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := newServer(t, apitest.State{Clipart: map[string][]byte{"ramen.png": png}})
	path := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, srv, "", "scenarios", "clipart", "ramen.png", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 bytes")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestScenariosClipartRequiresOutput(t *testing.T) {
	srv := newServer(t, apitest.State{})
	_, err := execute(t, srv, "", "scenarios", "clipart", "ramen.png")
	require.Error(t, err)
	assert.Equal(t, 0, srv.Calls(apitest.RouteClipart))
}

func TestHistoryList(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ordering ramen")
	assert.Contains(t, out, "asking directions")
	assert.Contains(t, out, "2 conversations")
	assert.Less(t, strings.Index(out, "ordering ramen"), strings.Index(out, "asking directions"))
}

func TestHistoryListEmpty(t *testing.T) {
	srv := newServer(t, apitest.State{})
	out, err := execute(t, srv, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No completed conversations yet.")
}

func TestHistoryShow(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "", "history", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Partner: いらっしゃいませ!")
	assert.Contains(t, out, "You: ラーメンをください")
	assert.Contains(t, out, "Great")
}

func TestHistoryShowMissingSummary(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "", "history", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Empty transcript.")
	assert.Contains(t, out, "No breakdown available for this session.")
}

func TestHistoryShowSummaryFailureKeepsTranscript(t *testing.T) {
	srv := newServer(t, sampleHistory())
	srv.FailWith(apitest.RouteHistorySummary, 500)

	out, err := execute(t, srv, "", "history", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ラーメンをください")
	assert.Contains(t, out, "Could not load breakdown.")
}

func TestHistoryShowInvalidID(t *testing.T) {
	srv := newServer(t, sampleHistory())
	_, err := execute(t, srv, "", "history", "show", "abc")
	require.Error(t, err)
	assert.Equal(t, 0, srv.Calls(apitest.RouteHistoryDetail))
}

func TestHistoryDeleteConfirmed(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "y\n", "history", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted conversation 2.")

	hist := srv.Snapshot().History
	require.Len(t, hist, 1)
	assert.Equal(t, int64(1), hist[0].ID)
}

func TestHistoryDeleteDeclined(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "n\n", "history", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Equal(t, 0, srv.Calls(apitest.RouteDeleteHistory))
	assert.Len(t, srv.Snapshot().History, 2)
}

func TestHistoryClearWithYesFlag(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := execute(t, srv, "", "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
	assert.Empty(t, srv.Snapshot().History)
}

func TestHistoryClearDeclinedOnEOF(t *testing.T) {
	srv := newServer(t, sampleHistory())

	_, err := execute(t, srv, "", "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, 0, srv.Calls(apitest.RouteClearHistory))
}

func TestSettingsShowFillsDefaults(t *testing.T) {
	srv := newServer(t, apitest.State{
		Settings: api.Settings{Theme: "dark", PracticeLanguage: "Spanish", Score: 7},
	})

	out, err := execute(t, srv, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "Spanish")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "gemma3:4b")
	assert.Contains(t, out, "7")
}

func TestSettingsSetOverlaysChangedFlags(t *testing.T) {
	srv := newServer(t, apitest.State{
		Settings: api.Settings{Theme: "light", PracticeLanguage: "Japanese", UILanguage: "English", Model: "gemma3:4b", Score: 3},
	})

	out, err := execute(t, srv, "", "settings", "set", "--theme", "dark", "--practice-language", "French")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")

	got := srv.Snapshot().Settings
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "French", got.PracticeLanguage)
	assert.Equal(t, "English", got.UILanguage)
	assert.Equal(t, "gemma3:4b", got.Model)
	assert.Equal(t, 3, got.Score)
}

func TestSettingsSetRejectsUnknownTheme(t *testing.T) {
	srv := newServer(t, apitest.State{})

	_, err := execute(t, srv, "", "settings", "set", "--theme", "neon")
	require.Error(t, err)
	assert.Equal(t, 0, srv.Calls(apitest.RouteSaveSettings))
}

func TestSettingsSetNothingToChange(t *testing.T) {
	srv := newServer(t, apitest.State{})

	_, err := execute(t, srv, "", "settings", "set")
	require.Error(t, err)
	assert.Equal(t, 0, srv.Calls(apitest.RouteGetSettings))
}

func TestSettingsSetSaveFailure(t *testing.T) {
	srv := newServer(t, apitest.State{})
	srv.FailWith(apitest.RouteSaveSettings, 500)

	_, err := execute(t, srv, "", "settings", "set", "--model", "llama3.1:8b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save settings")
}

func TestModelsMarksCurrent(t *testing.T) {
	srv := newServer(t, apitest.State{
		Settings: api.Settings{Model: "llama3.1:8b"},
		Models: []api.Model{
			{Name: "gemma3:4b", ParameterSize: "4.3B"},
			{Name: "llama3.1:8b", ParameterSize: "8.0B"},
		},
	})

	out, err := execute(t, srv, "", "models")
	require.NoError(t, err)
	assert.Contains(t, out, "  gemma3:4b (4.3B)")
	assert.Contains(t, out, "* llama3.1:8b (8.0B)")
}

func TestModelsKeepsSavedModel(t *testing.T) {
	srv := newServer(t, apitest.State{
		Settings: api.Settings{Model: "custom:1b"},
		Models:   []api.Model{{Name: "gemma3:4b"}},
	})

	out, err := execute(t, srv, "", "models")
	require.NoError(t, err)
	assert.Contains(t, out, "* custom:1b (saved)")
}

func TestInvalidServerURL(t *testing.T) {
	srv := newServer(t, apitest.State{})
	_, err := execute(t, srv, "", "scenarios", "list", "--server", "ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp://example.com")
}

func TestServerFlagOverridesInvalidEnv(t *testing.T) {
	srv := newServer(t, sampleHistory())

	out, err := executeEnv(t, srv, map[string]string{"LINGOFLOW_SERVER_URL": "ftp://nowhere"}, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ordering ramen")
}

func TestInvalidServerFlagRejected(t *testing.T) {
	srv := newServer(t, sampleHistory())

	_, err := execute(t, srv, "", "history", "list", "--server", "ftp://nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
