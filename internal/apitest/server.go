// Package apitest provides an in-memory LingoFlow backend for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/lingoflow/internal/api"
)

// Route keys used by FailWith, RespondRaw and Calls.
const (
	RouteGetSettings    = "GET /api/settings"
	RouteSaveSettings   = "POST /api/settings"
	RouteModels         = "GET /api/models"
	RouteScenarios      = "GET /api/scenarios"
	RouteGenerate       = "POST /api/scenarios/generate"
	RouteClipart        = "GET /api/clipart/{name}"
	RouteTurn           = "POST /api/chat/turn"
	RouteHint           = "POST /api/chat/hint"
	RouteAbandon        = "POST /api/chat/abandon"
	RouteHistory        = "GET /api/history"
	RouteClearHistory   = "DELETE /api/history"
	RouteHistoryDetail  = "GET /api/history/{id}"
	RouteHistorySummary = "GET /api/history/{id}/summary"
	RouteDeleteHistory  = "DELETE /api/history/{id}"
)

// State is the backend's data. Tests fill it before issuing requests and
// inspect it afterwards through Server.Snapshot.
type State struct {
	Settings    api.Settings
	Models      []api.Model
	Scenarios   []api.Scenario
	Generated   []api.Scenario // installed by the generate endpoint
	History     []api.HistoryEntry
	Transcripts map[int64][]api.Message
	Summaries   map[int64]string
	Clipart     map[string][]byte
	Hint        string

	// Replies are served in order by the turn endpoint. When empty the
	// server echoes the message with a PENDING status.
	Replies []api.TurnResult

	// Received records every turn message and abandoned scenario id.
	Received  []string
	Abandoned []string
}

type override struct {
	status int
	body   string
}

// Server is a fake backend listening on a local httptest server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	state     State
	overrides map[string]override
	calls     map[string]int
}

// NewServer starts a fake backend with the given initial state. Close it
// when done.
func NewServer(initial State) *Server {
	s := &Server{
		state:     initial,
		overrides: make(map[string]override),
		calls:     make(map[string]int),
	}
	if s.state.Transcripts == nil {
		s.state.Transcripts = make(map[int64][]api.Message)
	}
	if s.state.Summaries == nil {
		s.state.Summaries = make(map[int64]string)
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handle(RouteGetSettings, s.getSettings))
		r.Post("/settings", s.handle(RouteSaveSettings, s.saveSettings))
		r.Get("/models", s.handle(RouteModels, s.listModels))
		r.Get("/scenarios", s.handle(RouteScenarios, s.listScenarios))
		r.Post("/scenarios/generate", s.handle(RouteGenerate, s.generate))
		r.Get("/clipart/{name}", s.handle(RouteClipart, s.clipart))
		r.Post("/chat/turn", s.handle(RouteTurn, s.turn))
		r.Post("/chat/hint", s.handle(RouteHint, s.hint))
		r.Post("/chat/abandon", s.handle(RouteAbandon, s.abandon))
		r.Get("/history", s.handle(RouteHistory, s.listHistory))
		r.Delete("/history", s.handle(RouteClearHistory, s.clearHistory))
		r.Get("/history/{id}", s.handle(RouteHistoryDetail, s.historyDetail))
		r.Get("/history/{id}/summary", s.handle(RouteHistorySummary, s.historySummary))
		r.Delete("/history/{id}", s.handle(RouteDeleteHistory, s.deleteHistory))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// FailWith makes route answer with status and an error body.
func (s *Server) FailWith(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = override{status: status, body: `{"detail":"injected failure"}`}
}

// RespondRaw makes route answer 200 with body verbatim.
func (s *Server) RespondRaw(route, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = override{status: http.StatusOK, body: body}
}

// Calls returns how many requests route has received.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Snapshot returns a copy of the current state.
func (s *Server) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Scenarios = append([]api.Scenario(nil), s.state.Scenarios...)
	st.History = append([]api.HistoryEntry(nil), s.state.History...)
	st.Received = append([]string(nil), s.state.Received...)
	st.Abandoned = append([]string(nil), s.state.Abandoned...)
	return st
}

// handle counts the call, applies any override and otherwise runs h with
// the state lock held.
func (s *Server) handle(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls[route]++
		if o, ok := s.overrides[route]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(o.status)
			_, _ = w.Write([]byte(o.body))
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func success(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Settings)
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	var in api.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	in.Score = s.state.Settings.Score
	s.state.Settings = in
	success(w)
}

func (s *Server) listModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": s.state.Models})
}

func (s *Server) listScenarios(w http.ResponseWriter, _ *http.Request) {
	scenarios := s.state.Scenarios
	if scenarios == nil {
		scenarios = []api.Scenario{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": scenarios})
}

func (s *Server) generate(w http.ResponseWriter, _ *http.Request) {
	if len(s.state.Generated) == 0 {
		writeError(w, http.StatusInternalServerError, "Failed to generate scenarios")
		return
	}
	s.state.Scenarios = append([]api.Scenario(nil), s.state.Generated...)
	success(w)
}

func (s *Server) clipart(w http.ResponseWriter, r *http.Request) {
	data, ok := s.state.Clipart[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) turn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !s.hasScenario(in.ScenarioID) {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}
	s.state.Received = append(s.state.Received, in.Message)

	if len(s.state.Replies) == 0 {
		writeJSON(w, http.StatusOK, api.TurnResult{BotMessage: "echo: " + in.Message, Status: api.StatusPending})
		return
	}
	reply := s.state.Replies[0]
	s.state.Replies = s.state.Replies[1:]
	if reply.Status.Reached() {
		s.state.Settings.Score++
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) hint(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !s.hasScenario(in.ScenarioID) {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"hint": s.state.Hint})
}

func (s *Server) abandon(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.state.Abandoned = append(s.state.Abandoned, in.ScenarioID)
	success(w)
}

func (s *Server) listHistory(w http.ResponseWriter, _ *http.Request) {
	history := s.state.History
	if history == nil {
		history = []api.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) clearHistory(w http.ResponseWriter, _ *http.Request) {
	s.state.History = nil
	s.state.Transcripts = make(map[int64][]api.Message)
	s.state.Summaries = make(map[int64]string)
	success(w)
}

func (s *Server) historyDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversation": s.state.Transcripts[id]})
}

func (s *Server) historySummary(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	summary, found := s.state.Summaries[id]
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"summary": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (s *Server) deleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	kept := s.state.History[:0]
	for _, e := range s.state.History {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.state.History = kept
	delete(s.state.Transcripts, id)
	delete(s.state.Summaries, id)
	success(w)
}

func (s *Server) hasScenario(id string) bool {
	for _, sc := range s.state.Scenarios {
		if sc.ID == id {
			return true
		}
	}
	return false
}

func historyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid history id")
		return 0, false
	}
	return id, true
}
