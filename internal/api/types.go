package api

import (
	"encoding/json"
	"strings"
	"time"
)

// Settings is the user's preference record as stored by the backend.
type Settings struct {
	Theme            string `json:"theme"`
	PracticeLanguage string `json:"practice_language"`
	UILanguage       string `json:"ui_language"`
	Model            string `json:"model"`
	Score            int    `json:"score"`
}

// Model is one entry from the server's model catalogue.
type Model struct {
	Name          string `json:"name"`
	ParameterSize string `json:"parameter_size,omitempty"`
}

// Label is the picker text: "name (size)" when the size is known.
func (m Model) Label() string {
	if m.ParameterSize == "" {
		return m.Name
	}
	return m.Name + " (" + m.ParameterSize + ")"
}

// Scenario is a role-play situation with a goal the user must reach.
type Scenario struct {
	ID          string `json:"id"`
	Setting     string `json:"setting"`
	Goal        string `json:"goal"`
	Description string `json:"description"`
	Clipart     string `json:"clipart"`
}

// TurnStatus is the server's verdict on whether the goal was reached.
type TurnStatus string

const (
	StatusPending TurnStatus = "PENDING"
	StatusActive  TurnStatus = "ACTIVE"
	StatusReached TurnStatus = "REACHED"
)

// Reached reports whether the session has ended.
func (s TurnStatus) Reached() bool { return s == StatusReached }

// TurnResult is the reply to one user turn.
type TurnResult struct {
	BotMessage string     `json:"bot_message"`
	Status     TurnStatus `json:"status"`
	Summary    string     `json:"summary"`
}

// Speaker identifies who sent a chat message.
type Speaker string

const (
	SpeakerUser Speaker = "User"
	SpeakerBot  Speaker = "Bot"
)

// Message is one chat or transcript turn.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Content string  `json:"content"`
}

// HistoryEntry is one completed conversation.
type HistoryEntry struct {
	ID               int64     `json:"id"`
	ScenarioID       string    `json:"scenario_id"`
	Timestamp        Timestamp `json:"timestamp"`
	PracticeLanguage string    `json:"practice_language"`
	Model            string    `json:"model"`
}

// sqliteLayout is the backend's CURRENT_TIMESTAMP format, always UTC.
const sqliteLayout = "2006-01-02 15:04:05"

// Timestamp accepts RFC 3339 and SQLite timestamps. A value that parses as
// neither keeps its raw text so it can still be shown.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses s leniently.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t, Raw: s}
	}
	if t, err := time.ParseInLocation(sqliteLayout, s, time.UTC); err == nil {
		return Timestamp{Time: t, Raw: s}
	}
	return Timestamp{Raw: s}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*t = Timestamp{}
		return nil
	}
	*t = ParseTimestamp(*s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Time.IsZero() {
		return json.Marshal(t.Time.UTC().Format(time.RFC3339))
	}
	return json.Marshal(t.Raw)
}

// IsZero reports whether no timestamp was parsed.
func (t Timestamp) IsZero() bool { return t.Time.IsZero() }

type turnRequest struct {
	ScenarioID string `json:"scenario_id"`
	Message    string `json:"message"`
}

type scenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type modelsResponse struct {
	Models []Model `json:"models"`
}

type scenariosResponse struct {
	Scenarios []Scenario `json:"scenarios"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

type historyResponse struct {
	History []HistoryEntry `json:"history"`
}

type conversationResponse struct {
	Conversation []Message `json:"conversation"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}
