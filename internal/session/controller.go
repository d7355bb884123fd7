// Package session holds the client's view state machine and the state of
// the active chat. It performs no I/O: screens issue requests and feed the
// results back through the controller, which drops any that belong to a
// view that is no longer active.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingoflow/internal/api"
)

// ErrInvalidTransition is returned when an operation is not allowed from
// the current view.
var ErrInvalidTransition = errors.New("invalid view transition")

// View is the top-level region the user is looking at.
type View int

const (
	ViewDashboard View = iota
	ViewChat
	ViewHistory
	ViewHistoryDetail
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewChat:
		return "chat"
	case ViewHistory:
		return "history"
	case ViewHistoryDetail:
		return "history-detail"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Token identifies one activation of a view. Requests capture it when
// issued; responses are applied only while it is still current.
type Token uint64

// PendingTurn is a user turn that has been appended and must now be sent.
type PendingTurn struct {
	Token      Token
	ScenarioID string
	Message    string
}

// Controller owns the active view and the chat session, if any.
type Controller struct {
	view      View
	token     Token
	chat      *Chat
	historyID int64
}

// New returns a controller showing the dashboard.
func New() *Controller {
	return &Controller{view: ViewDashboard, token: 1}
}

// View returns the active view.
func (c *Controller) View() View { return c.view }

// Token returns the token of the current activation.
func (c *Controller) Token() Token { return c.token }

// Current reports whether t belongs to the current activation.
func (c *Controller) Current(t Token) bool { return t == c.token }

// Chat returns the active chat, or nil outside the chat view.
func (c *Controller) Chat() *Chat {
	if c.view != ViewChat {
		return nil
	}
	return c.chat
}

// ScenarioID returns the current scenario id. It is non-empty exactly when
// the chat view is active.
func (c *Controller) ScenarioID() string {
	if c.view != ViewChat || c.chat == nil {
		return ""
	}
	return c.chat.Scenario.ID
}

// HistoryID returns the history entry shown in the detail view, or 0.
func (c *Controller) HistoryID() int64 {
	if c.view != ViewHistoryDetail {
		return 0
	}
	return c.historyID
}

func (c *Controller) activate(v View) {
	c.view = v
	c.token++
	if v != ViewChat {
		c.chat = nil
	}
	if v != ViewHistoryDetail {
		c.historyID = 0
	}
}

func (c *Controller) require(v View, op string) error {
	if c.view != v {
		return fmt.Errorf("%s from %s: %w", op, c.view, ErrInvalidTransition)
	}
	return nil
}

// OpenScenario starts a fresh chat for s.
func (c *Controller) OpenScenario(s api.Scenario) error {
	if err := c.require(ViewDashboard, "open scenario"); err != nil {
		return err
	}
	if s.ID == "" {
		return fmt.Errorf("open scenario: empty scenario id: %w", ErrInvalidTransition)
	}
	c.activate(ViewChat)
	c.chat = &Chat{Scenario: s, Phase: PhaseActive}
	return nil
}

// SubmitTurn appends a user message and returns what must be sent. It
// returns false, changing nothing, when text is blank, when no active chat
// exists, or while a previous turn is still awaiting its reply.
func (c *Controller) SubmitTurn(text string) (PendingTurn, bool) {
	chat := c.Chat()
	if chat == nil || !chat.InputEnabled() || chat.turnPending {
		return PendingTurn{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return PendingTurn{}, false
	}

	chat.Messages = append(chat.Messages, api.Message{Speaker: api.SpeakerUser, Content: text})
	chat.turnPending = true
	return PendingTurn{Token: c.token, ScenarioID: chat.Scenario.ID, Message: text}, true
}

// ResolveTurn applies a turn reply. Stale replies are ignored.
func (c *Controller) ResolveTurn(t Token, res *api.TurnResult) bool {
	chat := c.Chat()
	if !c.Current(t) || chat == nil || res == nil {
		return false
	}
	chat.turnPending = false

	if res.BotMessage != "" {
		chat.Messages = append(chat.Messages, api.Message{Speaker: api.SpeakerBot, Content: res.BotMessage})
	}
	if res.Status.Reached() {
		chat.Phase = PhaseComplete
		chat.Summary = Summary{Text: res.Summary, Unavailable: strings.TrimSpace(res.Summary) == ""}
	}
	return true
}

// FailTurn clears the pending turn after a failed request. The user
// message stays in the log.
func (c *Controller) FailTurn(t Token) bool {
	chat := c.Chat()
	if !c.Current(t) || chat == nil {
		return false
	}
	chat.turnPending = false
	return true
}

// BeginHint marks a hint request as outstanding. Only an active chat can
// ask for a hint, one at a time.
func (c *Controller) BeginHint() (Token, string, bool) {
	chat := c.Chat()
	if chat == nil || !chat.InputEnabled() || chat.hintPending {
		return 0, "", false
	}
	chat.hintPending = true
	return c.token, chat.Scenario.ID, true
}

// EndHint clears the outstanding hint. It reports whether the hint still
// belongs to the active chat and should be shown.
func (c *Controller) EndHint(t Token) bool {
	chat := c.Chat()
	if !c.Current(t) || chat == nil {
		return false
	}
	chat.hintPending = false
	return true
}

// Abandon leaves an active chat and returns its scenario id so the caller
// can notify the server.
func (c *Controller) Abandon() (string, error) {
	chat := c.Chat()
	if chat == nil {
		return "", fmt.Errorf("abandon from %s: %w", c.view, ErrInvalidTransition)
	}
	if chat.Phase != PhaseActive {
		return "", fmt.Errorf("abandon a completed chat: %w", ErrInvalidTransition)
	}
	id := chat.Scenario.ID
	c.activate(ViewDashboard)
	return id, nil
}

// ReturnToDashboard leaves a completed chat.
func (c *Controller) ReturnToDashboard() error {
	chat := c.Chat()
	if chat == nil || chat.Phase != PhaseComplete {
		return fmt.Errorf("return to dashboard: chat not complete: %w", ErrInvalidTransition)
	}
	c.activate(ViewDashboard)
	return nil
}

// OpenHistory shows the history list.
func (c *Controller) OpenHistory() error {
	if err := c.require(ViewDashboard, "open history"); err != nil {
		return err
	}
	c.activate(ViewHistory)
	return nil
}

// CloseHistory returns from the history list to the dashboard.
func (c *Controller) CloseHistory() error {
	if err := c.require(ViewHistory, "close history"); err != nil {
		return err
	}
	c.activate(ViewDashboard)
	return nil
}

// OpenHistoryDetail shows one completed session.
func (c *Controller) OpenHistoryDetail(id int64) error {
	if err := c.require(ViewHistory, "open history detail"); err != nil {
		return err
	}
	c.activate(ViewHistoryDetail)
	c.historyID = id
	return nil
}

// CloseHistoryDetail returns to the history list.
func (c *Controller) CloseHistoryDetail() error {
	if err := c.require(ViewHistoryDetail, "close history detail"); err != nil {
		return err
	}
	c.activate(ViewHistory)
	return nil
}
