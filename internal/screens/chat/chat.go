package chat

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflow/internal/router"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/ui/components"
	"github.com/abhisek/lingoflow/internal/ui/layout"
)

const (
	turnFailedText = "Failed to get response"
	hintFailedText = "Hint failed to load"
	noHintText     = "No hint available right now."

	scrollStep = 3
)

type overlay int

const (
	overlayNone overlay = iota
	overlayAlert
	overlayHint
	overlayConfirm
)

// ChatScreen runs one scenario conversation.
type ChatScreen struct {
	deps    screen.Deps
	input   components.TextInput
	spinner spinner.Model

	overlay overlay
	alert   string
	hint    string

	// Lines scrolled up from the bottom of the transcript.
	scroll int

	// Body size from the last ResizeMsg.
	width, height int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen for the chat the session controller has open.
func New(deps screen.Deps) *ChatScreen {
	return &ChatScreen{
		deps:    deps,
		input:   components.NewTextInput("Type your message...", 500),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	if c := s.deps.Session.Chat(); c != nil && c.Scenario.Setting != "" {
		return c.Scenario.Setting
	}
	return "Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	switch s.overlay {
	case overlayConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Stay"},
		}
	case overlayAlert, overlayHint:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Close"},
		}
	}
	if c := s.deps.Session.Chat(); c != nil && c.Complete() {
		return []layout.KeyHint{
			{Key: "PgUp/PgDn", Description: "Scroll"},
			{Key: "Enter", Description: "Back to Dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnResultMsg:
		return s.handleTurnResult(msg)

	case hintResultMsg:
		return s.handleHintResult(msg)

	case spinner.TickMsg:
		c := s.deps.Session.Chat()
		if c == nil || !c.Typing() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case screen.ResizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.input.SetWidth(components.ContentWidth(msg.Width) - 4)
		s.clampScroll()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.PasteMsg:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) handleTurnResult(msg turnResultMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if !s.deps.Session.FailTurn(msg.Token) {
			return s, nil
		}
		s.deps.Log().Warn("chat turn failed", "error", msg.Err)
		s.showAlert(turnFailedText)
		return s, nil
	}

	if !s.deps.Session.ResolveTurn(msg.Token, msg.Result) {
		return s, nil
	}
	s.scroll = 0
	if c := s.deps.Session.Chat(); c != nil && c.Complete() {
		s.input.Disable("Goal reached! Press Enter to return to the dashboard.")
	}
	return s, nil
}

func (s *ChatScreen) handleHintResult(msg hintResultMsg) (screen.Screen, tea.Cmd) {
	if !s.deps.Session.EndHint(msg.Token) {
		return s, nil
	}
	if msg.Err != nil {
		s.deps.Log().Warn("hint failed", "error", msg.Err)
		s.showAlert(hintFailedText)
		return s, nil
	}
	s.hint = msg.Hint
	if s.hint == "" {
		s.hint = noHintText
	}
	s.overlay = overlayHint
	return s, nil
}

func (s *ChatScreen) showAlert(text string) {
	s.alert = text
	s.overlay = overlayAlert
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.overlay {
	case overlayAlert, overlayHint:
		switch key {
		case "enter", "esc", "space":
			s.overlay = overlayNone
		}
		return s, nil

	case overlayConfirm:
		switch key {
		case "y", "Y":
			return s.abandon()
		case "n", "N", "esc":
			s.overlay = overlayNone
		}
		return s, nil
	}

	switch key {
	case "pgup":
		s.scroll += scrollStep
		s.clampScroll()
		return s, nil
	case "pgdown":
		s.scroll = max(s.scroll-scrollStep, 0)
		return s, nil
	}

	c := s.deps.Session.Chat()
	if c == nil {
		return s, nil
	}

	if c.Complete() {
		switch key {
		case "enter", "esc":
			if err := s.deps.Session.ReturnToDashboard(); err != nil {
				s.deps.Log().Error("return to dashboard", "error", err)
				return s, nil
			}
			return s, tea.Sequence(router.Pop, func() tea.Msg { return screen.ReloadMsg{} })
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.overlay = overlayConfirm
		return s, nil
	case "enter":
		return s.submit()
	case "ctrl+t":
		return s.requestHint()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) submit() (screen.Screen, tea.Cmd) {
	turn, ok := s.deps.Session.SubmitTurn(s.input.Value())
	if !ok {
		return s, nil
	}
	s.input.Reset()
	s.scroll = 0

	svc := s.deps.API
	send := func() tea.Msg {
		res, err := svc.SendTurn(context.Background(), turn.ScenarioID, turn.Message)
		return turnResultMsg{Token: turn.Token, Result: res, Err: err}
	}
	return s, tea.Batch(s.spinner.Tick, send)
}

func (s *ChatScreen) requestHint() (screen.Screen, tea.Cmd) {
	token, scenarioID, ok := s.deps.Session.BeginHint()
	if !ok {
		return s, nil
	}

	svc := s.deps.API
	fetch := func() tea.Msg {
		hint, err := svc.GetHint(context.Background(), scenarioID)
		return hintResultMsg{Token: token, Hint: hint, Err: err}
	}
	return s, tea.Batch(s.spinner.Tick, fetch)
}

// abandon leaves the chat at once. The server is told in the background and
// its answer is not awaited.
func (s *ChatScreen) abandon() (screen.Screen, tea.Cmd) {
	s.overlay = overlayNone
	id, err := s.deps.Session.Abandon()
	if err != nil {
		s.deps.Log().Error("abandon chat", "error", err)
		return s, nil
	}

	svc := s.deps.API
	log := s.deps.Log()
	notify := func() tea.Msg {
		if err := svc.AbandonChat(context.Background(), id); err != nil {
			log.Warn("abandon request failed", "scenario", id, "error", err)
		}
		return nil
	}
	return s, tea.Batch(router.Pop, notify)
}
