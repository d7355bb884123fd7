package session

import "github.com/abhisek/lingoflow/internal/api"

// Phase is the lifecycle stage of a chat.
type Phase int

const (
	PhaseActive   Phase = iota // Accepting turns
	PhaseComplete              // Goal reached, input disabled
)

// Summary is the completion panel content.
type Summary struct {
	Text string

	// Unavailable is set when the goal was reached but the server sent
	// no summary.
	Unavailable bool
}

// Chat is the state of one scenario conversation.
type Chat struct {
	Scenario api.Scenario
	Messages []api.Message
	Phase    Phase
	Summary  Summary

	turnPending bool
	hintPending bool
}

// InputEnabled reports whether the user may type and send.
func (c *Chat) InputEnabled() bool { return c.Phase == PhaseActive }

// Complete reports whether the goal was reached.
func (c *Chat) Complete() bool { return c.Phase == PhaseComplete }

// Typing reports whether the typing indicator should show.
func (c *Chat) Typing() bool { return c.turnPending || c.hintPending }

// AwaitingReply reports whether a sent turn has no reply yet.
func (c *Chat) AwaitingReply() bool { return c.turnPending }
