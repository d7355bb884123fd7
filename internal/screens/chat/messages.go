package chat

import (
	"github.com/abhisek/lingoflow/internal/api"
	sess "github.com/abhisek/lingoflow/internal/session"
)

// turnResultMsg is sent when a chat turn request completes.
type turnResultMsg struct {
	Token  sess.Token
	Result *api.TurnResult
	Err    error
}

// hintResultMsg is sent when a hint request completes.
type hintResultMsg struct {
	Token sess.Token
	Hint  string
	Err   error
}
