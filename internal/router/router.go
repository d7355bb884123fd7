// Package router keeps the stack of open screens. The dashboard sits at the
// bottom and is never popped.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflow/internal/screen"
)

// PushScreenMsg opens Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Pop() tea.Msg { return PopScreenMsg{} }

type Router struct {
	stack []screen.Screen

	// Last body size, replayed to screens pushed after it.
	size *screen.ResizeMsg
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command. A screen pushed after the
// first resize receives the current size before Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	if r.size == nil {
		r.stack = append(r.stack, s)
		return s.Init()
	}
	next, cmd := s.Update(*r.size)
	r.stack = append(r.stack, next)
	return tea.Batch(cmd, next.Init())
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() {
	n := len(r.stack)
	if n <= 1 {
		return
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Trail returns the titles of the open screens, root first.
func (r *Router) Trail() []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

// Update routes msg. Input goes to the active screen only. Anything else
// is delivered to every open screen, so the result of background work
// reaches the screen that started it even after another was pushed over
// it.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(screen.ResizeMsg); ok {
		r.size = &size
	}

	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}

	if isInput(msg) {
		top := len(r.stack) - 1
		next, cmd := r.stack[top].Update(msg)
		r.stack[top] = next
		return cmd
	}

	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		next, cmd := s.Update(msg)
		r.stack[i] = next
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func isInput(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.PasteMsg, tea.MouseMsg:
		return true
	}
	return false
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
