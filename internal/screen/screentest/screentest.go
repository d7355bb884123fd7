// Package screentest drives screens in tests without a running program.
package screentest

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/apitest"
	"github.com/abhisek/lingoflow/internal/markup"
	"github.com/abhisek/lingoflow/internal/screen"
	"github.com/abhisek/lingoflow/internal/session"
	"github.com/abhisek/lingoflow/internal/settings"
)

// Deps starts a fake backend with state and returns screen dependencies
// talking to it. The server is closed when the test ends.
func Deps(t *testing.T, state apitest.State) (screen.Deps, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(state)
	t.Cleanup(srv.Close)

	return screen.Deps{
		API:      api.New(srv.URL, 5*time.Second),
		Session:  session.New(),
		Settings: settings.NewStore(),
		Renderer: markup.Plain{},
	}, srv
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// Run executes cmd and returns the messages it produced, in order. Batches
// and sequences are flattened.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}

	// tea.Sequence produces an unexported slice of commands.
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			c, _ := v.Index(i).Interface().(tea.Cmd)
			out = append(out, Run(c)...)
		}
		return out
	}

	return []tea.Msg{msg}
}

// Feed runs cmd and delivers every message it produced to s, following
// the commands returned along the way. It returns the screen and the
// messages meant for the router or program, such as navigation requests.
// Commands that wait on a timer still block; keep them out of cmd.
func Feed(s screen.Screen, cmd tea.Cmd) (screen.Screen, []tea.Msg) {
	var rest []tea.Msg
	queue := Run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if passThrough(msg) {
			rest = append(rest, msg)
			continue
		}
		if animation(msg) {
			continue
		}
		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, Run(next)...)
	}
	return s, rest
}

// passThrough reports messages addressed to the router or program.
func passThrough(msg tea.Msg) bool {
	switch msg.(type) {
	case screen.ReloadMsg, screen.RegenerateMsg, tea.QuitMsg:
		return true
	}
	t := reflect.TypeOf(msg)
	return t.PkgPath() == "github.com/abhisek/lingoflow/internal/router"
}

// animation reports spinner and cursor ticks. Delivering them would
// schedule further ticks for as long as the screen is busy.
func animation(msg tea.Msg) bool {
	return strings.HasPrefix(reflect.TypeOf(msg).PkgPath(), "charm.land/bubbles/")
}

// Press sends a key press to s and feeds the resulting commands back.
func Press(s screen.Screen, key string) (screen.Screen, []tea.Msg) {
	s, cmd := s.Update(Key(key))
	return Feed(s, cmd)
}

// Key builds a key press from its string form, such as "enter", "ctrl+t"
// or "y".
func Key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	if rest, ok := strings.CutPrefix(k, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: rune(rest[0]), Mod: tea.ModCtrl}
	}
	r := []rune(k)
	return tea.KeyPressMsg{Code: r[0], Text: k}
}

// Type enters text into s one rune at a time.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}
