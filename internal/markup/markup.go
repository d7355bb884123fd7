// Package markup turns untrusted message text into safe terminal output.
package markup

import (
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
)

// Renderer renders Markdown-ish text for display at the given width.
// Implementations must never pass terminal control sequences from the input
// through to the output.
type Renderer interface {
	Render(text string, width int) string
}

// Sanitize removes escape sequences and control characters other than
// newline and tab.
func Sanitize(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// Plain renders sanitized text without formatting.
type Plain struct{}

func (Plain) Render(text string, _ int) string {
	return strings.TrimSpace(Sanitize(text))
}

// maxCacheEntries bounds the rendered-output cache.
const maxCacheEntries = 512

type cacheKey struct {
	style string
	width int
	text  string
}

// Glamour renders Markdown with glamour, choosing the dark or light style
// at render time.
type Glamour struct {
	dark func() bool

	mu        sync.Mutex
	renderers map[cacheKey]*glamour.TermRenderer // text is empty in these keys
	output    map[cacheKey]string
}

// NewGlamour returns a Glamour renderer. dark reports whether the dark
// style applies; nil means always dark.
func NewGlamour(dark func() bool) *Glamour {
	if dark == nil {
		dark = func() bool { return true }
	}
	return &Glamour{
		dark:      dark,
		renderers: make(map[cacheKey]*glamour.TermRenderer),
		output:    make(map[cacheKey]string),
	}
}

func (g *Glamour) Render(text string, width int) string {
	clean := Sanitize(text)
	if strings.TrimSpace(clean) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := styles.LightStyle
	if g.dark() {
		style = styles.DarkStyle
	}
	key := cacheKey{style: style, width: width, text: clean}

	g.mu.Lock()
	defer g.mu.Unlock()

	if out, ok := g.output[key]; ok {
		return out
	}

	r, err := g.renderer(style, width)
	if err != nil {
		return strings.TrimSpace(clean)
	}
	out, err := r.Render(clean)
	if err != nil {
		return strings.TrimSpace(clean)
	}
	out = strings.Trim(out, "\n")

	if len(g.output) >= maxCacheEntries {
		g.output = make(map[cacheKey]string)
	}
	g.output[key] = out
	return out
}

func (g *Glamour) renderer(style string, width int) (*glamour.TermRenderer, error) {
	key := cacheKey{style: style, width: width}
	if r, ok := g.renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	g.renderers[key] = r
	return r, nil
}
