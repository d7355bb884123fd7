package components

import (
	"strings"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/markup"
	"github.com/abhisek/lingoflow/internal/ui/theme"
)

// Transcript renders a message log with speaker labels. Message bodies go
// through r so markdown replies are formatted.
func Transcript(msgs []api.Message, r markup.Renderer, width int) string {
	if r == nil {
		r = markup.Plain{}
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		label := theme.BotLabel.Render("Partner")
		if m.Speaker == api.SpeakerUser {
			label = theme.UserLabel.Render("You")
		}
		body := r.Render(m.Content, max(width-2, 10))
		parts = append(parts, label+"\n"+body)
	}
	return strings.Join(parts, "\n\n")
}
