package history

import (
	"strings"
	"time"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/settings"
)

const (
	modelBadgeMax  = 22
	modelBadgeKeep = 20
)

// Title turns a scenario id into a row title.
func Title(scenarioID string) string {
	return strings.ReplaceAll(scenarioID, "_", " ")
}

// LanguageBadge returns "flag language", or "" for an unknown language.
func LanguageBadge(language string) string {
	if language == "" {
		return ""
	}
	return settings.Flag(language) + " " + language
}

// ModelBadge returns the model name, shortened when it is long.
func ModelBadge(model string) string {
	r := []rune(model)
	if len(r) > modelBadgeMax {
		return string(r[:modelBadgeKeep]) + "…"
	}
	return model
}

// FormatTimestamp renders ts in loc. Unparsed timestamps are shown as
// received.
func FormatTimestamp(ts api.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ts.Raw
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.Time.In(loc).Format("Jan 2, 2006 3:04 PM")
}
