package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/lingoflow/internal/api"
)

func entries() []api.HistoryEntry {
	return []api.HistoryEntry{
		{ID: 3, ScenarioID: "train_ticket"},
		{ID: 2, ScenarioID: "cafe_order"},
		{ID: 1, ScenarioID: "hotel_check_in"},
	}
}

func TestBrowserLoad(t *testing.T) {
	b := NewBrowser()
	b.BeginLoad()
	assert.True(t, b.Loading)
	assert.False(t, b.Empty())

	b.FinishLoad(entries(), nil)
	assert.False(t, b.Loading)
	assert.Len(t, b.Entries, 3)
	assert.False(t, b.Empty())
}

func TestBrowserEmpty(t *testing.T) {
	b := NewBrowser()
	assert.False(t, b.Empty(), "not empty before the first load")

	b.BeginLoad()
	b.FinishLoad(nil, nil)
	assert.True(t, b.Empty())
}

func TestBrowserLoadError(t *testing.T) {
	b := NewBrowser()
	b.BeginLoad()
	b.FinishLoad(nil, errors.New("down"))

	assert.Error(t, b.Err)
	assert.False(t, b.Empty(), "error replaces the empty notice")
}

func TestBrowserRemove(t *testing.T) {
	b := NewBrowser()
	b.BeginLoad()
	b.FinishLoad(entries(), nil)
	b.Down()
	b.Down()

	assert.True(t, b.Remove(1))
	assert.Len(t, b.Entries, 2)
	assert.Equal(t, 1, b.Index(), "selection clamps to the new end")
	assert.False(t, b.Remove(99))

	b.Remove(3)
	b.Remove(2)
	assert.True(t, b.Empty())
	_, ok := b.Selected()
	assert.False(t, ok)
}

func TestBrowserRemoveKeepsSourceSlice(t *testing.T) {
	src := entries()
	b := NewBrowser()
	b.FinishLoad(src, nil)

	b.Remove(3)
	assert.Equal(t, int64(3), src[0].ID)
}

func TestDetailRegionsIndependent(t *testing.T) {
	d := NewDetail(api.HistoryEntry{ID: 1})
	assert.Equal(t, TranscriptLoadingText, d.TranscriptNotice())
	assert.Equal(t, SummaryLoadingText, d.SummaryNotice())

	d.FinishSummary("", errors.New("boom"))
	assert.Equal(t, SummaryFailedText, d.SummaryNotice())
	assert.Equal(t, TranscriptLoadingText, d.TranscriptNotice(), "transcript unaffected")

	d.FinishTranscript([]api.Message{{Speaker: api.SpeakerUser, Content: "hi"}}, nil)
	assert.Empty(t, d.TranscriptNotice())
}

func TestDetailNotices(t *testing.T) {
	d := NewDetail(api.HistoryEntry{ID: 1})
	d.FinishTranscript(nil, nil)
	d.FinishSummary("", nil)
	assert.Equal(t, "Empty transcript.", d.TranscriptNotice())
	assert.Equal(t, "No breakdown available for this session.", d.SummaryNotice())

	d = NewDetail(api.HistoryEntry{ID: 1})
	d.FinishTranscript(nil, errors.New("x"))
	d.FinishSummary("## Good", nil)
	assert.Equal(t, "Failed to load transcript", d.TranscriptNotice())
	assert.Empty(t, d.SummaryNotice())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "order at a cafe", Title("order_at_a_cafe"))
	assert.Equal(t, "plain", Title("plain"))
}

func TestBadges(t *testing.T) {
	assert.Equal(t, "🇯🇵 Japanese", LanguageBadge("Japanese"))
	assert.Equal(t, "🌐 Esperanto", LanguageBadge("Esperanto"))
	assert.Equal(t, "", LanguageBadge(""))

	assert.Equal(t, "gemma3:4b", ModelBadge("gemma3:4b"))
	assert.Equal(t, "abcdefghijklmnopqrstuv", ModelBadge("abcdefghijklmnopqrstuv"))
	assert.Equal(t, "hf.co/some-org/very-…", ModelBadge("hf.co/some-org/very-long-model-name:q4"))
}

func TestFormatTimestamp(t *testing.T) {
	ts := api.ParseTimestamp("2025-03-01 09:30:00")
	tokyo := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, "Mar 1, 2025 6:30 PM", FormatTimestamp(ts, tokyo))
	assert.Equal(t, "Mar 1, 2025 9:30 AM", FormatTimestamp(ts, time.UTC))
	assert.Equal(t, "someday", FormatTimestamp(api.ParseTimestamp("someday"), time.UTC))
}
