package history

import (
	"strings"

	"github.com/abhisek/lingoflow/internal/api"
)

// Notices shown by the detail view.
const (
	TranscriptLoadingText = "Loading transcript..."
	TranscriptFailedText  = "Failed to load transcript"
	TranscriptEmptyText   = "Empty transcript."
	SummaryLoadingText    = "Loading breakdown..."
	SummaryFailedText     = "Could not load breakdown."
	SummaryMissingText    = "No breakdown available for this session."
)

// Detail is the state of one history entry's detail view. The transcript
// and summary load independently; a failure in one leaves the other alone.
type Detail struct {
	Entry api.HistoryEntry

	Transcript        []api.Message
	TranscriptLoading bool
	TranscriptErr     error

	Summary        string
	SummaryLoading bool
	SummaryErr     error
}

// NewDetail returns a detail with both regions loading.
func NewDetail(entry api.HistoryEntry) *Detail {
	return &Detail{
		Entry:             entry,
		TranscriptLoading: true,
		SummaryLoading:    true,
	}
}

// FinishTranscript applies the transcript result.
func (d *Detail) FinishTranscript(msgs []api.Message, err error) {
	d.TranscriptLoading = false
	d.TranscriptErr = err
	if err == nil {
		d.Transcript = msgs
	}
}

// FinishSummary applies the summary result.
func (d *Detail) FinishSummary(summary string, err error) {
	d.SummaryLoading = false
	d.SummaryErr = err
	if err == nil {
		d.Summary = summary
	}
}

// TranscriptNotice returns the notice replacing the transcript, or "" when
// there are messages to show.
func (d *Detail) TranscriptNotice() string {
	switch {
	case d.TranscriptLoading:
		return TranscriptLoadingText
	case d.TranscriptErr != nil:
		return TranscriptFailedText
	case len(d.Transcript) == 0:
		return TranscriptEmptyText
	}
	return ""
}

// SummaryNotice returns the notice replacing the summary, or "" when there
// is a summary to show.
func (d *Detail) SummaryNotice() string {
	switch {
	case d.SummaryLoading:
		return SummaryLoadingText
	case d.SummaryErr != nil:
		return SummaryFailedText
	case strings.TrimSpace(d.Summary) == "":
		return SummaryMissingText
	}
	return ""
}
