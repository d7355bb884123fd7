// Package scenarios manages the dashboard's scenario list: fetching,
// regenerating, and the automatic regeneration of an empty list.
package scenarios

import "github.com/abhisek/lingoflow/internal/api"

// Banner is an error shown in place of the scenario grid.
type Banner int

const (
	BannerNone Banner = iota
	BannerLoadFailed
	BannerGenerateFailed
)

// Text returns the message for the banner.
func (b Banner) Text() string {
	switch b {
	case BannerLoadFailed:
		return "Failed to load scenarios. Make sure backend is running."
	case BannerGenerateFailed:
		return "Error generating scenarios: model took too long or failed."
	default:
		return ""
	}
}

// Step tells the caller which request to issue next.
type Step int

const (
	StepNone       Step = iota
	StepRegenerate      // call GenerateScenarios, then FinishRegenerate
	StepRefresh         // call Refetch, then ListScenarios, then FinishRefresh
)

// Cycle identifies one refresh or regenerate cycle. Results carrying an
// older cycle are dropped.
type Cycle int

// List is the scenario list state.
type List struct {
	Scenarios       []api.Scenario
	Loading         bool
	ControlsEnabled bool
	Banner          Banner

	selected    int
	cycle       Cycle
	regenerated bool
	loaded      bool
}

// New returns an idle list with controls enabled.
func New() *List {
	return &List{ControlsEnabled: true}
}

func (l *List) startLoading() {
	l.Scenarios = nil
	l.selected = 0
	l.Loading = true
	l.ControlsEnabled = false
	l.Banner = BannerNone
}

func (l *List) stopLoading() {
	l.Loading = false
	l.ControlsEnabled = true
}

// BeginRefresh starts a new fetch cycle. The cycle may regenerate once
// automatically if the server has no scenarios.
func (l *List) BeginRefresh() Cycle {
	l.cycle++
	l.regenerated = false
	l.startLoading()
	return l.cycle
}

// BeginRegenerate starts a user-requested regeneration cycle. The list
// refreshed after it will not regenerate again on its own.
func (l *List) BeginRegenerate() Cycle {
	l.cycle++
	l.regenerated = true
	l.startLoading()
	return l.cycle
}

// Refetch continues the current cycle with another fetch.
func (l *List) Refetch() Cycle {
	l.startLoading()
	return l.cycle
}

// Current reports whether c is the cycle in flight. Results from any other
// cycle are dropped.
func (l *List) Current(c Cycle) bool { return c == l.cycle }

// FinishRefresh applies a fetch result.
func (l *List) FinishRefresh(c Cycle, scenarios []api.Scenario, err error) Step {
	if !l.Current(c) {
		return StepNone
	}
	if err != nil {
		l.stopLoading()
		l.Banner = BannerLoadFailed
		return StepNone
	}
	if len(scenarios) == 0 && !l.regenerated {
		l.regenerated = true
		return StepRegenerate
	}

	l.stopLoading()
	l.loaded = true
	l.Scenarios = scenarios
	l.selected = 0
	return StepNone
}

// FinishRegenerate applies a generation result.
func (l *List) FinishRegenerate(c Cycle, err error) Step {
	if !l.Current(c) {
		return StepNone
	}
	if err != nil {
		l.stopLoading()
		l.Banner = BannerGenerateFailed
		return StepNone
	}
	return StepRefresh
}

// Empty reports whether a completed fetch returned no scenarios.
func (l *List) Empty() bool {
	return l.loaded && !l.Loading && l.Banner == BannerNone && len(l.Scenarios) == 0
}

// Up moves the selection up.
func (l *List) Up() {
	if l.selected > 0 {
		l.selected--
	}
}

// Down moves the selection down.
func (l *List) Down() {
	if l.selected < len(l.Scenarios)-1 {
		l.selected++
	}
}

// Index returns the selected position.
func (l *List) Index() int { return l.selected }

// Selected returns the selected scenario.
func (l *List) Selected() (api.Scenario, bool) {
	if !l.ControlsEnabled || l.selected >= len(l.Scenarios) {
		return api.Scenario{}, false
	}
	return l.Scenarios[l.selected], true
}
