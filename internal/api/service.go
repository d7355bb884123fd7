// Package api is the client for the LingoFlow backend's /api/* endpoints.
package api

import "context"

// Service is the set of backend operations the client uses. Each call is a
// single request with no retry; callers decide how to degrade on error.
type Service interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
	ListModels(ctx context.Context) ([]Model, error)

	ListScenarios(ctx context.Context) ([]Scenario, error)
	GenerateScenarios(ctx context.Context) error
	Clipart(ctx context.Context, name string) ([]byte, error)

	SendTurn(ctx context.Context, scenarioID, message string) (*TurnResult, error)
	GetHint(ctx context.Context, scenarioID string) (string, error)
	AbandonChat(ctx context.Context, scenarioID string) error

	ListHistory(ctx context.Context) ([]HistoryEntry, error)
	GetHistoryDetail(ctx context.Context, id int64) ([]Message, error)

	// GetHistorySummary returns "" when the session has no summary.
	GetHistorySummary(ctx context.Context, id int64) (string, error)
	DeleteHistoryItem(ctx context.Context, id int64) error
	DeleteAllHistory(ctx context.Context) error
}
