package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingoflow/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client talks to the backend over HTTP+JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the server at baseURL. A zero timeout means no
// client-side limit.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.New(logging.NewContextHandler(slog.DiscardHandler)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.do(ctx, "get settings", http.MethodGet, "/api/settings", nil, settingsSchema, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SaveSettings(ctx context.Context, s Settings) error {
	return c.do(ctx, "save settings", http.MethodPost, "/api/settings", s, nil, nil)
}

func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var resp modelsResponse
	if err := c.do(ctx, "list models", http.MethodGet, "/api/models", nil, modelsSchema, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

func (c *Client) ListScenarios(ctx context.Context) ([]Scenario, error) {
	var resp scenariosResponse
	if err := c.do(ctx, "list scenarios", http.MethodGet, "/api/scenarios", nil, scenariosSchema, &resp); err != nil {
		return nil, err
	}
	return resp.Scenarios, nil
}

func (c *Client) GenerateScenarios(ctx context.Context) error {
	return c.do(ctx, "generate scenarios", http.MethodPost, "/api/scenarios/generate", nil, nil, nil)
}

func (c *Client) Clipart(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("clipart name is empty")
	}
	var data []byte
	err := c.do(ctx, "clipart", http.MethodGet, "/api/clipart/"+url.PathEscape(name), nil, nil, &data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) SendTurn(ctx context.Context, scenarioID, message string) (*TurnResult, error) {
	var res TurnResult
	body := turnRequest{ScenarioID: scenarioID, Message: message}
	if err := c.do(ctx, "chat turn", http.MethodPost, "/api/chat/turn", body, turnSchema, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetHint(ctx context.Context, scenarioID string) (string, error) {
	var resp hintResponse
	body := scenarioRequest{ScenarioID: scenarioID}
	if err := c.do(ctx, "chat hint", http.MethodPost, "/api/chat/hint", body, hintSchema, &resp); err != nil {
		return "", err
	}
	return resp.Hint, nil
}

func (c *Client) AbandonChat(ctx context.Context, scenarioID string) error {
	body := scenarioRequest{ScenarioID: scenarioID}
	return c.do(ctx, "chat abandon", http.MethodPost, "/api/chat/abandon", body, nil, nil)
}

func (c *Client) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	var resp historyResponse
	if err := c.do(ctx, "list history", http.MethodGet, "/api/history", nil, historySchema, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

func (c *Client) GetHistoryDetail(ctx context.Context, id int64) ([]Message, error) {
	var resp conversationResponse
	if err := c.do(ctx, "history detail", http.MethodGet, historyPath(id), nil, conversationSchema, &resp); err != nil {
		return nil, err
	}
	return resp.Conversation, nil
}

func (c *Client) GetHistorySummary(ctx context.Context, id int64) (string, error) {
	var resp summaryResponse
	if err := c.do(ctx, "history summary", http.MethodGet, historyPath(id)+"/summary", nil, summarySchema, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func (c *Client) DeleteHistoryItem(ctx context.Context, id int64) error {
	return c.do(ctx, "delete history item", http.MethodDelete, historyPath(id), nil, nil, nil)
}

func (c *Client) DeleteAllHistory(ctx context.Context) error {
	return c.do(ctx, "delete all history", http.MethodDelete, "/api/history", nil, nil, nil)
}

func historyPath(id int64) string {
	return "/api/history/" + strconv.FormatInt(id, 10)
}

// do performs one request. A nil out discards the response body. When out
// is a *[]byte the raw body is returned without decoding.
func (c *Client) do(ctx context.Context, op, method, path string, body any, schema *Schema, out any) error {
	reqID := uuid.NewString()
	ctx = logging.WithAttrs(ctx,
		slog.String("request_id", reqID),
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed", slog.Any("error", err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	latency := time.Since(start)
	if err != nil {
		c.logger.WarnContext(ctx, "read response failed", slog.Any("error", err))
		return &ErrUnavailable{Err: fmt.Errorf("%s: read response: %w", op, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "request rejected",
			slog.Int("status", resp.StatusCode),
			slog.Duration("latency", latency),
		)
		return &ErrStatus{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	c.logger.DebugContext(ctx, "request done",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
		slog.Int("bytes", len(raw)),
	)

	switch dst := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*dst = raw
		return nil
	}

	if err := validateResponse(op, schema, raw); err != nil {
		c.logger.WarnContext(ctx, "invalid response", slog.Any("error", err))
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Op: op, Content: raw, Err: err}
	}
	return nil
}
