package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goalwing/goalwing/prompts"
	"github.com/goalwing/goalwing/types"
)

const defaultTimeout = 30 * time.Second

// Config holds configuration for the HTTP plan client.
type Config struct {
	// BaseURL is the generation server URL (e.g., "http://localhost:8787")
	BaseURL string

	// Timeout for HTTP requests (default: 30s)
	Timeout time.Duration

	// HTTPClient overrides the default client. Mainly for tests.
	HTTPClient *http.Client
}

// HTTPPlanClient calls the external generation service over HTTP.
// It implements PlanGenerator.
type HTTPPlanClient struct {
	baseURL string
	client  *http.Client
}

// generateRequest is the request payload for /generate-tasks.
type generateRequest struct {
	Goal      string `json:"goal"`
	Period    int    `json:"period"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Prompt    string `json:"prompt"`
}

// generateResponse is the envelope the service returns. Tasks is kept
// raw so a missing or non-array field can be told apart from an empty one.
type generateResponse struct {
	Tasks   json.RawMessage `json:"tasks"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// NewHTTPPlanClient creates a client for the generation service.
func NewHTTPPlanClient(cfg Config) (*HTTPPlanClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("generation service base URL is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPPlanClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}, nil
}

// GeneratePlan implements the PlanGenerator interface. It sends the goal
// and period to the service and returns the flat task list it produced.
func (c *HTTPPlanClient) GeneratePlan(ctx context.Context, req types.PlanRequest) (types.RawPlan, error) {
	payload := generateRequest{
		Goal:      req.Goal,
		Period:    req.Period,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Prompt:    prompts.PlanPrompt(req.Goal, req.Period, req.StartDate, req.EndDate),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return types.RawPlan{}, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/generate-tasks"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.RawPlan{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return types.RawPlan{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.RawPlan{}, fmt.Errorf("generation service: %s", errorDetail(resp))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return types.RawPlan{}, fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Tasks) == 0 {
		return types.RawPlan{}, fmt.Errorf("%w: response has no tasks array", types.ErrValidation)
	}

	var tasks []types.TaskOutput
	if err := json.Unmarshal(genResp.Tasks, &tasks); err != nil {
		return types.RawPlan{}, fmt.Errorf("%w: tasks is not an array: %v", types.ErrValidation, err)
	}

	return types.FlatPlan(tasks), nil
}

// errorDetail extracts a human-readable message from an error response,
// falling back to the status code when the body carries none.
func errorDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// Verify interface compliance at compile time
var _ PlanGenerator = (*HTTPPlanClient)(nil)
