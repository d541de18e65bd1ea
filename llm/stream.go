package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goalwing/goalwing/prompts"
	"github.com/goalwing/goalwing/types"
)

// streamDataPrefix marks payload lines in the server-sent event stream.
const streamDataPrefix = "data: "

// GeneratePlanStream calls the streaming endpoint and invokes fn for each
// task the service emits. Lines that do not parse as a task are skipped,
// matching the service's habit of interleaving keep-alives and partial
// chunks. The accumulated plan is returned once the stream ends.
func (c *HTTPPlanClient) GeneratePlanStream(ctx context.Context, req types.PlanRequest, fn func(types.TaskOutput)) (types.RawPlan, error) {
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

	url := c.baseURL + "/generate-tasks-stream"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.RawPlan{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return types.RawPlan{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.RawPlan{}, fmt.Errorf("generation service: %s", errorDetail(resp))
	}

	var tasks []types.TaskOutput
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		data := strings.TrimPrefix(line, streamDataPrefix)
		if data == "" || data == "[DONE]" {
			continue
		}

		var task types.TaskOutput
		if err := json.Unmarshal([]byte(data), &task); err != nil {
			continue
		}
		tasks = append(tasks, task)
		if fn != nil {
			fn(task)
		}
	}
	if err := scanner.Err(); err != nil {
		return types.RawPlan{}, fmt.Errorf("read stream: %w", err)
	}

	if len(tasks) == 0 {
		return types.RawPlan{}, fmt.Errorf("%w: stream produced no tasks", types.ErrValidation)
	}

	return types.FlatPlan(tasks), nil
}
