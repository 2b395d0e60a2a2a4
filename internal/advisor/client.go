// Package advisor provides a client for the external advisory backend, an
// OpenAI-compatible chat completion service that turns household energy
// summaries into structured analysis and savings suggestions.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wattwise/internal/config"
)

const maxBodySize = 1 << 20 // 1 MB

var (
	// ErrUnauthorized indicates the API key is rejected by the backend.
	ErrUnauthorized = errors.New("advisor: unauthorized")
	// ErrRateLimited indicates the backend rate limit was hit.
	ErrRateLimited = errors.New("advisor: rate limited")
	// ErrBadResponse indicates the backend answered with text the client
	// could not turn into the expected structure.
	ErrBadResponse = errors.New("advisor: unusable response")
)

// Client calls the advisory backend with bounded timeouts and retries.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	timeout     time.Duration
	maxAttempts int
	http        *http.Client
}

// NewClient creates a client from advisor settings. Returns nil when no
// backend is configured (empty base URL or API key), which callers treat as
// "advisory unavailable".
func NewClient(cfg config.AdvisorConfig, apiKey string) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	apiKey = strings.TrimSpace(apiKey)
	if baseURL == "" || apiKey == "" {
		return nil
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 3
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		maxAttempts: attempts,
		http:        &http.Client{},
	}
}

// Analyze submits the household and consumption payload and returns the
// backend's structured insight.
func (c *Client) Analyze(ctx context.Context, household HouseholdData, energy EnergyData) (*Insight, error) {
	content, err := c.chat(ctx,
		"You are a home energy management expert. Analyze household consumption data and respond with a single JSON object.",
		buildAnalysisPrompt(household, energy),
		c.temperature,
	)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSON(content)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in analysis", ErrBadResponse)
	}

	var insight Insight
	if err := json.Unmarshal(raw, &insight); err != nil {
		return nil, fmt.Errorf("%w: parsing insight: %v", ErrBadResponse, err)
	}
	return &insight, nil
}

// Recommend submits an insight and returns the backend's advisory items.
func (c *Client) Recommend(ctx context.Context, insight *Insight) ([]RawItem, error) {
	// Creative phase runs warmer than the analysis phase.
	content, err := c.chat(ctx,
		"You are a home energy savings advisor. Respond with a single JSON object containing a \"recommendations\" array.",
		buildRecommendPrompt(insight),
		0.7,
	)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSON(content)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in recommendations", ErrBadResponse)
	}

	var parsed struct {
		Recommendations []RawItem `json:"recommendations"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parsing recommendations: %v", ErrBadResponse, err)
	}
	return parsed.Recommendations, nil
}

// chatRequest is the OpenAI-compatible completion request body.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chat performs one completion with bounded retries and exponential backoff.
// Retryable failures are network errors, rate limits, and 5xx statuses.
func (c *Client) chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:      2000,
		Temperature:    temperature,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("advisor: encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		content, retryable, err := c.post(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

// post performs a single completion request. The bool reports whether the
// failure is worth retrying.
func (c *Client) post(ctx context.Context, body []byte) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("advisor: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("advisor: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", false, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", true, ErrRateLimited
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("advisor: server status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", false, fmt.Errorf("advisor: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", true, fmt.Errorf("advisor: reading response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(cr.Choices) == 0 {
		return "", false, fmt.Errorf("%w: empty choices", ErrBadResponse)
	}
	return cr.Choices[0].Message.Content, false, nil
}

// extractJSON pulls the first top-level JSON object out of a completion,
// tolerating prose around it.
func extractJSON(s string) ([]byte, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}
	return []byte(s[start : end+1]), true
}

func buildAnalysisPrompt(h HouseholdData, e EnergyData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Household:\n- members: %d\n- floor area: %.0f sqm\n- season: %s\n- analysis period: %s (%s to %s, %d days)\n\n",
		h.FamilySize, h.FloorArea, h.Season, h.PeriodLabel, h.StartDate, h.EndDate, h.PeriodDays)
	fmt.Fprintf(&b, "Consumption:\n- total: %.1f kWh\n- daily average: %.1f kWh\n- estimated cost: %.0f\n- vs benchmark: %+.1f%%\n\n",
		e.TotalConsumption, e.AverageDaily, e.CostTotal, e.BenchmarkDelta)

	b.WriteString("Device breakdown:\n")
	for _, d := range e.DeviceBreakdown {
		fmt.Fprintf(&b, "- %s (%s): %.1f kWh\n", d.DeviceName, d.Category, d.Consumption)
	}

	b.WriteString("\nRecent trend:\n")
	trend := e.Trend
	if len(trend) > 3 {
		trend = trend[len(trend)-3:]
	}
	for _, t := range trend {
		fmt.Fprintf(&b, "- %s: %.1f kWh\n", t.Period, t.Consumption)
	}

	if e.Comparison != nil {
		fmt.Fprintf(&b, "\nVersus previous period (%s to %s): %.1f kWh/day now, %.1f kWh/day before (%+.1f%%).\n",
			e.Comparison.PreviousStart, e.Comparison.PreviousEnd,
			e.Comparison.CurrentDailyRate, e.Comparison.PreviousDailyRate, e.Comparison.ChangePercent)
	}

	b.WriteString(`
Assess efficiency, main consumption sources, usage habits, seasonal effects, and the benchmark comparison.
Return a JSON object with fields: overall_assessment, key_insights (array of strings), efficiency_level (high/medium/low), main_consumption_sources, seasonal_impact.
`)
	return b.String()
}

func buildRecommendPrompt(insight *Insight) string {
	analysis, err := json.MarshalIndent(insight, "", "  ")
	if err != nil {
		analysis = []byte("{}")
	}

	return fmt.Sprintf(`Based on this energy analysis, generate 3-5 concrete savings recommendations:

%s

Return a JSON object with a "recommendations" array. Each item must have:
- title
- description
- category (one of: device_usage, lifestyle, device_upgrade, other)
- estimated_saving (kWh per month)
- estimated_cost_saving (currency per month)
- implementation_difficulty (low, medium, high)
- reasoning
`, analysis)
}
