package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"zoebot/internal/analysis"
)

// ErrNotConfigured is returned when the client was built without an API key.
var ErrNotConfigured = errors.New("ai: api key not configured")

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a scoring client. Completions can take a while, so the
// default timeout is generous.
func NewClient(apiKey, apiURL, model string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        5,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeMatch sends the summary to the scoring model and parses the verdict.
func (c *Client) AnalyzeMatch(ctx context.Context, summary *analysis.MatchSummary) (*AnalysisResult, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if summary == nil || len(summary.Teammates) == 0 {
		return nil, fmt.Errorf("ai: summary has no players to analyze")
	}

	content, err := c.complete(ctx, buildUserPrompt(summary))
	if err != nil {
		return nil, err
	}
	return parseResponse(content)
}

// buildUserPrompt renders the summary into the prompt the model scores from.
func buildUserPrompt(summary *analysis.MatchSummary) string {
	var sb strings.Builder

	result := "DEFEAT"
	if summary.Win {
		result = "VICTORY"
	}

	sb.WriteString("MATCH INFO:\n")
	sb.WriteString(fmt.Sprintf("- Mode: %s\n", summary.GameMode))
	sb.WriteString(fmt.Sprintf("- Duration: %.1f minutes\n", summary.GameDurationMinutes))
	sb.WriteString(fmt.Sprintf("- Result: %s\n", result))
	sb.WriteString(fmt.Sprintf("- Target player: %s\n\n", summary.TargetName))

	matchupsJSON, _ := json.MarshalIndent(summary.Matchups, "", "  ")
	sb.WriteString("LANE MATCHUPS (player vs opponent):\n")
	sb.Write(matchupsJSON)

	if summary.Timeline != nil {
		sb.WriteString(buildTimelineText(summary.Timeline))
	}

	sb.WriteString("\n\nAnalyze the 5 players on the target's team. Compare each against the lane opponent, check champion role expectations, and work the timeline data in where available.")

	return sb.String()
}

// buildTimelineText renders the timeline insights as a readable digest.
func buildTimelineText(timeline *analysis.TimelineInsights) string {
	var sb strings.Builder

	sb.WriteString("\n\nMATCH TIMELINE:\n")

	if fb := timeline.FirstBlood; fb != nil {
		sb.WriteString(fmt.Sprintf("First blood: %s killed %s at %.1f min\n", fb.Killer, fb.Victim, fb.TimeMin))
	} else {
		sb.WriteString("First blood: no data\n")
	}

	sb.WriteString("Gold diff @10min vs lane opponent:\n")
	if len(timeline.GoldDiffAt10) > 0 {
		for name, diff := range timeline.GoldDiffAt10 {
			sb.WriteString(fmt.Sprintf("  - %s: %+d gold (%s)\n", name, diff.Diff, diff.Role))
		}
	} else {
		sb.WriteString("  no data\n")
	}

	sb.WriteString("Team deaths (first 5):\n")
	if len(timeline.TeamDeaths) > 0 {
		for _, d := range timeline.TeamDeaths {
			sb.WriteString(fmt.Sprintf("  - %s died at %.1f min to %s\n", d.Player, d.TimeMin, d.Killer))
		}
	} else {
		sb.WriteString("  no deaths\n")
	}

	sb.WriteString("Objectives:\n")
	if len(timeline.Objectives) > 0 {
		limit := len(timeline.Objectives)
		if limit > 5 {
			limit = 5
		}
		for _, o := range timeline.Objectives[:limit] {
			sb.WriteString(fmt.Sprintf("  - %s at %.1f min by %s\n", o.MonsterType, o.TimeMin, o.Killer))
		}
	} else {
		sb.WriteString("  no objectives\n")
	}

	sb.WriteString(fmt.Sprintf("Turret plates: team took %d, lost %d\n", timeline.PlatesTaken, timeline.PlatesLost))
	sb.WriteString(fmt.Sprintf("Team deaths by minute 10: %d\n", timeline.TeamDeathsBy10))

	return sb.String()
}

// complete performs one chat completion and returns the raw message content.
func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	payload := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   20000,
		TopP:        1,
		ResponseFormat: &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   "match_analysis",
				Strict: true,
				Schema: responseSchema,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("AI API error: %d - %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

var jsonBlockRegex = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// parseResponse decodes the model's verdict, tolerating fenced or prose-wrapped
// JSON.
func parseResponse(content string) (*AnalysisResult, error) {
	jsonStr := extractJSON(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in completion response")
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}
	return &result, nil
}

// extractJSON pulls a JSON object out of raw content, a ```json fence, a bare
// ``` fence, or surrounding prose, in that order of preference.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if matches := jsonBlockRegex.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	if strings.Contains(content, "```") {
		start := strings.Index(content, "```")
		end := strings.LastIndex(content, "```")
		if start != end && start != -1 {
			inner := content[start+3 : end]
			if idx := strings.Index(inner, "\n"); idx != -1 {
				firstLine := strings.TrimSpace(inner[:idx])
				if !strings.HasPrefix(firstLine, "{") {
					inner = inner[idx+1:]
				}
			}
			inner = strings.TrimSpace(inner)
			if strings.HasPrefix(inner, "{") && strings.HasSuffix(inner, "}") {
				return inner
			}
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		return content[start : end+1]
	}

	return content
}

// ScoreEmoji maps a 0-10 score to a verdict marker for rendering.
func ScoreEmoji(score float64) string {
	switch {
	case score >= 8:
		return "🌟"
	case score >= 6:
		return "✅"
	case score >= 4:
		return "⚠️"
	default:
		return "❌"
	}
}
