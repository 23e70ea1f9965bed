// Package reason wraps a structured-reasoning service for clause risk
// analysis, contract summaries, and language detection. When no usable
// credential is configured, or a live call fails in any way, every task falls
// back to a deterministic simulated response; callers never see an error.
package reason

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/karar-labs/karar/internal/models"
	"go.uber.org/zap"
)

// Config holds reasoning service settings. APIKey is read from the
// environment by the caller; an empty value or a placeholder (containing
// "your_") disables the live path.
type Config struct {
	Model          string
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	SummaryChars   int
	TranslateChars int
}

// Client is the reasoning service client. Safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client. Zero config fields get working defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4-turbo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.SummaryChars == 0 {
		cfg.SummaryChars = 5000
	}
	if cfg.TranslateChars == 0 {
		cfg.TranslateChars = 2000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Live reports whether a usable credential is configured.
func (c *Client) Live() bool {
	return c.cfg.APIKey != "" && !strings.Contains(c.cfg.APIKey, "your_")
}

// AnalyzeClause analyzes a single clause for risk in the context of the given
// contract type.
func (c *Client) AnalyzeClause(ctx context.Context, clauseText string, contractType models.ContractType) models.ClauseAnalysis {
	prompt := buildClausePrompt(clauseText, contractType)
	var out models.ClauseAnalysis
	if c.completeInto(ctx, prompt, clauseAnalysisSchema(), &out) {
		return out
	}
	return SimulateClauseAnalysis(clauseText)
}

// SummarizeContract produces a document-level summary and composite risk
// score. Only the leading SummaryChars of fullText are sent; this is a
// deliberate cost/latency bound.
func (c *Client) SummarizeContract(ctx context.Context, fullText string, contractType models.ContractType) models.SummaryReport {
	prompt := buildSummaryPrompt(fullText, contractType, c.cfg.SummaryChars)
	var out models.SummaryReport
	if c.completeInto(ctx, prompt, summarySchema(), &out) {
		return out
	}
	return SimulateSummary()
}

// DetectAndTranslate detects the language of text (leading TranslateChars
// only) and translates it into English legal terminology.
func (c *Client) DetectAndTranslate(ctx context.Context, text string) models.Translation {
	prompt := buildTranslatePrompt(text, c.cfg.TranslateChars)
	var out models.Translation
	if c.completeInto(ctx, prompt, translationSchema(), &out) {
		return out
	}
	return SimulateTranslation()
}

// completeInto runs one live completion and decodes the validated JSON
// response into out. Returns false when the live path is unavailable or
// failed, in which case the caller substitutes the simulated response. No
// retries: a single failure falls straight back to simulation.
func (c *Client) completeInto(ctx context.Context, prompt string, schema map[string]any, out any) bool {
	if !c.Live() {
		return false
	}
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("reasoning call failed, using simulated response", zap.Error(err))
		return false
	}
	if err := ValidateAgainstSchema(schema, raw); err != nil {
		c.logger.Warn("reasoning response failed schema validation, using simulated response", zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("reasoning response decode failed, using simulated response", zap.Error(err))
		return false
	}
	return true
}

// complete issues one chat completion and returns the message content, which
// must parse strictly as a JSON object.
func (c *Client) complete(ctx context.Context, prompt string) ([]byte, error) {
	body := map[string]any{
		"model":           c.cfg.Model,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reasoning http error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("reasoning status %d: %s", resp.StatusCode, raw)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode completion envelope: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	var probe map[string]any
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return nil, fmt.Errorf("completion content is not a JSON object: %w", err)
	}
	return []byte(content), nil
}
