package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/promptsec/promptval/internal/validate"
)

type anthropicProvider struct {
	key         string
	model       string
	temperature float64
	client      *http.Client
}

func newAnthropic(key string, opts Options, client *http.Client) *anthropicProvider {
	model := opts.Model
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}
	return &anthropicProvider{key: key, model: model, temperature: opts.Temperature, client: client}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *anthropicProvider) Evaluate(ctx context.Context, text string) (validate.Evaluation, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:       p.model,
		MaxTokens:   2048,
		Temperature: p.temperature,
		System:      systemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: userPrompt(text)}},
	})
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.key)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: anthropic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return validate.Evaluation{}, fmt.Errorf("evaluator: anthropic returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: decode response: %w", err)
	}

	var sb strings.Builder
	for _, seg := range parsed.Content {
		if seg.Type == "text" {
			sb.WriteString(seg.Text)
		}
	}
	if sb.Len() == 0 {
		return validate.Evaluation{}, fmt.Errorf("evaluator: anthropic returned no text content")
	}
	return parseEvaluation(sb.String(), text)
}
