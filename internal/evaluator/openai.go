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

// openAICompatible speaks the chat-completions dialect, which covers
// OpenAI itself plus Ollama, vLLM, and most local gateways.
type openAICompatible struct {
	name        string
	url         string
	key         string
	model       string
	temperature float64
	client      *http.Client
}

func newOpenAICompatible(name, baseURL, key string, opts Options, client *http.Client) *openAICompatible {
	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openAICompatible{
		name:        name,
		url:         strings.TrimRight(baseURL, "/") + "/v1/chat/completions",
		key:         key,
		model:       model,
		temperature: opts.Temperature,
		client:      client,
	}
}

func (p *openAICompatible) Name() string { return p.name }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *openAICompatible) Evaluate(ctx context.Context, text string) (validate.Evaluation, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(text)},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.key != "" {
		req.Header.Set("Authorization", "Bearer "+p.key)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: %s request: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return validate.Evaluation{}, fmt.Errorf("evaluator: %s returned %d: %s", p.name, resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return validate.Evaluation{}, fmt.Errorf("evaluator: %s returned no choices", p.name)
	}
	return parseEvaluation(parsed.Choices[0].Message.Content, text)
}
