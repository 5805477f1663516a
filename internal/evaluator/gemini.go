package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/promptsec/promptval/internal/validate"
)

type geminiProvider struct {
	key         string
	model       string
	temperature float64
	client      *http.Client
}

func newGemini(key string, opts Options, client *http.Client) *geminiProvider {
	model := opts.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &geminiProvider{key: key, model: model, temperature: opts.Temperature, client: client}
}

func (p *geminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"systemInstruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *geminiProvider) Evaluate(ctx context.Context, text string) (validate.Evaluation, error) {
	reqBody := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userPrompt(text)}}}},
	}
	reqBody.GenerationConfig.Temperature = p.temperature

	body, err := json.Marshal(reqBody)
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		url.PathEscape(p.model), url.QueryEscape(p.key),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return validate.Evaluation{}, fmt.Errorf("evaluator: gemini returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return validate.Evaluation{}, fmt.Errorf("evaluator: gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return parseEvaluation(sb.String(), text)
}
