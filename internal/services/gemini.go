// Gemini API implementation of [Generator]
//
// Request/response shapes follow https://ai.google.dev/api/generate-content
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/lix/internal/shared"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel = "gemini-flash-lite"

	// summarizePrompt prefixes post text handed to Summarize.
	summarizePrompt = "Please summarize the following LinkedIn post:\n\n"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// GeminiRequest is the generateContent request payload.
type GeminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// GeminiResponse is the generateContent response payload.
type GeminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Text returns the first candidate's first part, empty when absent.
func (r GeminiResponse) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// GeminiService implements the [Generator] interface against the Gemini REST API.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

// NewGeminiService creates a Gemini service from the given credentials.
// The API key is required; the model falls back to gemini-flash-lite.
func NewGeminiService(credentials map[string]string) (*GeminiService, error) {
	apiKey, ok := credentials["api_key"]
	if !ok || apiKey == "" {
		return nil, fmt.Errorf("%w: missing api_key in credentials", shared.ErrMissingCredentials)
	}

	model := credentials["model"]
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		httpClient: http.DefaultClient,
		baseURL:    geminiBaseURL,
	}, nil
}

func (g *GeminiService) Name() string {
	return "Gemini"
}

// Generate produces text for the given prompt.
func (g *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))

	payload := GeminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if len(detail) > 0 {
			return "", fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(detail)))
		}
		return "", fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", shared.ErrEmptyGeneration
	}

	return text, nil
}

// Summarize produces a short summary of existing post text.
func (g *GeminiService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: nothing to summarize", shared.ErrInvalidInput)
	}
	return g.Generate(ctx, summarizePrompt+text)
}
