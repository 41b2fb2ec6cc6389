package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const geminiModel = "gemini-2.0-flash"

// GeminiParser implements Parser against the Gemini REST API.
type GeminiParser struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiParser creates a parser for the given API key and base URL
// (e.g. "https://generativelanguage.googleapis.com").
func NewGeminiParser(apiKey, baseURL string) *GeminiParser {
	return &GeminiParser{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// suggestionSchema constrains the model to the Suggestion shape.
var suggestionSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"description": {"type": "STRING"},
		"amount": {"type": "NUMBER"},
		"payerName": {"type": "STRING"},
		"participantNames": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["description", "amount", "payerName", "participantNames"]
}`)

// Parse asks Gemini to extract a structured expense from the prompt. The
// input may be English, Cantonese or Mandarin.
func (g *GeminiParser) Parse(ctx context.Context, prompt string, participantNames []string) (*Suggestion, error) {
	var memberContext string
	if len(participantNames) > 0 {
		memberContext = fmt.Sprintf(
			"Current trip members: %s. If \"大家\", \"all\" or \"everyone\" is mentioned, include ALL these members.",
			strings.Join(participantNames, ", "),
		)
	}

	instruction := fmt.Sprintf(`Parse the following expense description into structured data.
The input might be in English, Cantonese (廣東話), or Mandarin.
%s

Cantonese hints:
- "俾" or "畀" means "paid by"
- "大家分" or "大家share" means "shared by everyone/all"
- Numbers followed by "蚊" means currency amount

Input: %q`, memberContext, prompt)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var suggestion Suggestion
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion: %w", err)
	}
	return &suggestion, nil
}
