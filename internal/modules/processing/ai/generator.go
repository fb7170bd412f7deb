package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell/core/internal/config"
)

var (
	// ErrNoAPIKey is returned before any network call when no key is configured.
	ErrNoAPIKey = errors.New("NO_GEMINI_KEY")
	// ErrParse is returned when the model output cannot be decoded as JSON.
	ErrParse = errors.New("PARSE_ERROR")
)

// Part is one piece of a multimodal request: text, or inline binary data.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// Generator produces model completions. Handlers and services depend on this
// interface so tests can substitute a canned implementation.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string) (string, error)
	GenerateParts(ctx context.Context, parts []Part) (string, error)
}

// GeminiGenerator talks to the Gemini REST generateContent endpoint.
type GeminiGenerator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewGeminiGenerator(cfg config.AIConfig) *GeminiGenerator {
	return &GeminiGenerator{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    cfg.Model,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiGenerator) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []Part{{Text: prompt}})
}

func (g *GeminiGenerator) GenerateParts(ctx context.Context, parts []Part) (string, error) {
	return g.generate(ctx, parts)
}

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MIMEType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"inline_data,omitempty"`
}

func (g *GeminiGenerator) generate(ctx context.Context, parts []Part) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	reqParts := make([]geminiPart, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			gp := geminiPart{}
			gp.InlineData = &struct {
				MIMEType string `json:"mime_type"`
				Data     string `json:"data"`
			}{MIMEType: p.MIMEType, Data: base64.StdEncoding.EncodeToString(p.Data)}
			reqParts = append(reqParts, gp)
			continue
		}
		reqParts = append(reqParts, geminiPart{Text: p.Text})
	}

	body, _ := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": reqParts},
		},
	})

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("gemini error: %s", strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	var full strings.Builder
	for _, cand := range result.Candidates {
		for _, p := range cand.Content.Parts {
			full.WriteString(p.Text)
		}
	}
	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// unmarshalModelJSON decodes model output that may be wrapped in markdown
// fences or surrounded by prose.
func unmarshalModelJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}
	return ErrParse
}
