// ABOUTME: HTTP client for a Gemini-style generateContent endpoint.
// ABOUTME: Sends one text part and returns the concatenated candidate text.
package insight

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
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel    = "gemini-2.5-pro"

	defaultTimeout = 60 * time.Second
)

// HTTPConfig holds the model endpoint settings.
type HTTPConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

// HTTPModel calls {endpoint}/{model}:generateContent.
type HTTPModel struct {
	cfg        HTTPConfig
	httpClient *http.Client
}

// NewHTTPModel creates a model client, filling unset fields with defaults.
func NewHTTPModel(cfg HTTPConfig, client *http.Client) *HTTPModel {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPModel{cfg: cfg, httpClient: client}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt and returns the first candidate's text.
func (m *HTTPModel) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(m.cfg.APIKey) == "" {
		return "", errors.New("insight: api key required")
	}
	body, err := json.Marshal(generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("insight: encode request: %w", err)
	}

	u := fmt.Sprintf("%s/%s:generateContent", m.cfg.Endpoint, m.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("insight: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", m.cfg.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("insight: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight: http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("insight: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", nil
	}
	var b strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
