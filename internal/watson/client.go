package watson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"president-insights/internal/insights"
)

// ErrEmptyText evita llamar al servicio sin texto para analizar.
var ErrEmptyText = errors.New("no text to analyze")

// Profile es la respuesta de /v2/profile.
type Profile struct {
	ID               string                `json:"id"`
	Source           string                `json:"source"`
	WordCount        int                   `json:"word_count"`
	WordCountMessage string                `json:"word_count_message,omitempty"`
	ProcessedLang    string                `json:"processed_lang"`
	Tree             insights.CategoryNode `json:"tree"`
}

// Analyzer define la interfaz para perfilar un texto.
type Analyzer interface {
	Profile(ctx context.Context, text string) (Profile, error)
}

// HTTPClient implementa Analyzer contra Personality Insights v2.
type HTTPClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPClient construye un cliente con basic auth.
func NewHTTPClient(baseURL, username, password string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://gateway.watsonplatform.net/personality-insights/api"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client:   &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

func (c *HTTPClient) Profile(ctx context.Context, text string) (Profile, error) {
	if strings.TrimSpace(text) == "" {
		return Profile{}, ErrEmptyText
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/profile", strings.NewReader(text))
	if err != nil {
		return Profile{}, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("personality insights error", zap.Int("status", resp.StatusCode), zap.String("body", string(respBody)))
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return Profile{}, fmt.Errorf("personality insights api error: status=%d: %s", resp.StatusCode, apiErr.Error)
		}
		return Profile{}, fmt.Errorf("personality insights http error: status=%d", resp.StatusCode)
	}

	var raw struct {
		Profile
		Tree json.RawMessage `json:"tree"`
	}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return Profile{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(raw.Tree) == 0 {
		return Profile{}, fmt.Errorf("%w: response has no tree", insights.ErrMalformedTree)
	}
	tree, err := insights.DecodeTree(raw.Tree)
	if err != nil {
		return Profile{}, err
	}

	profile := raw.Profile
	profile.Tree = tree
	return profile, nil
}

type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
	Help  string `json:"help,omitempty"`
}
