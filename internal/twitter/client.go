package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"president-insights/internal/domain"
)

// DefaultTimelineCount es el maximo que acepta statuses/user_timeline por pagina.
const DefaultTimelineCount = 200

// TimelineFetcher obtiene los tweets recientes de una cuenta.
type TimelineFetcher interface {
	UserTimeline(ctx context.Context, screenName string, count int, includeRetweets bool) ([]domain.Status, error)
}

// Options agrupa credenciales y endpoints del cliente.
type Options struct {
	BaseURL        string
	TokenURL       string
	ConsumerKey    string
	ConsumerSecret string
	// BearerToken evita el intercambio client-credentials si ya se tiene un token de app.
	BearerToken string
	Timeout     time.Duration
	// HTTPClient se usa como transporte base (tests).
	HTTPClient *http.Client
}

// HTTPClient implementa TimelineFetcher contra la API REST v1.1 con auth app-only.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye el cliente; el token se pide de forma perezosa en el primer request.
func NewHTTPClient(opts Options, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.twitter.com/1.1"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx := context.Background()
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	var client *http.Client
	if opts.BearerToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.BearerToken, TokenType: "Bearer"})
		client = oauth2.NewClient(ctx, src)
	} else {
		tokenURL := opts.TokenURL
		if tokenURL == "" {
			tokenURL = "https://api.twitter.com/oauth2/token"
		}
		cc := clientcredentials.Config{
			ClientID:     opts.ConsumerKey,
			ClientSecret: opts.ConsumerSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		client = cc.Client(ctx)
	}
	client.Timeout = timeout

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (c *HTTPClient) UserTimeline(ctx context.Context, screenName string, count int, includeRetweets bool) ([]domain.Status, error) {
	screenName = strings.TrimPrefix(strings.TrimSpace(screenName), "@")
	if screenName == "" {
		return nil, errors.New("screen name is required")
	}
	if count <= 0 || count > DefaultTimelineCount {
		count = DefaultTimelineCount
	}

	q := url.Values{}
	q.Set("screen_name", screenName)
	q.Set("count", strconv.Itoa(count))
	q.Set("include_rts", strconv.FormatBool(includeRetweets))
	q.Set("tweet_mode", "extended")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/statuses/user_timeline.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("twitter error response",
			zap.Int("status", resp.StatusCode),
			zap.String("screen_name", screenName),
			zap.String("body", string(body)),
		)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return nil, fmt.Errorf("twitter api error: status=%d code=%d: %s", resp.StatusCode, apiErr.Errors[0].Code, apiErr.Errors[0].Message)
		}
		return nil, fmt.Errorf("twitter http error: status=%d", resp.StatusCode)
	}

	var statuses []domain.Status
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, fmt.Errorf("unmarshal timeline: %w", err)
	}
	return statuses, nil
}

type errorResponse struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}
