// Package client talks to the weather API on behalf of the widget.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

// maxErrorBody caps how much of an error payload is read.
const maxErrorBody = 64 << 10

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseError is a non-2xx answer from the weather API.
type ResponseError struct {
	StatusCode int
	// Message is the payload's "detail" string, empty when the payload had none.
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather api: status %d: %s", e.StatusCode, e.Message)
}

// Detail is the server supplied explanation, if any.
func (e *ResponseError) Detail() string {
	return e.Message
}

type Client struct {
	BaseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

// New returns a client for the API rooted at baseURL. A nil httpClient means
// http.DefaultClient and a nil logger discards output.
func New(baseURL string, httpClient HTTPClient, l *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if l == nil {
		l = logger.Discard("weather-client")
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}
}

// FetchWeather issues one GET {BaseURL}/weather for q. There is no retry and no
// timeout beyond ctx.
func (c *Client) FetchWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error) {
	endpoint := c.BaseURL + "/weather?" + q.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	c.l.Debug("weather api responded", map[string]any{
		"query":  q.String(),
		"status": resp.StatusCode,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ResponseError{StatusCode: resp.StatusCode, Message: detail(body)}
	}

	var snapshot models.WeatherSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &snapshot, nil
}

// detail extracts a string "detail" field. Anything else, including a
// non-string detail, yields "".
func detail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(payload.Detail, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}
