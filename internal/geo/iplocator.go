// Package geo locates the current machine for "use my location" queries.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

var ErrLocationUnavailable = errors.New("location unavailable")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPLocator resolves an approximate position from the public IP address,
// using an ip-api.com compatible JSON endpoint.
type IPLocator struct {
	URL        string
	httpClient HTTPClient
	l          *logger.Logger
}

// ipAPIResponse is the subset of the ip-api.com payload we read.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPLocator returns a locator for url. An empty url yields an unavailable locator.
func NewIPLocator(url string, httpClient HTTPClient, l *logger.Logger) *IPLocator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if l == nil {
		l = logger.Discard("geo")
	}
	return &IPLocator{
		URL:        url,
		httpClient: httpClient,
		l:          l,
	}
}

// Available reports whether the locator can be asked for a position at all.
func (g *IPLocator) Available() bool {
	return g != nil && g.URL != ""
}

// CurrentPosition looks up the position and calls exactly one of the callbacks
// before returning.
func (g *IPLocator) CurrentPosition(ctx context.Context, onSuccess func(models.Position), onFailure func(error)) {
	pos, err := g.locate(ctx)
	if err != nil {
		g.l.Warning("geolocation failed", map[string]any{"err": err.Error()})
		onFailure(err)
		return
	}
	onSuccess(pos)
}

func (g *IPLocator) locate(ctx context.Context) (models.Position, error) {
	if !g.Available() {
		return models.Position{}, ErrLocationUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL, nil)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Position{}, fmt.Errorf("%w: status %d", ErrLocationUnavailable, resp.StatusCode)
	}

	var payload ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Position{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if payload.Status != "" && payload.Status != "success" {
		return models.Position{}, fmt.Errorf("%w: %s", ErrLocationUnavailable, payload.Message)
	}

	return models.Position{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}
