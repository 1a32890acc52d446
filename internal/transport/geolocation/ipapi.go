package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

// DefaultIPAPIURL is the default IP geolocation lookup endpoint.
const DefaultIPAPIURL = "https://ipapi.co/json/"

// IPAPI resolves the device location from its public IP address.
type IPAPI struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// IPAPIConfig holds the IP lookup settings.
type IPAPIConfig struct {
	URL        string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewIPAPI creates an IP geolocation provider.
func NewIPAPI(cfg *IPAPIConfig) *IPAPI {
	p := &IPAPI{url: cfg.URL, client: cfg.HTTPClient, logger: cfg.Logger}
	if p.url == "" {
		p.url = DefaultIPAPIURL
	}
	if p.client == nil {
		p.client = http.DefaultClient
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

type ipapiResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

// Locate performs a single lookup. 401/403 responses map to geo.ErrPermissionDenied.
func (p *IPAPI) Locate(ctx context.Context) (geo.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("ip lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return geo.Coordinates{}, fmt.Errorf("ip lookup status %d: %w", resp.StatusCode, geo.ErrPermissionDenied)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return geo.Coordinates{}, fmt.Errorf("ip lookup status %d", resp.StatusCode)
	}

	var parsed ipapiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return geo.Coordinates{}, fmt.Errorf("decode ip lookup: %w", err)
	}
	if parsed.Error {
		p.logger.Debug("IP lookup refused", zap.String("reason", parsed.Reason))
		return geo.Coordinates{}, fmt.Errorf("ip lookup: %s: %w", parsed.Reason, geo.ErrUnsupported)
	}
	if parsed.Latitude == nil || parsed.Longitude == nil {
		return geo.Coordinates{}, errors.New("ip lookup: response has no coordinates")
	}

	c, err := geo.New(*parsed.Latitude, *parsed.Longitude)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("ip lookup: %w", err)
	}
	return c, nil
}

// Name identifies the provider in logs and metrics.
func (p *IPAPI) Name() string { return "ipapi" }
