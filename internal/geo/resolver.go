package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Location is a resolved client position. Unknown is set when every rung of
// the fallback chain failed; callers must not trust the coordinates then.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Source    string  `json:"source"`
	Unknown   bool    `json:"unknown"`
}

// UnknownLocation is the sentinel returned when no strategy yielded usable
// coordinates.
var UnknownLocation = Location{Source: "unknown", Unknown: true}

// Resolver resolves an IP address to a location by walking a fixed fallback
// chain of geolocation APIs. Each rung is tried only when the previous one
// failed to return usable coordinates; there are no retries.
type Resolver struct {
	client *http.Client
	logger *zerolog.Logger
}

// NewResolver creates a Resolver whose outbound calls are bounded by timeout.
func NewResolver(logger *zerolog.Logger, timeout time.Duration) *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Resolve walks the fallback chain for the given IP.
func (r *Resolver) Resolve(ctx context.Context, ip string) Location {
	if loc, err := r.resolveIPAPI(ctx, ip); err == nil {
		return loc
	} else {
		r.logger.Debug().Err(err).Str("ip", ip).Msg("primary geolocation lookup failed")
	}

	if loc, err := r.resolveIPAPICo(ctx, ip); err == nil {
		return loc
	} else {
		r.logger.Debug().Err(err).Str("ip", ip).Msg("secondary geolocation lookup failed")
	}

	return UnknownLocation
}

func (r *Resolver) resolveIPAPI(ctx context.Context, ip string) (Location, error) {
	var payload struct {
		Status  string  `json:"status"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		City    string  `json:"city"`
		Country string  `json:"country"`
	}

	url := fmt.Sprintf("http://ip-api.com/json/%s", ip)
	if err := r.getJSON(ctx, url, &payload); err != nil {
		return UnknownLocation, err
	}

	if payload.Status != "success" {
		return UnknownLocation, fmt.Errorf("ip-api returned status %q", payload.Status)
	}

	return Location{
		Latitude:  payload.Lat,
		Longitude: payload.Lon,
		City:      payload.City,
		Country:   payload.Country,
		Source:    "ip-api",
	}, nil
}

func (r *Resolver) resolveIPAPICo(ctx context.Context, ip string) (Location, error) {
	var payload struct {
		Error     bool    `json:"error"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
		Country   string  `json:"country_name"`
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	if err := r.getJSON(ctx, url, &payload); err != nil {
		return UnknownLocation, err
	}

	if payload.Error {
		return UnknownLocation, fmt.Errorf("ipapi.co reported an error for %s", ip)
	}

	return Location{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		City:      payload.City,
		Country:   payload.Country,
		Source:    "ipapi.co",
	}, nil
}

func (r *Resolver) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
