// Package geo provides an HTTP client for a Nominatim-compatible geocoding
// service. The client implements the Geocoder port: upstream "no match"
// responses are reported as unresolved results, while network and protocol
// faults surface as errors.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// NominatimClient resolves postal addresses against a Nominatim-compatible
// search endpoint.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimClient creates a geocoding client for the given base URL,
// e.g. "https://nominatim.openstreetmap.org". A non-positive timeout falls
// back to a conservative default.
func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// searchResult mirrors one entry of the Nominatim /search response.
// Coordinates arrive as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves the address to coordinates via the /search endpoint.
// The request is bounded by both the client timeout and the context deadline.
func (c *NominatimClient) Geocode(ctx context.Context, address kernel.Address) (ports.GeocodeResult, error) {
	if err := address.Validate(); err != nil {
		return ports.GeocodeResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(address), nil)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return ports.GeocodeResult{}, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return ports.GeocodeResult{FailureReason: "no match for address"}, nil
	}

	location, err := parseLocation(results[0])
	if err != nil {
		return ports.GeocodeResult{}, err
	}

	return ports.GeocodeResult{Location: location}, nil
}

// searchURL builds a structured /search query for the address.
func (c *NominatimClient) searchURL(address kernel.Address) string {
	params := url.Values{}
	params.Set("street", address.Street())
	params.Set("city", address.City())
	params.Set("postalcode", address.ZipCode())
	params.Set("country", address.Country())
	params.Set("format", "json")
	params.Set("limit", "1")

	return c.baseURL + "/search?" + params.Encode()
}

func parseLocation(result searchResult) (*kernel.GeoPoint, error) {
	latitude, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse geocode latitude %q: %w", result.Lat, err)
	}

	longitude, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse geocode longitude %q: %w", result.Lon, err)
	}

	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return nil, err
	}

	return &location, nil
}
