package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// GeocodingService resolves free-text addresses to coordinates through
// the routing service's Nominatim proxy (direct Nominatim calls get
// blocked by CORS/403 from browsers and rate limits from servers).
type GeocodingService struct {
	client *resty.Client
}

// GeocodeResult is one candidate returned by the proxy. Coordinates
// stay decimal strings end to end to preserve precision.
type GeocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewGeocodingService creates a geocoder against the proxy URL.
func NewGeocodingService(proxyURL string) *GeocodingService {
	client := resty.New().
		SetBaseURL(proxyURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept-Language", "pt-BR")

	return &GeocodingService{client: client}
}

// Geocode submits a free-text query and returns all candidates. An
// empty slice means the address could not be located.
func (s *GeocodingService) Geocode(ctx context.Context, query string) ([]GeocodeResult, error) {
	var results []GeocodeResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&results).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("failed to query geocoding proxy: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("geocoding proxy returned status %d", resp.StatusCode())
	}

	return results, nil
}

// BuildQuery assembles the free-text geocoding query for a street
// address, omitting the house number when blank.
func BuildQuery(logradouro, numero, cidade, uf string) string {
	if numero == "" {
		return fmt.Sprintf("%s, %s, %s, Brasil", logradouro, cidade, uf)
	}
	return fmt.Sprintf("%s, %s, %s, %s, Brasil", logradouro, numero, cidade, uf)
}
