package facilities

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"googlemaps.github.io/maps"

	"github.com/Tanmay1202/EnviRon/internal/metrics"
	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

type placesLocator struct {
	client *maps.Client
	radius uint
	limit  int
	logger *slog.Logger
}

// NewPlacesLocator creates a Locator backed by the Google Maps Places
// Nearby Search API.
func NewPlacesLocator(cfg *Config, logger *slog.Logger) (Locator, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create places client: %w", err)
	}

	return &placesLocator{
		client: client,
		radius: uint(cfg.RadiusMeters),
		limit:  cfg.MaxResults,
		logger: logger.With("system", "facilities"),
	}, nil
}

func (l *placesLocator) FindNearby(ctx context.Context, category taxonomy.Category, location LatLng) []Facility {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: location.Lat, Lng: location.Lng},
		Radius:   l.radius,
		Keyword:  SearchKeyword(category),
	}

	resp, err := l.client.NearbySearch(ctx, req)
	if err != nil {
		l.logger.Warn("facility lookup failed",
			"category", category,
			"error", err,
		)
		metrics.FacilityLookupsTotal.WithLabelValues("error").Inc()
		return []Facility{}
	}

	results := resp.Results
	if len(results) > l.limit {
		results = results[:l.limit]
	}

	if len(results) == 0 {
		metrics.FacilityLookupsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.FacilityLookupsTotal.WithLabelValues("hit").Inc()
	}

	facilities := make([]Facility, 0, len(results))
	for _, place := range results {
		facilities = append(facilities, Facility{
			Name:    place.Name,
			Address: placeAddress(place),
			Rating:  formatRating(place.Rating),
		})
	}

	return facilities
}

func placeAddress(place maps.PlacesSearchResult) string {
	if place.Vicinity != "" {
		return place.Vicinity
	}
	return place.FormattedAddress
}

func formatRating(rating float32) string {
	if rating == 0 {
		return UnratedPlaceholder
	}
	return strconv.FormatFloat(float64(rating), 'f', -1, 32)
}
