package facilities

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

func TestSearchKeyword(t *testing.T) {
	tests := []struct {
		category taxonomy.Category
		want     string
	}{
		{taxonomy.Recyclable, "recycling center"},
		{taxonomy.Hazardous, "hazardous waste disposal"},
		{taxonomy.Donatable, "thrift store OR donation center"},
		{taxonomy.Organic, "compost facility"},
		{taxonomy.GeneralWaste, "waste disposal"},
		{taxonomy.Category("Unknown"), "waste disposal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := SearchKeyword(tt.category); got != tt.want {
				t.Errorf("SearchKeyword(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func placesTestLocator(t *testing.T, handler http.HandlerFunc) *placesLocator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("create maps client: %v", err)
	}

	return &placesLocator{
		client: client,
		radius: 5000,
		limit:  3,
		logger: testLogger(),
	}
}

func TestFindNearbyLimitsAndOrder(t *testing.T) {
	locator := placesTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"status": "OK",
			"results": [
				{"name": "GreenCycle Depot", "vicinity": "12 Oak St", "rating": 4.5},
				{"name": "City Recycling", "vicinity": "88 Elm Ave", "rating": 0},
				{"name": "EcoDrop", "formatted_address": "5 Pine Rd", "rating": 3},
				{"name": "Fourth Facility", "vicinity": "Nowhere", "rating": 5}
			]
		}`)
	})

	got := locator.FindNearby(context.Background(), taxonomy.Recyclable, LatLng{Lat: 40.7, Lng: -74.0})

	want := []Facility{
		{Name: "GreenCycle Depot", Address: "12 Oak St", Rating: "4.5"},
		{Name: "City Recycling", Address: "88 Elm Ave", Rating: "N/A"},
		{Name: "EcoDrop", Address: "5 Pine Rd", Rating: "3"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d facilities, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("facility %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindNearbyUpstreamFailure(t *testing.T) {
	locator := placesTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status": "REQUEST_DENIED", "error_message": "key rejected", "results": []}`)
	})

	got := locator.FindNearby(context.Background(), taxonomy.Hazardous, LatLng{Lat: 40.7, Lng: -74.0})
	if len(got) != 0 {
		t.Errorf("got %d facilities on failure, want 0", len(got))
	}
}

func TestFindNearbyEmptyResults(t *testing.T) {
	locator := placesTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	})

	got := locator.FindNearby(context.Background(), taxonomy.Organic, LatLng{Lat: 40.7, Lng: -74.0})
	if len(got) != 0 {
		t.Errorf("got %d facilities, want 0", len(got))
	}
}

type stubLocator struct {
	calls      int
	facilities []Facility
}

func (s *stubLocator) FindNearby(context.Context, taxonomy.Category, LatLng) []Facility {
	s.calls++
	return s.facilities
}

func TestCacheFailureFallsThrough(t *testing.T) {
	inner := &stubLocator{facilities: []Facility{{Name: "Depot", Address: "1 Main", Rating: "N/A"}}}
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})

	cached := WithCache(inner, rdb, time.Minute, testLogger())

	got := cached.FindNearby(context.Background(), taxonomy.Recyclable, LatLng{Lat: 1, Lng: 2})
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
	if len(got) != 1 || got[0].Name != "Depot" {
		t.Errorf("got %+v, want inner result", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{APIKey: "key"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.RadiusMeters != 5000 {
		t.Errorf("RadiusMeters = %d, want 5000", cfg.RadiusMeters)
	}
	if cfg.MaxResults != 3 {
		t.Errorf("MaxResults = %d, want 3", cfg.MaxResults)
	}
	if cfg.CacheTTLDuration() != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.CacheTTLDuration())
	}
}

func TestConfigRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected error for missing api_key")
	}
}
