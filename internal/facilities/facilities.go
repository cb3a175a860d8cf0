// Package facilities locates nearby disposal facilities for a waste category.
// Lookups are best-effort: any upstream failure degrades to an empty result
// and never fails the classification that requested it.
package facilities

import (
	"context"

	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

// UnratedPlaceholder substitutes for a missing facility rating.
const UnratedPlaceholder = "N/A"

// LatLng is a geographic point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Facility is a read-only projection of an external places result.
type Facility struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Rating  string `json:"rating"`
}

// Locator finds facilities relevant to a waste category near a point.
type Locator interface {
	// FindNearby returns at most MaxResults facilities in the external
	// ranking's order. Failures are absorbed and yield an empty slice.
	FindNearby(ctx context.Context, category taxonomy.Category, location LatLng) []Facility
}

// searchKeywords maps each waste category to its places search keyword.
var searchKeywords = map[taxonomy.Category]string{
	taxonomy.Recyclable:   "recycling center",
	taxonomy.Hazardous:    "hazardous waste disposal",
	taxonomy.Donatable:    "thrift store OR donation center",
	taxonomy.Organic:      "compost facility",
	taxonomy.GeneralWaste: "waste disposal",
}

// SearchKeyword returns the places query keyword for a category.
func SearchKeyword(category taxonomy.Category) string {
	if kw, ok := searchKeywords[category]; ok {
		return kw
	}
	return searchKeywords[taxonomy.GeneralWaste]
}
