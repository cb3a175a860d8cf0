// Package classify implements the waste classification pipeline: image label
// detection through the vision capability, category resolution, and nearby
// facility lookup.
package classify

import (
	"github.com/Tanmay1202/EnviRon/internal/facilities"
	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

// Request carries one classification's inputs. Constructed per user action
// and discarded after use.
type Request struct {
	Image    []byte
	UserID   string
	Location *facilities.LatLng
}

// Result is the composed outcome of a classification. Created once per
// request and owned by the caller for display only.
type Result struct {
	Category     taxonomy.Category     `json:"category"`
	Labels       []string              `json:"labels"`
	Facilities   []facilities.Facility `json:"facilities"`
	Instructions string                `json:"instructions"`
	Tip          string                `json:"tip"`
}
