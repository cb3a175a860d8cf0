// Package progress implements the gamified progress ledger: an append-only
// classification event log and the cumulative points and badge state it feeds.
package progress

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BadgeEcoWarrior is awarded on a user's first recyclable classification.
const BadgeEcoWarrior = "Eco-Warrior"

// Ledger outcome values stored per classification event.
const (
	OutcomeRecyclable    = "Recyclable"
	OutcomeNonRecyclable = "Non-Recyclable"
)

const (
	recyclablePoints = 20
	defaultPoints    = 5
	recyclableWeight = 0.1
)

// Progress is a user's cumulative state. Badges hold award order.
type Progress struct {
	UserID string   `json:"userId"`
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

// Event is one ledger entry. Rows are append-only; never updated or deleted.
type Event struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	Result    string    `json:"result"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordResult reports the state after recording one classification.
// NewBadge is set only when this event first unlocked the badge.
type RecordResult struct {
	Points   int     `json:"points"`
	NewBadge *string `json:"newBadge,omitempty"`
}

// RecordCommand is the wire format for recording a classification event.
type RecordCommand struct {
	UserID   string `json:"userId"`
	Category string `json:"category"`
}

// award resolves the ledger row values and point award for a category.
// A classification counts as recyclable iff the category equals the
// Recyclable canonical name, compared case-insensitively.
func award(category string) (result string, points int, weight float64) {
	if strings.EqualFold(category, OutcomeRecyclable) {
		return OutcomeRecyclable, recyclablePoints, recyclableWeight
	}
	return OutcomeNonRecyclable, defaultPoints, 0
}
