package progress

import (
	"context"

	"github.com/Tanmay1202/EnviRon/pkg/pagination"
)

// System defines the public contract for progress domain operations.
type System interface {
	Handler() *Handler

	// Record appends a classification event and updates the user's points
	// and badges as a single transaction.
	Record(ctx context.Context, userID, category string) (*RecordResult, error)

	// Find returns a user's cumulative progress.
	Find(ctx context.Context, userID string) (*Progress, error)

	// History returns the user's classification events, newest first.
	History(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResult[Event], error)
}
