package itemrequest

import (
	"context"
	"time"

	"github.com/shareit-go/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("request not found")
	ErrDescriptionRequired = apperror.InvalidArgument("description is required")
	ErrInvalidPage         = apperror.InvalidArgument("Params from must be >= 0 and size must be > 0")
)

// ItemRequest is a user's ask for an item nobody has listed yet.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time

	// Items fulfilling the request. Derived by query, never stored.
	Items []ItemBrief
}

// ItemBrief is the slice of an item shown under the request it fulfils.
type ItemBrief struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   int64
}

// ItemFinder looks up items that reference the given requests.
// The item package implements it; keeping the interface here avoids an import cycle.
type ItemFinder interface {
	ByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]ItemBrief, error)
}
