package item

import (
	"context"
	"time"

	"github.com/shareit-go/shareit/internal/itemrequest"
	"github.com/shareit-go/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNameRequired        = apperror.InvalidArgument("name is required")
	ErrDescriptionRequired = apperror.InvalidArgument("description is required")
	ErrCommentTextRequired = apperror.InvalidArgument("comment text is required")
	ErrCommentNotAllowed   = apperror.InvalidArgument("only users who finished an approved booking of the item can comment")
)

type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64 // Set when the item fulfils an item request.
}

type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingBrief is the booking summary shown to an item owner.
type BookingBrief struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// OwnerBookings holds the approved bookings around "now" for one item.
type OwnerBookings struct {
	Last *BookingBrief
	Next *BookingBrief
}

// View is an item as seen by a caller. Owner is nil unless the caller owns the item.
type View struct {
	Item     *Item
	Comments []*Comment
	Owner    *OwnerBookings
}

// IsOwnerView reports whether the view carries the owner-only booking section.
func (v *View) IsOwnerView() bool {
	return v.Owner != nil
}

// BookingFinder answers the booking questions the item engine needs.
// The booking package implements it; keeping the interface here avoids an import cycle.
type BookingFinder interface {
	LastAndNext(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]OwnerBookings, error)
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

// RequestLookup resolves the item request an item claims to fulfil.
type RequestLookup interface {
	GetByID(ctx context.Context, id int64) (*itemrequest.ItemRequest, error)
}
