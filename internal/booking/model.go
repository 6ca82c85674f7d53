package booking

import (
	"time"

	"github.com/shareit-go/shareit/internal/pkg/apperror"
	"github.com/shareit-go/shareit/internal/pkg/paging"
)

var (
	ErrNotFound          = apperror.NotFound("booking not found")
	ErrItemUnavailable   = apperror.InvalidArgument("item is not available for booking")
	ErrStartEqualsEnd    = apperror.InvalidArgument("start and end of a booking must not be equal")
	ErrEndBeforeStart    = apperror.InvalidArgument("end of a booking must not be before its start")
	ErrStartTimePast     = apperror.InvalidArgument("start of a booking must not be in the past")
	ErrAlreadyApproved   = apperror.InvalidArgument("booking is already approved")
	ErrTimeRangeRequired = apperror.InvalidArgument("start and end of a booking are required")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State selects bookings by their position in time or by status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState is case-sensitive. An empty value means ALL.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch st := State(s); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", apperror.InvalidArgument("Unknown state: %s", s)
	}
}

type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Status      Status
}

// Filter selects bookings of one booker or of one owner's items.
// Exactly one of BookerID and OwnerID is set.
type Filter struct {
	BookerID int64
	OwnerID  int64
	State    State
	Now      time.Time
	Page     paging.Page
}
