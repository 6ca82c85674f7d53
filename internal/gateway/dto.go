package gateway

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shareit-go/shareit/internal/booking"
	"github.com/shareit-go/shareit/internal/pkg/apperror"
	"github.com/shareit-go/shareit/internal/pkg/localtime"
)

var (
	errStartInPast      = apperror.InvalidArgument("start of a booking must be in the future")
	errEndNotAfterStart = apperror.InvalidArgument("end of a booking must be after its start")
)

type createUserBody struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
}

type updateUserBody struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type createItemBody struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

type updateItemBody struct {
	Name        *string `json:"name" binding:"omitempty,notblank"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

type commentBody struct {
	Text string `json:"text" binding:"required,notblank"`
}

type createRequestBody struct {
	Description string `json:"description" binding:"required,notblank"`
}

type createBookingBody struct {
	ItemID int64               `json:"itemId" binding:"required,gt=0"`
	Start  *localtime.DateTime `json:"start" binding:"required"`
	End    *localtime.DateTime `json:"end" binding:"required"`
}

// Validate checks the booking window against now.
func (b *createBookingBody) Validate(now time.Time) error {
	if !b.Start.After(now) {
		return errStartInPast
	}
	if !b.End.After(b.Start.Time) {
		return errEndNotAfterStart
	}
	return nil
}

// PageQuery is stricter than the server: size must be positive.
type PageQuery struct {
	From int `form:"from,default=0" binding:"gte=0"`
	Size int `form:"size,default=10" binding:"gt=0"`
}

func (p PageQuery) values() url.Values {
	return url.Values{
		"from": {strconv.Itoa(p.From)},
		"size": {strconv.Itoa(p.Size)},
	}
}

type searchQuery struct {
	PageQuery
	Text string `form:"text"`
}

type bookingListQuery struct {
	PageQuery
	State string `form:"state,default=ALL"`
}

type decideQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

// Validate rejects states the server does not know.
func (q *bookingListQuery) Validate() error {
	_, err := booking.ParseState(q.State)
	return err
}
