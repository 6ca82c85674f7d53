package http

import (
	"github.com/shareit-go/shareit/internal/booking"
	"github.com/shareit-go/shareit/internal/pkg/localtime"
	"github.com/shareit-go/shareit/internal/pkg/request"
)

// CreateBookingRequest defines the payload for POST /bookings.
type CreateBookingRequest struct {
	ItemID int64               `json:"itemId" binding:"required,gt=0"`
	Start  *localtime.DateTime `json:"start" binding:"required"`
	End    *localtime.DateTime `json:"end" binding:"required"`
}

// DecideRequest carries the owner's verdict on PATCH /bookings/:id.
type DecideRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64              `json:"id"`
	Start  localtime.DateTime `json:"start"`
	End    localtime.DateTime `json:"end"`
	Status string             `json:"status"`
	Booker UserTag            `json:"booker"`
	Item   ItemTag            `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  localtime.New(b.Start),
		End:    localtime.New(b.End),
		Status: string(b.Status),
		Booker: UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func newBookingList(list []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i, b := range list {
		out[i] = NewBookingResponse(b)
	}
	return out
}
