package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/booking"
	"github.com/shareit-go/shareit/internal/pkg/request"
	"github.com/shareit-go/shareit/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start.Time,
		End:    body.End.Time,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Decide approves or rejects a booking. Only the item owner may call it.
func (h *Handler) Decide(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var req DecideRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.Decide(c.Request.Context(), uri.ID, auth.GetUserID(c), *req.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.Get(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListByBooker returns the caller's own bookings.
func (h *Handler) ListByBooker(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := h.service.ListByBooker(c.Request.Context(), auth.GetUserID(c), req.State, req.Page())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingList(list))
}

// ListByOwner returns bookings made on the caller's items.
func (h *Handler) ListByOwner(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c), req.State, req.Page())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingList(list))
}
