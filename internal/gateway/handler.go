package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/pkg/middleware"
	"github.com/shareit-go/shareit/internal/pkg/request"
	"github.com/shareit-go/shareit/internal/pkg/response"
)

// Upstream is the server tier as seen by the gateway.
type Upstream interface {
	Forward(ctx context.Context, req UpstreamRequest) (*UpstreamResponse, error)
}

// Handler validates requests and forwards the valid ones to the server.
type Handler struct {
	upstream Upstream
	now      func() time.Time
}

func NewHandler(upstream Upstream) *Handler {
	return &Handler{upstream: upstream, now: time.Now}
}

// forward relays the request and writes the server's answer verbatim.
func (h *Handler) forward(c *gin.Context, query url.Values, body []byte) {
	if query == nil {
		query = c.Request.URL.Query()
	}

	header := c.Request.Header.Clone()
	if id := middleware.GetRequestID(c); id != "" {
		header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := h.upstream.Forward(c.Request.Context(), UpstreamRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  query,
		Header: header,
		Body:   body,
	})
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("upstream call failed")
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "upstream unavailable"})
		return
	}

	if resp.ContentType == "" || len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, resp.ContentType, resp.Body)
}

// bindBody reads the raw JSON body and validates it into dst.
// The raw bytes are returned so the server receives exactly what was sent.
func bindBody(c *gin.Context, dst any) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BindError(c, err)
		return nil, false
	}
	if err := binding.JSON.BindBody(body, dst); err != nil {
		response.BindError(c, err)
		return nil, false
	}
	return body, true
}

func bindID(c *gin.Context) bool {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return false
	}
	return true
}

// passThrough forwards requests that need no validation beyond routing.
func (h *Handler) passThrough(c *gin.Context) {
	h.forward(c, nil, nil)
}

// byID forwards requests whose only input is a positive path id.
func (h *Handler) byID(c *gin.Context) {
	if !bindID(c) {
		return
	}
	h.forward(c, nil, nil)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var dto createUserBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	if !bindID(c) {
		return
	}
	var dto updateUserBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var dto createItemBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	if !bindID(c) {
		return
	}
	var dto updateItemBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) ListItems(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	h.forward(c, q.values(), nil)
}

func (h *Handler) SearchItems(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	values := q.values()
	values.Set("text", q.Text)
	h.forward(c, values, nil)
}

func (h *Handler) AddComment(c *gin.Context) {
	if !bindID(c) {
		return
	}
	var dto commentBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var dto createBookingBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	if err := dto.Validate(h.now()); err != nil {
		response.Error(c, err)
		return
	}
	h.forward(c, nil, body)
}

func (h *Handler) DecideBooking(c *gin.Context) {
	if !bindID(c) {
		return
	}
	var q decideQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	h.forward(c, url.Values{"approved": {strconv.FormatBool(*q.Approved)}}, nil)
}

func (h *Handler) ListBookings(c *gin.Context) {
	var q bookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	if err := q.Validate(); err != nil {
		response.Error(c, err)
		return
	}
	values := q.values()
	values.Set("state", q.State)
	h.forward(c, values, nil)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var dto createRequestBody
	body, ok := bindBody(c, &dto)
	if !ok {
		return
	}
	h.forward(c, nil, body)
}

// ListOtherRequests always sends explicit paging so the server never sees a half-specified page.
func (h *Handler) ListOtherRequests(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	h.forward(c, q.values(), nil)
}
