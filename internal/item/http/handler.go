package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/item"
	"github.com/shareit-go/shareit/internal/pkg/request"
	"github.com/shareit-go/shareit/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// Update modifies an item. Only the owner may do so.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetUserID(c), item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// Get renders the owner shape for the owner and the public shape for everyone else.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	v, err := h.service.GetView(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if v.IsOwnerView() {
		c.JSON(http.StatusOK, NewItemOwnerResponse(v))
		return
	}
	c.JSON(http.StatusOK, NewItemDetailResponse(v))
}

// ListOwn returns the caller's items with their booking timeline.
func (h *Handler) ListOwn(c *gin.Context) {
	var req request.PageParams
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	views, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c), req.Page())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemOwnerResponse, len(views))
	for i, v := range views {
		out[i] = NewItemOwnerResponse(v)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), req.Text, req.Page())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AddComment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	cm, err := h.service.AddComment(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(cm))
}
