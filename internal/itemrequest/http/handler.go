package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/itemrequest"
	"github.com/shareit-go/shareit/internal/pkg/request"
	"github.com/shareit-go/shareit/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

// ListOwn returns the caller's requests, oldest first, with fulfilling items.
func (h *Handler) ListOwn(c *gin.Context) {
	list, err := h.service.ListOwn(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newRequestList(list))
}

// ListOthers pages through requests made by other users.
func (h *Handler) ListOthers(c *gin.Context) {
	var req ListOthersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := h.service.ListOthers(c.Request.Context(), auth.GetUserID(c), req.From, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newRequestList(list))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Get(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}
