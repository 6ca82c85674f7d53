package http

import (
	"github.com/shareit-go/shareit/internal/itemrequest"
	"github.com/shareit-go/shareit/internal/pkg/localtime"
)

// CreateRequestBody defines the payload for POST /requests.
type CreateRequestBody struct {
	Description string `json:"description" binding:"required,notblank"`
}

// ListOthersRequest binds /requests/all paging. Both values are optional.
type ListOthersRequest struct {
	From *int `form:"from"`
	Size *int `form:"size"`
}

// ItemResponse is an item fulfilling a request.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
}

type RequestResponse struct {
	ID          int64              `json:"id"`
	Description string             `json:"description"`
	RequestorID int64              `json:"requestorId"`
	Created     localtime.DateTime `json:"created"`
	Items       []ItemResponse     `json:"items"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	items := make([]ItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
		}
	}

	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     localtime.New(r.Created),
		Items:       items,
	}
}

func newRequestList(list []*itemrequest.ItemRequest) []RequestResponse {
	out := make([]RequestResponse, len(list))
	for i, r := range list {
		out[i] = NewRequestResponse(r)
	}
	return out
}
