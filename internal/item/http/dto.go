package http

import (
	"github.com/shareit-go/shareit/internal/item"
	"github.com/shareit-go/shareit/internal/pkg/localtime"
	"github.com/shareit-go/shareit/internal/pkg/request"
)

// CreateItemRequest defines the payload for POST /items.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

// UpdateItemRequest defines fields allowed to be updated via PATCH /items/:id.
type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest defines the payload for POST /items/:id/comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

// SearchRequest defines query parameters for GET /items/search.
type SearchRequest struct {
	request.PageParams
	Text string `form:"text"`
}

// ItemResponse is the public shape of an item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

type CommentResponse struct {
	ID         int64              `json:"id"`
	Text       string             `json:"text"`
	AuthorName string             `json:"authorName"`
	ItemID     int64              `json:"itemId"`
	Created    localtime.DateTime `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		ItemID:     cm.ItemID,
		Created:    localtime.New(cm.Created),
	}
}

// ItemDetailResponse is what a non-owner sees on GET /items/:id.
type ItemDetailResponse struct {
	ItemResponse
	Comments []CommentResponse `json:"comments"`
}

// BookingBriefResponse summarizes a booking for the item owner.
type BookingBriefResponse struct {
	ID       int64              `json:"id"`
	BookerID int64              `json:"bookerId"`
	Start    localtime.DateTime `json:"start"`
	End      localtime.DateTime `json:"end"`
}

// ItemOwnerResponse is what the owner sees: the item plus its booking timeline.
type ItemOwnerResponse struct {
	ItemResponse
	LastBooking *BookingBriefResponse `json:"lastBooking"`
	NextBooking *BookingBriefResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

func newComments(list []*item.Comment) []CommentResponse {
	out := make([]CommentResponse, len(list))
	for i, cm := range list {
		out[i] = NewCommentResponse(cm)
	}
	return out
}

func newBookingBrief(b *item.BookingBrief) *BookingBriefResponse {
	if b == nil {
		return nil
	}
	return &BookingBriefResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    localtime.New(b.Start),
		End:      localtime.New(b.End),
	}
}

func NewItemDetailResponse(v *item.View) ItemDetailResponse {
	return ItemDetailResponse{
		ItemResponse: NewItemResponse(v.Item),
		Comments:     newComments(v.Comments),
	}
}

func NewItemOwnerResponse(v *item.View) ItemOwnerResponse {
	resp := ItemOwnerResponse{
		ItemResponse: NewItemResponse(v.Item),
		Comments:     newComments(v.Comments),
	}
	if v.Owner != nil {
		resp.LastBooking = newBookingBrief(v.Owner.Last)
		resp.NextBooking = newBookingBrief(v.Owner.Next)
	}
	return resp
}
