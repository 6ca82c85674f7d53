package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/pkg/paging"
	"github.com/shareit-go/shareit/internal/user"
)

// CreateRequest carries data to list a new item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to items and comments.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetView(ctx context.Context, itemID, callerID int64) (*View, error)
	ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*View, error)
	Search(ctx context.Context, text string, page paging.Page) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    user.Service
	requests RequestLookup
	bookings BookingFinder
	now      func() time.Time
}

// NewService creates a new item Service.
func NewService(repo Repository, users user.Service, requests RequestLookup, bookings BookingFinder) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   req.Available,
		OwnerID:     ownerID,
	}

	if req.RequestID != nil && *req.RequestID > 0 {
		if _, err := s.requests.GetByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
		id := *req.RequestID
		it.RequestID = &id
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("item_id", it.ID).
		Int64("owner_id", ownerID).
		Msg("item created")

	return it, nil
}

func (s *service) Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Non-owners learn nothing about the item.
	if it.OwnerID != callerID {
		zerolog.Ctx(ctx).Debug().
			Int64("item_id", itemID).
			Int64("caller_id", callerID).
			Msg("item update by non-owner rejected")
		return nil, ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		it.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, itemID, callerID int64) (*View, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views, err := s.decorate(ctx, []*Item{it}, it.OwnerID == callerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*View, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.Empty() {
		return []*View{}, nil
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, items, true)
}

// Search returns available items whose name or description contains text.
// Blank text matches nothing.
func (s *service) Search(ctx context.Context, text string, page paging.Page) ([]*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.Empty() {
		return []*Item{}, nil
	}

	items, err := s.repo.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	now := s.now()
	ok, err := s.bookings.HasFinishedApproved(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	cm := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// decorate attaches comments to every item and, for the owner, the
// last and next approved bookings.
func (s *service) decorate(ctx context.Context, items []*Item, asOwner bool) ([]*View, error) {
	if len(items) == 0 {
		return []*View{}, nil
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	comments, err := s.repo.ListComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]*Comment, len(items))
	for _, cm := range comments {
		byItem[cm.ItemID] = append(byItem[cm.ItemID], cm)
	}

	var around map[int64]OwnerBookings
	if asOwner {
		around, err = s.bookings.LastAndNext(ctx, ids, s.now())
		if err != nil {
			return nil, err
		}
	}

	views := make([]*View, len(items))
	for i, it := range items {
		v := &View{Item: it, Comments: byItem[it.ID]}
		if v.Comments == nil {
			v.Comments = []*Comment{}
		}
		if asOwner {
			ob := around[it.ID]
			v.Owner = &ob
		}
		views[i] = v
	}
	return views, nil
}
