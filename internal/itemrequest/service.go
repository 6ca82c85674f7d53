package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/pkg/paging"
	"github.com/shareit-go/shareit/internal/user"
)

// Service defines business logic related to item requests.
type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requestorID int64) ([]*ItemRequest, error)
	Get(ctx context.Context, id, callerID int64) (*ItemRequest, error)
	// ListOthers pages through requests made by everyone but the caller.
	// A nil from and size pair means no paging was asked for and yields nothing.
	ListOthers(ctx context.Context, callerID int64, from, size *int) ([]*ItemRequest, error)
}

type service struct {
	repo  Repository
	users user.Service
	items ItemFinder
	now   func() time.Time
}

// NewService creates a new item request Service.
func NewService(repo Repository, users user.Service, items ItemFinder) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("request_id", req.ID).
		Int64("requestor_id", requestorID).
		Msg("item request created")

	req.Items = []ItemBrief{}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID int64) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

func (s *service) Get(ctx context.Context, id, callerID int64) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.decorate(ctx, []*ItemRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOthers(ctx context.Context, callerID int64, from, size *int) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	if from == nil && size == nil {
		return []*ItemRequest{}, nil
	}
	if from == nil || size == nil || *from < 0 || *size <= 0 {
		return nil, ErrInvalidPage
	}

	list, err := s.repo.ListExcept(ctx, callerID, paging.Page{From: *from, Size: *size})
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

// decorate attaches fulfilling items to every request with one lookup.
func (s *service) decorate(ctx context.Context, list []*ItemRequest) ([]*ItemRequest, error) {
	if len(list) == 0 {
		return []*ItemRequest{}, nil
	}

	ids := make([]int64, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}

	byRequest, err := s.items.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range list {
		r.Items = byRequest[r.ID]
		if r.Items == nil {
			r.Items = []ItemBrief{}
		}
	}
	return list, nil
}
