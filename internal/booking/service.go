package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/item"
	"github.com/shareit-go/shareit/internal/metrics"
	"github.com/shareit-go/shareit/internal/pkg/paging"
	"github.com/shareit-go/shareit/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	// Decide approves or rejects a booking on behalf of the item owner.
	Decide(ctx context.Context, bookingID, callerID int64, approve bool) (*Booking, error)
	Get(ctx context.Context, bookingID, callerID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, page paging.Page) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, page paging.Page) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items item.Service
	users user.Service
	now   func() time.Time
}

func NewService(repo Repository, items item.Service, users user.Service) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	log := zerolog.Ctx(ctx)

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Owners cannot book their own items; answer as if the item did not exist.
	if it.OwnerID == bookerID {
		log.Debug().Int64("item_id", it.ID).Int64("booker_id", bookerID).Msg("owner tried to book own item")
		return nil, item.ErrNotFound
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return nil, ErrTimeRangeRequired
	}
	if req.Start.Equal(req.End) {
		return nil, ErrStartEqualsEnd
	}
	if req.End.Before(req.Start) {
		return nil, ErrEndBeforeStart
	}
	if req.Start.Before(s.now()) {
		return nil, ErrStartTimePast
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", b.ID).
		Int64("item_id", b.ItemID).
		Int64("booker_id", b.BookerID).
		Msg("booking created")

	return b, nil
}

func (s *service) Decide(ctx context.Context, bookingID, callerID int64, approve bool) (*Booking, error) {
	log := zerolog.Ctx(ctx)

	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != callerID {
		log.Debug().Int64("booking_id", bookingID).Int64("caller_id", callerID).Msg("decision by non-owner rejected")
		return nil, ErrNotFound
	}

	// Only an approval is final. A rejected booking may still be approved later.
	if b.Status == StatusApproved {
		return nil, ErrAlreadyApproved
	}

	next := StatusRejected
	if approve {
		next = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, next); err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", b.ID).
		Str("from", string(b.Status)).
		Str("to", string(next)).
		Msg("booking decided")
	metrics.IncBookingDecision(string(next))

	b.Status = next
	return b, nil
}

func (s *service) Get(ctx context.Context, bookingID, callerID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != callerID && b.ItemOwnerID != callerID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, page paging.Page) ([]*Booking, error) {
	return s.list(ctx, bookerID, state, page, func(f *Filter) { f.BookerID = bookerID })
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, page paging.Page) ([]*Booking, error) {
	return s.list(ctx, ownerID, state, page, func(f *Filter) { f.OwnerID = ownerID })
}

func (s *service) list(ctx context.Context, callerID int64, state string, page paging.Page, scope func(*Filter)) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.Empty() {
		return []*Booking{}, nil
	}

	filter := Filter{State: st, Now: s.now(), Page: page}
	scope(&filter)

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}
