package booking

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit/internal/item"
	"github.com/shareit-go/shareit/internal/pkg/apperror"
	"github.com/shareit-go/shareit/internal/pkg/paging"
	"github.com/shareit-go/shareit/internal/user"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeUsers map[int64]string

func (f fakeUsers) Create(context.Context, user.CreateRequest) (*user.User, error) { return nil, nil }
func (f fakeUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, nil
}
func (f fakeUsers) List(context.Context) ([]*user.User, error) { return nil, nil }
func (f fakeUsers) Delete(context.Context, int64) error        { return nil }
func (f fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	name, ok := f[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id, Name: name}, nil
}

type fakeItems map[int64]*item.Item

func (f fakeItems) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	return nil, nil
}
func (f fakeItems) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	return nil, nil
}
func (f fakeItems) GetView(context.Context, int64, int64) (*item.View, error) { return nil, nil }
func (f fakeItems) ListByOwner(context.Context, int64, paging.Page) ([]*item.View, error) {
	return nil, nil
}
func (f fakeItems) Search(context.Context, string, paging.Page) ([]*item.Item, error) {
	return nil, nil
}
func (f fakeItems) AddComment(context.Context, int64, int64, string) (*item.Comment, error) {
	return nil, nil
}
func (f fakeItems) GetByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := f[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

// memRepo evaluates filters in memory with the same semantics as the SQL.
type memRepo struct {
	items    fakeItems
	bookings []*Booking
}

func (m *memRepo) Create(_ context.Context, b *Booking) error {
	b.ID = int64(len(m.bookings) + 1)
	cp := *b
	m.bookings = append(m.bookings, &cp)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) UpdateStatus(_ context.Context, id int64, status Status) error {
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func matches(b *Booking, st State, now time.Time) bool {
	switch st {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}

func (m *memRepo) List(_ context.Context, f Filter) ([]*Booking, error) {
	var out []*Booking
	for _, b := range m.bookings {
		if f.BookerID != 0 && b.BookerID != f.BookerID {
			continue
		}
		if f.OwnerID != 0 && b.ItemOwnerID != f.OwnerID {
			continue
		}
		if !matches(b, f.State, f.Now) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.After(out[j].Start)
		}
		return out[i].ID > out[j].ID
	})

	start := int(f.Page.Offset())
	if start >= len(out) {
		return nil, nil
	}
	end := start + int(f.Page.Limit())
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (m *memRepo) LastAndNext(context.Context, []int64, time.Time) (map[int64]item.OwnerBookings, error) {
	return nil, nil
}

func (m *memRepo) HasFinishedApproved(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}

const (
	owner    int64 = 1
	booker   int64 = 2
	stranger int64 = 3
)

func newTestService() (*service, *memRepo) {
	items := fakeItems{
		10: {ID: 10, Name: "Drill", OwnerID: owner, Available: true},
		11: {ID: 11, Name: "Broken saw", OwnerID: owner, Available: false},
	}
	repo := &memRepo{items: items}
	svc := &service{
		repo:  repo,
		items: items,
		users: fakeUsers{owner: "Owner", booker: "Booker", stranger: "Stranger"},
		now:   func() time.Time { return testNow },
	}
	return svc, repo
}

func window(fromNow, length time.Duration) CreateRequest {
	return CreateRequest{ItemID: 10, Start: testNow.Add(fromNow), End: testNow.Add(fromNow + length)}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	b, err := svc.Create(ctx, booker, window(time.Hour, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, "Drill", b.ItemName)
	assert.Equal(t, "Booker", b.BookerName)
	assert.Equal(t, owner, b.ItemOwnerID)
}

func TestCreateBookingRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name   string
		booker int64
		req    CreateRequest
		want   error
	}{
		{"unknown booker", 99, window(time.Hour, time.Hour), user.ErrNotFound},
		{"unknown item", booker, CreateRequest{ItemID: 77, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}, item.ErrNotFound},
		{"owner books own item", owner, window(time.Hour, time.Hour), item.ErrNotFound},
		{"unavailable item", booker, CreateRequest{ItemID: 11, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}, ErrItemUnavailable},
		{"start equals end", booker, window(time.Hour, 0), ErrStartEqualsEnd},
		{"end before start", booker, window(time.Hour, -time.Minute), ErrEndBeforeStart},
		{"start in the past", booker, window(-time.Hour, 2*time.Hour), ErrStartTimePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.booker, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	b, err := svc.Create(ctx, booker, window(time.Hour, time.Hour))
	require.NoError(t, err)

	// Only the owner may decide, and the booker gets the same answer as a stranger.
	_, err = svc.Decide(ctx, b.ID, booker, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Decide(ctx, b.ID, stranger, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Decide(ctx, b.ID, 99, true)
	assert.ErrorIs(t, err, user.ErrNotFound)

	rejected, err := svc.Decide(ctx, b.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	// A rejected booking can still be approved.
	approved, err := svc.Decide(ctx, b.ID, owner, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = svc.Decide(ctx, b.ID, owner, false)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	_, err = svc.Decide(ctx, 404, owner, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	b, _ := svc.Create(ctx, booker, window(time.Hour, time.Hour))

	_, err := svc.Get(ctx, b.ID, booker)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, b.ID, owner)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, b.ID, stranger)
	assert.ErrorIs(t, err, ErrNotFound)
}

// seed stores bookings directly so past ones can exist.
func seed(repo *memRepo, start, end time.Duration, status Status) {
	b := &Booking{
		Start:       testNow.Add(start),
		End:         testNow.Add(end),
		ItemID:      10,
		ItemName:    "Drill",
		ItemOwnerID: owner,
		BookerID:    booker,
		BookerName:  "Booker",
		Status:      status,
	}
	_ = repo.Create(context.Background(), b)
}

func ids(list []*Booking) []int64 {
	out := make([]int64, len(list))
	for i, b := range list {
		out[i] = b.ID
	}
	return out
}

func TestListStates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	seed(repo, -48*time.Hour, -24*time.Hour, StatusApproved) // 1 past
	seed(repo, -time.Hour, time.Hour, StatusApproved)        // 2 current
	seed(repo, 24*time.Hour, 48*time.Hour, StatusWaiting)    // 3 future
	seed(repo, 72*time.Hour, 96*time.Hour, StatusRejected)   // 4 future

	tests := []struct {
		state string
		want  []int64
	}{
		{"", []int64{4, 3, 2, 1}},
		{"ALL", []int64{4, 3, 2, 1}},
		{"CURRENT", []int64{2}},
		{"PAST", []int64{1}},
		{"FUTURE", []int64{4, 3}},
		{"WAITING", []int64{3}},
		{"REJECTED", []int64{4}},
	}

	for _, tt := range tests {
		t.Run("booker "+tt.state, func(t *testing.T) {
			list, err := svc.ListByBooker(ctx, booker, tt.state, paging.Default())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
		t.Run("owner "+tt.state, func(t *testing.T) {
			list, err := svc.ListByOwner(ctx, owner, tt.state, paging.Default())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}

	list, err := svc.ListByOwner(ctx, stranger, "ALL", paging.Default())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListValidation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	seed(repo, time.Hour, 2*time.Hour, StatusWaiting)
	seed(repo, 3*time.Hour, 4*time.Hour, StatusWaiting)

	_, err := svc.ListByBooker(ctx, booker, "approved", paging.Default())
	require.Error(t, err)
	assert.Equal(t, "Unknown state: approved", err.Error())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, err = svc.ListByBooker(ctx, booker, "APPROVED", paging.Default())
	assert.Error(t, err)

	_, err = svc.ListByBooker(ctx, 99, "ALL", paging.Default())
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.ListByBooker(ctx, booker, "ALL", paging.Page{From: -1, Size: 1})
	assert.ErrorIs(t, err, paging.ErrInvalidPage)

	list, err := svc.ListByBooker(ctx, booker, "ALL", paging.Page{From: 0, Size: 0})
	require.NoError(t, err)
	assert.Empty(t, list)

	// from is a page index: page 1 of size 1 is the second row.
	list, err = svc.ListByBooker(ctx, booker, "ALL", paging.Page{From: 1, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(list))
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		st, err := ParseState(s)
		require.NoError(t, err)
		assert.Equal(t, State(s), st)
	}

	st, err := ParseState("")
	require.NoError(t, err)
	assert.Equal(t, StateAll, st)

	_, err = ParseState("all")
	assert.EqualError(t, err, "Unknown state: all")
}

func TestStateConditionCoversEveryState(t *testing.T) {
	for _, st := range []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected} {
		_, err := stateCondition(st, testNow)
		assert.NoError(t, err, st)
	}

	_, err := stateCondition(State("BOGUS"), testNow)
	assert.Error(t, err)

	cond, _ := stateCondition(StateCurrent, testNow)
	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(b.start_date <= ? AND b.end_date >= ?)", sql)
	assert.Len(t, args, 2)
}

func TestStateConditionSQL(t *testing.T) {
	tests := []struct {
		state State
		sql   string
		args  []any
	}{
		{StateCurrent, "(b.start_date <= ? AND b.end_date >= ?)", []any{testNow, testNow}},
		{StatePast, "b.end_date < ?", []any{testNow}},
		{StateFuture, "b.start_date > ?", []any{testNow}},
		{StateWaiting, "b.status = ?", []any{StatusWaiting}},
		{StateRejected, "b.status = ?", []any{StatusRejected}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			cond, err := stateCondition(tt.state, testNow)
			require.NoError(t, err)
			sql, args, err := cond.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.args, args)
		})
	}

	cond, err := stateCondition(StateAll, testNow)
	require.NoError(t, err)
	assert.Nil(t, cond)
}
