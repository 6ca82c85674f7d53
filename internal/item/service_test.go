package item

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit/internal/itemrequest"
	"github.com/shareit-go/shareit/internal/pkg/paging"
	"github.com/shareit-go/shareit/internal/user"
)

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

type fakeRequests map[int64]bool

func (f fakeRequests) GetByID(_ context.Context, id int64) (*itemrequest.ItemRequest, error) {
	if !f[id] {
		return nil, itemrequest.ErrNotFound
	}
	return &itemrequest.ItemRequest{ID: id}, nil
}

type fakeBookings struct {
	around   map[int64]OwnerBookings
	finished map[[2]int64]bool
	asked    int
}

func (f *fakeBookings) LastAndNext(_ context.Context, ids []int64, _ time.Time) (map[int64]OwnerBookings, error) {
	f.asked++
	out := map[int64]OwnerBookings{}
	for _, id := range ids {
		if ob, ok := f.around[id]; ok {
			out[id] = ob
		}
	}
	return out, nil
}

func (f *fakeBookings) HasFinishedApproved(_ context.Context, bookerID, itemID int64, _ time.Time) (bool, error) {
	return f.finished[[2]int64{bookerID, itemID}], nil
}

type memRepo struct {
	items    []*Item
	comments []*Comment
}

func (m *memRepo) Create(_ context.Context, it *Item) error {
	it.ID = int64(len(m.items) + 1)
	cp := *it
	m.items = append(m.items, &cp)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) Update(_ context.Context, it *Item) error {
	for i, existing := range m.items {
		if existing.ID == it.ID {
			cp := *it
			m.items[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) page(all []*Item, page paging.Page) []*Item {
	start := int(page.Offset())
	if start >= len(all) {
		return nil
	}
	end := start + int(page.Limit())
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func (m *memRepo) ListByOwner(_ context.Context, ownerID int64, page paging.Page) ([]*Item, error) {
	var out []*Item
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return m.page(out, page), nil
}

func (m *memRepo) Search(_ context.Context, text string, page paging.Page) ([]*Item, error) {
	text = strings.ToLower(text)
	var out []*Item
	for _, it := range m.items {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), text) || strings.Contains(strings.ToLower(it.Description), text) {
			out = append(out, it)
		}
	}
	return m.page(out, page), nil
}

func (m *memRepo) ListByRequestIDs(_ context.Context, ids []int64) ([]*Item, error) {
	var out []*Item
	for _, it := range m.items {
		if it.RequestID == nil {
			continue
		}
		for _, id := range ids {
			if *it.RequestID == id {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (m *memRepo) CreateComment(_ context.Context, cm *Comment) error {
	cm.ID = int64(len(m.comments) + 1)
	cp := *cm
	m.comments = append(m.comments, &cp)
	return nil
}

func (m *memRepo) ListComments(_ context.Context, ids []int64) ([]*Comment, error) {
	var out []*Comment
	for _, cm := range m.comments {
		for _, id := range ids {
			if cm.ItemID == id {
				out = append(out, cm)
			}
		}
	}
	return out, nil
}

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*service, *memRepo, *fakeBookings) {
	repo := &memRepo{}
	bookings := &fakeBookings{
		around:   map[int64]OwnerBookings{},
		finished: map[[2]int64]bool{},
	}
	svc := &service{
		repo:     repo,
		users:    fakeUsers{1: "Owner", 2: "Booker", 3: "Stranger"},
		requests: fakeRequests{5: true},
		bookings: bookings,
		now:      func() time.Time { return testNow },
	}
	return svc, repo, bookings
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	it, err := svc.Create(ctx, 1, CreateRequest{Name: "Drill", Description: "Cordless", Available: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), it.ID)
	assert.Nil(t, it.RequestID)

	it, err = svc.Create(ctx, 1, CreateRequest{Name: "Saw", Description: "Hand saw", Available: true, RequestID: int64Ptr(5)})
	require.NoError(t, err)
	require.NotNil(t, it.RequestID)
	assert.Equal(t, int64(5), *it.RequestID)

	_, err = svc.Create(ctx, 1, CreateRequest{Name: "Saw", Description: "x", RequestID: int64Ptr(6)})
	assert.ErrorIs(t, err, itemrequest.ErrNotFound)

	_, err = svc.Create(ctx, 99, CreateRequest{Name: "Saw", Description: "x"})
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.Create(ctx, 1, CreateRequest{Name: " ", Description: "x"})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdateItemOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	it, _ := svc.Create(ctx, 1, CreateRequest{Name: "Drill", Description: "Cordless", Available: true})

	_, err := svc.Update(ctx, it.ID, 2, UpdateRequest{Name: strPtr("Mine now")})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, it.ID, 1, UpdateRequest{Available: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Drill", updated.Name)
	assert.Equal(t, "Cordless", updated.Description)
	assert.False(t, updated.Available)

	_, err = svc.Update(ctx, it.ID, 1, UpdateRequest{Description: strPtr("  ")})
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = svc.Update(ctx, 42, 1, UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetViewShapeDependsOnCaller(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings := newTestService()

	it, _ := svc.Create(ctx, 1, CreateRequest{Name: "Drill", Description: "Cordless", Available: true})
	bookings.around[it.ID] = OwnerBookings{
		Last: &BookingBrief{ID: 1, BookerID: 2, Start: testNow.Add(-48 * time.Hour), End: testNow.Add(-24 * time.Hour)},
		Next: &BookingBrief{ID: 2, BookerID: 2, Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour)},
	}

	owner, err := svc.GetView(ctx, it.ID, 1)
	require.NoError(t, err)
	require.True(t, owner.IsOwnerView())
	assert.Equal(t, int64(1), owner.Owner.Last.ID)
	assert.Equal(t, int64(2), owner.Owner.Next.ID)
	assert.NotNil(t, owner.Comments)

	public, err := svc.GetView(ctx, it.ID, 2)
	require.NoError(t, err)
	assert.False(t, public.IsOwnerView())
	assert.Equal(t, 1, bookings.asked)
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "A", Description: "a", Available: true})
	_, _ = svc.Create(ctx, 2, CreateRequest{Name: "B", Description: "b", Available: true})
	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "C", Description: "c", Available: true})

	views, err := svc.ListByOwner(ctx, 1, paging.Default())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "A", views[0].Item.Name)
	assert.Equal(t, "C", views[1].Item.Name)
	assert.True(t, views[0].IsOwnerView())

	views, err = svc.ListByOwner(ctx, 1, paging.Page{From: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "C", views[0].Item.Name)

	_, err = svc.ListByOwner(ctx, 1, paging.Page{From: -1, Size: 10})
	assert.ErrorIs(t, err, paging.ErrInvalidPage)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "Power Drill", Description: "Cordless", Available: true})
	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "Ladder", Description: "Tall DRILL-free ladder", Available: true})
	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "Old drill", Description: "Broken", Available: false})

	found, err := svc.Search(ctx, "dRiLl", paging.Default())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Power Drill", found[0].Name)
	assert.Equal(t, "Ladder", found[1].Name)

	found, err = svc.Search(ctx, "   ", paging.Default())
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.Search(ctx, "drill", paging.Page{From: 0, Size: 0})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = svc.Search(ctx, "drill", paging.Page{From: -1, Size: 10})
	assert.ErrorIs(t, err, paging.ErrInvalidPage)
}

func TestSearchBlankTextIgnoresPage(t *testing.T) {
	svc, _, _ := newTestService()

	found, err := svc.Search(context.Background(), "   ", paging.Page{From: -1, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings := newTestService()

	it, _ := svc.Create(ctx, 1, CreateRequest{Name: "Drill", Description: "Cordless", Available: true})

	_, err := svc.AddComment(ctx, it.ID, 2, "Great drill")
	assert.ErrorIs(t, err, ErrCommentNotAllowed)

	bookings.finished[[2]int64{2, it.ID}] = true

	_, err = svc.AddComment(ctx, it.ID, 2, "  ")
	assert.ErrorIs(t, err, ErrCommentTextRequired)

	cm, err := svc.AddComment(ctx, it.ID, 2, "Great drill")
	require.NoError(t, err)
	assert.Equal(t, "Booker", cm.AuthorName)
	assert.Equal(t, it.ID, cm.ItemID)
	assert.Equal(t, testNow, cm.Created)

	_, err = svc.AddComment(ctx, 77, 2, "Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := svc.GetView(ctx, it.ID, 3)
	require.NoError(t, err)
	require.Len(t, v.Comments, 1)
	assert.Equal(t, "Great drill", v.Comments[0].Text)
}

func TestRequestItemsGroupsByRequest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "Saw", Description: "Hand saw", Available: true, RequestID: int64Ptr(5)})
	_, _ = svc.Create(ctx, 1, CreateRequest{Name: "Drill", Description: "Cordless", Available: true})

	found, err := NewRequestItems(repo).ByRequestIDs(ctx, []int64{5, 6})
	require.NoError(t, err)
	require.Len(t, found[5], 1)
	assert.Equal(t, "Saw", found[5][0].Name)
	assert.Empty(t, found[6])
}
