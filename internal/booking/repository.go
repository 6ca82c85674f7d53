package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/shareit/internal/db"
	"github.com/shareit-go/shareit/internal/item"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// LastAndNext returns, per item, the latest approved booking that started
	// before now and the earliest approved booking that starts after now.
	LastAndNext(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]item.OwnerBookings, error)
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.start_date", "b.end_date", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		switch {
		case db.IsForeignKeyViolation(err):
			return item.ErrNotFound
		case db.IsCheckViolation(err):
			return ErrEndBeforeStart
		default:
			return fmt.Errorf("create booking failed: %w", err)
		}
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// stateCondition maps a state to its SQL predicate. ALL has none.
func stateCondition(state State, now time.Time) (squirrel.Sqlizer, error) {
	switch state {
	case StateAll:
		return nil, nil
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_date": now},
			squirrel.GtOrEq{"b.end_date": now},
		}, nil
	case StatePast:
		return squirrel.Lt{"b.end_date": now}, nil
	case StateFuture:
		return squirrel.Gt{"b.start_date": now}, nil
	case StateWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}, nil
	case StateRejected:
		return squirrel.Eq{"b.status": StatusRejected}, nil
	}
	return nil, fmt.Errorf("unhandled booking state %q", state)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := selectBookings()

	if filter.BookerID != 0 {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}

	cond, err := stateCondition(filter.State, filter.Now)
	if err != nil {
		return nil, err
	}
	if cond != nil {
		query = query.Where(cond)
	}

	query = query.
		OrderBy("b.start_date DESC", "b.id DESC").
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) LastAndNext(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]item.OwnerBookings, error) {
	out := make(map[int64]item.OwnerBookings, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	base := psql.Select("item_id", "id", "booker_id", "start_date", "end_date").
		Options("DISTINCT ON (item_id)").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemIDs}).
		Where(squirrel.Eq{"status": StatusApproved})

	last := base.Where(squirrel.Lt{"start_date": now}).OrderBy("item_id", "start_date DESC")
	next := base.Where(squirrel.Gt{"start_date": now}).OrderBy("item_id", "start_date ASC")

	err := r.eachBrief(ctx, last, func(itemID int64, b *item.BookingBrief) {
		ob := out[itemID]
		ob.Last = b
		out[itemID] = ob
	})
	if err != nil {
		return nil, err
	}

	err = r.eachBrief(ctx, next, func(itemID int64, b *item.BookingBrief) {
		ob := out[itemID]
		ob.Next = b
		out[itemID] = ob
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pgxRepository) eachBrief(ctx context.Context, sb squirrel.SelectBuilder, fn func(int64, *item.BookingBrief)) error {
	query, args, err := sb.ToSql()
	if err != nil {
		return fmt.Errorf("build item bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID int64
		var b item.BookingBrief
		if err := rows.Scan(&itemID, &b.ID, &b.BookerID, &b.Start, &b.End); err != nil {
			return fmt.Errorf("scan item booking failed: %w", err)
		}
		fn(itemID, &b)
	}
	return rows.Err()
}

func (r *pgxRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"end_date": now})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}
