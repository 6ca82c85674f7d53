package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/shareit/internal/pkg/paging"
)

// Repository defines methods for accessing item requests from storage.
type Repository interface {
	Create(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error)
	ListExcept(ctx context.Context, requestorID int64, page paging.Page) ([]*ItemRequest, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func baseSelect() squirrel.SelectBuilder {
	return psql.Select("id", "description", "requestor_id", "created_at").
		From("public.requests")
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	query, args, err := psql.Insert("public.requests").
		Columns("description", "requestor_id", "created_at").
		Values(req.Description, req.RequestorID, req.Created).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.Created); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	query, args, err := baseSelect().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req ItemRequest
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error) {
	return r.list(ctx, baseSelect().
		Where(squirrel.Eq{"requestor_id": requestorID}).
		OrderBy("created_at ASC", "id ASC"))
}

func (r *pgxRepository) ListExcept(ctx context.Context, requestorID int64, page paging.Page) ([]*ItemRequest, error) {
	return r.list(ctx, baseSelect().
		Where(squirrel.NotEq{"requestor_id": requestorID}).
		OrderBy("created_at ASC", "id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()))
}

func (r *pgxRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*ItemRequest, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var out []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}
