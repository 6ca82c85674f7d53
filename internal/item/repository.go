package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/shareit/internal/db"
	"github.com/shareit-go/shareit/internal/pkg/paging"
)

// Repository defines methods for accessing items and their comments.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*Item, error)
	Search(ctx context.Context, text string, page paging.Page) ([]*Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)

	CreateComment(ctx context.Context, cm *Comment) error
	ListComments(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var itemColumns = []string{"id", "name", "description", "available", "owner_id", "request_id"}

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query, args, err := psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*Item, error) {
	return r.list(ctx, psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()))
}

// Search matches text as a case-insensitive substring of name or description.
// Only available items are returned.
func (r *pgxRepository) Search(ctx context.Context, text string, page paging.Page) ([]*Item, error) {
	return r.list(ctx, searchQuery(text, page))
}

// searchQuery matches available items whose name or description contains text.
func searchQuery(text string, page paging.Page) squirrel.SelectBuilder {
	pattern := "%" + escapeLike(text) + "%"
	return psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		Limit(page.Limit()).
		Offset(page.Offset())
}

func (r *pgxRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("id ASC"))
}

func (r *pgxRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*Item, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *pgxRepository) CreateComment(ctx context.Context, cm *Comment) error {
	query, args, err := psql.Insert("public.comments").
		Columns("text", "item_id", "author_id", "created_at").
		Values(cm.Text, cm.ItemID, cm.AuthorID, cm.Created).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cm.ID, &cm.Created); err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

// ListComments returns comments of the given items, oldest first, with author names.
func (r *pgxRepository) ListComments(ctx context.Context, itemIDs []int64) ([]*Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created_at").
		From("public.comments c").
		Join("public.users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.item_id": itemIDs}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &cm)
	}
	return comments, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
