package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/shareit/internal/db"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	query, args, err := psql.Insert("public.users").
		Columns("name", "email").
		Values(u.Name, u.Email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create user query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *pgxUserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*User, error) {
	query, args, err := psql.Select("id", "name", "email").
		From("public.users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	var u User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxUserRepository) List(ctx context.Context) ([]*User, error) {
	query, args, err := psql.Select("id", "name", "email").
		From("public.users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *pgxUserRepository) Update(ctx context.Context, u *User) error {
	query, args, err := psql.Update("public.users").
		Set("name", u.Name).
		Set("email", u.Email).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user and everything hanging off it in one transaction.
// Dependents go first, so it does not rely on the schema's ON DELETE rules.
func (r *pgxUserRepository) Delete(ctx context.Context, id int64) error {
	ownItems := psql.Select("id").From("public.items").Where(squirrel.Eq{"owner_id": id})

	steps := []squirrel.Sqlizer{
		psql.Delete("public.comments").Where(squirrel.Or{
			squirrel.Eq{"author_id": id},
			squirrel.Expr("item_id IN (?)", ownItems),
		}),
		psql.Delete("public.bookings").Where(squirrel.Or{
			squirrel.Eq{"booker_id": id},
			squirrel.Expr("item_id IN (?)", ownItems),
		}),
		psql.Delete("public.items").Where(squirrel.Eq{"owner_id": id}),
		psql.Delete("public.requests").Where(squirrel.Eq{"requestor_id": id}),
	}

	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, step := range steps {
			query, args, err := step.ToSql()
			if err != nil {
				return fmt.Errorf("build cascade delete query failed: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("cascade delete for user failed: %w", err)
			}
		}

		query, args, err := psql.Delete("public.users").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete user query failed: %w", err)
		}
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
