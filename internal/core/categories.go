package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// replaceCategories rewrites the category tag set for one association row:
// delete everything, then insert one junction row per supplied category ID.
// Calling twice with the same set is a no-op after the first call. Category
// IDs are written through unvalidated; a dangling ID creates an orphaned
// junction row.
func replaceCategories(ctx context.Context, q querier, at assocTable, ownerID int64, categoryIDs []int64) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`, at.Junction, at.OwnerFK), ownerID); err != nil {
		return fmt.Errorf("clear %s for %d: %w", at.Junction, ownerID, err)
	}
	for _, catID := range categoryIDs {
		if _, err := q.Exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s, category_id) VALUES ($1, $2)`,
			at.Junction, at.OwnerFK), ownerID, catID); err != nil {
			return fmt.Errorf("insert %s (%d, %d): %w", at.Junction, ownerID, catID, err)
		}
	}
	return nil
}

// CategoryService manages the category reference entity that junction rows
// point at.
type CategoryService interface {
	CreateCategory(ctx context.Context, tenant, value string) (*Category, error)
	GetCategory(ctx context.Context, tenant string, id int64) (*Category, error)
	ListCategories(ctx context.Context, tenant string) ([]Category, error)
	UpdateCategory(ctx context.Context, tenant string, id int64, value string) (*Category, error)
	DeleteCategory(ctx context.Context, tenant string, id int64) error
}

type categoryService struct {
	pool *pgxpool.Pool
}

// NewCategoryService constructs a CategoryService backed by PostgreSQL.
func NewCategoryService(pool *pgxpool.Pool) CategoryService {
	return &categoryService{pool: pool}
}

func (s *categoryService) CreateCategory(ctx context.Context, tenant, value string) (*Category, error) {
	c := &Category{Value: value}
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO category (value) VALUES ($1) RETURNING id`, value,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", value, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) GetCategory(ctx context.Context, tenant string, id int64) (*Category, error) {
	c := &Category{}
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT id, value FROM category WHERE id = $1`, id,
		).Scan(&c.ID, &c.Value)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch category %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) ListCategories(ctx context.Context, tenant string) ([]Category, error) {
	var categories []Category
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id, value FROM category ORDER BY id`)
		if err != nil {
			return fmt.Errorf("query categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Value); err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			categories = append(categories, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, tenant string, id int64, value string) (*Category, error) {
	c := &Category{ID: id, Value: value}
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE category SET value = $1 WHERE id = $2`, value, id)
		if err != nil {
			return fmt.Errorf("update category %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes the category row only. Junction rows referencing it
// are left in place (the same permissive stance as unvalidated tag writes).
func (s *categoryService) DeleteCategory(ctx context.Context, tenant string, id int64) error {
	return inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
