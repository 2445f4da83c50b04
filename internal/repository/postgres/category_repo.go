package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, color, icon, is_default, created_at, updated_at`

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		uuid.NewString(), category.Name, category.Color, category.Icon, category.IsDefault,
	)
	return scanCategory(row)
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByName retrieves a category by exact name
func (r *CategoryRepository) GetByName(name string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List() ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update applies a category update
func (r *CategoryRepository) Update(id string, name, color, icon string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, color = $3, icon = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, name, color, icon,
	)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Icon,
		&category.IsDefault,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
