// file: internal/repositories/category_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/database"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// categoryRepository implements CategoryRepository over the static catalog
type categoryRepository struct {
	*BaseRepository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.Manager, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const categoryColumns = `
	id, name, description, icon, color, points_multiplier, is_active, created_at`

// List returns all active categories in catalog order
func (r *categoryRepository) List(ctx context.Context) ([]*models.ActionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM action_categories WHERE is_active = true ORDER BY name`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.ActionCategory
	for rows.Next() {
		category, err := r.scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetByID retrieves one category
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ActionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM action_categories WHERE id = $1`

	category, err := r.scanCategory(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) scanCategory(row rowScanner) (*models.ActionCategory, error) {
	var (
		category models.ActionCategory
		desc     sql.NullString
		icon     sql.NullString
		color    sql.NullString
	)

	err := row.Scan(
		&category.ID, &category.Name, &desc, &icon, &color,
		&category.PointsMultiplier, &category.IsActive, &category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if desc.Valid {
		category.Description = &desc.String
	}
	if icon.Valid {
		category.Icon = &icon.String
	}
	if color.Valid {
		category.Color = &color.String
	}

	return &category, nil
}
