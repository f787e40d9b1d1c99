package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// CategoryRepository handles database operations for project categories.
type CategoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = "id, name, name_en, slug, description, description_en, cover_url, created_at, updated_at"

func scanCategory(row interface{ Scan(...interface{}) error }) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.NameEn,
		&category.Slug,
		&category.Description,
		&category.DescriptionEn,
		&category.CoverURL,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// CreateCategory inserts a new category.
func (r *CategoryRepository) CreateCategory(category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, name_en, slug, description, description_en, cover_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		category.Name, category.NameEn, category.Slug,
		category.Description, category.DescriptionEn, category.CoverURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	created := *category
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetCategoryByID retrieves a category by ID.
func (r *CategoryRepository) GetCategoryByID(id int64) (*models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE id = ?"
	category, err := scanCategory(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetCategoryBySlug retrieves a category by slug.
func (r *CategoryRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE slug = ?"
	category, err := scanCategory(r.db.QueryRow(query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *CategoryRepository) ListCategories() ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories ORDER BY name"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

// UpdateCategory updates a category.
func (r *CategoryRepository) UpdateCategory(category *models.Category) error {
	query := `
		UPDATE categories
		SET name = ?, name_en = ?, slug = ?, description = ?, description_en = ?,
			cover_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		category.Name, category.NameEn, category.Slug,
		category.Description, category.DescriptionEn, category.CoverURL,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory deletes a category.
func (r *CategoryRepository) DeleteCategory(id int64) error {
	_, err := r.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CountProjectsInCategory reports how many projects reference a category.
func (r *CategoryRepository) CountProjectsInCategory(id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM projects WHERE category_id = ?", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects in category: %w", err)
	}
	return count, nil
}
