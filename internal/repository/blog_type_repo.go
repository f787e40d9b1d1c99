package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// BlogTypeRepository handles database operations for blog types.
type BlogTypeRepository struct {
	db *database.DB
}

// NewBlogTypeRepository creates a new blog type repository.
func NewBlogTypeRepository(db *database.DB) *BlogTypeRepository {
	return &BlogTypeRepository{db: db}
}

const blogTypeColumns = "id, name, name_en, slug, created_at, updated_at"

func scanBlogType(row interface{ Scan(...interface{}) error }) (*models.BlogType, error) {
	bt := &models.BlogType{}
	err := row.Scan(&bt.ID, &bt.Name, &bt.NameEn, &bt.Slug, &bt.CreatedAt, &bt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// CreateBlogType inserts a new blog type.
func (r *BlogTypeRepository) CreateBlogType(name, nameEn, slug string) (*models.BlogType, error) {
	query := "INSERT INTO blog_types (name, name_en, slug) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, name, nameEn, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog type: %w", err)
	}
	return &models.BlogType{
		ID:        id,
		Name:      name,
		NameEn:    nameEn,
		Slug:      slug,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetBlogTypeByID retrieves a blog type by ID.
func (r *BlogTypeRepository) GetBlogTypeByID(id int64) (*models.BlogType, error) {
	query := "SELECT " + blogTypeColumns + " FROM blog_types WHERE id = ?"
	bt, err := scanBlogType(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog type: %w", err)
	}
	return bt, nil
}

// GetBlogTypeBySlug retrieves a blog type by slug.
func (r *BlogTypeRepository) GetBlogTypeBySlug(slug string) (*models.BlogType, error) {
	query := "SELECT " + blogTypeColumns + " FROM blog_types WHERE slug = ?"
	bt, err := scanBlogType(r.db.QueryRow(query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog type: %w", err)
	}
	return bt, nil
}

// ListBlogTypes retrieves all blog types ordered by name.
func (r *BlogTypeRepository) ListBlogTypes() ([]models.BlogType, error) {
	query := "SELECT " + blogTypeColumns + " FROM blog_types ORDER BY name"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog types: %w", err)
	}
	defer rows.Close()

	var types []models.BlogType
	for rows.Next() {
		bt, err := scanBlogType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog type: %w", err)
		}
		types = append(types, *bt)
	}
	return types, rows.Err()
}

// UpdateBlogType updates a blog type.
func (r *BlogTypeRepository) UpdateBlogType(id int64, name, nameEn, slug string) error {
	query := `
		UPDATE blog_types
		SET name = ?, name_en = ?, slug = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, nameEn, slug, id)
	if err != nil {
		return fmt.Errorf("failed to update blog type: %w", err)
	}
	return nil
}

// DeleteBlogType deletes a blog type.
func (r *BlogTypeRepository) DeleteBlogType(id int64) error {
	_, err := r.db.Exec("DELETE FROM blog_types WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog type: %w", err)
	}
	return nil
}

// CountBlogsOfType reports how many blogs reference a blog type.
func (r *BlogTypeRepository) CountBlogsOfType(id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM blogs WHERE blog_type_id = ?", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count blogs of type: %w", err)
	}
	return count, nil
}
