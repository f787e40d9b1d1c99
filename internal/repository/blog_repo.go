package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// BlogRepository handles database operations for blog posts.
type BlogRepository struct {
	db *database.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *database.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, title, title_en, slug, summary, summary_en, content, content_en,
	cover_url, blog_type_id, author_id, published, created_at, updated_at`

func scanBlog(row interface{ Scan(...interface{}) error }) (*models.Blog, error) {
	blog := &models.Blog{}
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.TitleEn,
		&blog.Slug,
		&blog.Summary,
		&blog.SummaryEn,
		&blog.Content,
		&blog.ContentEn,
		&blog.CoverURL,
		&blog.BlogTypeID,
		&blog.AuthorID,
		&blog.Published,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// BlogFilter narrows blog listings.
type BlogFilter struct {
	BlogTypeID    int64
	PublishedOnly bool
}

// CreateBlog inserts a new blog post.
func (r *BlogRepository) CreateBlog(blog *models.Blog) (*models.Blog, error) {
	query := `
		INSERT INTO blogs (title, title_en, slug, summary, summary_en, content, content_en,
			cover_url, blog_type_id, author_id, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		blog.Title, blog.TitleEn, blog.Slug, blog.Summary, blog.SummaryEn,
		blog.Content, blog.ContentEn, blog.CoverURL, blog.BlogTypeID,
		blog.AuthorID, blog.Published,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	created := *blog
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetBlogByID retrieves a blog post by ID.
func (r *BlogRepository) GetBlogByID(id int64) (*models.Blog, error) {
	query := "SELECT " + blogColumns + " FROM blogs WHERE id = ?"
	blog, err := scanBlog(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// GetBlogBySlug retrieves a blog post by slug.
func (r *BlogRepository) GetBlogBySlug(slug string) (*models.Blog, error) {
	query := "SELECT " + blogColumns + " FROM blogs WHERE slug = ?"
	blog, err := scanBlog(r.db.QueryRow(query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// ListBlogs retrieves a page of blog posts, newest first.
func (r *BlogRepository) ListBlogs(filter BlogFilter, page models.Page) ([]models.Blog, int64, error) {
	where := " WHERE 1=1"
	var args []interface{}
	if filter.PublishedOnly {
		where += " AND published = ?"
		args = append(args, true)
	}
	if filter.BlogTypeID > 0 {
		where += " AND blog_type_id = ?"
		args = append(args, filter.BlogTypeID)
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM blogs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	query := "SELECT " + blogColumns + " FROM blogs" + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	return blogs, total, rows.Err()
}

// UpdateBlog updates a blog post.
func (r *BlogRepository) UpdateBlog(blog *models.Blog) error {
	query := `
		UPDATE blogs
		SET title = ?, title_en = ?, slug = ?, summary = ?, summary_en = ?,
			content = ?, content_en = ?, cover_url = ?, blog_type_id = ?,
			published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		blog.Title, blog.TitleEn, blog.Slug, blog.Summary, blog.SummaryEn,
		blog.Content, blog.ContentEn, blog.CoverURL, blog.BlogTypeID,
		blog.Published, blog.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}

// DeleteBlog deletes a blog post.
func (r *BlogRepository) DeleteBlog(id int64) error {
	_, err := r.db.Exec("DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}
