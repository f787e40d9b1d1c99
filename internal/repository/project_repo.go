package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// ProjectRepository handles database operations for portfolio projects.
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, name_en, slug, description, description_en, content, content_en,
	cover_url, category_id, location, area_m2, year, published, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.NameEn,
		&project.Slug,
		&project.Description,
		&project.DescriptionEn,
		&project.Content,
		&project.ContentEn,
		&project.CoverURL,
		&project.CategoryID,
		&project.Location,
		&project.AreaM2,
		&project.Year,
		&project.Published,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	CategoryID    int64
	PublishedOnly bool
}

// CreateProject inserts a new project.
func (r *ProjectRepository) CreateProject(project *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (name, name_en, slug, description, description_en, content, content_en,
			cover_url, category_id, location, area_m2, year, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		project.Name, project.NameEn, project.Slug,
		project.Description, project.DescriptionEn, project.Content, project.ContentEn,
		project.CoverURL, project.CategoryID, project.Location,
		project.AreaM2, project.Year, project.Published,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	created := *project
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetProjectByID retrieves a project by ID.
func (r *ProjectRepository) GetProjectByID(id int64) (*models.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE id = ?"
	project, err := scanProject(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetProjectBySlug retrieves a project by slug.
func (r *ProjectRepository) GetProjectBySlug(slug string) (*models.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE slug = ?"
	project, err := scanProject(r.db.QueryRow(query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves a page of projects, newest first.
func (r *ProjectRepository) ListProjects(filter ProjectFilter, page models.Page) ([]models.Project, int64, error) {
	where := " WHERE 1=1"
	var args []interface{}
	if filter.PublishedOnly {
		where += " AND published = ?"
		args = append(args, true)
	}
	if filter.CategoryID > 0 {
		where += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM projects"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := "SELECT " + projectColumns + " FROM projects" + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, total, rows.Err()
}

// UpdateProject updates a project.
func (r *ProjectRepository) UpdateProject(project *models.Project) error {
	query := `
		UPDATE projects
		SET name = ?, name_en = ?, slug = ?, description = ?, description_en = ?,
			content = ?, content_en = ?, cover_url = ?, category_id = ?,
			location = ?, area_m2 = ?, year = ?, published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		project.Name, project.NameEn, project.Slug,
		project.Description, project.DescriptionEn, project.Content, project.ContentEn,
		project.CoverURL, project.CategoryID, project.Location,
		project.AreaM2, project.Year, project.Published, project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// DeleteProject deletes a project.
func (r *ProjectRepository) DeleteProject(id int64) error {
	_, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
