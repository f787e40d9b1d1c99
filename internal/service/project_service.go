package service

import (
	"fmt"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/utils"
	"truongphat/internal/validation"
)

// ProjectService handles portfolio projects.
type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	categoryRepo *repository.CategoryRepository
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo *repository.ProjectRepository, categoryRepo *repository.CategoryRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, categoryRepo: categoryRepo}
}

// CreateProject validates and creates a project.
func (s *ProjectService) CreateProject(project *models.Project) (*models.Project, error) {
	if err := validation.ValidateRequired("name", project.Name); err != nil {
		return nil, err
	}
	if project.Slug == "" {
		project.Slug = utils.Slugify(project.Name)
	}
	if err := validation.ValidateSlug(project.Slug); err != nil {
		return nil, err
	}

	existing, err := s.projectRepo.GetProjectBySlug(project.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	if project.CategoryID > 0 {
		category, err := s.categoryRepo.GetCategoryByID(project.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if category == nil {
			return nil, ErrNotFound
		}
	}

	return s.projectRepo.CreateProject(project)
}

// GetProject retrieves a project by ID.
func (s *ProjectService) GetProject(id int64) (*models.Project, error) {
	project, err := s.projectRepo.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// GetProjectBySlug retrieves a published project by slug for the public site.
func (s *ProjectService) GetProjectBySlug(slug string) (*models.Project, error) {
	project, err := s.projectRepo.GetProjectBySlug(slug)
	if err != nil {
		return nil, err
	}
	if project == nil || !project.Published {
		return nil, ErrNotFound
	}
	return project, nil
}

// ListProjects retrieves a page of projects.
func (s *ProjectService) ListProjects(filter repository.ProjectFilter, page models.Page) (*models.List[models.Project], error) {
	page = page.Normalize()
	projects, total, err := s.projectRepo.ListProjects(filter, page)
	if err != nil {
		return nil, err
	}
	return &models.List[models.Project]{Items: projects, Total: total, Page: page.Number, Size: page.Size}, nil
}

// UpdateProject validates and updates a project.
func (s *ProjectService) UpdateProject(project *models.Project) error {
	if err := validation.ValidateRequired("name", project.Name); err != nil {
		return err
	}
	if err := validation.ValidateSlug(project.Slug); err != nil {
		return err
	}

	current, err := s.projectRepo.GetProjectByID(project.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	if project.Slug != current.Slug {
		existing, err := s.projectRepo.GetProjectBySlug(project.Slug)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if existing != nil {
			return ErrSlugTaken
		}
	}

	return s.projectRepo.UpdateProject(project)
}

// DeleteProject deletes a project.
func (s *ProjectService) DeleteProject(id int64) error {
	project, err := s.projectRepo.GetProjectByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	return s.projectRepo.DeleteProject(id)
}
