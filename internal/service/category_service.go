package service

import (
	"fmt"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/utils"
	"truongphat/internal/validation"
)

// CategoryService handles project categories.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory validates and creates a category.
func (s *CategoryService) CreateCategory(category *models.Category) (*models.Category, error) {
	if err := validation.ValidateRequired("name", category.Name); err != nil {
		return nil, err
	}
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}
	if err := validation.ValidateSlug(category.Slug); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetCategoryBySlug(category.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	return s.categoryRepo.CreateCategory(category)
}

// GetCategory retrieves a category by ID.
func (s *CategoryService) GetCategory(id int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *CategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListCategories()
}

// UpdateCategory validates and updates a category.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	if err := validation.ValidateRequired("name", category.Name); err != nil {
		return err
	}
	if err := validation.ValidateSlug(category.Slug); err != nil {
		return err
	}

	current, err := s.categoryRepo.GetCategoryByID(category.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	if category.Slug != current.Slug {
		existing, err := s.categoryRepo.GetCategoryBySlug(category.Slug)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if existing != nil {
			return ErrSlugTaken
		}
	}

	return s.categoryRepo.UpdateCategory(category)
}

// DeleteCategory deletes a category that no project still references.
func (s *CategoryService) DeleteCategory(id int64) error {
	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	count, err := s.categoryRepo.CountProjectsInCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	return s.categoryRepo.DeleteCategory(id)
}
