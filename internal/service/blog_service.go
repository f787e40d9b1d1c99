package service

import (
	"errors"
	"fmt"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/utils"
	"truongphat/internal/validation"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrSlugTaken = errors.New("slug already taken")
	ErrInUse     = errors.New("resource is still referenced")
)

// BlogService handles blog posts and their types.
type BlogService struct {
	blogRepo     *repository.BlogRepository
	blogTypeRepo *repository.BlogTypeRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo *repository.BlogRepository, blogTypeRepo *repository.BlogTypeRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, blogTypeRepo: blogTypeRepo}
}

// CreateBlog validates and creates a blog post. An empty slug is derived
// from the Vietnamese title.
func (s *BlogService) CreateBlog(blog *models.Blog) (*models.Blog, error) {
	if err := validation.ValidateRequired("title", blog.Title); err != nil {
		return nil, err
	}
	if blog.Slug == "" {
		blog.Slug = utils.Slugify(blog.Title)
	}
	if err := validation.ValidateSlug(blog.Slug); err != nil {
		return nil, err
	}

	existing, err := s.blogRepo.GetBlogBySlug(blog.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	if blog.BlogTypeID > 0 {
		blogType, err := s.blogTypeRepo.GetBlogTypeByID(blog.BlogTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check blog type: %w", err)
		}
		if blogType == nil {
			return nil, ErrNotFound
		}
	}

	return s.blogRepo.CreateBlog(blog)
}

// GetBlog retrieves a blog post by ID.
func (s *BlogService) GetBlog(id int64) (*models.Blog, error) {
	blog, err := s.blogRepo.GetBlogByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	return blog, nil
}

// GetBlogBySlug retrieves a published blog post by slug for the public site.
func (s *BlogService) GetBlogBySlug(slug string) (*models.Blog, error) {
	blog, err := s.blogRepo.GetBlogBySlug(slug)
	if err != nil {
		return nil, err
	}
	if blog == nil || !blog.Published {
		return nil, ErrNotFound
	}
	return blog, nil
}

// ListBlogs retrieves a page of blog posts.
func (s *BlogService) ListBlogs(filter repository.BlogFilter, page models.Page) (*models.List[models.Blog], error) {
	page = page.Normalize()
	blogs, total, err := s.blogRepo.ListBlogs(filter, page)
	if err != nil {
		return nil, err
	}
	return &models.List[models.Blog]{Items: blogs, Total: total, Page: page.Number, Size: page.Size}, nil
}

// UpdateBlog validates and updates a blog post.
func (s *BlogService) UpdateBlog(blog *models.Blog) error {
	if err := validation.ValidateRequired("title", blog.Title); err != nil {
		return err
	}
	if err := validation.ValidateSlug(blog.Slug); err != nil {
		return err
	}

	current, err := s.blogRepo.GetBlogByID(blog.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	if blog.Slug != current.Slug {
		existing, err := s.blogRepo.GetBlogBySlug(blog.Slug)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if existing != nil {
			return ErrSlugTaken
		}
	}

	return s.blogRepo.UpdateBlog(blog)
}

// DeleteBlog deletes a blog post.
func (s *BlogService) DeleteBlog(id int64) error {
	blog, err := s.blogRepo.GetBlogByID(id)
	if err != nil {
		return err
	}
	if blog == nil {
		return ErrNotFound
	}
	return s.blogRepo.DeleteBlog(id)
}

// CreateBlogType creates a new blog type.
func (s *BlogService) CreateBlogType(name, nameEn, slug string) (*models.BlogType, error) {
	if err := validation.ValidateRequired("name", name); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, err
	}

	existing, err := s.blogTypeRepo.GetBlogTypeBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	return s.blogTypeRepo.CreateBlogType(name, nameEn, slug)
}

// GetBlogType retrieves a blog type by ID.
func (s *BlogService) GetBlogType(id int64) (*models.BlogType, error) {
	blogType, err := s.blogTypeRepo.GetBlogTypeByID(id)
	if err != nil {
		return nil, err
	}
	if blogType == nil {
		return nil, ErrNotFound
	}
	return blogType, nil
}

// ListBlogTypes retrieves all blog types.
func (s *BlogService) ListBlogTypes() ([]models.BlogType, error) {
	return s.blogTypeRepo.ListBlogTypes()
}

// UpdateBlogType updates a blog type.
func (s *BlogService) UpdateBlogType(id int64, name, nameEn, slug string) error {
	if err := validation.ValidateRequired("name", name); err != nil {
		return err
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return err
	}

	current, err := s.blogTypeRepo.GetBlogTypeByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	if slug != current.Slug {
		existing, err := s.blogTypeRepo.GetBlogTypeBySlug(slug)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if existing != nil {
			return ErrSlugTaken
		}
	}

	return s.blogTypeRepo.UpdateBlogType(id, name, nameEn, slug)
}

// DeleteBlogType deletes a blog type that no blog still references.
func (s *BlogService) DeleteBlogType(id int64) error {
	blogType, err := s.blogTypeRepo.GetBlogTypeByID(id)
	if err != nil {
		return err
	}
	if blogType == nil {
		return ErrNotFound
	}

	count, err := s.blogTypeRepo.CountBlogsOfType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	return s.blogTypeRepo.DeleteBlogType(id)
}
