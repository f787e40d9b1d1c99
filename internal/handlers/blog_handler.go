package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/service"
)

// BlogHandler handles blog and blog-type endpoints.
type BlogHandler struct {
	blogService *service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPublished returns a page of published blog posts for the public site.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	typeID, _ := strconv.ParseInt(r.URL.Query().Get("type"), 10, 64)
	filter := repository.BlogFilter{BlogTypeID: typeID, PublishedOnly: true}

	list, err := h.blogService.ListBlogs(filter, parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetBySlug returns a published blog post by slug.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.GetBlogBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blog)
}

// List returns a page of blog posts including drafts for the back office.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	typeID, _ := strconv.ParseInt(r.URL.Query().Get("type"), 10, 64)
	filter := repository.BlogFilter{BlogTypeID: typeID}

	list, err := h.blogService.ListBlogs(filter, parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get returns a blog post by ID.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	blog, err := h.blogService.GetBlog(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blog)
}

// Create creates a blog post. The author is the authenticated staff member.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var blog models.Blog
	if !decodeJSON(w, r, &blog) {
		return
	}

	if claims := ClaimsFromContext(r.Context()); claims != nil {
		if authorID, err := strconv.ParseInt(claims.Subject, 10, 64); err == nil {
			blog.AuthorID = authorID
		}
	}

	created, err := h.blogService.CreateBlog(&blog)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update updates a blog post.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var blog models.Blog
	if !decodeJSON(w, r, &blog) {
		return
	}
	blog.ID = id

	if err := h.blogService.UpdateBlog(&blog); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blog)
}

// Delete deletes a blog post.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.blogService.DeleteBlog(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListTypes returns all blog types.
func (h *BlogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.blogService.ListBlogTypes()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// CreateType creates a blog type.
func (h *BlogHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		NameEn string `json:"nameEn"`
		Slug   string `json:"slug"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.blogService.CreateBlogType(req.Name, req.NameEn, req.Slug)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateType updates a blog type.
func (h *BlogHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Name   string `json:"name"`
		NameEn string `json:"nameEn"`
		Slug   string `json:"slug"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.blogService.UpdateBlogType(id, req.Name, req.NameEn, req.Slug); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// DeleteType deletes a blog type that no post references.
func (h *BlogHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.blogService.DeleteBlogType(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
