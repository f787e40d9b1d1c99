package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/service"
)

// ProjectHandler handles portfolio project endpoints.
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListPublished returns a page of published projects for the public site.
func (h *ProjectHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)
	filter := repository.ProjectFilter{CategoryID: categoryID, PublishedOnly: true}

	list, err := h.projectService.ListProjects(filter, parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetBySlug returns a published project by slug.
func (h *ProjectHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProjectBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// List returns a page of projects including drafts for the back office.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)
	filter := repository.ProjectFilter{CategoryID: categoryID}

	list, err := h.projectService.ListProjects(filter, parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get returns a project by ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Create creates a project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if !decodeJSON(w, r, &project) {
		return
	}

	created, err := h.projectService.CreateProject(&project)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update updates a project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var project models.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	project.ID = id

	if err := h.projectService.UpdateProject(&project); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Delete deletes a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
