package handlers

import (
	"net/http"
	"strconv"

	"truongphat/internal/models"
	"truongphat/internal/service"
)

// StaffHandler handles staff account management for the back office.
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List returns a page of staff accounts.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.staffService.ListStaffs(parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get returns a staff account by ID.
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	staff, err := h.staffService.GetStaff(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

// Create creates a staff account.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName  string `json:"fullName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Phone     string `json:"phone"`
		RoleName  string `json:"roleName"`
		AvatarURL string `json:"avatarUrl"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(req.FullName, req.Email, req.Password, req.Phone, req.RoleName, req.AvatarURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, staff)
}

// Update updates a staff account's profile and role.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var staff models.Staff
	if !decodeJSON(w, r, &staff) {
		return
	}
	staff.ID = id

	if err := h.staffService.UpdateStaff(&staff); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// Delete removes a staff account.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.staffService.DeleteStaff(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ChangePassword lets the authenticated staff member change their own
// password after confirming the current one.
func (h *StaffHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.staffService.ChangePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
