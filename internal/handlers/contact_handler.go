package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"truongphat/internal/models"
	"truongphat/internal/security"
	"truongphat/internal/service"
)

// ContactHandler handles the public contact form and its back-office inbox.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submissionStatusResponse mirrors the quota shown next to the public form.
type submissionStatusResponse struct {
	Allowed   bool       `json:"allowed"`
	Remaining int        `json:"remaining"`
	ResetTime *time.Time `json:"resetTime,omitempty"`
	IsLimited bool       `json:"isLimited"`
}

// Submit accepts a contact-form submission from the public site.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if !decodeJSON(w, r, &contact) {
		return
	}

	clientKey := security.ClientIP(r)
	created, err := h.contactService.Submit(r.Context(), clientKey, &contact)
	if err != nil {
		if errors.Is(err, service.ErrTooManySubmissions) {
			status := h.contactService.SubmissionStatus(r.Context(), clientKey)
			message := "Bạn đã gửi quá nhiều yêu cầu. Vui lòng thử lại sau."
			if wait := h.contactService.RetryMessage(status); wait != "" {
				message = fmt.Sprintf("Bạn đã gửi quá nhiều yêu cầu. Vui lòng thử lại sau %s.", wait)
			}
			respondError(w, http.StatusTooManyRequests, message)
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Status reports how many submissions the caller has left.
func (h *ContactHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.contactService.SubmissionStatus(r.Context(), security.ClientIP(r))
	respondJSON(w, http.StatusOK, submissionStatusResponse{
		Allowed:   status.Allowed,
		Remaining: status.Remaining,
		ResetTime: status.ResetTime,
		IsLimited: status.IsLimited,
	})
}

// List returns a page of submissions for the back office, optionally
// filtered by status.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.contactService.ListContacts(r.URL.Query().Get("status"), parsePage(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get returns a submission by ID.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	contact, err := h.contactService.GetContact(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// UpdateStatus moves a submission between new, read and replied.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.contactService.UpdateContactStatus(id, req.Status); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// Delete removes a submission.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.contactService.DeleteContact(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
