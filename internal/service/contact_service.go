package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"truongphat/internal/models"
	"truongphat/internal/ratelimit"
	"truongphat/internal/repository"
	"truongphat/internal/validation"
)

var ErrTooManySubmissions = errors.New("too many submissions")

// ContactService handles contact-form submissions from the public site.
type ContactService struct {
	contactRepo  *repository.ContactRepository
	gate         *ratelimit.Gate
	emailService *EmailService
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo *repository.ContactRepository, gate *ratelimit.Gate, emailService *EmailService) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		gate:         gate,
		emailService: emailService,
	}
}

// Submit validates a submission, applies the per-client rate limit and
// stores the contact. The submission is only counted against the limit
// after it has been stored. The administrator notification is sent in the
// background so a slow mail provider does not delay the response.
func (s *ContactService) Submit(ctx context.Context, clientKey string, contact *models.Contact) (*models.Contact, error) {
	if err := validation.ValidateName("fullName", contact.FullName); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(contact.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePhone(contact.Phone); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequired("message", contact.Message); err != nil {
		return nil, err
	}

	status := s.gate.CheckStatus(ctx, clientKey)
	if !status.Allowed {
		return nil, ErrTooManySubmissions
	}

	created, err := s.contactRepo.CreateContact(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	s.gate.RecordSubmission(ctx, clientKey)

	if s.emailService != nil && s.emailService.IsEnabled() {
		go func(c models.Contact) {
			if err := s.emailService.SendContactNotification(context.Background(), &c); err != nil {
				log.Printf("Warning: failed to send contact notification: %v", err)
			}
		}(*created)
	}

	return created, nil
}

// SubmissionStatus reports the caller's remaining quota.
func (s *ContactService) SubmissionStatus(ctx context.Context, clientKey string) ratelimit.Status {
	return s.gate.CheckStatus(ctx, clientKey)
}

// RetryMessage formats the Vietnamese wait message for a limited caller.
func (s *ContactService) RetryMessage(status ratelimit.Status) string {
	return s.gate.FormatResetTime(status)
}

// GetContact retrieves a contact submission by ID.
func (s *ContactService) GetContact(id int64) (*models.Contact, error) {
	contact, err := s.contactRepo.GetContactByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	return contact, nil
}

// ListContacts retrieves a page of contact submissions for the back office.
func (s *ContactService) ListContacts(status string, page models.Page) (*models.List[models.Contact], error) {
	if status != "" && status != models.ContactStatusNew &&
		status != models.ContactStatusRead && status != models.ContactStatusReplied {
		return nil, validation.ValidationError{Field: "status", Message: "unknown status"}
	}
	page = page.Normalize()
	contacts, total, err := s.contactRepo.ListContacts(status, page)
	if err != nil {
		return nil, err
	}
	return &models.List[models.Contact]{Items: contacts, Total: total, Page: page.Number, Size: page.Size}, nil
}

// UpdateContactStatus moves a submission between new, read and replied.
func (s *ContactService) UpdateContactStatus(id int64, status string) error {
	if status != models.ContactStatusNew && status != models.ContactStatusRead && status != models.ContactStatusReplied {
		return validation.ValidationError{Field: "status", Message: "unknown status"}
	}
	contact, err := s.contactRepo.GetContactByID(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}
	return s.contactRepo.UpdateContactStatus(id, status)
}

// DeleteContact removes a contact submission.
func (s *ContactService) DeleteContact(id int64) error {
	contact, err := s.contactRepo.GetContactByID(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}
	return s.contactRepo.DeleteContact(id)
}
