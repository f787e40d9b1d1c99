package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// ContactRepository handles database operations for contact submissions.
type ContactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = "id, full_name, email, phone, subject, message, status, created_at"

func scanContact(row interface{ Scan(...interface{}) error }) (*models.Contact, error) {
	contact := &models.Contact{}
	err := row.Scan(
		&contact.ID,
		&contact.FullName,
		&contact.Email,
		&contact.Phone,
		&contact.Subject,
		&contact.Message,
		&contact.Status,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// CreateContact inserts a new contact submission with status "new".
func (r *ContactRepository) CreateContact(contact *models.Contact) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (full_name, email, phone, subject, message, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		contact.FullName, contact.Email, contact.Phone,
		contact.Subject, contact.Message, models.ContactStatusNew,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	created := *contact
	created.ID = id
	created.Status = models.ContactStatusNew
	created.CreatedAt = time.Now()
	return &created, nil
}

// GetContactByID retrieves a contact submission by ID.
func (r *ContactRepository) GetContactByID(id int64) (*models.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE id = ?"
	contact, err := scanContact(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// ListContacts retrieves a page of contact submissions, newest first,
// optionally filtered by status.
func (r *ContactRepository) ListContacts(status string, page models.Page) ([]models.Contact, int64, error) {
	where := ""
	var args []interface{}
	if status != "" {
		where = " WHERE status = ?"
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM contacts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	query := "SELECT " + contactColumns + " FROM contacts" + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	return contacts, total, rows.Err()
}

// UpdateContactStatus changes a contact submission's status.
func (r *ContactRepository) UpdateContactStatus(id int64, status string) error {
	query := "UPDATE contacts SET status = ? WHERE id = ?"
	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteContact deletes a contact submission.
func (r *ContactRepository) DeleteContact(id int64) error {
	_, err := r.db.Exec("DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// CountContactsByStatus returns submission counts grouped by status.
func (r *ContactRepository) CountContactsByStatus() (map[string]int64, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM contacts GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contact count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
