package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// StaffRepository handles database operations for staff accounts and
// password reset tokens.
type StaffRepository struct {
	db *database.DB
}

// NewStaffRepository creates a new staff repository.
func NewStaffRepository(db *database.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

const staffColumns = "id, full_name, email, password_hash, phone, role_name, avatar_url, is_active, created_at, updated_at"

func scanStaff(row interface{ Scan(...interface{}) error }) (*models.Staff, error) {
	staff := &models.Staff{}
	err := row.Scan(
		&staff.ID,
		&staff.FullName,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Phone,
		&staff.RoleName,
		&staff.AvatarURL,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// CreateStaff inserts a new staff account. The first account created
// becomes an admin regardless of the requested role.
func (r *StaffRepository) CreateStaff(fullName, email, passwordHash, phone, roleName, avatarURL string) (*models.Staff, error) {
	var staffCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM staffs").Scan(&staffCount); err != nil {
		return nil, fmt.Errorf("failed to count staffs: %w", err)
	}
	if staffCount == 0 {
		roleName = models.RoleAdmin
	}

	query := `
		INSERT INTO staffs (full_name, email, password_hash, phone, role_name, avatar_url, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, fullName, email, passwordHash, phone, roleName, avatarURL, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	return &models.Staff{
		ID:           id,
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		RoleName:     roleName,
		AvatarURL:    avatarURL,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetStaffByEmail retrieves a staff account by email address.
func (r *StaffRepository) GetStaffByEmail(email string) (*models.Staff, error) {
	query := "SELECT " + staffColumns + " FROM staffs WHERE email = ?"
	staff, err := scanStaff(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// GetStaffByID retrieves a staff account by ID.
func (r *StaffRepository) GetStaffByID(id int64) (*models.Staff, error) {
	query := "SELECT " + staffColumns + " FROM staffs WHERE id = ?"
	staff, err := scanStaff(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// ListStaffs retrieves a page of staff accounts, newest first.
func (r *StaffRepository) ListStaffs(page models.Page) ([]models.Staff, int64, error) {
	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM staffs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staffs: %w", err)
	}

	query := "SELECT " + staffColumns + " FROM staffs ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.Query(query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query staffs: %w", err)
	}
	defer rows.Close()

	var staffs []models.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff: %w", err)
		}
		staffs = append(staffs, *staff)
	}
	return staffs, total, rows.Err()
}

// UpdateStaff updates a staff account's profile fields.
func (r *StaffRepository) UpdateStaff(id int64, fullName, email, phone, roleName, avatarURL string, isActive bool) error {
	query := `
		UPDATE staffs
		SET full_name = ?, email = ?, phone = ?, role_name = ?, avatar_url = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, fullName, email, phone, roleName, avatarURL, isActive, id)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	return nil
}

// CountActiveAdmins counts active admin accounts.
func (r *StaffRepository) CountActiveAdmins() (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM staffs WHERE role_name = ? AND is_active = ?"
	if err := r.db.QueryRow(query, models.RoleAdmin, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// UpdatePassword replaces a staff account's password hash.
func (r *StaffRepository) UpdatePassword(id int64, passwordHash string) error {
	query := "UPDATE staffs SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteStaff deletes a staff account and cascades its tokens.
func (r *StaffRepository) DeleteStaff(id int64) error {
	_, err := r.db.Exec("DELETE FROM staffs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}

// CreatePasswordResetToken stores a single-use reset token.
func (r *StaffRepository) CreatePasswordResetToken(token string, staffID int64, expiresAt time.Time) error {
	query := "INSERT INTO password_reset_tokens (token, staff_id, expires_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, token, staffID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token.
func (r *StaffRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, staff_id, expires_at, created_at, used
		FROM password_reset_tokens
		WHERE token = ?
	`
	resetToken := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&resetToken.Token,
		&resetToken.StaffID,
		&resetToken.ExpiresAt,
		&resetToken.CreatedAt,
		&resetToken.Used,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return resetToken, nil
}

// MarkPasswordResetTokenUsed marks a reset token as consumed.
func (r *StaffRepository) MarkPasswordResetTokenUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	if _, err := r.db.Exec(query, true, token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}
	return nil
}

// DeleteStaffPasswordResetTokens removes all reset tokens for a staff account.
func (r *StaffRepository) DeleteStaffPasswordResetTokens(staffID int64) error {
	_, err := r.db.Exec("DELETE FROM password_reset_tokens WHERE staff_id = ?", staffID)
	if err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}
	return nil
}

// DeleteExpiredPasswordResetTokens removes expired reset tokens.
func (r *StaffRepository) DeleteExpiredPasswordResetTokens() error {
	_, err := r.db.Exec("DELETE FROM password_reset_tokens WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}
