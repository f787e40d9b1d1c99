package models

import "time"

// Staff roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Staff represents a back-office account.
type Staff struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	RoleName     string    `json:"roleName"`
	AvatarURL    string    `json:"avatarUrl"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the staff member holds the admin role.
func (s *Staff) IsAdmin() bool {
	return s.RoleName == RoleAdmin
}

// PasswordResetToken represents a single-use token for password reset.
type PasswordResetToken struct {
	Token     string
	StaffID   int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
