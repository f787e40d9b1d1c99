package service

import (
	"errors"
	"fmt"

	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/security"
	"truongphat/internal/validation"
)

var (
	ErrEmailTaken = errors.New("email already taken")
	ErrLastAdmin  = errors.New("cannot remove the last admin account")
)

// StaffService handles back-office account management.
type StaffService struct {
	staffRepo *repository.StaffRepository
	tokenRepo *repository.TokenRepository
}

// NewStaffService creates a new staff service.
func NewStaffService(staffRepo *repository.StaffRepository, tokenRepo *repository.TokenRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo, tokenRepo: tokenRepo}
}

// CreateStaff creates a new staff account. The first account ever created
// becomes an admin regardless of the requested role.
func (s *StaffService) CreateStaff(fullName, email, password, phone, role, avatarURL string) (*models.Staff, error) {
	if err := validation.ValidateName("fullName", fullName); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		role = models.RoleEditor
	}

	existing, err := s.staffRepo.GetStaffByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing staff: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff, err := s.staffRepo.CreateStaff(fullName, email, passwordHash, phone, role, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff, nil
}

// GetStaff retrieves a staff member by ID.
func (s *StaffService) GetStaff(id int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

// ListStaffs retrieves a page of staff accounts.
func (s *StaffService) ListStaffs(page models.Page) (*models.List[models.Staff], error) {
	page = page.Normalize()
	staffs, total, err := s.staffRepo.ListStaffs(page)
	if err != nil {
		return nil, fmt.Errorf("failed to list staffs: %w", err)
	}
	return &models.List[models.Staff]{Items: staffs, Total: total, Page: page.Number, Size: page.Size}, nil
}

// UpdateStaff updates a staff member's profile and role. Deactivating or
// demoting the last remaining admin is rejected.
func (s *StaffService) UpdateStaff(staff *models.Staff) error {
	if err := validation.ValidateName("fullName", staff.FullName); err != nil {
		return err
	}
	if err := validation.ValidatePhone(staff.Phone); err != nil {
		return err
	}

	current, err := s.staffRepo.GetStaffByID(staff.ID)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}
	if current == nil {
		return ErrStaffNotFound
	}

	losesAdmin := current.IsAdmin() && (!staff.IsAdmin() || !staff.IsActive)
	if losesAdmin {
		admins, err := s.staffRepo.CountActiveAdmins()
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	err = s.staffRepo.UpdateStaff(staff.ID, staff.FullName, staff.Email, staff.Phone,
		staff.RoleName, staff.AvatarURL, staff.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	// Deactivation takes effect immediately, not at next token expiry.
	if !staff.IsActive {
		if err := s.tokenRepo.RevokeStaffRefreshTokens(staff.ID); err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
	}
	return nil
}

// ChangePassword sets a new password after verifying the current one.
func (s *StaffService) ChangePassword(id int64, currentPassword, newPassword string) error {
	staff, err := s.staffRepo.GetStaffByID(id)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	if !security.CheckPassword(currentPassword, staff.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.staffRepo.UpdatePassword(id, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteStaff removes a staff account. The last admin cannot be deleted.
func (s *StaffService) DeleteStaff(id int64) error {
	staff, err := s.staffRepo.GetStaffByID(id)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil {
		return ErrStaffNotFound
	}

	if staff.IsAdmin() {
		admins, err := s.staffRepo.CountActiveAdmins()
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.tokenRepo.RevokeStaffRefreshTokens(id); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	if err := s.staffRepo.DeleteStaff(id); err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}
