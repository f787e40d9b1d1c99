package validation

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "lan.nguyen@truongphat.vn", wantErr: false},
		{name: "valid with plus", email: "lan+test@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "lan@", wantErr: true},
		{name: "missing at", email: "lan.example.com", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := ValidatePassword("longEnough1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "empty allowed", phone: "", wantErr: false},
		{name: "vietnamese mobile", phone: "0912345678", wantErr: false},
		{name: "international", phone: "+84 912 345 678", wantErr: false},
		{name: "letters", phone: "not-a-phone!", wantErr: true},
		{name: "too short", phone: "123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"noi-that-can-ho", "du-an-2024", "about"}
	for _, slug := range valid {
		if err := ValidateSlug(slug); err != nil {
			t.Errorf("ValidateSlug(%q) unexpected error: %v", slug, err)
		}
	}

	invalid := []string{"", "Có-Dấu", "UPPER", "double--hyphen", "-leading", "trailing-"}
	for _, slug := range invalid {
		if err := ValidateSlug(slug); err == nil {
			t.Errorf("ValidateSlug(%q) expected error", slug)
		}
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := ValidateName("fullName", "")

	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "fullName" {
		t.Errorf("expected field fullName, got %s", vErr.Field)
	}
}
