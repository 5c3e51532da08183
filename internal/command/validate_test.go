package command

import (
	"errors"
	"testing"
)

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+15551234", true},
		{"+1", true},
		{"+0000", true},
		{"15551234", false},
		{"+", false},
		{"+1555-1234", false},
		{"+1 555", false},
		{"++1", false},
		{"+1555a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := Validate(AddPhone{Name: "Alice", Phone: tt.phone})
			if got := err == nil; got != tt.valid {
				t.Fatalf("Validate(phone %q) error = %v, want valid = %v", tt.phone, err, tt.valid)
			}
			if tt.valid {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if ve.Field != "phone" || ve.Value != tt.phone {
				t.Errorf("ValidationError = %+v, want field phone value %q", ve, tt.phone)
			}
			if errors.Is(err, ErrInvalidCommand) {
				t.Error("validation error must not be a parse error")
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a_b@c1.d2", true},
		{"a@b.c", true},
		{"alice@example", false},
		{"alice.smith@example.com", false},
		{"alice@mail.example.com", false},
		{"@example.com", false},
		{"alice@.com", false},
		{"alice example.com", false},
		{"nope@nowhere.com trailing", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Validate(AddEmail{Name: "Alice", Email: tt.email})
			if got := err == nil; got != tt.valid {
				t.Fatalf("Validate(email %q) error = %v, want valid = %v", tt.email, err, tt.valid)
			}
			if !tt.valid && !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestValidate_OtherCommandsAlwaysValid(t *testing.T) {
	for _, cmd := range []Command{Show{}, Find{Value: "anything"}, Export{Path: "x"}, Exit{}, Help{}} {
		if !IsValid(cmd) {
			t.Errorf("IsValid(%#v) = false, want true", cmd)
		}
	}
}
