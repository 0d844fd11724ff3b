package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid address", "owner@business.ae", false},
		{"valid with plus", "staff+portal@chamber.gov.ae", false},
		{"empty", "", true},
		{"missing domain", "owner@", true},
		{"missing at sign", "owner.business.ae", true},
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

func TestValidateActor(t *testing.T) {
	if err := ValidateActor("reviewer-1"); err != nil {
		t.Errorf("ValidateActor() unexpected error: %v", err)
	}
	if err := ValidateActor("  "); err == nil {
		t.Error("ValidateActor() expected error for blank actor")
	}
	if err := ValidateActor(strings.Repeat("x", 256)); err == nil {
		t.Error("ValidateActor() expected error for overlong actor")
	}
}

func TestValidateLimitAndOffset(t *testing.T) {
	if got := ValidateLimit(0); got != 20 {
		t.Errorf("ValidateLimit(0) = %d, want 20", got)
	}
	if got := ValidateLimit(500); got != 100 {
		t.Errorf("ValidateLimit(500) = %d, want 100", got)
	}
	if got := ValidateLimit(15); got != 15 {
		t.Errorf("ValidateLimit(15) = %d, want 15", got)
	}
	if got := ValidateOffset(-5); got != 0 {
		t.Errorf("ValidateOffset(-5) = %d, want 0", got)
	}
}

func TestValidateMinLength(t *testing.T) {
	if err := ValidateMinLength("queryText", "short", 20); err == nil {
		t.Error("ValidateMinLength() expected error for short value")
	}
	if err := ValidateMinLength("queryText", strings.Repeat("a", 25), 20); err != nil {
		t.Errorf("ValidateMinLength() unexpected error: %v", err)
	}
}
