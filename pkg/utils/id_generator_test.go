package utils

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateCertificateNumber_Format(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ESG-\d{4}-\d{4}$`)

	for i := 0; i < 50; i++ {
		number := GenerateCertificateNumber(now)
		if !pattern.MatchString(number) {
			t.Errorf("GenerateCertificateNumber() = %q, want match for %s", number, pattern.String())
		}
		if !strings.HasPrefix(number, fmt.Sprintf("ESG-%d-", now.Year())) {
			t.Errorf("GenerateCertificateNumber() = %q, want year %d", number, now.Year())
		}
	}
}

func TestGeneratePrefixedIDs(t *testing.T) {
	tests := []struct {
		name     string
		generate func() string
		prefix   string
	}{
		{"application", GenerateApplicationID, "APP-"},
		{"activity log", GenerateLogID, "LOG-"},
		{"certificate", GenerateCertificateID, "CERT-"},
		{"review note", GenerateNoteID, "NOTE-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.generate()
			if !strings.HasPrefix(id, tt.prefix) {
				t.Errorf("generated ID %q does not have prefix %q", id, tt.prefix)
			}
			if !IsValidUUID(strings.TrimPrefix(id, tt.prefix)) {
				t.Errorf("generated ID %q does not carry a valid UUID", id)
			}
		})
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("GenerateID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}
