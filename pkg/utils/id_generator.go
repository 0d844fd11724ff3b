package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID generates a new UUID for application, log, or certificate IDs
func GenerateID() string {
	return uuid.New().String()
}

// GenerateApplicationID generates a unique application ID
func GenerateApplicationID() string {
	return "APP-" + uuid.New().String()
}

// GenerateLogID generates a unique activity log entry ID
func GenerateLogID() string {
	return "LOG-" + uuid.New().String()
}

// GenerateCertificateID generates a unique certificate ID
func GenerateCertificateID() string {
	return "CERT-" + uuid.New().String()
}

// GenerateNoteID generates a unique legacy review note ID
func GenerateNoteID() string {
	return "NOTE-" + uuid.New().String()
}

// GenerateCertificateNumber generates a certificate number in the format
// ESG-<4-digit-year>-<zero-padded 4-digit random>. Uniqueness is best-effort.
func GenerateCertificateNumber(now time.Time) string {
	return fmt.Sprintf("ESG-%d-%04d", now.Year(), rand.Intn(10000))
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GenerateVoucherCode generates a short voucher code for deal claims
func GenerateVoucherCode() string {
	return "VCH-" + strings.ToUpper(uuid.New().String()[:8])
}
