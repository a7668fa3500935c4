package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateInvoiceNo generates a human-friendly invoice number
func GenerateInvoiceNo(prefix string) string {
	if prefix == "" {
		prefix = "INV-"
	}
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}
