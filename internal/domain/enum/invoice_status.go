package enum

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// allowedTransitions is the full status machine. Paid and void have no
// outgoing edges.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft: {InvoiceStatusSent, InvoiceStatusVoid},
	InvoiceStatusSent:  {InvoiceStatusPaid, InvoiceStatusVoid},
	InvoiceStatusPaid:  {},
	InvoiceStatusVoid:  {},
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the four known statuses
func (s InvoiceStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Editable reports whether an invoice in this status accepts content changes
func (s InvoiceStatus) Editable() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusSent
}

// Terminal reports whether this status has no outgoing transitions
func (s InvoiceStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the status machine permits moving to target
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseInvoiceStatus parses a string into an InvoiceStatus. Input is
// trimmed and lowercased; the stored form is always lowercase.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid invoice status: %q", s)
	}
	return status, nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into InvoiceStatus", value)
	}
	return nil
}
