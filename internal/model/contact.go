package model

import (
	"net/mail"
	"strings"
	"time"
)

// ContactMessage represents a message submitted via the contact form.
// It is never persisted; it lives for one send attempt.
type ContactMessage struct {
	SenderName  string    `json:"name"`
	SenderEmail string    `json:"email"`
	Body        string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewContactMessage creates a ContactMessage stamped with the current time.
func NewContactMessage(name, email, body string) *ContactMessage {
	return &ContactMessage{
		SenderName:  name,
		SenderEmail: email,
		Body:        body,
		SubmittedAt: time.Now().UTC(),
	}
}

// IsValid reports whether every field is non-blank and SenderEmail is a
// syntactically valid address.
func (m *ContactMessage) IsValid() bool {
	if m == nil {
		return false
	}
	return !IsBlank(m.SenderName) &&
		!IsBlank(m.SenderEmail) &&
		!IsBlank(m.Body) &&
		IsValidEmail(m.SenderEmail)
}

// IsValidEmail reports whether s parses as a single bare address. Display
// names and surrounding whitespace are rejected.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
