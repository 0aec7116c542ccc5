package service

import (
	"context"

	"github.com/bbqgrill/backend/internal/model"
)

// EmailService relays contact form messages to the restaurant's inbox.
type EmailService interface {
	// SendContactEmail validates msg as a whole and sends it. Invalid input
	// is rejected with a single combined message.
	SendContactEmail(ctx context.Context, msg *model.ContactMessage) EmailResult

	// SendContactForm checks each raw field for blanks, reporting the first
	// missing one, and sends the message.
	SendContactForm(ctx context.Context, name, email, body string) EmailResult
}

// EmailResult is either EmailSent or EmailFailed.
type EmailResult interface {
	isEmailResult()
}

// EmailSent reports a delivered message.
type EmailSent struct {
	Message string
}

// EmailFailed reports a rejected or undelivered message.
type EmailFailed struct {
	Message string
}

func (EmailSent) isEmailResult()   {}
func (EmailFailed) isEmailResult() {}
