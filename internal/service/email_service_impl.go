package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/logging"
	"github.com/bbqgrill/backend/internal/model"
	gomail "github.com/go-mail/mail"
)

// User-facing contact messages.
const (
	MsgEmailSent           = "Message sent successfully! We'll get back to you soon."
	MsgEmailInvalid        = "Please provide valid name, email, and message"
	MsgEmailNameRequired   = "Sender name is required"
	MsgEmailEmailRequired  = "Sender email is required"
	MsgEmailBodyRequired   = "Message is required"
	MsgEmailDeliveryFailed = "Sorry, we couldn't send your message at this time. Please try again later or contact us directly."
	MsgEmailUnexpected     = "An unexpected error occurred. Please try again later."
)

var (
	// ErrInvalidAddress is returned when a from or reply-to address does not parse.
	ErrInvalidAddress = errors.New("invalid email address")
	// ErrSMTPHostMissing is returned when no SMTP host is configured.
	ErrSMTPHostMissing = errors.New("smtp host not configured")
)

// SMTPConfig supplies outbound mail settings. *config.Resolver satisfies it.
type SMTPConfig interface {
	SMTP() config.SMTPSettings
}

// emailServiceImpl is the production implementation of EmailService.
type emailServiceImpl struct {
	cfg       SMTPConfig
	newSender SenderFactory
}

// NewEmailService creates an EmailService that delivers over SMTP.
func NewEmailService(cfg SMTPConfig) EmailService {
	return NewEmailServiceWithSender(cfg, NewSMTPSender)
}

// NewEmailServiceWithSender creates an EmailService using newSender for delivery.
func NewEmailServiceWithSender(cfg SMTPConfig, newSender SenderFactory) EmailService {
	return &emailServiceImpl{cfg: cfg, newSender: newSender}
}

func (s *emailServiceImpl) SendContactEmail(ctx context.Context, msg *model.ContactMessage) EmailResult {
	if !msg.IsValid() {
		return EmailFailed{Message: MsgEmailInvalid}
	}
	return s.deliver(ctx, msg.SenderName, msg.SenderEmail, msg.Body)
}

func (s *emailServiceImpl) SendContactForm(ctx context.Context, name, email, body string) EmailResult {
	switch {
	case model.IsBlank(name):
		return EmailFailed{Message: MsgEmailNameRequired}
	case model.IsBlank(email):
		return EmailFailed{Message: MsgEmailEmailRequired}
	case model.IsBlank(body):
		return EmailFailed{Message: MsgEmailBodyRequired}
	}
	return s.deliver(ctx, name, email, body)
}

// deliver composes and sends one message. Composition and configuration
// problems map to the unexpected-failure message; errors from the SMTP
// exchange map to the delivery-failure message.
func (s *emailServiceImpl) deliver(ctx context.Context, name, email, body string) (result EmailResult) {
	masked := logging.MaskEmail(email)
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "contact email panicked", "email", masked, "panic", r)
			result = EmailFailed{Message: MsgEmailUnexpected}
		}
	}()

	settings := s.cfg.SMTP()
	if settings.Host == "" {
		slog.ErrorContext(ctx, "contact email not sent", "email", masked, "error", ErrSMTPHostMissing)
		return EmailFailed{Message: MsgEmailUnexpected}
	}

	m, err := composeContactEmail(settings.FromEmail, name, email, body)
	if err != nil {
		slog.ErrorContext(ctx, "contact email composition failed", "email", masked, "error", err)
		return EmailFailed{Message: MsgEmailUnexpected}
	}

	if err := s.newSender(settings).DialAndSend(m); err != nil {
		slog.ErrorContext(ctx, "smtp error sending contact email",
			"email", masked,
			"host", settings.Host,
			"port", settings.Port,
			"error", err,
		)
		return EmailFailed{Message: MsgEmailDeliveryFailed}
	}

	slog.InfoContext(ctx, "contact email sent", "email", masked)
	return EmailSent{Message: MsgEmailSent}
}

// composeContactEmail addresses the message from and to the restaurant's own
// mailbox, with the visitor as Reply-To.
func composeContactEmail(fromEmail, name, replyTo, body string) (*gomail.Message, error) {
	from, err := mail.ParseAddress(fromEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: from %q: %v", ErrInvalidAddress, fromEmail, err)
	}
	visitor, err := mail.ParseAddress(replyTo)
	if err != nil {
		return nil, fmt.Errorf("%w: reply-to %q: %v", ErrInvalidAddress, replyTo, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", from.Address, from.Name)
	m.SetAddressHeader("To", from.Address, from.Name)
	m.SetAddressHeader("Reply-To", visitor.Address, visitor.Name)
	m.SetHeader("Subject", contactSubject(name))
	m.SetBody("text/plain", contactBody(name, replyTo, body))
	return m, nil
}

func contactSubject(name string) string {
	return "Contact Form Message from " + name
}

func contactBody(name, email, body string) string {
	return fmt.Sprintf("From: %s\nEmail: %s\n\nMessage:\n%s", name, email, body)
}
