package handler

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"

	"github.com/bbqgrill/backend/internal/metrics"
	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/service"
)

// maxContactBodyBytes caps the request body read for a contact submission.
const maxContactBodyBytes = 64 << 10

// ContactHandler relays contact form submissions by email.
type ContactHandler struct {
	emailService service.EmailService
}

func NewContactHandler(emailService service.EmailService) *ContactHandler {
	return &ContactHandler{emailService: emailService}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// A form-encoded body goes through the per-field checks; anything else is
// decoded as JSON and validated as a whole.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var result service.EmailResult
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_form"})
			return
		}
		result = h.emailService.SendContactForm(r.Context(),
			r.PostForm.Get("name"), r.PostForm.Get("email"), r.PostForm.Get("message"))
	} else {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
			return
		}
		result = h.emailService.SendContactEmail(r.Context(),
			model.NewContactMessage(req.Name, req.Email, req.Message))
	}

	switch res := result.(type) {
	case service.EmailSent:
		metrics.ObserveContact(metrics.OutcomeSent)
		writeJSON(w, http.StatusOK, contactResponse{OK: true, Message: res.Message})
	case service.EmailFailed:
		metrics.ObserveContact(metrics.OutcomeFailed)
		writeJSON(w, http.StatusUnprocessableEntity, contactResponse{OK: false, Message: res.Message})
	default:
		slog.ErrorContext(r.Context(), "unknown email result")
		writeJSON(w, http.StatusInternalServerError, contactResponse{OK: false, Message: service.MsgEmailUnexpected})
	}
}

func isFormRequest(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
