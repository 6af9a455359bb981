// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/inkpress/auth"
	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/mail"
	"github.com/danielhkuo/inkpress/middleware"
	"github.com/danielhkuo/inkpress/models"
)

type ContactHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer mail.Mailer
}

func NewContactHandler(db *sql.DB, cfg cliparse.Config, mailer mail.Mailer) *ContactHandler {
	return &ContactHandler{db: db, cfg: cfg, mailer: mailer}
}

// Create handles POST /contact
// Sends the notification mail and persists a copy. The external
// response is deliberately uniform for every failure mode; the real
// cause (validation, transport, storage) is only logged.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.fail(w, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	if err := validateContact(req); err != nil {
		h.fail(w, err)
		return
	}

	body := fmt.Sprintf(
		"New Client Request: \n\nName: %s\nEmail: %s\n\nMessage:\n%s\nPhone: %s\n\nBudget: %s",
		req.Name, req.Email, req.Message, req.Phone, req.Budget,
	)

	err := h.mailer.Send(mail.Message{
		To:      h.cfg.ContactEmail,
		Subject: req.Subject,
		Body:    body,
		ReplyTo: req.Email,
	})
	if err != nil {
		h.fail(w, fmt.Errorf("mail transport: %w", err))
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO contact_message (id, name, email, phone, subject, message, budget)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, auth.NewID(), req.Name, req.Email, req.Phone, req.Subject, req.Message, req.Budget)
	if err != nil {
		h.fail(w, fmt.Errorf("failed to persist contact message: %w", err))
		return
	}

	slog.Info("contact message sent", "email", req.Email)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: "Message sent successfully",
	})
}

func (h *ContactHandler) fail(w http.ResponseWriter, cause error) {
	slog.Error("contact message not sent", "error", cause)
	middleware.JSONResponse(w, http.StatusInternalServerError, map[string]string{
		"error": "Message not sent",
	})
}

func validateContact(req models.ContactRequest) error {
	if req.Name == "" {
		return fmt.Errorf("validation: name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("validation: valid email is required")
	}
	if req.Message == "" {
		return fmt.Errorf("validation: message is required")
	}
	return nil
}
