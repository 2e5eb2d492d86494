package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Role == "" {
		req.Role = string(domain.RoleUser)
	}

	// hash the password; the plaintext is not referenced again
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	account := &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         domain.Role(req.Role),
	}

	if err := h.repository.CreateAccount(account); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "accounts_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case "accounts_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// the account is committed; mail delivery is auxiliary and must not
	// fail the signup
	h.publishWelcomeMail(account)

	h.writeJSON(w, r, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	account, err := h.repository.GetAccountByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "Invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "Invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.tokenManager.Issue(account.ID, account.Role, account.Username)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"token":    token,
		"role":     account.Role,
		"username": account.Username,
		"userId":   account.ID,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Token is valid",
		"user": map[string]any{
			"role":     identity.Role,
			"username": identity.Username,
			"userId":   identity.AccountID,
		},
	})
}

// Logout is stateless: the token stays valid until its expiry and the
// client simply discards it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) publishWelcomeMail(account *domain.Account) {
	if h.mailChannel == nil {
		return
	}

	mailMessage := domain.MailMessage{
		Type: "welcome",
		To:   account.Email,
		Data: domain.WelcomeMailData{
			Username: account.Username,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("unable to serialize welcome mail", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("unable to publish welcome mail", "error", err)
	}
}
