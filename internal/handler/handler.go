package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rosterhq-dev/employee-manager/backend/internal/auth"
	"github.com/rosterhq-dev/employee-manager/backend/internal/config"
	"github.com/rosterhq-dev/employee-manager/backend/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	tokenManager *auth.TokenManager
	translator   ut.Translator
	mailChannel  *amqp.Channel

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		tokenManager: auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second),
		translator:   trans,
		mailChannel:  mailCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(h.auth).Get("/verify", h.Verify)
	})

	// everything below requires a valid bearer token
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetEmployee)
				r.Put("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)
			})
		})

		r.With(h.requireAdmin).Get("/accounts", h.ListAccounts)
	})
}
