package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Jonp4208/cfa-eval-sub012/internal/config"
	"github.com/Jonp4208/cfa-eval-sub012/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	eventChannel *amqp.Channel

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventCh *amqp.Channel) (*Handler, error) {
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
		translator:   trans,
		eventChannel: eventCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/setup-sheet-templates", func(r chi.Router) {
			r.Get("/", h.GetAllSetupTemplates)
			r.Post("/", h.CreateSetupTemplate)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.setupTemplate)
				r.Get("/", h.GetSetupTemplate)
				r.Put("/", h.UpdateSetupTemplate)
				r.Delete("/", h.DeleteSetupTemplate)
			})
		})

		r.Route("/weekly-setups", func(r chi.Router) {
			r.Get("/", h.GetAllWeeklySetups)
			r.Post("/", h.CreateWeeklySetup)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.weeklySetup)
				r.Get("/", h.GetWeeklySetup)
				r.Put("/", h.UpdateWeeklySetup)
				r.Delete("/", h.DeleteWeeklySetup)
			})
		})

		r.Get("/employees", h.GetAllEmployees)
	})
}
