package http

import (
	"html/template"
	"time"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/limiter"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
	"github.com/MKhiriev/go-feedback/internal/validators"
)

type Handler struct {
	services  *service.Services
	sessions  *session.Manager
	validator validators.Validator
	limiter   limiter.Limiter

	pages          map[string]*template.Template
	traceIDs       *utils.UUIDGenerator
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(
	services *service.Services,
	sessions *session.Manager,
	loginLimiter limiter.Limiter,
	cfg config.Server,
	logger *logger.Logger,
) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		sessions:       sessions,
		validator:      validators.NewFormValidator(),
		limiter:        loginLimiter,
		pages:          pages,
		traceIDs:       utils.NewUUIDGenerator(),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}, nil
}
