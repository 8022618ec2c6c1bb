package service

import (
	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/models"
)

type Services struct {
	AuthService     AuthService
	UserService     UserService
	FeedbackService FeedbackService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.Transactor, NewBcryptHasher(cfg.BcryptCost), logger),
		UserService:     NewUserService(storages, logger),
		FeedbackService: NewFeedbackService(storages, logger),
		AppInfoService:  NewAppInfoService(buildInfo, logger),
	}
}
