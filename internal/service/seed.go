package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

// DemoUser is the account created by SeedDemoUser.
var DemoUser = models.RegisterForm{
	Username:  "test",
	Password:  "test_pass",
	Email:     "test@example.com",
	FirstName: "Test",
	LastName:  "User",
}

// SeedDemoUser registers [DemoUser] unless the account already exists.
func SeedDemoUser(ctx context.Context, auth AuthService, log *logger.Logger) error {
	_, err := auth.Register(ctx, DemoUser)
	if errors.Is(err, ErrDuplicateIdentity) {
		log.Debug().Str("func", "SeedDemoUser").Msg("demo user already exists")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "SeedDemoUser").Msg("error seeding demo user")
		return err
	}

	log.Info().Str("func", "SeedDemoUser").Str("username", DemoUser.Username).Msg("demo user created")
	return nil
}
