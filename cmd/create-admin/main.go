// Command create-admin provisions an administrator account.
//
//	create-admin -email admin@example.com -password s3cret
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/service"
	"github.com/blogcms/admin-api/internal/infrastructure/config"
	mongodb "github.com/blogcms/admin-api/internal/infrastructure/db/mongo"
	"github.com/blogcms/admin-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email address of the new admin")
	password := flag.String("password", "", "password of the new admin")
	flag.Parse()

	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "create-admin"})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if _, err := users.FindByEmail(ctx, *email); err == nil {
		log.Fatal().Str("email", *email).Msg("user already exists")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("user lookup failed")
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        *email,
		Roles:        []string{domain.RoleAdmin},
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Save(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("user creation failed")
	}

	log.Info().Int64("id", user.ID).Str("email", user.Email).Msg("admin user created")
}
