package setup

import (
	"context"

	"github.com/simplechat/simplechat/backend/internal/handler"
	"github.com/simplechat/simplechat/backend/internal/service"
	"github.com/simplechat/simplechat/backend/internal/storage/pg"
	"github.com/simplechat/simplechat/backend/internal/utils"
	"github.com/simplechat/simplechat/shared/config"
	"github.com/simplechat/simplechat/shared/jwt"
	"github.com/simplechat/simplechat/shared/markdown"
	mw "github.com/simplechat/simplechat/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwt := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	thread := service.NewThread(storage, &utils.ThreadValidator{})
	message := service.NewMessage(storage, &utils.MessageValidator{})

	h := handler.New(thread, message, markdown.New(), storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwt,
		AuthMiddleware: mw.NewAuth(jwt),
		Config:         cfg,
	}, nil
}
