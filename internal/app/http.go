package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/auth/handler"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/config"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/middleware"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/session"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	if cfg.CookieSecret == "" {
		return nil, nil, config.ErrMissingCookieSecret
	}

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	userService := users.NewService(infra.Directory)
	issuer := token.NewIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)

	authHandler := handler.NewHandler(
		userService,
		sessionStore,
		issuer,
		[]byte(cfg.CookieSecret),
		cfg.SessionTTL,
	)

	authMiddleware := middleware.NewAuthMiddleware(
		sessionStore,
		[]byte(cfg.CookieSecret),
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, authMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.cleanup, nil
}
