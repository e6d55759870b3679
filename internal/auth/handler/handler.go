package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/middleware"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/session"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

type Handler struct {
	users        *users.Service
	sessionStore session.Store
	issuer       *token.Issuer

	cookieSecret []byte
	sessionTTL   time.Duration
}

func NewHandler(
	userService *users.Service,
	sessionStore session.Store,
	issuer *token.Issuer,
	cookieSecret []byte,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		users:        userService,
		sessionStore: sessionStore,
		issuer:       issuer,
		cookieSecret: cookieSecret,
		sessionTTL:   sessionTTL,
	}
}

// RegisterRoutes wires the session/token API onto the router. The
// protected routes require a live session via the auth middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.POST("/session", h.Login)
	r.DELETE("/session", h.Logout)

	protected := r.Group("/")
	protected.Use(middleware.GinRequireAuth(auth))
	protected.GET("/me", h.Me)
	protected.POST("/token", h.Token)
}

func (h *Handler) cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
