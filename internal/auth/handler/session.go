package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /session. Every failure mode — bad body, unknown
// email, wrong password — collapses to the same 401 so the endpoint
// can't be used to enumerate accounts.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.users.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		logger.Warn("login rejected", map[string]any{
			"ip": c.ClientIP(),
		})
		c.Status(http.StatusUnauthorized)
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		logger.Error("failed to generate session id", map[string]any{
			"error": err.Error(),
		})
		c.Status(http.StatusInternalServerError)
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.sessionTTL)

	sess := session.Session{
		SessionID: sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("failed to persist session", map[string]any{
			"error": err.Error(),
		})
		c.Status(http.StatusInternalServerError)
		return
	}

	session.SetCookie(c.Writer, sessionID, h.cookieSecret, expiresAt, h.cookieOptions())

	logger.Info("login success", map[string]any{
		"user_id": user.ID,
		"ip":      c.ClientIP(),
	})

	c.Status(http.StatusOK)
}

// Logout handles DELETE /session. Idempotent: clearing a session that
// does not exist is still a 200.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if sessionID, err := session.VerifyValue(cookie.Value, h.cookieSecret); err == nil {
			// best-effort delete; the cookie is cleared regardless
			_ = h.sessionStore.Delete(c.Request.Context(), sessionID)
			logger.Info("logout", map[string]any{
				"ip": c.ClientIP(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookieOptions())

	c.Status(http.StatusOK)
}
