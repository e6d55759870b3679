package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/middleware"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

// Token handles POST /token: exchanges a live session for a signed
// bearer token the gateway can verify on its own.
func (h *Handler) Token(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.users.UserByID(c.Request.Context(), userID)
	if err != nil {
		if err != users.ErrNotFound {
			logger.Error("directory lookup failed", map[string]any{
				"error": err.Error(),
			})
		}
		c.Status(http.StatusUnauthorized)
		return
	}

	signed, err := h.issuer.Issue(user)
	if err != nil {
		logger.Error("failed to sign token", map[string]any{
			"error": err.Error(),
		})
		c.Status(http.StatusInternalServerError)
		return
	}

	logger.Info("token issued", map[string]any{
		"user_id": user.ID,
	})

	c.String(http.StatusOK, signed)
}
