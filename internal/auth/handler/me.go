package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/middleware"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

// Me handles GET /me. A session whose user has since vanished from
// the directory gets the same 401 as no session at all.
func (h *Handler) Me(c *gin.Context) {
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

	// users.User marks PasswordHash json:"-"; only id and email leave.
	c.JSON(http.StatusOK, user)
}
