package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cropgenesis/pkg/utils"
)

// currentUserID reads the authenticated user's id set by the JWT middleware.
// A missing or malformed id means the middleware did not run; the request is
// rejected rather than served with a zero uuid.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}
