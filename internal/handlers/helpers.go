package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// fieldError mirrors the validator output shape the client expects:
// a list of {msg, param} pairs under an "errors" key.
type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

func respondValidationErrors(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	userID, ok := value.(int)
	if !ok || userID <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return 0, false
	}

	return userID, true
}
