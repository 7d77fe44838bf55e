package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Ritwik411/DevConnector/internal/database"
	"github.com/Ritwik411/DevConnector/internal/models"
	"github.com/Ritwik411/DevConnector/internal/utils"
	"github.com/gin-gonic/gin"
)

// Login authenticates a user by email and password. Unknown email and wrong
// password produce the same response on purpose.
func Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(credentials.Email) == "" {
		errs = append(errs, fieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if credentials.Password == "" {
		errs = append(errs, fieldError{Msg: "Password is required", Param: "password"})
	}
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	db := database.DB
	var user models.User
	query := `SELECT id, name, email, password, avatar FROM users WHERE email = $1`
	err := db.QueryRow(query, strings.ToLower(strings.TrimSpace(credentials.Email))).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Avatar,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "Invalid Credentials"}}})
			return
		}
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	if !utils.CheckPasswordHash(credentials.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "Invalid Credentials"}}})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Printf("Error generating token for user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetCurrentUser returns the authenticated user's record without the
// password hash. A stale id (user deleted after token issuance) is a server
// error, matching the wire contract.
func GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := database.DB
	var user models.User
	query := `SELECT id, name, email, avatar, created_at FROM users WHERE id = $1`
	err := db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Avatar,
		&user.CreatedAt,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Error querying current user_id=%d: %v", userID, err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
