package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Ritwik411/DevConnector/internal/database"
	"github.com/Ritwik411/DevConnector/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

const minPasswordLength = 6

// Register handles user registration: validates the input shape, stores a
// bcrypt hash and a gravatar-derived avatar, and returns a session token.
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, fieldError{Msg: "Name is Required", Param: "name"})
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		errs = append(errs, fieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, fieldError{Msg: "Please enter a 6 or more character password!", Param: "password"})
	}
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	avatar := utils.GravatarURL(email)

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	db := database.DB
	var userID int
	query := `INSERT INTO users (name, email, password, avatar) VALUES ($1, $2, $3, $4) RETURNING id`
	err = db.QueryRow(query, strings.TrimSpace(req.Name), email, hashedPassword, avatar).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "User Already Exists"}}})
			return
		}
		log.Printf("Error inserting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	token, err := utils.GenerateToken(userID)
	if err != nil {
		log.Printf("Error generating token for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
