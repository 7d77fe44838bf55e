package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ritwik411/DevConnector/internal/database"
	"github.com/Ritwik411/DevConnector/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const noProfileMsg = "There is no profile for this user"

// loadProfileByUser fetches the profile for a user together with the owning
// user's name/avatar and the experience/education lists (most recent first).
func loadProfileByUser(db *sql.DB, userID int) (*models.Profile, error) {
	var p models.Profile
	query := `
		SELECT p.id, p.user_id, u.name, u.avatar, p.status, p.skills,
		       p.company, p.website, p.location, p.bio, p.githubusername,
		       p.youtube, p.twitter, p.facebook, p.linkedin, p.instagram,
		       p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`
	err := db.QueryRow(query, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.Status, pq.Array(&p.Skills),
		&p.Company, &p.Website, &p.Location, &p.Bio, &p.GithubUsername,
		&p.Social.Youtube, &p.Social.Twitter, &p.Social.Facebook,
		&p.Social.Linkedin, &p.Social.Instagram,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := loadProfileEntries(db, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func loadProfileEntries(db *sql.DB, p *models.Profile) error {
	p.Experience = []models.Experience{}
	p.Education = []models.Education{}

	rows, err := db.Query(
		`SELECT id, title, company, location, from_date, to_date, current, description
		 FROM profile_experience WHERE profile_id = $1 ORDER BY seq DESC`,
		p.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return err
		}
		p.Experience = append(p.Experience, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduRows, err := db.Query(
		`SELECT id, school, degree, fieldofstudy, from_date, to_date, current, description
		 FROM profile_education WHERE profile_id = $1 ORDER BY seq DESC`,
		p.ID,
	)
	if err != nil {
		return err
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e models.Education
		if err := eduRows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return err
		}
		p.Education = append(p.Education, e)
	}
	return eduRows.Err()
}

func respondProfile(c *gin.Context, db *sql.DB, userID int) {
	profile, err := loadProfileByUser(db, userID)
	if err != nil {
		log.Printf("Error loading profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile creates the caller's profile or partially updates it.
// Unspecified optional fields are left untouched; social links are replaced
// as a group on every upsert.
func UpsertProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Status         string  `json:"status"`
		Skills         string  `json:"skills"`
		Company        *string `json:"company"`
		Website        *string `json:"website"`
		Location       *string `json:"location"`
		Bio            *string `json:"bio"`
		GithubUsername *string `json:"githubusername"`
		Youtube        *string `json:"youtube"`
		Twitter        *string `json:"twitter"`
		Facebook       *string `json:"facebook"`
		Linkedin       *string `json:"linkedin"`
		Instagram      *string `json:"instagram"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Status) == "" {
		errs = append(errs, fieldError{Msg: "Status is required", Param: "status"})
	}
	if strings.TrimSpace(req.Skills) == "" {
		errs = append(errs, fieldError{Msg: "Skills are required", Param: "skills"})
	}
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	skills := parseSkills(req.Skills)

	db := database.DB
	var profileID int
	err := db.QueryRow(`SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("Error looking up profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if errors.Is(err, sql.ErrNoRows) {
		insertQuery := `
			INSERT INTO profiles (user_id, status, skills, company, website, location, bio, githubusername,
			                      youtube, twitter, facebook, linkedin, instagram)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		_, err = db.Exec(insertQuery,
			userID, strings.TrimSpace(req.Status), pq.Array(skills),
			req.Company, req.Website, req.Location, req.Bio, req.GithubUsername,
			req.Youtube, req.Twitter, req.Facebook, req.Linkedin, req.Instagram,
		)
		if err != nil {
			log.Printf("Error creating profile for user_id=%d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
	} else {
		updateQuery := `
			UPDATE profiles
			SET
				status = $1,
				skills = $2,
				company = COALESCE($3, company),
				website = COALESCE($4, website),
				location = COALESCE($5, location),
				bio = COALESCE($6, bio),
				githubusername = COALESCE($7, githubusername),
				youtube = $8,
				twitter = $9,
				facebook = $10,
				linkedin = $11,
				instagram = $12,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = $13`
		_, err = db.Exec(updateQuery,
			strings.TrimSpace(req.Status), pq.Array(skills),
			req.Company, req.Website, req.Location, req.Bio, req.GithubUsername,
			req.Youtube, req.Twitter, req.Facebook, req.Linkedin, req.Instagram,
			profileID,
		)
		if err != nil {
			log.Printf("Error updating profile for user_id=%d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
	}

	respondProfile(c, db, userID)
}

// parseSkills splits a comma-delimited skills string into a trimmed ordered
// list, dropping empty items.
func parseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// GetMyProfile returns the caller's profile.
func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := loadProfileByUser(database.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": noProfileMsg})
			return
		}
		log.Printf("Error loading profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetAllProfiles returns every profile with the owning user's name/avatar.
func GetAllProfiles(c *gin.Context) {
	db := database.DB
	rows, err := db.Query(`SELECT user_id FROM profiles ORDER BY id ASC`)
	if err != nil {
		log.Printf("Error listing profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	defer rows.Close()

	userIDs := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			log.Printf("Error scanning profile row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error listing profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	profiles := []models.Profile{}
	for _, id := range userIDs {
		profile, err := loadProfileByUser(db, id)
		if err != nil {
			log.Printf("Error loading profile for user_id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		profiles = append(profiles, *profile)
	}

	c.JSON(http.StatusOK, profiles)
}

// GetProfileByUser returns the profile of the user in the path. A malformed
// id is reported the same way as a missing profile.
func GetProfileByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found!"})
		return
	}

	profile, err := loadProfileByUser(database.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found!"})
			return
		}
		log.Printf("Error loading profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's profile and user record in one
// transaction. Posts go with the user via the schema's cascade.
func DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := database.DB
	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error starting delete transaction for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		log.Printf("Error deleting profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		log.Printf("Error deleting user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing delete for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User Deleted"})
}

// AddExperience prepends a work entry to the caller's profile.
func AddExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Company     string  `json:"company"`
		Location    *string `json:"location"`
		From        string  `json:"from"`
		To          *string `json:"to"`
		Current     bool    `json:"current"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, fieldError{Msg: "Title is required", Param: "title"})
	}
	if strings.TrimSpace(req.Company) == "" {
		errs = append(errs, fieldError{Msg: "Company is required", Param: "company"})
	}
	if strings.TrimSpace(req.From) == "" {
		errs = append(errs, fieldError{Msg: "Starting Date is required", Param: "from"})
	}
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	db := database.DB
	profileID, ok := requireProfileID(c, db, userID)
	if !ok {
		return
	}

	_, err := db.Exec(
		`INSERT INTO profile_experience (id, profile_id, title, company, location, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New().String(), profileID,
		strings.TrimSpace(req.Title), strings.TrimSpace(req.Company), req.Location,
		req.From, req.To, req.Current, req.Description,
	)
	if err != nil {
		log.Printf("Error adding experience for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	respondProfile(c, db, userID)
}

// AddEducation prepends a study entry to the caller's profile.
func AddEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		School       string  `json:"school"`
		Degree       string  `json:"degree"`
		FieldOfStudy string  `json:"fieldofstudy"`
		From         string  `json:"from"`
		To           *string `json:"to"`
		Current      bool    `json:"current"`
		Description  *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.School) == "" {
		errs = append(errs, fieldError{Msg: "School is required", Param: "school"})
	}
	if strings.TrimSpace(req.Degree) == "" {
		errs = append(errs, fieldError{Msg: "Degree is required", Param: "degree"})
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		errs = append(errs, fieldError{Msg: "Field of Study is required", Param: "fieldofstudy"})
	}
	if strings.TrimSpace(req.From) == "" {
		errs = append(errs, fieldError{Msg: "Starting Date is required", Param: "from"})
	}
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	db := database.DB
	profileID, ok := requireProfileID(c, db, userID)
	if !ok {
		return
	}

	_, err := db.Exec(
		`INSERT INTO profile_education (id, profile_id, school, degree, fieldofstudy, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New().String(), profileID,
		strings.TrimSpace(req.School), strings.TrimSpace(req.Degree), strings.TrimSpace(req.FieldOfStudy),
		req.From, req.To, req.Current, req.Description,
	)
	if err != nil {
		log.Printf("Error adding education for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	respondProfile(c, db, userID)
}

// DeleteExperience removes one work entry by id. A miss (unknown or
// malformed id) is a no-op and still returns the profile.
func DeleteExperience(c *gin.Context) {
	deleteProfileEntry(c, "profile_experience", c.Param("exp_id"))
}

// DeleteEducation removes one study entry by id, with the same no-op-on-miss
// behavior as experience removal.
func DeleteEducation(c *gin.Context) {
	deleteProfileEntry(c, "profile_education", c.Param("edu_id"))
}

func deleteProfileEntry(c *gin.Context, table, entryID string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := database.DB
	profileID, ok := requireProfileID(c, db, userID)
	if !ok {
		return
	}

	// An unparseable id cannot match any entry; skip the delete entirely.
	if _, err := uuid.Parse(entryID); err == nil {
		query := `DELETE FROM ` + table + ` WHERE id = $1 AND profile_id = $2`
		if _, err := db.Exec(query, entryID, profileID); err != nil {
			log.Printf("Error deleting %s entry %s for user_id=%d: %v", table, entryID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
	}

	respondProfile(c, db, userID)
}

func requireProfileID(c *gin.Context, db *sql.DB, userID int) (int, bool) {
	var profileID int
	err := db.QueryRow(`SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": noProfileMsg})
			return 0, false
		}
		log.Printf("Error looking up profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return 0, false
	}
	return profileID, true
}
