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
)

const postNotFoundMsg = "Post Not Found"

func loadPost(db *sql.DB, postID int) (*models.Post, error) {
	var p models.Post
	query := `SELECT id, user_id, text, name, avatar, created_at FROM posts WHERE id = $1`
	err := db.QueryRow(query, postID).Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.Date)
	if err != nil {
		return nil, err
	}

	if p.Likes, err = loadPostLikes(db, postID); err != nil {
		return nil, err
	}
	if p.Comments, err = loadPostComments(db, postID); err != nil {
		return nil, err
	}
	return &p, nil
}

func loadPostLikes(db *sql.DB, postID int) ([]models.Like, error) {
	rows, err := db.Query(
		`SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []models.Like{}
	for rows.Next() {
		var like models.Like
		if err := rows.Scan(&like.UserID); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func loadPostComments(db *sql.DB, postID int) ([]models.Comment, error) {
	rows, err := db.Query(
		`SELECT id, user_id, text, name, avatar, created_at
		 FROM post_comments WHERE post_id = $1 ORDER BY created_at DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.Text, &comment.Name, &comment.Avatar, &comment.Date); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// postIDParam parses the :id path segment. A malformed id is reported the
// same way as a missing post.
func postIDParam(c *gin.Context) (int, bool) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil || postID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": postNotFoundMsg})
		return 0, false
	}
	return postID, true
}

// CreatePost creates a post, snapshotting the author's name and avatar from
// the users table at creation time.
func CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondValidationErrors(c, []fieldError{{Msg: "Text is required", Param: "text"}})
		return
	}

	db := database.DB
	var name, avatar string
	err := db.QueryRow(`SELECT name, avatar FROM users WHERE id = $1`, userID).Scan(&name, &avatar)
	if err != nil {
		log.Printf("Error looking up author user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	var postID int
	err = db.QueryRow(
		`INSERT INTO posts (user_id, text, name, avatar) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, req.Text, name, avatar,
	).Scan(&postID)
	if err != nil {
		log.Printf("Error creating post for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	post, err := loadPost(db, postID)
	if err != nil {
		log.Printf("Error loading post id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPosts returns all posts, newest first.
func GetPosts(c *gin.Context) {
	db := database.DB
	rows, err := db.Query(`SELECT id FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	defer rows.Close()

	postIDs := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			log.Printf("Error scanning post row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		postIDs = append(postIDs, id)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error listing posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	posts := []models.Post{}
	for _, id := range postIDs {
		post, err := loadPost(db, id)
		if err != nil {
			log.Printf("Error loading post id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		posts = append(posts, *post)
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost returns one post by id.
func GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := loadPost(database.DB, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": postNotFoundMsg})
			return
		}
		log.Printf("Error loading post id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Only the author may delete it.
func DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	db := database.DB
	var authorID int
	err := db.QueryRow(`SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": postNotFoundMsg})
			return
		}
		log.Printf("Error looking up post id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if authorID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not Authorized"})
		return
	}

	if _, err := db.Exec(`DELETE FROM posts WHERE id = $1`, postID); err != nil {
		log.Printf("Error deleting post id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post Deleted"})
}

// LikePost records a like. A user may like a post at most once.
func LikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	db := database.DB
	if !requirePostExists(c, db, postID) {
		return
	}

	var liked bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&liked)
	if err != nil {
		log.Printf("Error checking like post_id=%d user_id=%d: %v", postID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	if liked {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
		return
	}

	if _, err := db.Exec(
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
		postID, userID,
	); err != nil {
		log.Printf("Error liking post_id=%d user_id=%d: %v", postID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	respondPostLikes(c, db, postID)
}

// UnlikePost removes the caller's like from a post.
func UnlikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	db := database.DB
	if !requirePostExists(c, db, postID) {
		return
	}

	result, err := db.Exec(
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		log.Printf("Error unliking post_id=%d user_id=%d: %v", postID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading unlike result post_id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post not liked yet"})
		return
	}

	respondPostLikes(c, db, postID)
}

// AddComment prepends a comment carrying a snapshot of the commenter's name
// and avatar.
func AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondValidationErrors(c, []fieldError{{Msg: "Text is required", Param: "text"}})
		return
	}

	db := database.DB
	if !requirePostExists(c, db, postID) {
		return
	}

	var name, avatar string
	err := db.QueryRow(`SELECT name, avatar FROM users WHERE id = $1`, userID).Scan(&name, &avatar)
	if err != nil {
		log.Printf("Error looking up commenter user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if _, err := db.Exec(
		`INSERT INTO post_comments (id, post_id, user_id, text, name, avatar)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), postID, userID, req.Text, name, avatar,
	); err != nil {
		log.Printf("Error commenting post_id=%d user_id=%d: %v", postID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	respondPostComments(c, db, postID)
}

// DeleteComment removes one comment by its id. Only the comment's author may
// remove it.
func DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	commentID := c.Param("comment_id")
	if _, err := uuid.Parse(commentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Comment does not exist"})
		return
	}

	db := database.DB
	var commentAuthorID int
	err := db.QueryRow(
		`SELECT user_id FROM post_comments WHERE id = $1 AND post_id = $2`,
		commentID, postID,
	).Scan(&commentAuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Comment does not exist"})
			return
		}
		log.Printf("Error looking up comment id=%s: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if commentAuthorID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized"})
		return
	}

	if _, err := db.Exec(`DELETE FROM post_comments WHERE id = $1`, commentID); err != nil {
		log.Printf("Error deleting comment id=%s: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	respondPostComments(c, db, postID)
}

func requirePostExists(c *gin.Context, db *sql.DB, postID int) bool {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		log.Printf("Error checking post id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"msg": postNotFoundMsg})
		return false
	}
	return true
}

func respondPostLikes(c *gin.Context, db *sql.DB, postID int) {
	likes, err := loadPostLikes(db, postID)
	if err != nil {
		log.Printf("Error loading likes post_id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

func respondPostComments(c *gin.Context, db *sql.DB, postID int) {
	comments, err := loadPostComments(db, postID)
	if err != nil {
		log.Printf("Error loading comments post_id=%d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
