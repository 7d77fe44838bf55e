package store

import (
	"github.com/Ritwik411/DevConnector/internal/models"
)

// Action is the sealed set of state transitions. Each variant carries the
// payload its reducer merges into the state tree.
type Action interface {
	isAction()
}

type RegisterSuccess struct{ Token string }

type LoginSuccess struct{ Token string }

type UserLoaded struct{ User models.User }

// AuthError covers failed register/login/load-user; it clears the session.
type AuthError struct{}

type Logout struct{}

type ProfileLoaded struct{ Profile models.Profile }

type ProfilesLoaded struct{ Profiles []models.Profile }

type ProfileError struct{ Msg string }

// ProfileCleared resets the profile slice, dispatched alongside Logout.
type ProfileCleared struct{}

type PostsLoaded struct{ Posts []models.Post }

type PostLoaded struct{ Post models.Post }

type PostAdded struct{ Post models.Post }

type PostDeleted struct{ PostID int }

// LikesUpdated carries the likes list returned by the like/unlike routes.
type LikesUpdated struct {
	PostID int
	Likes  []models.Like
}

// CommentsUpdated carries the comments list returned by the comment routes.
type CommentsUpdated struct {
	PostID   int
	Comments []models.Comment
}

type PostError struct{ Msg string }

func (RegisterSuccess) isAction() {}
func (LoginSuccess) isAction()    {}
func (UserLoaded) isAction()      {}
func (AuthError) isAction()       {}
func (Logout) isAction()          {}
func (ProfileLoaded) isAction()   {}
func (ProfilesLoaded) isAction()  {}
func (ProfileError) isAction()    {}
func (ProfileCleared) isAction()  {}
func (PostsLoaded) isAction()     {}
func (PostLoaded) isAction()      {}
func (PostAdded) isAction()       {}
func (PostDeleted) isAction()     {}
func (LikesUpdated) isAction()    {}
func (CommentsUpdated) isAction() {}
func (PostError) isAction()       {}
