package store

import (
	"github.com/Ritwik411/DevConnector/internal/models"
)

// AuthState mirrors the session slice of the client: the stored token and
// the user record loaded from GET /api/auth.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileState holds the viewed profile and the browse-all list.
type ProfileState struct {
	Profile  *models.Profile
	Profiles []models.Profile
	Loading  bool
	Error    string
}

// PostsState holds the feed and the single post being viewed.
type PostsState struct {
	Posts   []models.Post
	Post    *models.Post
	Loading bool
	Error   string
}

// State is the full client state tree. It is only ever replaced, never
// mutated in place.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Posts   PostsState
}

func initialState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
		Posts:   PostsState{Loading: true},
	}
}
