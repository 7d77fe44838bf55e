package store

import (
	"github.com/Ritwik411/DevConnector/internal/models"
)

// Reduce applies one action to the state and returns the next state. It is
// pure: the input state is never modified.
func Reduce(state State, action Action) State {
	state.Auth = reduceAuth(state.Auth, action)
	state.Profile = reduceProfile(state.Profile, action)
	state.Posts = reducePosts(state.Posts, action)
	return state
}

func reduceAuth(auth AuthState, action Action) AuthState {
	switch a := action.(type) {
	case RegisterSuccess:
		auth.Token = a.Token
		auth.IsAuthenticated = true
		auth.Loading = false
	case LoginSuccess:
		auth.Token = a.Token
		auth.IsAuthenticated = true
		auth.Loading = false
	case UserLoaded:
		user := a.User
		auth.User = &user
		auth.IsAuthenticated = true
		auth.Loading = false
	case AuthError, Logout:
		auth = AuthState{}
	}
	return auth
}

func reduceProfile(profile ProfileState, action Action) ProfileState {
	switch a := action.(type) {
	case ProfileLoaded:
		loaded := a.Profile
		profile.Profile = &loaded
		profile.Loading = false
		profile.Error = ""
	case ProfilesLoaded:
		profile.Profiles = append([]models.Profile(nil), a.Profiles...)
		profile.Loading = false
		profile.Error = ""
	case ProfileError:
		profile.Error = a.Msg
		profile.Loading = false
	case ProfileCleared, Logout:
		profile = ProfileState{}
	}
	return profile
}

func reducePosts(posts PostsState, action Action) PostsState {
	switch a := action.(type) {
	case PostsLoaded:
		posts.Posts = append([]models.Post(nil), a.Posts...)
		posts.Loading = false
		posts.Error = ""
	case PostLoaded:
		loaded := a.Post
		posts.Post = &loaded
		posts.Loading = false
	case PostAdded:
		next := make([]models.Post, 0, len(posts.Posts)+1)
		next = append(next, a.Post)
		next = append(next, posts.Posts...)
		posts.Posts = next
		posts.Loading = false
	case PostDeleted:
		next := make([]models.Post, 0, len(posts.Posts))
		for _, post := range posts.Posts {
			if post.ID != a.PostID {
				next = append(next, post)
			}
		}
		posts.Posts = next
		posts.Loading = false
	case LikesUpdated:
		posts.Posts = mergeLikes(posts.Posts, a.PostID, a.Likes)
		if posts.Post != nil && posts.Post.ID == a.PostID {
			updated := *posts.Post
			updated.Likes = append([]models.Like(nil), a.Likes...)
			posts.Post = &updated
		}
	case CommentsUpdated:
		if posts.Post != nil && posts.Post.ID == a.PostID {
			updated := *posts.Post
			updated.Comments = append([]models.Comment(nil), a.Comments...)
			posts.Post = &updated
		}
	case PostError:
		posts.Error = a.Msg
		posts.Loading = false
	case Logout:
		posts = PostsState{}
	}
	return posts
}

func mergeLikes(current []models.Post, postID int, likes []models.Like) []models.Post {
	next := make([]models.Post, len(current))
	for i, post := range current {
		if post.ID == postID {
			post.Likes = append([]models.Like(nil), likes...)
		}
		next[i] = post
	}
	return next
}
