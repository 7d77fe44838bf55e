package models

import (
	"time"
)

// SocialLinks groups the optional social URLs stored on a profile.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// Experience is a single work entry on a profile. Dates are kept as the
// strings the client submitted; the API attaches no calendar semantics to
// them.
type Experience struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Company     string  `json:"company" db:"company"`
	Location    *string `json:"location,omitempty" db:"location"`
	From        string  `json:"from" db:"from_date"`
	To          *string `json:"to,omitempty" db:"to_date"`
	Current     bool    `json:"current" db:"current"`
	Description *string `json:"description,omitempty" db:"description"`
}

// Education is a single study entry on a profile.
type Education struct {
	ID           string  `json:"id" db:"id"`
	School       string  `json:"school" db:"school"`
	Degree       string  `json:"degree" db:"degree"`
	FieldOfStudy string  `json:"fieldofstudy" db:"fieldofstudy"`
	From         string  `json:"from" db:"from_date"`
	To           *string `json:"to,omitempty" db:"to_date"`
	Current      bool    `json:"current" db:"current"`
	Description  *string `json:"description,omitempty" db:"description"`
}

// Profile is the per-user profile document. There is at most one per user.
// Name and Avatar are joined from the owning user on read paths.
type Profile struct {
	ID             int          `json:"id" db:"id"`
	UserID         int          `json:"user" db:"user_id"`
	Name           string       `json:"name,omitempty"`
	Avatar         string       `json:"avatar,omitempty"`
	Status         string       `json:"status" db:"status"`
	Company        *string      `json:"company,omitempty" db:"company"`
	Website        *string      `json:"website,omitempty" db:"website"`
	Location       *string      `json:"location,omitempty" db:"location"`
	Bio            *string      `json:"bio,omitempty" db:"bio"`
	GithubUsername *string      `json:"githubusername,omitempty" db:"githubusername"`
	Skills         []string     `json:"skills" db:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}
