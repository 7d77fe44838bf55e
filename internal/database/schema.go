package database

import (
	"fmt"
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables() {
	createUsersTable()
	createProfilesTable()
	createProfileEntriesTables()
	createPostsTable()
	createPostLikesTable()
	createPostCommentsTable()
}

// createUsersTable creates the users table
func createUsersTable() {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		avatar VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create users table:", err)
	}

	fmt.Println("Users table created successfully")
}

// createProfilesTable creates the profiles table. Social links are flat
// columns; they are grouped into a sub-object at the API boundary.
func createProfilesTable() {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id SERIAL PRIMARY KEY,
		user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(255) NOT NULL,
		skills TEXT[] NOT NULL DEFAULT '{}',
		company VARCHAR(255),
		website VARCHAR(500),
		location VARCHAR(255),
		bio TEXT,
		githubusername VARCHAR(255),
		youtube VARCHAR(500),
		twitter VARCHAR(500),
		facebook VARCHAR(500),
		linkedin VARCHAR(500),
		instagram VARCHAR(500),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create profiles table:", err)
	}

	fmt.Println("Profiles table created successfully")
}

// createProfileEntriesTables creates the experience and education tables.
// Entries are prepended, so seq DESC gives most-recent-first ordering.
func createProfileEntriesTables() {
	experience := `
	CREATE TABLE IF NOT EXISTS profile_experience (
		id UUID PRIMARY KEY,
		profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		company VARCHAR(255) NOT NULL,
		location VARCHAR(255),
		from_date VARCHAR(64) NOT NULL,
		to_date VARCHAR(64),
		current BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT,
		seq BIGSERIAL
	);
	`

	if _, err := DB.Exec(experience); err != nil {
		log.Fatal("Failed to create profile_experience table:", err)
	}

	education := `
	CREATE TABLE IF NOT EXISTS profile_education (
		id UUID PRIMARY KEY,
		profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		school VARCHAR(255) NOT NULL,
		degree VARCHAR(255) NOT NULL,
		fieldofstudy VARCHAR(255) NOT NULL,
		from_date VARCHAR(64) NOT NULL,
		to_date VARCHAR(64),
		current BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT,
		seq BIGSERIAL
	);
	`

	if _, err := DB.Exec(education); err != nil {
		log.Fatal("Failed to create profile_education table:", err)
	}

	fmt.Println("Profile entry tables created successfully")
}

// createPostsTable creates the posts table. The author's name and avatar are
// denormalized at creation time.
func createPostsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS posts (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create posts table:", err)
	}

	fmt.Println("Posts table created successfully")
}

// createPostLikesTable creates the post_likes table. The unique constraint is
// what enforces like-at-most-once under concurrent requests.
func createPostLikesTable() {
	query := `
	CREATE TABLE IF NOT EXISTS post_likes (
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (post_id, user_id)
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create post_likes table:", err)
	}

	fmt.Println("Post likes table created successfully")
}

func createPostCommentsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS post_comments (
		id UUID PRIMARY KEY,
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create post_comments table:", err)
	}

	fmt.Println("Post comments table created successfully")
}
