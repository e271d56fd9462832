// Package models defines the core data structures for users, folders,
// tags and notes.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Fullname is the optional display name, empty by default.
	Fullname string `json:"fullname"`
	// Username is the login name chosen by the user, unique system-wide.
	Username string `json:"username"`
	// PasswordHash is the hashed password of the user. Never serialized.
	PasswordHash string `json:"-"`
}

// Folder is a named grouping of notes owned by exactly one user.
// The pair (Name, UserID) is unique.
type Folder struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// Tag is a named label owned by exactly one user.
// The pair (Name, UserID) is unique.
type Tag struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// Note is the central entity. FolderID is optional; Tags holds the
// note's tag references expanded to full records, in list order.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	FolderID  string    `json:"folderId,omitempty"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}
