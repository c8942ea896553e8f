package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents an account that owns characters and parent phone numbers
type User struct {
	ID            UserID
	Username      string // unique, immutable login name
	PasswordHash  string // bcrypt hash, never serialized
	Email         string // unique
	PersonalPhone string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PhoneID uniquely identifies a parent phone record
type PhoneID string

// ParentPhone is a parent contact number attached to a user.
// Deleting the user deletes its phones.
type ParentPhone struct {
	ID          PhoneID
	UserID      UserID
	PhoneNumber string
	ParentName  string // optional, empty when not provided
}
