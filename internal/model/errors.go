package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// Character errors
	ErrCharacterNotFound = errors.New("character not found")

	// Parent phone errors
	ErrParentPhoneNotFound = errors.New("parent phone not found")

	// Catalog errors
	ErrRaceNotFound     = errors.New("race not found")
	ErrReligionNotFound = errors.New("religion not found")

	// Reference errors: a record points at an entity that does not exist.
	// Distinct from the NotFound sentinels so handlers can surface them
	// as validation failures rather than 404s.
	ErrUnknownUser     = errors.New("referenced user does not exist")
	ErrUnknownRace     = errors.New("referenced race does not exist")
	ErrUnknownReligion = errors.New("referenced religion does not exist")
)
