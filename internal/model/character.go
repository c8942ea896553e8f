package model

// CharacterID uniquely identifies a character
type CharacterID string

// Character represents a playable character owned by a user.
// Race and religion references are optional; when the referenced
// Race/Religion is deleted the reference is cleared, not cascaded.
type Character struct {
	ID         CharacterID
	Name       string
	UserID     UserID
	RaceID     *RaceID
	ReligionID *ReligionID
	XP         int // always >= 0
}
