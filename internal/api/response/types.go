package response

import (
	"time"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/services/auth"
	"github.com/aweston/charkeep/internal/services/user"
)

// TokenPair is the response for login and register
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenPairFromService converts an auth.TokenPair
func TokenPairFromService(p *auth.TokenPair) TokenPair {
	return TokenPair{
		Access:  p.Access,
		Refresh: p.Refresh,
	}
}

// CurrentUser is the response for the authenticated-user endpoint
type CurrentUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CurrentUserFromClaims builds a CurrentUser from token claims
func CurrentUserFromClaims(c *auth.Claims) CurrentUser {
	return CurrentUser{
		Username: c.Username,
		Email:    c.Email,
	}
}

// Message is a simple message response
type Message struct {
	Message string `json:"message"`
}

// Race represents a race in API responses
type Race struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RaceFromModel converts a model.Race
func RaceFromModel(r *model.Race) Race {
	return Race{
		ID:          string(r.ID),
		Name:        r.Name,
		Description: r.Description,
	}
}

// RacesFromModel converts a slice of races
func RacesFromModel(races []*model.Race) []Race {
	out := make([]Race, 0, len(races))
	for _, r := range races {
		out = append(out, RaceFromModel(r))
	}
	return out
}

// Religion represents a religion in API responses
type Religion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReligionFromModel converts a model.Religion
func ReligionFromModel(r *model.Religion) Religion {
	return Religion{
		ID:          string(r.ID),
		Name:        r.Name,
		Description: r.Description,
	}
}

// ReligionsFromModel converts a slice of religions
func ReligionsFromModel(religions []*model.Religion) []Religion {
	out := make([]Religion, 0, len(religions))
	for _, r := range religions {
		out = append(out, ReligionFromModel(r))
	}
	return out
}

// Character represents a character in API responses.
// Race and religion are omitted entirely when unset.
type Character struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	User     string  `json:"user"`
	Race     *string `json:"race,omitempty"`
	Religion *string `json:"religion,omitempty"`
	XP       int     `json:"xp"`
}

// CharacterFromModel converts a model.Character
func CharacterFromModel(c *model.Character) Character {
	out := Character{
		ID:   string(c.ID),
		Name: c.Name,
		User: string(c.UserID),
		XP:   c.XP,
	}
	if c.RaceID != nil {
		race := string(*c.RaceID)
		out.Race = &race
	}
	if c.ReligionID != nil {
		religion := string(*c.ReligionID)
		out.Religion = &religion
	}
	return out
}

// CharactersFromModel converts a slice of characters
func CharactersFromModel(characters []*model.Character) []Character {
	out := make([]Character, 0, len(characters))
	for _, c := range characters {
		out = append(out, CharacterFromModel(c))
	}
	return out
}

// ParentPhone represents a parent phone in API responses
type ParentPhone struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	PhoneNumber string `json:"phone_number"`
	ParentName  string `json:"parent_name"`
}

// ParentPhoneFromModel converts a model.ParentPhone
func ParentPhoneFromModel(p *model.ParentPhone) ParentPhone {
	return ParentPhone{
		ID:          string(p.ID),
		User:        string(p.UserID),
		PhoneNumber: p.PhoneNumber,
		ParentName:  p.ParentName,
	}
}

// ParentPhonesFromModel converts a slice of parent phones
func ParentPhonesFromModel(phones []*model.ParentPhone) []ParentPhone {
	out := make([]ParentPhone, 0, len(phones))
	for _, p := range phones {
		out = append(out, ParentPhoneFromModel(p))
	}
	return out
}

// User represents a user in API responses with relations resolved eagerly.
// Empty relations serialize as empty arrays, never null or omitted.
type User struct {
	ID            string        `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	PersonalPhone string        `json:"personal_phone,omitempty"`
	Characters    []Character   `json:"characters"`
	ParentPhones  []ParentPhone `json:"parent_phones"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// UserFromDetail converts a user.Detail
func UserFromDetail(d *user.Detail) User {
	return User{
		ID:            string(d.User.ID),
		Username:      d.User.Username,
		Email:         d.User.Email,
		PersonalPhone: d.User.PersonalPhone,
		Characters:    CharactersFromModel(d.Characters),
		ParentPhones:  ParentPhonesFromModel(d.ParentPhones),
		CreatedAt:     d.User.CreatedAt,
		UpdatedAt:     d.User.UpdatedAt,
	}
}

// UsersFromDetails converts a slice of user details
func UsersFromDetails(details []*user.Detail) []User {
	out := make([]User, 0, len(details))
	for _, d := range details {
		out = append(out, UserFromDetail(d))
	}
	return out
}
