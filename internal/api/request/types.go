package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRequest is the request body for creating or replacing a user
type UserRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	PersonalPhone string `json:"personal_phone,omitempty"`
}

// CharacterRequest is the request body for creating or replacing a character
type CharacterRequest struct {
	Name     string  `json:"name"`
	User     string  `json:"user"`
	Race     *string `json:"race,omitempty"`
	Religion *string `json:"religion,omitempty"`
	XP       int     `json:"xp"`
}

// ParentPhoneRequest is the request body for adding a parent phone
type ParentPhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
	ParentName  string `json:"parent_name"`
}
