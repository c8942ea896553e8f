package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case TokenPair:
		o.printTokenPair(v)
	case CurrentUser:
		o.printCurrentUser(v)
	case MessageResult:
		fmt.Println(v.Message)
	case User:
		o.printUser(v)
	case UserList:
		o.printUserList(v)
	case Character:
		o.printCharacter(v)
	case CharacterList:
		o.printCharacterList(v)
	case ParentPhone:
		o.printParentPhone(v)
	case ParentPhoneList:
		o.printParentPhoneList(v)
	case CatalogList:
		o.printCatalogList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TokenPair response type (matches API)
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CurrentUser response type
type CurrentUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResult is a simple message response
type MessageResult struct {
	Message string `json:"message"`
}

// Character response type
type Character struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	User     string  `json:"user"`
	Race     *string `json:"race"`
	Religion *string `json:"religion"`
	XP       int     `json:"xp"`
}

// CharacterList wraps a character slice for text output
type CharacterList []Character

// ParentPhone response type
type ParentPhone struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	PhoneNumber string `json:"phone_number"`
	ParentName  string `json:"parent_name"`
}

// ParentPhoneList wraps a parent phone slice for text output
type ParentPhoneList []ParentPhone

// User response type with eager relations
type User struct {
	ID            string        `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	PersonalPhone string        `json:"personal_phone"`
	Characters    []Character   `json:"characters"`
	ParentPhones  []ParentPhone `json:"parent_phones"`
}

// UserList wraps a user slice for text output
type UserList []User

// CatalogEntry is a race or religion
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CatalogList wraps a catalog slice for text output
type CatalogList []CatalogEntry

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printTokenPair(t TokenPair) {
	fmt.Printf("Access: %s\n", t.Access)
	fmt.Printf("Refresh: %s\n", t.Refresh)
}

func (o *Output) printCurrentUser(u CurrentUser) {
	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Email: %s\n", u.Email)
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	if u.PersonalPhone != "" {
		fmt.Printf("Phone: %s\n", u.PersonalPhone)
	}
	fmt.Printf("Characters (%d):\n", len(u.Characters))
	for _, c := range u.Characters {
		fmt.Printf("  - %s (%s) - %d xp\n", c.Name, c.ID, c.XP)
	}
	fmt.Printf("Parent Phones (%d):\n", len(u.ParentPhones))
	for _, p := range u.ParentPhones {
		fmt.Printf("  - %s (%s)\n", p.PhoneNumber, p.ParentName)
	}
}

func (o *Output) printUserList(users UserList) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  - %s (%s) - %d characters\n", u.Username, u.ID, len(u.Characters))
	}
}

func (o *Output) printCharacter(c Character) {
	fmt.Printf("Character: %s (%s)\n", c.Name, c.ID)
	fmt.Printf("Owner: %s\n", c.User)
	fmt.Printf("XP: %d\n", c.XP)
	if c.Race != nil {
		fmt.Printf("Race: %s\n", *c.Race)
	}
	if c.Religion != nil {
		fmt.Printf("Religion: %s\n", *c.Religion)
	}
}

func (o *Output) printCharacterList(characters CharacterList) {
	fmt.Printf("Characters (%d):\n", len(characters))
	for _, c := range characters {
		fmt.Printf("  - %s (%s) - %d xp\n", c.Name, c.ID, c.XP)
	}
}

func (o *Output) printParentPhone(p ParentPhone) {
	fmt.Printf("Phone: %s (%s)\n", p.PhoneNumber, p.ID)
	if p.ParentName != "" {
		fmt.Printf("Parent: %s\n", p.ParentName)
	}
}

func (o *Output) printParentPhoneList(phones ParentPhoneList) {
	fmt.Printf("Parent Phones (%d):\n", len(phones))
	for _, p := range phones {
		fmt.Printf("  - %s (%s)\n", p.PhoneNumber, p.ParentName)
	}
}

func (o *Output) printCatalogList(entries CatalogList) {
	for _, e := range entries {
		fmt.Printf("  - %s (%s): %s\n", e.Name, e.ID, e.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
