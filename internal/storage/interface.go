package storage

import (
	"context"

	"github.com/aweston/charkeep/internal/model"
)

// Storage defines the interface for data persistence.
//
// Create operations assign the record's ID when it is blank and enforce
// uniqueness and referential-integrity rules, returning the model sentinel
// errors on violation. List operations return records in insertion order.
// Update operations are full-record replaces and fail with the entity's
// NotFound sentinel when the ID is absent. DeleteUser cascades to the
// user's characters and parent phones atomically; deleting a race or
// religion clears character references to it.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id model.UserID) error

	// Character operations
	CreateCharacter(ctx context.Context, ch *model.Character) error
	GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error)
	ListCharactersForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error)
	UpdateCharacter(ctx context.Context, ch *model.Character) error
	DeleteCharacter(ctx context.Context, id model.CharacterID) error

	// Parent phone operations
	CreateParentPhone(ctx context.Context, phone *model.ParentPhone) error
	GetParentPhone(ctx context.Context, id model.PhoneID) (*model.ParentPhone, error)
	ListParentPhonesForUser(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error)
	DeleteParentPhone(ctx context.Context, id model.PhoneID) error

	// Race operations
	CreateRace(ctx context.Context, race *model.Race) error
	GetRace(ctx context.Context, id model.RaceID) (*model.Race, error)
	ListRaces(ctx context.Context) ([]*model.Race, error)
	DeleteRace(ctx context.Context, id model.RaceID) error

	// Religion operations
	CreateReligion(ctx context.Context, religion *model.Religion) error
	GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error)
	ListReligions(ctx context.Context) ([]*model.Religion, error)
	DeleteReligion(ctx context.Context, id model.ReligionID) error
}
