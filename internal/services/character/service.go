package character

import (
	"context"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// Params are the writable fields of a character record
type Params struct {
	Name       string
	UserID     model.UserID
	RaceID     *model.RaceID
	ReligionID *model.ReligionID
	XP         int
}

// Service handles character CRUD and reference validation
type Service struct {
	storage storage.Storage
}

// New creates a new character Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Create stores a new character for a user
func (s *Service) Create(ctx context.Context, params Params) (*model.Character, error) {
	character := &model.Character{
		Name:       params.Name,
		UserID:     params.UserID,
		RaceID:     params.RaceID,
		ReligionID: params.ReligionID,
		XP:         params.XP,
	}

	if err := s.storage.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}

	return character, nil
}

// Get retrieves a character by ID
func (s *Service) Get(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	return s.storage.GetCharacter(ctx, id)
}

// ListForUser returns a user's characters in insertion order
func (s *Service) ListForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error) {
	// Distinguish an unknown user from one with no characters
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.storage.ListCharactersForUser(ctx, userID)
}

// Update replaces a character record in full, preserving the ID
func (s *Service) Update(ctx context.Context, id model.CharacterID, params Params) (*model.Character, error) {
	character := &model.Character{
		ID:         id,
		Name:       params.Name,
		UserID:     params.UserID,
		RaceID:     params.RaceID,
		ReligionID: params.ReligionID,
		XP:         params.XP,
	}

	if err := s.storage.UpdateCharacter(ctx, character); err != nil {
		return nil, err
	}

	return character, nil
}

// Delete removes a character by ID
func (s *Service) Delete(ctx context.Context, id model.CharacterID) error {
	return s.storage.DeleteCharacter(ctx, id)
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, params Params) (*model.Character, error)
	Get(ctx context.Context, id model.CharacterID) (*model.Character, error)
	ListForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error)
	Update(ctx context.Context, id model.CharacterID, params Params) (*model.Character, error)
	Delete(ctx context.Context, id model.CharacterID) error
}

var _ ServiceInterface = (*Service)(nil)
