package catalog

import (
	"context"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// defaultRaces is the starter catalog seeded into an empty store
var defaultRaces = []model.Race{
	{Name: "Human", Description: "Adaptable and ambitious"},
	{Name: "Elf", Description: "Long-lived forest dwellers"},
	{Name: "Dwarf", Description: "Stout mountain folk"},
	{Name: "Orc", Description: "Fierce tribal warriors"},
}

// defaultReligions is the starter catalog seeded into an empty store
var defaultReligions = []model.Religion{
	{Name: "Sun Cult", Description: "Worships the light of the sun"},
	{Name: "Old Faith", Description: "Honours the spirits of the land"},
	{Name: "Void Walkers", Description: "Seeks truth in the space between stars"},
}

// Service manages the race and religion catalog
type Service struct {
	storage storage.Storage
}

// New creates a new catalog Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// ListRaces returns all races in insertion order
func (s *Service) ListRaces(ctx context.Context) ([]*model.Race, error) {
	return s.storage.ListRaces(ctx)
}

// ListReligions returns all religions in insertion order
func (s *Service) ListReligions(ctx context.Context) ([]*model.Religion, error) {
	return s.storage.ListReligions(ctx)
}

// GetRace retrieves a race by ID
func (s *Service) GetRace(ctx context.Context, id model.RaceID) (*model.Race, error) {
	return s.storage.GetRace(ctx, id)
}

// GetReligion retrieves a religion by ID
func (s *Service) GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error) {
	return s.storage.GetReligion(ctx, id)
}

// CreateRace adds a race to the catalog
func (s *Service) CreateRace(ctx context.Context, name, description string) (*model.Race, error) {
	race := &model.Race{Name: name, Description: description}
	if err := s.storage.CreateRace(ctx, race); err != nil {
		return nil, err
	}
	return race, nil
}

// CreateReligion adds a religion to the catalog
func (s *Service) CreateReligion(ctx context.Context, name, description string) (*model.Religion, error) {
	religion := &model.Religion{Name: name, Description: description}
	if err := s.storage.CreateReligion(ctx, religion); err != nil {
		return nil, err
	}
	return religion, nil
}

// DeleteRace removes a race; characters referencing it lose the reference
func (s *Service) DeleteRace(ctx context.Context, id model.RaceID) error {
	return s.storage.DeleteRace(ctx, id)
}

// DeleteReligion removes a religion; characters referencing it lose the reference
func (s *Service) DeleteReligion(ctx context.Context, id model.ReligionID) error {
	return s.storage.DeleteReligion(ctx, id)
}

// EnsureDefaults seeds the starter catalog when the store is empty.
// Already-populated catalogs are left untouched.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	races, err := s.storage.ListRaces(ctx)
	if err != nil {
		return err
	}
	if len(races) == 0 {
		for _, race := range defaultRaces {
			r := race
			if err := s.storage.CreateRace(ctx, &r); err != nil {
				return err
			}
		}
	}

	religions, err := s.storage.ListReligions(ctx)
	if err != nil {
		return err
	}
	if len(religions) == 0 {
		for _, religion := range defaultReligions {
			r := religion
			if err := s.storage.CreateReligion(ctx, &r); err != nil {
				return err
			}
		}
	}

	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	ListRaces(ctx context.Context) ([]*model.Race, error)
	ListReligions(ctx context.Context) ([]*model.Religion, error)
	GetRace(ctx context.Context, id model.RaceID) (*model.Race, error)
	GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error)
	CreateRace(ctx context.Context, name, description string) (*model.Race, error)
	CreateReligion(ctx context.Context, name, description string) (*model.Religion, error)
	DeleteRace(ctx context.Context, id model.RaceID) error
	DeleteReligion(ctx context.Context, id model.ReligionID) error
	EnsureDefaults(ctx context.Context) error
}

var _ ServiceInterface = (*Service)(nil)
