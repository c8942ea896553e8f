package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateAndListRaces() {
	first, err := s.service.CreateRace(s.ctx, "Elf", "Forest dwellers")
	s.Require().NoError(err)
	s.NotEmpty(first.ID)

	second, err := s.service.CreateRace(s.ctx, "Dwarf", "Mountain folk")
	s.Require().NoError(err)

	races, err := s.service.ListRaces(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(races, 2)
	s.Equal(first.ID, races[0].ID)
	s.Equal(second.ID, races[1].ID)
}

func (s *ServiceSuite) TestCreateAndListReligions() {
	religion, err := s.service.CreateReligion(s.ctx, "Sun Cult", "Worships the sun")
	s.Require().NoError(err)

	religions, err := s.service.ListReligions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(religions, 1)
	s.Equal(religion.ID, religions[0].ID)
}

func (s *ServiceSuite) TestGetUnknownRaceFails() {
	_, err := s.service.GetRace(s.ctx, model.RaceID("00000000-0000-0000-0000-000000000000"))
	s.ErrorIs(err, model.ErrRaceNotFound)
}

func (s *ServiceSuite) TestDeleteRaceClearsCharacterReferences() {
	user := &model.User{Username: "alice", PasswordHash: "hash", Email: "alice@example.com"}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))

	race, _ := s.service.CreateRace(s.ctx, "Elf", "Forest dwellers")
	character := &model.Character{Name: "Fenwick", UserID: user.ID, RaceID: &race.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, character))

	s.Require().NoError(s.service.DeleteRace(s.ctx, race.ID))

	stored, err := s.storage.GetCharacter(s.ctx, character.ID)
	s.Require().NoError(err)
	s.Nil(stored.RaceID)
}

func (s *ServiceSuite) TestDeleteUnknownReligionFails() {
	err := s.service.DeleteReligion(s.ctx, model.ReligionID("00000000-0000-0000-0000-000000000000"))
	s.ErrorIs(err, model.ErrReligionNotFound)
}

// EnsureDefaults tests

func (s *ServiceSuite) TestEnsureDefaultsSeedsEmptyCatalog() {
	s.Require().NoError(s.service.EnsureDefaults(s.ctx))

	races, err := s.service.ListRaces(s.ctx)
	s.Require().NoError(err)
	s.Len(races, len(defaultRaces))

	religions, err := s.service.ListReligions(s.ctx)
	s.Require().NoError(err)
	s.Len(religions, len(defaultReligions))
}

func (s *ServiceSuite) TestEnsureDefaultsIsIdempotent() {
	s.Require().NoError(s.service.EnsureDefaults(s.ctx))
	s.Require().NoError(s.service.EnsureDefaults(s.ctx))

	races, _ := s.service.ListRaces(s.ctx)
	s.Len(races, len(defaultRaces))
}

func (s *ServiceSuite) TestEnsureDefaultsLeavesExistingCatalogAlone() {
	_, _ = s.service.CreateRace(s.ctx, "Gnome", "Tinkerers")

	s.Require().NoError(s.service.EnsureDefaults(s.ctx))

	races, _ := s.service.ListRaces(s.ctx)
	s.Require().Len(races, 1)
	s.Equal("Gnome", races[0].Name)

	// Religions were still empty, so they get seeded
	religions, _ := s.service.ListReligions(s.ctx)
	s.Len(religions, len(defaultReligions))
}
