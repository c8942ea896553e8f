package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/aweston/charkeep/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newUser(username, email string) *model.User {
	user := &model.User{
		Username:     username,
		PasswordHash: "$2a$10$fakehash",
		Email:        email,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.newUser("alice", "alice@example.com")
	s.NotEmpty(user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := s.newUser("alice", "alice@example.com")

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
}

func (s *StorageSuite) TestUniqueness() {
	s.newUser("alice", "alice@example.com")

	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", Email: "other@example.com"})
	s.ErrorIs(err, model.ErrUsernameTaken)

	err = s.storage.CreateUser(s.ctx, &model.User{Username: "bob", Email: "alice@example.com"})
	s.ErrorIs(err, model.ErrEmailTaken)
}

func (s *StorageSuite) TestListUsersInsertionOrder() {
	alice := s.newUser("alice", "alice@example.com")
	bob := s.newUser("bob", "bob@example.com")

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(alice.ID, users[0].ID)
	s.Equal(bob.ID, users[1].ID)
}

func (s *StorageSuite) TestUpdateUserReindexes() {
	user := s.newUser("alice", "alice@example.com")

	user.Username = "alice2"
	user.Email = "alice2@example.com"
	s.Require().NoError(s.storage.UpdateUser(s.ctx, user))

	_, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice2")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
}

func (s *StorageSuite) TestUpdateUserNotFound() {
	err := s.storage.UpdateUser(s.ctx, &model.User{ID: "nonexistent", Username: "x", Email: "x@example.com"})
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserCascades() {
	user := s.newUser("alice", "alice@example.com")

	ch := &model.Character{Name: "Zog", UserID: user.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, ch))
	phone := &model.ParentPhone{UserID: user.ID, PhoneNumber: "555-0101"}
	s.Require().NoError(s.storage.CreateParentPhone(s.ctx, phone))

	s.Require().NoError(s.storage.DeleteUser(s.ctx, user.ID))

	_, err := s.storage.GetUser(s.ctx, user.ID)
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetCharacter(s.ctx, ch.ID)
	s.ErrorIs(err, model.ErrCharacterNotFound)
	_, err = s.storage.GetParentPhone(s.ctx, phone.ID)
	s.ErrorIs(err, model.ErrParentPhoneNotFound)
}

// Character tests

func (s *StorageSuite) TestCharacterReferenceValidation() {
	err := s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Zog", UserID: "nonexistent"})
	s.ErrorIs(err, model.ErrUnknownUser)

	user := s.newUser("alice", "alice@example.com")

	raceID := model.RaceID("nonexistent")
	err = s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Zog", UserID: user.ID, RaceID: &raceID})
	s.ErrorIs(err, model.ErrUnknownRace)
}

func (s *StorageSuite) TestListCharactersForUser() {
	alice := s.newUser("alice", "alice@example.com")
	bob := s.newUser("bob", "bob@example.com")

	s.Require().NoError(s.storage.CreateCharacter(s.ctx, &model.Character{Name: "One", UserID: alice.ID}))
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Two", UserID: bob.ID}))
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Three", UserID: alice.ID}))

	characters, err := s.storage.ListCharactersForUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(characters, 2)
	s.Equal("One", characters[0].Name)
	s.Equal("Three", characters[1].Name)
}

func (s *StorageSuite) TestDeleteRaceClearsReferences() {
	user := s.newUser("alice", "alice@example.com")
	race := &model.Race{Name: "Elf"}
	s.Require().NoError(s.storage.CreateRace(s.ctx, race))

	ch := &model.Character{Name: "Zog", UserID: user.ID, RaceID: &race.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, ch))

	s.Require().NoError(s.storage.DeleteRace(s.ctx, race.ID))

	retrieved, err := s.storage.GetCharacter(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Nil(retrieved.RaceID)
}

func (s *StorageSuite) TestDeleteReligionClearsReferences() {
	user := s.newUser("alice", "alice@example.com")
	religion := &model.Religion{Name: "Sun Court"}
	s.Require().NoError(s.storage.CreateReligion(s.ctx, religion))

	ch := &model.Character{Name: "Zog", UserID: user.ID, ReligionID: &religion.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, ch))

	s.Require().NoError(s.storage.DeleteReligion(s.ctx, religion.ID))

	retrieved, err := s.storage.GetCharacter(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Nil(retrieved.ReligionID)
}

func (s *StorageSuite) TestParentPhones() {
	user := s.newUser("alice", "alice@example.com")

	first := &model.ParentPhone{UserID: user.ID, PhoneNumber: "555-0101", ParentName: "Pat"}
	second := &model.ParentPhone{UserID: user.ID, PhoneNumber: "555-0102"}
	s.Require().NoError(s.storage.CreateParentPhone(s.ctx, first))
	s.Require().NoError(s.storage.CreateParentPhone(s.ctx, second))

	phones, err := s.storage.ListParentPhonesForUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(phones, 2)
	s.Equal("555-0101", phones[0].PhoneNumber)

	s.Require().NoError(s.storage.DeleteParentPhone(s.ctx, first.ID))
	phones, err = s.storage.ListParentPhonesForUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Len(phones, 1)
}

func (s *StorageSuite) TestListRaces() {
	s.Require().NoError(s.storage.CreateRace(s.ctx, &model.Race{Name: "Elf"}))
	s.Require().NoError(s.storage.CreateRace(s.ctx, &model.Race{Name: "Dwarf"}))

	races, err := s.storage.ListRaces(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(races, 2)
	s.Equal("Elf", races[0].Name)
	s.Equal("Dwarf", races[1].Name)
}
