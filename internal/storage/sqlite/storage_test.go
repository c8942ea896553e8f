package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aweston/charkeep/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "charkeep.db"))
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *StorageSuite) newUser(username, email string) *model.User {
	user := &model.User{
		Username:      username,
		PasswordHash:  "$2a$10$fakehash",
		Email:         email,
		PersonalPhone: "555-0100",
		CreatedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("")
	s.Error(err)
}

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.newUser("alice", "alice@example.com")
	s.NotEmpty(user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("alice@example.com", retrieved.Email)
	s.Equal(user.CreatedAt, retrieved.CreatedAt)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUniqueUsernameAndEmail() {
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

func (s *StorageSuite) TestUpdateUserFullReplace() {
	user := s.newUser("alice", "alice@example.com")

	user.Username = "alice2"
	user.Email = "alice2@example.com"
	user.PersonalPhone = "555-0199"
	user.UpdatedAt = user.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.storage.UpdateUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice2", retrieved.Username)
	s.Equal("555-0199", retrieved.PersonalPhone)
}

func (s *StorageSuite) TestUpdateUserNotFound() {
	err := s.storage.UpdateUser(s.ctx, &model.User{ID: "nonexistent", Username: "x", Email: "x@example.com"})
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserUsernameConflict() {
	s.newUser("alice", "alice@example.com")
	bob := s.newUser("bob", "bob@example.com")

	bob.Username = "alice"
	s.ErrorIs(s.storage.UpdateUser(s.ctx, bob), model.ErrUsernameTaken)
}

func (s *StorageSuite) TestDeleteUserCascades() {
	user := s.newUser("alice", "alice@example.com")

	ch := &model.Character{Name: "Zog", UserID: user.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, ch))
	phone := &model.ParentPhone{UserID: user.ID, PhoneNumber: "555-0101"}
	s.Require().NoError(s.storage.CreateParentPhone(s.ctx, phone))

	s.Require().NoError(s.storage.DeleteUser(s.ctx, user.ID))

	_, err := s.storage.GetCharacter(s.ctx, ch.ID)
	s.ErrorIs(err, model.ErrCharacterNotFound)
	_, err = s.storage.GetParentPhone(s.ctx, phone.ID)
	s.ErrorIs(err, model.ErrParentPhoneNotFound)
}

func (s *StorageSuite) TestDeleteUserNotFound() {
	s.ErrorIs(s.storage.DeleteUser(s.ctx, "nonexistent"), model.ErrUserNotFound)
}

func (s *StorageSuite) TestCharacterReferenceValidation() {
	err := s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Zog", UserID: "nonexistent"})
	s.ErrorIs(err, model.ErrUnknownUser)

	user := s.newUser("alice", "alice@example.com")

	raceID := model.RaceID("nonexistent")
	err = s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Zog", UserID: user.ID, RaceID: &raceID})
	s.ErrorIs(err, model.ErrUnknownRace)

	religionID := model.ReligionID("nonexistent")
	err = s.storage.CreateCharacter(s.ctx, &model.Character{Name: "Zog", UserID: user.ID, ReligionID: &religionID})
	s.ErrorIs(err, model.ErrUnknownReligion)
}

func (s *StorageSuite) TestCharacterOptionalRefsRoundTrip() {
	user := s.newUser("alice", "alice@example.com")
	race := &model.Race{Name: "Elf", Description: "Pointy ears"}
	s.Require().NoError(s.storage.CreateRace(s.ctx, race))

	withRace := &model.Character{Name: "Zog", UserID: user.ID, RaceID: &race.ID, XP: 10}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, withRace))
	without := &model.Character{Name: "Mog", UserID: user.ID}
	s.Require().NoError(s.storage.CreateCharacter(s.ctx, without))

	retrieved, err := s.storage.GetCharacter(s.ctx, withRace.ID)
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.RaceID)
	s.Equal(race.ID, *retrieved.RaceID)
	s.Nil(retrieved.ReligionID)

	retrieved, err = s.storage.GetCharacter(s.ctx, without.ID)
	s.Require().NoError(err)
	s.Nil(retrieved.RaceID)
	s.Nil(retrieved.ReligionID)
	s.Equal(0, retrieved.XP)
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
	s.Equal("Pat", phones[0].ParentName)
	s.Equal("", phones[1].ParentName)

	s.Require().NoError(s.storage.DeleteParentPhone(s.ctx, first.ID))
	_, err = s.storage.GetParentPhone(s.ctx, first.ID)
	s.ErrorIs(err, model.ErrParentPhoneNotFound)
}

func (s *StorageSuite) TestCreateParentPhoneUnknownUser() {
	err := s.storage.CreateParentPhone(s.ctx, &model.ParentPhone{UserID: "nonexistent", PhoneNumber: "555-0101"})
	s.ErrorIs(err, model.ErrUnknownUser)
}

func (s *StorageSuite) TestSchemaIsIdempotent() {
	// Re-opening the same file must not fail or lose data
	path := filepath.Join(s.T().TempDir(), "reopen.db")

	store, err := Open(path)
	s.Require().NoError(err)
	s.Require().NoError(store.CreateUser(s.ctx, &model.User{Username: "bob", Email: "bob@example.com"}))
	s.Require().NoError(store.Close())

	store, err = Open(path)
	s.Require().NoError(err)
	defer func() { _ = store.Close() }()

	_, err = store.GetUserByUsername(s.ctx, "bob")
	s.NoError(err)
}
