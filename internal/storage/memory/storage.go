package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Insertion order is tracked per entity so lists read back in the
// order records were created.
type Storage struct {
	mu sync.RWMutex

	users     map[model.UserID]*model.User
	userOrder []model.UserID
	usernames map[string]model.UserID
	emails    map[string]model.UserID

	characters     map[model.CharacterID]*model.Character
	characterOrder []model.CharacterID

	phones     map[model.PhoneID]*model.ParentPhone
	phoneOrder []model.PhoneID

	races     map[model.RaceID]*model.Race
	raceOrder []model.RaceID

	religions     map[model.ReligionID]*model.Religion
	religionOrder []model.ReligionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		usernames:  make(map[string]model.UserID),
		emails:     make(map[string]model.UserID),
		characters: make(map[model.CharacterID]*model.Character),
		phones:     make(map[model.PhoneID]*model.ParentPhone),
		races:      make(map[model.RaceID]*model.Race),
		religions:  make(map[model.ReligionID]*model.Religion),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.usernames[user.Username]; ok && owner != user.ID {
		return model.ErrUsernameTaken
	}
	if owner, ok := s.emails[user.Email]; ok && owner != user.ID {
		return model.ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = model.UserID(uuid.NewString())
	}

	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.usernames[user.Username] = user.ID
	s.emails[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernames[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	if owner, taken := s.usernames[user.Username]; taken && owner != user.ID {
		return model.ErrUsernameTaken
	}
	if owner, taken := s.emails[user.Email]; taken && owner != user.ID {
		return model.ErrEmailTaken
	}

	delete(s.usernames, existing.Username)
	delete(s.emails, existing.Email)
	s.users[user.ID] = user
	s.usernames[user.Username] = user.ID
	s.emails[user.Email] = user.ID
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	delete(s.users, id)
	delete(s.usernames, user.Username)
	delete(s.emails, user.Email)
	s.userOrder = removeID(s.userOrder, id)

	// Cascade to the user's characters and parent phones
	for chID, ch := range s.characters {
		if ch.UserID == id {
			delete(s.characters, chID)
			s.characterOrder = removeID(s.characterOrder, chID)
		}
	}
	for phID, ph := range s.phones {
		if ph.UserID == id {
			delete(s.phones, phID)
			s.phoneOrder = removeID(s.phoneOrder, phID)
		}
	}
	return nil
}

// Character operations

func (s *Storage) CreateCharacter(ctx context.Context, ch *model.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCharacterRefs(ch); err != nil {
		return err
	}

	if ch.ID == "" {
		ch.ID = model.CharacterID(uuid.NewString())
	}

	s.characters[ch.ID] = ch
	s.characterOrder = append(s.characterOrder, ch.ID)
	return nil
}

func (s *Storage) GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.characters[id]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	return ch, nil
}

func (s *Storage) ListCharactersForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	characters := make([]*model.Character, 0)
	for _, id := range s.characterOrder {
		if ch := s.characters[id]; ch.UserID == userID {
			characters = append(characters, ch)
		}
	}
	return characters, nil
}

func (s *Storage) UpdateCharacter(ctx context.Context, ch *model.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[ch.ID]; !ok {
		return model.ErrCharacterNotFound
	}
	if err := s.checkCharacterRefs(ch); err != nil {
		return err
	}

	s.characters[ch.ID] = ch
	return nil
}

func (s *Storage) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.characters[id]; !ok {
		return model.ErrCharacterNotFound
	}
	delete(s.characters, id)
	s.characterOrder = removeID(s.characterOrder, id)
	return nil
}

// checkCharacterRefs validates the character's references while holding the lock
func (s *Storage) checkCharacterRefs(ch *model.Character) error {
	if _, ok := s.users[ch.UserID]; !ok {
		return model.ErrUnknownUser
	}
	if ch.RaceID != nil {
		if _, ok := s.races[*ch.RaceID]; !ok {
			return model.ErrUnknownRace
		}
	}
	if ch.ReligionID != nil {
		if _, ok := s.religions[*ch.ReligionID]; !ok {
			return model.ErrUnknownReligion
		}
	}
	return nil
}

// Parent phone operations

func (s *Storage) CreateParentPhone(ctx context.Context, phone *model.ParentPhone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[phone.UserID]; !ok {
		return model.ErrUnknownUser
	}

	if phone.ID == "" {
		phone.ID = model.PhoneID(uuid.NewString())
	}

	s.phones[phone.ID] = phone
	s.phoneOrder = append(s.phoneOrder, phone.ID)
	return nil
}

func (s *Storage) GetParentPhone(ctx context.Context, id model.PhoneID) (*model.ParentPhone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phone, ok := s.phones[id]
	if !ok {
		return nil, model.ErrParentPhoneNotFound
	}
	return phone, nil
}

func (s *Storage) ListParentPhonesForUser(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phones := make([]*model.ParentPhone, 0)
	for _, id := range s.phoneOrder {
		if ph := s.phones[id]; ph.UserID == userID {
			phones = append(phones, ph)
		}
	}
	return phones, nil
}

func (s *Storage) DeleteParentPhone(ctx context.Context, id model.PhoneID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phones[id]; !ok {
		return model.ErrParentPhoneNotFound
	}
	delete(s.phones, id)
	s.phoneOrder = removeID(s.phoneOrder, id)
	return nil
}

// Race operations

func (s *Storage) CreateRace(ctx context.Context, race *model.Race) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if race.ID == "" {
		race.ID = model.RaceID(uuid.NewString())
	}
	s.races[race.ID] = race
	s.raceOrder = append(s.raceOrder, race.ID)
	return nil
}

func (s *Storage) GetRace(ctx context.Context, id model.RaceID) (*model.Race, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	race, ok := s.races[id]
	if !ok {
		return nil, model.ErrRaceNotFound
	}
	return race, nil
}

func (s *Storage) ListRaces(ctx context.Context) ([]*model.Race, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	races := make([]*model.Race, 0, len(s.raceOrder))
	for _, id := range s.raceOrder {
		races = append(races, s.races[id])
	}
	return races, nil
}

func (s *Storage) DeleteRace(ctx context.Context, id model.RaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.races[id]; !ok {
		return model.ErrRaceNotFound
	}
	delete(s.races, id)
	s.raceOrder = removeID(s.raceOrder, id)

	// Clear references, do not cascade
	for _, ch := range s.characters {
		if ch.RaceID != nil && *ch.RaceID == id {
			ch.RaceID = nil
		}
	}
	return nil
}

// Religion operations

func (s *Storage) CreateReligion(ctx context.Context, religion *model.Religion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if religion.ID == "" {
		religion.ID = model.ReligionID(uuid.NewString())
	}
	s.religions[religion.ID] = religion
	s.religionOrder = append(s.religionOrder, religion.ID)
	return nil
}

func (s *Storage) GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	religion, ok := s.religions[id]
	if !ok {
		return nil, model.ErrReligionNotFound
	}
	return religion, nil
}

func (s *Storage) ListReligions(ctx context.Context) ([]*model.Religion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	religions := make([]*model.Religion, 0, len(s.religionOrder))
	for _, id := range s.religionOrder {
		religions = append(religions, s.religions[id])
	}
	return religions, nil
}

func (s *Storage) DeleteReligion(ctx context.Context, id model.ReligionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.religions[id]; !ok {
		return model.ErrReligionNotFound
	}
	delete(s.religions, id)
	s.religionOrder = removeID(s.religionOrder, id)

	for _, ch := range s.characters {
		if ch.ReligionID != nil && *ch.ReligionID == id {
			ch.ReligionID = nil
		}
	}
	return nil
}

// removeID removes the first occurrence of id from order
func removeID[T comparable](order []T, id T) []T {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
