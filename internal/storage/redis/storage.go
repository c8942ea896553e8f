// Package redis provides a Redis-backed implementation of the storage
// interface. Relational rules the database would normally enforce
// (uniqueness, cascade deletes, set-null references) are maintained
// through index keys and explicit multi-key writes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.checkUserUniqueness(ctx, user); err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = model.UserID(uuid.NewString())
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.RPush(ctx, usersOrderKey(), string(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.LRange(ctx, usersOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	existing, err := s.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.checkUserUniqueness(ctx, user); err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	if existing.Username != user.Username {
		pipe.Del(ctx, usernameIndexKey(existing.Username))
	}
	if existing.Email != user.Email {
		pipe.Del(ctx, emailIndexKey(existing.Email))
	}
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	characterIDs, err := s.client.LRange(ctx, charactersForUserKey(id), 0, -1).Result()
	if err != nil {
		return err
	}
	phoneIDs, err := s.client.LRange(ctx, phonesForUserKey(id), 0, -1).Result()
	if err != nil {
		return err
	}

	// Cascade: user record, indexes, and all owned characters and phones
	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, usernameIndexKey(user.Username))
	pipe.Del(ctx, emailIndexKey(user.Email))
	pipe.LRem(ctx, usersOrderKey(), 1, string(id))
	for _, chID := range characterIDs {
		pipe.Del(ctx, characterKey(model.CharacterID(chID)))
		pipe.LRem(ctx, charactersOrderKey(), 1, chID)
	}
	pipe.Del(ctx, charactersForUserKey(id))
	for _, phID := range phoneIDs {
		pipe.Del(ctx, phoneKey(model.PhoneID(phID)))
	}
	pipe.Del(ctx, phonesForUserKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// checkUserUniqueness rejects a username or email owned by another user
func (s *Storage) checkUserUniqueness(ctx context.Context, user *model.User) error {
	owner, err := s.client.Get(ctx, usernameIndexKey(user.Username)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && model.UserID(owner) != user.ID {
		return model.ErrUsernameTaken
	}

	owner, err = s.client.Get(ctx, emailIndexKey(user.Email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && model.UserID(owner) != user.ID {
		return model.ErrEmailTaken
	}
	return nil
}

// Character operations

func (s *Storage) CreateCharacter(ctx context.Context, ch *model.Character) error {
	if err := s.checkCharacterRefs(ctx, ch); err != nil {
		return err
	}

	if ch.ID == "" {
		ch.ID = model.CharacterID(uuid.NewString())
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, characterKey(ch.ID), data, 0)
	pipe.RPush(ctx, charactersOrderKey(), string(ch.ID))
	pipe.RPush(ctx, charactersForUserKey(ch.UserID), string(ch.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	data, err := s.client.Get(ctx, characterKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, err
	}

	var ch model.Character
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *Storage) ListCharactersForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error) {
	ids, err := s.client.LRange(ctx, charactersForUserKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	characters := make([]*model.Character, 0, len(ids))
	for _, id := range ids {
		ch, err := s.GetCharacter(ctx, model.CharacterID(id))
		if err != nil {
			if errors.Is(err, model.ErrCharacterNotFound) {
				continue
			}
			return nil, err
		}
		characters = append(characters, ch)
	}
	return characters, nil
}

func (s *Storage) UpdateCharacter(ctx context.Context, ch *model.Character) error {
	existing, err := s.GetCharacter(ctx, ch.ID)
	if err != nil {
		return err
	}
	if err := s.checkCharacterRefs(ctx, ch); err != nil {
		return err
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	if existing.UserID != ch.UserID {
		pipe.LRem(ctx, charactersForUserKey(existing.UserID), 1, string(ch.ID))
		pipe.RPush(ctx, charactersForUserKey(ch.UserID), string(ch.ID))
	}
	pipe.Set(ctx, characterKey(ch.ID), data, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	ch, err := s.GetCharacter(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, characterKey(id))
	pipe.LRem(ctx, charactersOrderKey(), 1, string(id))
	pipe.LRem(ctx, charactersForUserKey(ch.UserID), 1, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) checkCharacterRefs(ctx context.Context, ch *model.Character) error {
	if err := s.keyExists(ctx, userKey(ch.UserID), model.ErrUnknownUser); err != nil {
		return err
	}
	if ch.RaceID != nil {
		if err := s.keyExists(ctx, raceKey(*ch.RaceID), model.ErrUnknownRace); err != nil {
			return err
		}
	}
	if ch.ReligionID != nil {
		if err := s.keyExists(ctx, religionKey(*ch.ReligionID), model.ErrUnknownReligion); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) keyExists(ctx context.Context, key string, missing error) error {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

// Parent phone operations

func (s *Storage) CreateParentPhone(ctx context.Context, phone *model.ParentPhone) error {
	if err := s.keyExists(ctx, userKey(phone.UserID), model.ErrUnknownUser); err != nil {
		return err
	}

	if phone.ID == "" {
		phone.ID = model.PhoneID(uuid.NewString())
	}

	data, err := json.Marshal(phone)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, phoneKey(phone.ID), data, 0)
	pipe.RPush(ctx, phonesForUserKey(phone.UserID), string(phone.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetParentPhone(ctx context.Context, id model.PhoneID) (*model.ParentPhone, error) {
	data, err := s.client.Get(ctx, phoneKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParentPhoneNotFound
		}
		return nil, err
	}

	var phone model.ParentPhone
	if err := json.Unmarshal(data, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

func (s *Storage) ListParentPhonesForUser(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error) {
	ids, err := s.client.LRange(ctx, phonesForUserKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	phones := make([]*model.ParentPhone, 0, len(ids))
	for _, id := range ids {
		phone, err := s.GetParentPhone(ctx, model.PhoneID(id))
		if err != nil {
			if errors.Is(err, model.ErrParentPhoneNotFound) {
				continue
			}
			return nil, err
		}
		phones = append(phones, phone)
	}
	return phones, nil
}

func (s *Storage) DeleteParentPhone(ctx context.Context, id model.PhoneID) error {
	phone, err := s.GetParentPhone(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, phoneKey(id))
	pipe.LRem(ctx, phonesForUserKey(phone.UserID), 1, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Race operations

func (s *Storage) CreateRace(ctx context.Context, race *model.Race) error {
	if race.ID == "" {
		race.ID = model.RaceID(uuid.NewString())
	}

	data, err := json.Marshal(race)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, raceKey(race.ID), data, 0)
	pipe.RPush(ctx, racesOrderKey(), string(race.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRace(ctx context.Context, id model.RaceID) (*model.Race, error) {
	data, err := s.client.Get(ctx, raceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRaceNotFound
		}
		return nil, err
	}

	var race model.Race
	if err := json.Unmarshal(data, &race); err != nil {
		return nil, err
	}
	return &race, nil
}

func (s *Storage) ListRaces(ctx context.Context) ([]*model.Race, error) {
	ids, err := s.client.LRange(ctx, racesOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	races := make([]*model.Race, 0, len(ids))
	for _, id := range ids {
		race, err := s.GetRace(ctx, model.RaceID(id))
		if err != nil {
			if errors.Is(err, model.ErrRaceNotFound) {
				continue
			}
			return nil, err
		}
		races = append(races, race)
	}
	return races, nil
}

func (s *Storage) DeleteRace(ctx context.Context, id model.RaceID) error {
	if err := s.keyExists(ctx, raceKey(id), model.ErrRaceNotFound); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, raceKey(id))
	pipe.LRem(ctx, racesOrderKey(), 1, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return s.clearCharacterRefs(ctx, func(ch *model.Character) bool {
		if ch.RaceID != nil && *ch.RaceID == id {
			ch.RaceID = nil
			return true
		}
		return false
	})
}

// Religion operations

func (s *Storage) CreateReligion(ctx context.Context, religion *model.Religion) error {
	if religion.ID == "" {
		religion.ID = model.ReligionID(uuid.NewString())
	}

	data, err := json.Marshal(religion)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, religionKey(religion.ID), data, 0)
	pipe.RPush(ctx, religionsOrderKey(), string(religion.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error) {
	data, err := s.client.Get(ctx, religionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrReligionNotFound
		}
		return nil, err
	}

	var religion model.Religion
	if err := json.Unmarshal(data, &religion); err != nil {
		return nil, err
	}
	return &religion, nil
}

func (s *Storage) ListReligions(ctx context.Context) ([]*model.Religion, error) {
	ids, err := s.client.LRange(ctx, religionsOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	religions := make([]*model.Religion, 0, len(ids))
	for _, id := range ids {
		religion, err := s.GetReligion(ctx, model.ReligionID(id))
		if err != nil {
			if errors.Is(err, model.ErrReligionNotFound) {
				continue
			}
			return nil, err
		}
		religions = append(religions, religion)
	}
	return religions, nil
}

func (s *Storage) DeleteReligion(ctx context.Context, id model.ReligionID) error {
	if err := s.keyExists(ctx, religionKey(id), model.ErrReligionNotFound); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, religionKey(id))
	pipe.LRem(ctx, religionsOrderKey(), 1, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return s.clearCharacterRefs(ctx, func(ch *model.Character) bool {
		if ch.ReligionID != nil && *ch.ReligionID == id {
			ch.ReligionID = nil
			return true
		}
		return false
	})
}

// clearCharacterRefs walks every character and rewrites the ones clear touches
func (s *Storage) clearCharacterRefs(ctx context.Context, clear func(*model.Character) bool) error {
	ids, err := s.client.LRange(ctx, charactersOrderKey(), 0, -1).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		ch, err := s.GetCharacter(ctx, model.CharacterID(id))
		if err != nil {
			if errors.Is(err, model.ErrCharacterNotFound) {
				continue
			}
			return err
		}
		if !clear(ch) {
			continue
		}
		data, err := json.Marshal(ch)
		if err != nil {
			return err
		}
		if err := s.client.Set(ctx, characterKey(ch.ID), data, 0).Err(); err != nil {
			return err
		}
	}
	return nil
}
