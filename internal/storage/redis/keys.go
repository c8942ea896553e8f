package redis

import (
	"fmt"

	"github.com/aweston/charkeep/internal/model"
)

// Key prefix for all stored data
const keyPrefix = "charkeep"

// Key generation functions for each entity type

func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usersOrderKey returns the Redis key for the LIST of user IDs in insertion order
func usersOrderKey() string {
	return fmt.Sprintf("%s:users", keyPrefix)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

func characterKey(id model.CharacterID) string {
	return fmt.Sprintf("%s:character:%s", keyPrefix, id)
}

// charactersOrderKey returns the Redis key for the LIST of all character IDs
func charactersOrderKey() string {
	return fmt.Sprintf("%s:characters", keyPrefix)
}

// charactersForUserKey returns the Redis key for the LIST of a user's character IDs
func charactersForUserKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:characters_for_user:%s", keyPrefix, userID)
}

func phoneKey(id model.PhoneID) string {
	return fmt.Sprintf("%s:phone:%s", keyPrefix, id)
}

// phonesForUserKey returns the Redis key for the LIST of a user's parent phone IDs
func phonesForUserKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:phones_for_user:%s", keyPrefix, userID)
}

func raceKey(id model.RaceID) string {
	return fmt.Sprintf("%s:race:%s", keyPrefix, id)
}

func racesOrderKey() string {
	return fmt.Sprintf("%s:races", keyPrefix)
}

func religionKey(id model.ReligionID) string {
	return fmt.Sprintf("%s:religion:%s", keyPrefix, id)
}

func religionsOrderKey() string {
	return fmt.Sprintf("%s:religions", keyPrefix)
}
