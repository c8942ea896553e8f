// Package sqlite provides a SQLite-backed implementation of the storage
// interface. It is the default backend: referential integrity (cascade
// deletes, set-null references, uniqueness) is enforced by the database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// Storage persists records in a SQLite database
type Storage struct {
	db *sql.DB
}

// Open opens a SQLite store at path and applies the schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// SQLite serializes writers anyway; a single connection keeps the
	// foreign_keys pragma applied to every statement
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.UserID(uuid.NewString())
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, email, personal_phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(user.ID), user.Username, user.PasswordHash, user.Email, user.PersonalPhone,
		toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if err != nil {
		if mapped := mapUserConstraint(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.getUser(ctx, "id = ?", string(id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, email, personal_phone, created_at, updated_at
		   FROM users WHERE `+where, arg)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password_hash, email, personal_phone, created_at, updated_at
		   FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		    SET username = ?, password_hash = ?, email = ?, personal_phone = ?, created_at = ?, updated_at = ?
		  WHERE id = ?`,
		user.Username, user.PasswordHash, user.Email, user.PersonalPhone,
		toMillis(user.CreatedAt), toMillis(user.UpdatedAt), string(user.ID),
	)
	if err != nil {
		if mapped := mapUserConstraint(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update user: %w", err)
	}
	return checkAffected(res, model.ErrUserNotFound)
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	// Characters and parent phones go with the user via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return checkAffected(res, model.ErrUserNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var user model.User
	var createdAt, updatedAt int64
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.PersonalPhone, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return &user, nil
}

// Character operations

func (s *Storage) CreateCharacter(ctx context.Context, ch *model.Character) error {
	if ch.ID == "" {
		ch.ID = model.CharacterID(uuid.NewString())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkCharacterRefs(ctx, tx, ch); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO characters (id, name, user_id, race_id, religion_id, xp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(ch.ID), ch.Name, string(ch.UserID), raceArg(ch.RaceID), religionArg(ch.ReligionID), ch.XP,
	)
	if err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	return tx.Commit()
}

func (s *Storage) GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, user_id, race_id, religion_id, xp FROM characters WHERE id = ?`,
		string(id))

	ch, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("get character: %w", err)
	}
	return ch, nil
}

func (s *Storage) ListCharactersForUser(ctx context.Context, userID model.UserID) ([]*model.Character, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, user_id, race_id, religion_id, xp
		   FROM characters WHERE user_id = ? ORDER BY rowid`,
		string(userID))
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	characters := make([]*model.Character, 0)
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, ch)
	}
	return characters, rows.Err()
}

func (s *Storage) UpdateCharacter(ctx context.Context, ch *model.Character) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkCharacterRefs(ctx, tx, ch); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE characters
		    SET name = ?, user_id = ?, race_id = ?, religion_id = ?, xp = ?
		  WHERE id = ?`,
		ch.Name, string(ch.UserID), raceArg(ch.RaceID), religionArg(ch.ReligionID), ch.XP, string(ch.ID),
	)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	if err := checkAffected(res, model.ErrCharacterNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return checkAffected(res, model.ErrCharacterNotFound)
}

// checkCharacterRefs verifies foreign keys up front so reference failures
// surface as the precise model sentinel instead of a bare constraint error
func checkCharacterRefs(ctx context.Context, tx *sql.Tx, ch *model.Character) error {
	if err := refExists(ctx, tx, `SELECT 1 FROM users WHERE id = ?`, string(ch.UserID), model.ErrUnknownUser); err != nil {
		return err
	}
	if ch.RaceID != nil {
		if err := refExists(ctx, tx, `SELECT 1 FROM races WHERE id = ?`, string(*ch.RaceID), model.ErrUnknownRace); err != nil {
			return err
		}
	}
	if ch.ReligionID != nil {
		if err := refExists(ctx, tx, `SELECT 1 FROM religions WHERE id = ?`, string(*ch.ReligionID), model.ErrUnknownReligion); err != nil {
			return err
		}
	}
	return nil
}

func refExists(ctx context.Context, tx *sql.Tx, query, id string, missing error) error {
	var one int
	err := tx.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return missing
	}
	if err != nil {
		return fmt.Errorf("check reference: %w", err)
	}
	return nil
}

func raceArg(id *model.RaceID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func religionArg(id *model.ReligionID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func scanCharacter(row rowScanner) (*model.Character, error) {
	var ch model.Character
	var race, religion sql.NullString
	err := row.Scan(&ch.ID, &ch.Name, &ch.UserID, &race, &religion, &ch.XP)
	if err != nil {
		return nil, err
	}
	if race.Valid {
		id := model.RaceID(race.String)
		ch.RaceID = &id
	}
	if religion.Valid {
		id := model.ReligionID(religion.String)
		ch.ReligionID = &id
	}
	return &ch, nil
}

// Parent phone operations

func (s *Storage) CreateParentPhone(ctx context.Context, phone *model.ParentPhone) error {
	if phone.ID == "" {
		phone.ID = model.PhoneID(uuid.NewString())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := refExists(ctx, tx, `SELECT 1 FROM users WHERE id = ?`, string(phone.UserID), model.ErrUnknownUser); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO parent_phones (id, user_id, phone_number, parent_name) VALUES (?, ?, ?, ?)`,
		string(phone.ID), string(phone.UserID), phone.PhoneNumber, phone.ParentName,
	)
	if err != nil {
		return fmt.Errorf("create parent phone: %w", err)
	}
	return tx.Commit()
}

func (s *Storage) GetParentPhone(ctx context.Context, id model.PhoneID) (*model.ParentPhone, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, phone_number, parent_name FROM parent_phones WHERE id = ?`,
		string(id))

	var phone model.ParentPhone
	err := row.Scan(&phone.ID, &phone.UserID, &phone.PhoneNumber, &phone.ParentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrParentPhoneNotFound
		}
		return nil, fmt.Errorf("get parent phone: %w", err)
	}
	return &phone, nil
}

func (s *Storage) ListParentPhonesForUser(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, phone_number, parent_name
		   FROM parent_phones WHERE user_id = ? ORDER BY rowid`,
		string(userID))
	if err != nil {
		return nil, fmt.Errorf("list parent phones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	phones := make([]*model.ParentPhone, 0)
	for rows.Next() {
		var phone model.ParentPhone
		if err := rows.Scan(&phone.ID, &phone.UserID, &phone.PhoneNumber, &phone.ParentName); err != nil {
			return nil, fmt.Errorf("scan parent phone: %w", err)
		}
		phones = append(phones, &phone)
	}
	return phones, rows.Err()
}

func (s *Storage) DeleteParentPhone(ctx context.Context, id model.PhoneID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM parent_phones WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete parent phone: %w", err)
	}
	return checkAffected(res, model.ErrParentPhoneNotFound)
}

// Race operations

func (s *Storage) CreateRace(ctx context.Context, race *model.Race) error {
	if race.ID == "" {
		race.ID = model.RaceID(uuid.NewString())
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO races (id, name, description) VALUES (?, ?, ?)`,
		string(race.ID), race.Name, race.Description)
	if err != nil {
		return fmt.Errorf("create race: %w", err)
	}
	return nil
}

func (s *Storage) GetRace(ctx context.Context, id model.RaceID) (*model.Race, error) {
	var race model.Race
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM races WHERE id = ?`, string(id)).
		Scan(&race.ID, &race.Name, &race.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRaceNotFound
		}
		return nil, fmt.Errorf("get race: %w", err)
	}
	return &race, nil
}

func (s *Storage) ListRaces(ctx context.Context) ([]*model.Race, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM races ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	defer func() { _ = rows.Close() }()

	races := make([]*model.Race, 0)
	for rows.Next() {
		var race model.Race
		if err := rows.Scan(&race.ID, &race.Name, &race.Description); err != nil {
			return nil, fmt.Errorf("scan race: %w", err)
		}
		races = append(races, &race)
	}
	return races, rows.Err()
}

func (s *Storage) DeleteRace(ctx context.Context, id model.RaceID) error {
	// Character references are cleared by ON DELETE SET NULL
	res, err := s.db.ExecContext(ctx, `DELETE FROM races WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete race: %w", err)
	}
	return checkAffected(res, model.ErrRaceNotFound)
}

// Religion operations

func (s *Storage) CreateReligion(ctx context.Context, religion *model.Religion) error {
	if religion.ID == "" {
		religion.ID = model.ReligionID(uuid.NewString())
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO religions (id, name, description) VALUES (?, ?, ?)`,
		string(religion.ID), religion.Name, religion.Description)
	if err != nil {
		return fmt.Errorf("create religion: %w", err)
	}
	return nil
}

func (s *Storage) GetReligion(ctx context.Context, id model.ReligionID) (*model.Religion, error) {
	var religion model.Religion
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM religions WHERE id = ?`, string(id)).
		Scan(&religion.ID, &religion.Name, &religion.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrReligionNotFound
		}
		return nil, fmt.Errorf("get religion: %w", err)
	}
	return &religion, nil
}

func (s *Storage) ListReligions(ctx context.Context) ([]*model.Religion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM religions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list religions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	religions := make([]*model.Religion, 0)
	for rows.Next() {
		var religion model.Religion
		if err := rows.Scan(&religion.ID, &religion.Name, &religion.Description); err != nil {
			return nil, fmt.Errorf("scan religion: %w", err)
		}
		religions = append(religions, &religion)
	}
	return religions, rows.Err()
}

func (s *Storage) DeleteReligion(ctx context.Context, id model.ReligionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM religions WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete religion: %w", err)
	}
	return checkAffected(res, model.ErrReligionNotFound)
}

// Helpers

func checkAffected(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}

// mapUserConstraint translates unique-constraint violations on the users
// table into model sentinels; returns nil for unrelated errors
func mapUserConstraint(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
	default:
		return nil
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "users.username"):
		return model.ErrUsernameTaken
	case strings.Contains(message, "users.email"):
		return model.ErrEmailTaken
	default:
		return nil
	}
}
