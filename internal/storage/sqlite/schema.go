package sqlite

// schema is applied on every Open; statements are idempotent
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	username       TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	email          TEXT NOT NULL UNIQUE,
	personal_phone TEXT NOT NULL DEFAULT '',
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS races (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS religions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS characters (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	race_id     TEXT REFERENCES races(id) ON DELETE SET NULL,
	religion_id TEXT REFERENCES religions(id) ON DELETE SET NULL,
	xp          INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0)
);

CREATE INDEX IF NOT EXISTS idx_characters_user ON characters(user_id);

CREATE TABLE IF NOT EXISTS parent_phones (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	phone_number TEXT NOT NULL,
	parent_name  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_parent_phones_user ON parent_phones(user_id);
`
