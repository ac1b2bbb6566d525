package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id                  INTEGER PRIMARY KEY,
	user_id             INTEGER NOT NULL,
	user_role           TEXT NOT NULL,
	type                TEXT NOT NULL DEFAULT '',
	title               TEXT NOT NULL DEFAULT '',
	message             TEXT NOT NULL DEFAULT '',
	is_read             INTEGER NOT NULL DEFAULT 0,
	is_email_sent       INTEGER NOT NULL DEFAULT 0,
	created_at          DATETIME NOT NULL,
	read_at             DATETIME,
	related_entity_id   INTEGER,
	related_entity_type TEXT NOT NULL DEFAULT '',
	priority            TEXT NOT NULL DEFAULT 'NORMAL',
	action_url          TEXT NOT NULL DEFAULT '',
	position            INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cache_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items (
	id           INTEGER PRIMARY KEY,
	quantity     INTEGER NOT NULL DEFAULT 1,
	product_json TEXT NOT NULL DEFAULT '{}',
	position     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS wishlist_items (
	id           INTEGER PRIMARY KEY,
	product_json TEXT NOT NULL DEFAULT '{}',
	position     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications(is_read);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
