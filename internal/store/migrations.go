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

CREATE TABLE IF NOT EXISTS todo (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	topic       TEXT NOT NULL CHECK(topic <> ''),
	done        INTEGER NOT NULL DEFAULT 0 CHECK(done IN (0, 1)),
	due_date    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	description TEXT NOT NULL CHECK(description <> '')
);

CREATE INDEX IF NOT EXISTS idx_todo_topic ON todo(topic);
CREATE INDEX IF NOT EXISTS idx_todo_due_date ON todo(due_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
