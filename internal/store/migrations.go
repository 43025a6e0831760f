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

CREATE TABLE IF NOT EXISTS visits (
	id            TEXT PRIMARY KEY,
	location      TEXT NOT NULL UNIQUE,
	view_mode     TEXT NOT NULL DEFAULT 'directory',
	visit_count   INTEGER NOT NULL DEFAULT 1,
	first_visited DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_visited  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_visits_last_visited ON visits(last_visited);
CREATE INDEX IF NOT EXISTS idx_visits_visit_count ON visits(visit_count);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
