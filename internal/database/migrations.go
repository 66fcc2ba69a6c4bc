package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: accounts, forms and responses
	{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_sessions_user ON sessions(user_id)`,

		`CREATE TABLE forms (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			theme TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_forms_owner_created ON forms(owner_id, created_at)`,

		`CREATE TABLE form_fields (
			form_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			label TEXT NOT NULL,
			placeholder TEXT NOT NULL DEFAULT '',
			required BOOLEAN NOT NULL DEFAULT FALSE,
			options TEXT,
			validation TEXT,
			PRIMARY KEY (form_id, id),
			FOREIGN KEY (form_id) REFERENCES forms(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_form_fields_position ON form_fields(form_id, position)`,

		`CREATE TABLE form_responses (
			id TEXT PRIMARY KEY,
			form_id TEXT NOT NULL,
			response_data TEXT NOT NULL,
			submitter_id TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_form_responses_form ON form_responses(form_id, created_at)`,
	},
}
