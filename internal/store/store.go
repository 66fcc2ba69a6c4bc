package store

import "database/sql"

// Store holds all sub-stores used by the application. Together they are the
// persistence gateway for forms, responses and accounts.
type Store struct {
	DB        *sql.DB
	Forms     FormStore
	Responses ResponseStore
	Users     UserStore
	Sessions  SessionStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:        db,
		Forms:     NewSQLiteFormStore(db),
		Responses: NewSQLiteResponseStore(db),
		Users:     NewSQLiteUserStore(db),
		Sessions:  NewSQLiteSessionStore(db),
	}
}
