package store

import (
	"database/sql"
	"strconv"
)

// currentSchemaVersion is the target user_version. Migrations run
// forward-only, one version at a time, each inside its own transaction;
// the version is advanced only once every step of that migration succeeds.
const currentSchemaVersion = 1

type migrationStep struct {
	version int
	stmts   []string
}

var migrations = []migrationStep{
	{
		version: 1,
		stmts: []string{
			`CREATE TABLE saves (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				game INTEGER NOT NULL,
				trainer_name TEXT NOT NULL,
				trainer_id INTEGER NOT NULL,
				secret_id INTEGER NOT NULL,
				playtime_hours INTEGER NOT NULL,
				playtime_minutes INTEGER NOT NULL,
				playtime_frames INTEGER NOT NULL,
				save_path TEXT NOT NULL,
				connected INTEGER NOT NULL
			)`,
			`CREATE TABLE monsters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				original_trainer_id INTEGER NOT NULL,
				original_secret_id INTEGER NOT NULL,
				personality_value INTEGER NOT NULL,
				data_format INTEGER NOT NULL,
				data BLOB NOT NULL
			)`,
			`CREATE TABLE box_entries (
				box_number INTEGER NOT NULL,
				box_position INTEGER NOT NULL,
				monster_id INTEGER NOT NULL UNIQUE REFERENCES monsters(id) ON DELETE CASCADE,
				UNIQUE(box_number, box_position)
			)`,
		},
	},
}

func getUserVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func setUserVersion(db *sql.DB, v int) error {
	// PRAGMA statements don't accept bound parameters.
	_, err := db.Exec("PRAGMA user_version = " + strconv.Itoa(v))
	return err
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	version, err := getUserVersion(db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return errSchemaTooNew
	}

	for _, step := range migrations {
		if step.version <= version {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		for _, stmt := range step.stmts {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		if err := setUserVersion(db, step.version); err != nil {
			return err
		}
	}
	return nil
}
