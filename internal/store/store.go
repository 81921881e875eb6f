// Package store implements RoamStore: a durable key-value-ish home for
// creatures while they are not inside a save file, backed by SQLite via
// modernc.org/sqlite (a pure-Go engine — the closest Go equivalent of the
// original implementation's rusqlite-backed store).
package store

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/pkroam/pkroam/internal/codeerr"
)

var errSchemaTooNew = codeerr.New(codeerr.KindSchemaTooNew,
	"database schema was created by a newer version of pkroam")

// RoamStore is a handle to the persisted saves/monsters/box_entries schema.
type RoamStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and brings
// its schema up to date via forward-only migrations.
func Open(path string) (*RoamStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "opening roam store")
	}
	db.SetMaxOpenConns(1) // single-writer: avoid SQLITE_BUSY from concurrent handles

	if err := migrate(db); err != nil {
		db.Close()
		if codeerr.Is(err, codeerr.KindSchemaTooNew) {
			return nil, err
		}
		return nil, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "migrating roam store schema")
	}
	return &RoamStore{db: db}, nil
}

// Close releases the underlying database handle.
func (r *RoamStore) Close() error { return r.db.Close() }

// RegisterSave inserts a new save-metadata row (connected=true) and returns
// its assigned id.
func (r *RoamStore) RegisterSave(meta SaveMeta) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO saves (game, trainer_name, trainer_id, secret_id, playtime_hours,
			playtime_minutes, playtime_frames, save_path, connected)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		meta.Game, meta.TrainerName, meta.PublicID, meta.SecretID,
		meta.PlaytimeHours, meta.PlaytimeMin, meta.PlaytimeFrames, meta.SavePath,
	)
	if err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "registering save")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "reading new save id")
	}
	return id, nil
}

// DisconnectSave flips a save's connected flag to false without deleting it.
func (r *RoamStore) DisconnectSave(id int64) error {
	_, err := r.db.Exec(`UPDATE saves SET connected = 0 WHERE id = ?`, id)
	if err != nil {
		return codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "disconnecting save")
	}
	return nil
}

// ForgetSave deletes a save's registration entirely.
func (r *RoamStore) ForgetSave(id int64) error {
	_, err := r.db.Exec(`DELETE FROM saves WHERE id = ?`, id)
	if err != nil {
		return codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "forgetting save")
	}
	return nil
}

// ListSaves returns every registered save, ordered by id.
func (r *RoamStore) ListSaves() ([]SaveRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, game, trainer_name, trainer_id, secret_id, playtime_hours,
			playtime_minutes, playtime_frames, save_path, connected
		 FROM saves ORDER BY id`)
	if err != nil {
		return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "listing saves")
	}
	defer rows.Close()

	var out []SaveRecord
	for rows.Next() {
		var rec SaveRecord
		var connected int
		if err := rows.Scan(&rec.ID, &rec.Game, &rec.TrainerName, &rec.PublicID,
			&rec.SecretID, &rec.PlaytimeHours, &rec.PlaytimeMin, &rec.PlaytimeFrames,
			&rec.SavePath, &connected); err != nil {
			return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "scanning save row")
		}
		rec.Connected = connected != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Deposit atomically inserts the creature blob and its box-entry location.
// It fails if the (box, position) pair is already occupied.
func (r *RoamStore) Deposit(blob MonsterBlob, loc Location) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "beginning deposit transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO monsters (original_trainer_id, original_secret_id, personality_value, data_format, data)
		 VALUES (?, ?, ?, ?, ?)`,
		blob.OriginalTrainerID, blob.OriginalSecretID, blob.PersonalityValue, blob.DataFormat, blob.Data,
	)
	if err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "inserting monster")
	}
	monsterID, err := res.LastInsertId()
	if err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "reading new monster id")
	}

	if _, err := tx.Exec(
		`INSERT INTO box_entries (box_number, box_position, monster_id) VALUES (?, ?, ?)`,
		loc.Box, loc.Position, monsterID,
	); err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "inserting box entry (position likely occupied)")
	}

	if err := tx.Commit(); err != nil {
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "committing deposit")
	}
	return monsterID, nil
}

// Withdraw reads, then deletes, a monster and its box-entry in a single
// transaction, returning what was deleted.
func (r *RoamStore) Withdraw(monsterID int64) (MonsterBlob, Location, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return MonsterBlob{}, Location{}, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "beginning withdraw transaction")
	}
	defer tx.Rollback()

	var blob MonsterBlob
	err = tx.QueryRow(
		`SELECT original_trainer_id, original_secret_id, personality_value, data_format, data
		 FROM monsters WHERE id = ?`, monsterID,
	).Scan(&blob.OriginalTrainerID, &blob.OriginalSecretID, &blob.PersonalityValue, &blob.DataFormat, &blob.Data)
	if err != nil {
		return MonsterBlob{}, Location{}, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "reading monster for withdraw")
	}

	var loc Location
	err = tx.QueryRow(
		`SELECT box_number, box_position FROM box_entries WHERE monster_id = ?`, monsterID,
	).Scan(&loc.Box, &loc.Position)
	if err != nil {
		return MonsterBlob{}, Location{}, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "reading box entry for withdraw")
	}

	if _, err := tx.Exec(`DELETE FROM monsters WHERE id = ?`, monsterID); err != nil {
		return MonsterBlob{}, Location{}, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "deleting monster")
	}

	if err := tx.Commit(); err != nil {
		return MonsterBlob{}, Location{}, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "committing withdraw")
	}
	return blob, loc, nil
}

// ListCreatures returns every creature currently in the store.
func (r *RoamStore) ListCreatures() ([]MonsterRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, original_trainer_id, original_secret_id, personality_value, data_format, data FROM monsters ORDER BY id`)
	if err != nil {
		return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "listing creatures")
	}
	defer rows.Close()

	var out []MonsterRecord
	for rows.Next() {
		var rec MonsterRecord
		if err := rows.Scan(&rec.ID, &rec.OriginalTrainerID, &rec.OriginalSecretID,
			&rec.PersonalityValue, &rec.DataFormat, &rec.Data); err != nil {
			return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "scanning monster row")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
