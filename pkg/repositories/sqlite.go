package repositories

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hexfieldgame/hexfield/pkg/repositories/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS saves (
	id TEXT PRIMARY KEY,
	game_name TEXT NOT NULL,
	file_name TEXT NOT NULL,
	model_version INTEGER NOT NULL,
	saved_by_version INTEGER NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_game_name ON saves (game_name);
`

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateSave(ctx context.Context, record *models.SaveRecord) error {
	q := `
	INSERT OR REPLACE INTO saves (id, game_name, file_name, model_version, saved_by_version, saved_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, record.ID, record.GameName, record.FileName,
		record.ModelVersion, record.SavedByVersion, record.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to insert save record: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) GetSave(ctx context.Context, id string) (*models.SaveRecord, error) {
	q := `
	SELECT id, game_name, file_name, model_version, saved_by_version, saved_at
	FROM saves WHERE id = ?;
	`
	record := &models.SaveRecord{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&record.ID, &record.GameName,
		&record.FileName, &record.ModelVersion, &record.SavedByVersion, &record.SavedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan save record: %v", err)
	}

	return record, nil
}

func (r *SQLiteRepository) ListSaves(ctx context.Context, gameName string) ([]*models.SaveRecord, error) {
	q := `
	SELECT id, game_name, file_name, model_version, saved_by_version, saved_at
	FROM saves
	`
	args := []interface{}{}
	if gameName != "" {
		q += ` WHERE game_name = ?`
		args = append(args, gameName)
	}
	q += ` ORDER BY saved_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query save records: %v", err)
	}
	defer rows.Close()

	var records []*models.SaveRecord
	for rows.Next() {
		record := &models.SaveRecord{}
		if err := rows.Scan(&record.ID, &record.GameName, &record.FileName,
			&record.ModelVersion, &record.SavedByVersion, &record.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save record: %v", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read save records: %v", err)
	}

	return records, nil
}

func (r *SQLiteRepository) DeleteSave(ctx context.Context, id string) error {
	q := `
	DELETE FROM saves WHERE id = ?;
	`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to delete save record: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %v", err)
	}
	if affected == 0 {
		return &ErrNotFound{}
	}

	return nil
}
