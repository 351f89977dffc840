package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hexfieldgame/hexfield/pkg/repositories/models"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS saves (
	id TEXT PRIMARY KEY,
	game_name TEXT NOT NULL,
	file_name TEXT NOT NULL,
	model_version INTEGER NOT NULL,
	saved_by_version INTEGER NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_game_name ON saves (game_name);
`

// NewPostgresRepository connects to the database and ensures the savegame
// index schema exists. The caller is responsible for calling Close().
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) CreateSave(ctx context.Context, record *models.SaveRecord) error {
	q := `
	INSERT INTO saves (id, game_name, file_name, model_version, saved_by_version, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		game_name = $2, file_name = $3, model_version = $4, saved_by_version = $5, saved_at = $6;
	`
	_, err := r.conn.Exec(ctx, q, record.ID, record.GameName, record.FileName,
		record.ModelVersion, record.SavedByVersion, record.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to insert save record: %v", err)
	}

	return nil
}

func (r *PostgresRepository) GetSave(ctx context.Context, id string) (*models.SaveRecord, error) {
	q := `
	SELECT id, game_name, file_name, model_version, saved_by_version, saved_at
	FROM saves WHERE id = $1;
	`
	record := &models.SaveRecord{}
	err := r.conn.QueryRow(ctx, q, id).Scan(&record.ID, &record.GameName,
		&record.FileName, &record.ModelVersion, &record.SavedByVersion, &record.SavedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan save record: %v", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListSaves(ctx context.Context, gameName string) ([]*models.SaveRecord, error) {
	q := `
	SELECT id, game_name, file_name, model_version, saved_by_version, saved_at
	FROM saves
	`
	args := []interface{}{}
	if gameName != "" {
		q += ` WHERE game_name = $1`
		args = append(args, gameName)
	}
	q += ` ORDER BY saved_at DESC;`

	rows, err := r.conn.Query(ctx, q, args...)
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

func (r *PostgresRepository) DeleteSave(ctx context.Context, id string) error {
	q := `
	DELETE FROM saves WHERE id = $1;
	`
	result, err := r.conn.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to delete save record: %v", err)
	}
	if result.RowsAffected() == 0 {
		return &ErrNotFound{}
	}

	return nil
}
