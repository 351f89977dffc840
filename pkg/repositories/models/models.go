package models

import "time"

// SaveRecord is one row of the savegame index: where a snapshot file lives
// and what was in it. The snapshot contents themselves stay in the file.
type SaveRecord struct {
	ID             string    `json:"id"`
	GameName       string    `json:"game_name"`
	FileName       string    `json:"file_name"`
	ModelVersion   int       `json:"model_version"`
	SavedByVersion int       `json:"saved_by_version"`
	SavedAt        time.Time `json:"saved_at"`
}
