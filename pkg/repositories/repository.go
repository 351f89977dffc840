package repositories

import (
	"context"

	"github.com/hexfieldgame/hexfield/pkg/repositories/models"
)

// Repository is the savegame index: metadata about snapshot files written
// by this server, queryable without opening the files.
type Repository interface {
	Close(ctx context.Context) error
	CreateSave(ctx context.Context, record *models.SaveRecord) error
	GetSave(ctx context.Context, id string) (*models.SaveRecord, error)
	ListSaves(ctx context.Context, gameName string) ([]*models.SaveRecord, error)
	DeleteSave(ctx context.Context, id string) error
}
