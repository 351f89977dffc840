package workers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hexfieldgame/hexfield/pkg/events"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/log"
	"github.com/hexfieldgame/hexfield/pkg/repositories"
	"github.com/hexfieldgame/hexfield/pkg/repositories/models"
	"github.com/hexfieldgame/hexfield/pkg/savegame"
	"github.com/hexfieldgame/hexfield/pkg/version"
)

// SaveGameWorker serializes savegame requests for the whole server. It
// holds the target game's lock while the snapshot is built, so the
// simulation cannot mutate the state mid-capture.
type SaveGameWorker struct {
	gameList        *gamelist.GameList
	repository      repositories.Repository
	eventBus        *events.Bus
	saveRequestChan <-chan SaveGameRequest
	saveDir         string
}

type NewSaveGameWorkerOptions struct {
	GameList        *gamelist.GameList
	Repository      repositories.Repository
	EventBus        *events.Bus
	SaveRequestChan <-chan SaveGameRequest
	SaveDir         string
}

// SaveGameRequest asks the worker to snapshot one running game. Result
// receives exactly one value; it must be buffered.
type SaveGameRequest struct {
	GameName string
	FileName string
	Result   chan<- SaveGameResult
}

// SaveGameResult reports the outcome of one save request.
type SaveGameResult struct {
	RecordID string
	Err      error
}

// NewSaveGameWorker creates a new SaveGameWorker. The worker processes
// save requests one at a time and records successful saves in the
// savegame index.
func NewSaveGameWorker(opts NewSaveGameWorkerOptions) *SaveGameWorker {
	return &SaveGameWorker{
		gameList:        opts.GameList,
		repository:      opts.Repository,
		eventBus:        opts.EventBus,
		saveRequestChan: opts.SaveRequestChan,
		saveDir:         opts.SaveDir,
	}
}

func (w *SaveGameWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case request := <-w.saveRequestChan:
			result := w.saveGame(ctx, request)
			if result.Err != nil {
				log.Error("Failed to save game %s: %v", request.GameName, result.Err)
				w.publish(events.NewEvent(events.TypeSaveFailed, request.GameName, request.FileName, result.Err))
			} else {
				log.Info("Saved game %s to %s", request.GameName, request.FileName)
				w.publish(events.NewEvent(events.TypeGameSaved, request.GameName, request.FileName, nil))
			}
			if request.Result != nil {
				request.Result <- result
			}
		}
	}
}

func (w *SaveGameWorker) saveGame(ctx context.Context, request SaveGameRequest) SaveGameResult {
	ga, ok := w.gameList.Get(request.GameName)
	if !ok {
		return SaveGameResult{Err: &GameNotFoundError{GameName: request.GameName}}
	}

	ga.Lock()
	err := savegame.Save(ga, w.saveDir, request.FileName, w.gameList)
	ga.Unlock()
	if err != nil {
		return SaveGameResult{Err: err}
	}

	record := &models.SaveRecord{
		ID:             uuid.NewString(),
		GameName:       request.GameName,
		FileName:       request.FileName,
		ModelVersion:   savegame.ModelVersion,
		SavedByVersion: version.Number(),
		SavedAt:        time.Now().UTC(),
	}
	if err := w.repository.CreateSave(ctx, record); err != nil {
		// The snapshot file exists; an index miss is not worth failing the
		// whole save for.
		log.Error("Failed to index save of game %s: %v", request.GameName, err)
	}

	return SaveGameResult{RecordID: record.ID}
}

func (w *SaveGameWorker) publish(e events.Event) {
	if w.eventBus != nil {
		w.eventBus.Publish(e)
	}
}

// GameNotFoundError means a save request named a game that is not running.
type GameNotFoundError struct {
	GameName string
}

func (e *GameNotFoundError) Error() string {
	return "game not found: " + e.GameName
}

func IsGameNotFound(err error) bool {
	_, ok := err.(*GameNotFoundError)
	return ok
}
