package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hexfieldgame/hexfield/pkg/events"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/log"
	"github.com/hexfieldgame/hexfield/pkg/repositories"
	"github.com/hexfieldgame/hexfield/pkg/savegame"
	"github.com/hexfieldgame/hexfield/pkg/workers"
)

// saveFileNameRegex keeps snapshot file names to a safe character set so
// they cannot escape the save directory.
var saveFileNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// GameSummary is the API's view of one running game.
type GameSummary struct {
	Name          string    `json:"name"`
	MaxSeats      int       `json:"maxSeats"`
	Phase         string    `json:"phase"`
	CurrentPlayer int       `json:"currentPlayer"`
	Seats         []*string `json:"seats"`
}

// errorResponse is the wire form of a structured failure: a stable code
// plus named parameters, never preformatted prose.
type errorResponse struct {
	Code   string            `json:"code"`
	Params map[string]string `json:"params,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func writeSavegameError(w http.ResponseWriter, err error) {
	var coded savegame.CodedError
	if !errors.As(err, &coded) {
		log.Error("savegame operation failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusBadRequest
	switch {
	case savegame.IsDenied(err), savegame.IsNameInUse(err):
		status = http.StatusConflict
	case savegame.IsUnsupportedVersion(err), savegame.IsInconsistent(err):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Code: coded.ErrorCode(), Params: coded.ErrorParams()})
}

func summarize(gl *gamelist.GameList, name string) (*GameSummary, error) {
	ga, ok := gl.Get(name)
	if !ok {
		return nil, fmt.Errorf("game not found: %s", name)
	}

	ga.Lock()
	defer ga.Unlock()

	summary := &GameSummary{
		Name:          ga.Name(),
		MaxSeats:      ga.MaxSeats(),
		Phase:         ga.Phase().String(),
		CurrentPlayer: ga.CurrentPlayer(),
		Seats:         make([]*string, ga.MaxSeats()),
	}
	for i := 0; i < ga.MaxSeats(); i++ {
		player, err := ga.Player(i)
		if err != nil {
			return nil, err
		}
		if !player.Vacant {
			name := player.Name
			summary.Seats[i] = &name
		}
	}
	return summary, nil
}

// HandleListGames lists the games currently running.
func HandleListGames(gameList *gamelist.GameList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries := []*GameSummary{}
		for _, name := range gameList.Names() {
			summary, err := summarize(gameList, name)
			if err != nil {
				log.Error("failed to summarize game %s: %v", name, err)
				continue
			}
			summaries = append(summaries, summary)
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// HandleSaveGame triggers a snapshot of one running game and waits for the
// outcome. Saving is a one-shot admin action, so failures are surfaced
// directly instead of being retried.
func HandleSaveGame(saveRequestChan chan<- workers.SaveGameRequest, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameName := r.PathValue("gameName")

		var body struct {
			FileName string `json:"fileName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.FileName == "" {
			body.FileName = gameName + ".game.json"
		}
		if !saveFileNameRegex.MatchString(body.FileName) {
			http.Error(w, "Invalid file name", http.StatusBadRequest)
			return
		}

		resultChan := make(chan workers.SaveGameResult, 1)
		request := workers.SaveGameRequest{
			GameName: gameName,
			FileName: body.FileName,
			Result:   resultChan,
		}

		select {
		case saveRequestChan <- request:
		case <-time.After(timeout):
			http.Error(w, "Save queue is full", http.StatusServiceUnavailable)
			return
		}

		select {
		case result := <-resultChan:
			if result.Err != nil {
				if workers.IsGameNotFound(result.Err) {
					http.Error(w, "Game not found", http.StatusNotFound)
					return
				}
				writeSavegameError(w, result.Err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"id":       result.RecordID,
				"gameName": gameName,
				"fileName": body.FileName,
			})
		case <-time.After(timeout):
			http.Error(w, "Save timed out", http.StatusGatewayTimeout)
		}
	}
}

// HandleLoadGame reconstructs a game from a snapshot file in the save
// directory and registers it as a running game.
func HandleLoadGame(gameList *gamelist.GameList, saveDir string, eventBus *events.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FileName string `json:"fileName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.FileName == "" || !saveFileNameRegex.MatchString(body.FileName) {
			http.Error(w, "Invalid file name", http.StatusBadRequest)
			return
		}

		m, err := savegame.Load(filepath.Join(saveDir, body.FileName))
		if err != nil {
			writeSavegameError(w, err)
			return
		}

		ga, err := m.Materialize(gameList)
		if err != nil {
			writeSavegameError(w, err)
			return
		}
		if err := gameList.Add(ga); err != nil {
			log.Error("failed to register loaded game: %v", err)
			http.Error(w, "Failed to register loaded game", http.StatusConflict)
			return
		}

		if eventBus != nil {
			eventBus.Publish(events.NewEvent(events.TypeGameLoaded, ga.Name(), body.FileName, nil))
		}

		summary, err := summarize(gameList, ga.Name())
		if err != nil {
			log.Error("failed to summarize loaded game: %v", err)
			http.Error(w, "Failed to summarize loaded game", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, summary)
	}
}

// HandleListSaves lists the savegame index, optionally filtered by game.
func HandleListSaves(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := repository.ListSaves(r.Context(), r.URL.Query().Get("game"))
		if err != nil {
			log.Error("failed to list saves: %v", err)
			http.Error(w, "Failed to list saves", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEvents streams savegame events to a WebSocket client until it
// disconnects.
func HandleEvents(eventBus *events.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		defer conn.Close()
		log.Debug("New event watcher from %s", conn.RemoteAddr().String())

		eventChan, cancel := eventBus.Subscribe()
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-eventChan:
				if !ok {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					log.Trace("Event watcher %s closed: %v", conn.RemoteAddr().String(), err)
					return
				}
			}
		}
	}
}
