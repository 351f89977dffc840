package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfieldgame/hexfield/pkg/events"
	"github.com/hexfieldgame/hexfield/pkg/game"
	"github.com/hexfieldgame/hexfield/pkg/game/types"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/repositories"
	"github.com/hexfieldgame/hexfield/pkg/workers"
)

type testServer struct {
	url      string
	client   *http.Client
	gameList *gamelist.GameList
	saveDir  string
}

func newTestServer(t *testing.T, adminToken string) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	saveDir := t.TempDir()
	repo, err := repositories.NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close(context.Background())
	})

	gameList := gamelist.NewGameList()
	eventBus := events.NewBus()
	saveRequestChan := make(chan workers.SaveGameRequest, 10)
	worker := workers.NewSaveGameWorker(workers.NewSaveGameWorkerOptions{
		GameList:        gameList,
		Repository:      repo,
		EventBus:        eventBus,
		SaveRequestChan: saveRequestChan,
		SaveDir:         saveDir,
	})
	go worker.Start(ctx)

	apiServer := NewAPIServer(NewAPIServerOptions{
		Port:            0,
		AdminToken:      adminToken,
		GameList:        gameList,
		Repository:      repo,
		EventBus:        eventBus,
		SaveRequestChan: saveRequestChan,
		SaveDir:         saveDir,
	})
	httpServer := httptest.NewServer(apiServer.server.Handler)
	t.Cleanup(httpServer.Close)

	return &testServer{
		url:      httpServer.URL,
		client:   httpServer.Client(),
		gameList: gameList,
		saveDir:  saveDir,
	}
}

func (ts *testServer) addRunningGame(t *testing.T, name string) *game.Game {
	t.Helper()
	ga, err := game.NewGame(name, nil)
	require.NoError(t, err)
	require.NoError(t, ga.AddPlayer("p0", 0))
	require.NoError(t, ga.AddPlayer("third", 3))
	require.NoError(t, ga.Start())
	ga.SetPhase(types.PhaseRollOrCard)
	require.NoError(t, ts.gameList.Add(ga))
	return ga
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequest(method, ts.url+path, &reqBody)
	require.NoError(t, err)
	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		resp.Body.Close()
	})
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHandleSaveGame(t *testing.T) {
	ts := newTestServer(t, "")
	ts.addRunningGame(t, "basic")

	resp := ts.do(t, http.MethodPost, "/games/basic/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]string
	decodeJSON(t, resp, &result)
	assert.Equal(t, "basic", result["gameName"])
	assert.Equal(t, "basic.game.json", result["fileName"])
	assert.NotEmpty(t, result["id"])

	assert.FileExists(t, filepath.Join(ts.saveDir, "basic.game.json"))
}

func TestHandleSaveGameDenied(t *testing.T) {
	ts := newTestServer(t, "")
	ga, err := game.NewGame("placing", nil)
	require.NoError(t, err)
	require.NoError(t, ga.AddPlayer("p0", 0))
	require.NoError(t, ga.AddPlayer("p1", 1))
	require.NoError(t, ga.Start())
	require.NoError(t, ts.gameList.Add(ga))

	resp := ts.do(t, http.MethodPost, "/games/placing/save", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Code   string            `json:"code"`
		Params map[string]string `json:"params"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "savegame.cannot_save.phase", body.Code)
	assert.Equal(t, "START1A", body.Params["phase"])
}

func TestHandleSaveGameNotFound(t *testing.T) {
	ts := newTestServer(t, "")
	resp := ts.do(t, http.MethodPost, "/games/missing/save", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleSaveGameBadFileName(t *testing.T) {
	ts := newTestServer(t, "")
	ts.addRunningGame(t, "basic")

	resp := ts.do(t, http.MethodPost, "/games/basic/save", map[string]string{
		"fileName": "../escape.game.json",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleLoadGame(t *testing.T) {
	ts := newTestServer(t, "")
	ts.addRunningGame(t, "basic")

	resp := ts.do(t, http.MethodPost, "/games/basic/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// free the name, then restore from the snapshot
	ts.gameList.Remove("basic")

	resp = ts.do(t, http.MethodPost, "/games/load", map[string]string{
		"fileName": "basic.game.json",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary struct {
		Name  string    `json:"name"`
		Phase string    `json:"phase"`
		Seats []*string `json:"seats"`
	}
	decodeJSON(t, resp, &summary)
	assert.Equal(t, "basic", summary.Name)
	assert.Equal(t, "ROLL_OR_CARD", summary.Phase)
	require.Len(t, summary.Seats, 4)
	require.NotNil(t, summary.Seats[0])
	assert.Equal(t, "p0", *summary.Seats[0])
	assert.Nil(t, summary.Seats[1])
	assert.Nil(t, summary.Seats[2])
	require.NotNil(t, summary.Seats[3])
	assert.Equal(t, "third", *summary.Seats[3])

	assert.True(t, ts.gameList.Has("basic"))
}

func TestHandleLoadGameNameInUse(t *testing.T) {
	ts := newTestServer(t, "")
	ts.addRunningGame(t, "basic")

	resp := ts.do(t, http.MethodPost, "/games/basic/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/games/load", map[string]string{
		"fileName": "basic.game.json",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "savegame.load.name_in_use", body.Code)
}

func TestHandleListGamesAndSaves(t *testing.T) {
	ts := newTestServer(t, "")
	ts.addRunningGame(t, "alpha")
	ts.addRunningGame(t, "beta")

	resp := ts.do(t, http.MethodGet, "/games", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var games []struct {
		Name string `json:"name"`
	}
	decodeJSON(t, resp, &games)
	assert.Len(t, games, 2)

	resp = ts.do(t, http.MethodPost, "/games/alpha/save", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/saves?game=alpha", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saves []struct {
		GameName string `json:"game_name"`
	}
	decodeJSON(t, resp, &saves)
	require.Len(t, saves, 1)
	assert.Equal(t, "alpha", saves[0].GameName)
}

func TestAdminTokenRequired(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp := ts.do(t, http.MethodGet, "/games", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/games", ts.url), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong")
	resp2, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)

	req, err = http.NewRequest(http.MethodGet, fmt.Sprintf("%s/games", ts.url), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")
	resp3, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}
