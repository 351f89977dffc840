// Package gamelist tracks the games currently running on this server.
// The savegame saver and loader take a GameList as their host context.
package gamelist

import (
	"fmt"
	"sync"

	"github.com/hexfieldgame/hexfield/pkg/game"
)

// GameList provides shared access to the running games by name.
// It is safe for concurrent use.
type GameList struct {
	lock  sync.RWMutex
	games map[string]*game.Game
}

// NewGameList creates an empty GameList.
func NewGameList() *GameList {
	return &GameList{
		games: make(map[string]*game.Game),
	}
}

// Add registers a running game. The name must not already be in use.
func (gl *GameList) Add(ga *game.Game) error {
	gl.lock.Lock()
	defer gl.lock.Unlock()
	if _, exists := gl.games[ga.Name()]; exists {
		return fmt.Errorf("game %s is already registered", ga.Name())
	}
	gl.games[ga.Name()] = ga
	return nil
}

// Get returns the running game with the given name.
func (gl *GameList) Get(name string) (*game.Game, bool) {
	gl.lock.RLock()
	defer gl.lock.RUnlock()
	ga, ok := gl.games[name]
	return ga, ok
}

// Has reports whether a game with the given name is running.
func (gl *GameList) Has(name string) bool {
	gl.lock.RLock()
	defer gl.lock.RUnlock()
	_, ok := gl.games[name]
	return ok
}

// Remove unregisters the game with the given name.
func (gl *GameList) Remove(name string) {
	gl.lock.Lock()
	defer gl.lock.Unlock()
	delete(gl.games, name)
}

// Names returns the names of all running games.
func (gl *GameList) Names() []string {
	gl.lock.RLock()
	defer gl.lock.RUnlock()
	names := make([]string, 0, len(gl.games))
	for name := range gl.games {
		names = append(names, name)
	}
	return names
}
