package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/hexfieldgame/hexfield/pkg/game/types"
)

// Game is one live game instance. It is long-lived and mutable; anything
// that needs a consistent view across multiple reads must hold the game's
// lock for the duration (see Lock/Unlock).
type Game struct {
	mu sync.Mutex

	name    string
	options *types.GameOptions
	seats   []*types.Player

	phase         types.GamePhase
	board         *Board
	firstPlayer   int
	currentPlayer int
}

// NewGame creates a game with all seats vacant. Passing nil options uses
// the standard 4-seat base game.
func NewGame(name string, options *types.GameOptions) (*Game, error) {
	if name == "" {
		return nil, fmt.Errorf("game name must not be empty")
	}
	if options == nil {
		options = types.DefaultGameOptions()
	}
	if options.MaxSeats < types.DefaultMaxSeats || options.MaxSeats > types.MaxSeatsLimit {
		return nil, fmt.Errorf("max seats must be between %d and %d, got %d",
			types.DefaultMaxSeats, types.MaxSeatsLimit, options.MaxSeats)
	}

	seats := make([]*types.Player, options.MaxSeats)
	for i := range seats {
		seats[i] = types.NewVacantPlayer()
	}

	return &Game{
		name:          name,
		options:       options.Copy(),
		seats:         seats,
		phase:         types.PhaseNew,
		firstPlayer:   -1,
		currentPlayer: -1,
	}, nil
}

// Lock acquires the per-game exclusion lock. The host holds it while a
// snapshot is being built so the state cannot change mid-capture.
func (g *Game) Lock() {
	g.mu.Lock()
}

// Unlock releases the per-game exclusion lock.
func (g *Game) Unlock() {
	g.mu.Unlock()
}

// Name returns the game's name.
func (g *Game) Name() string {
	return g.name
}

// MaxSeats returns the fixed seat count.
func (g *Game) MaxSeats() int {
	return len(g.seats)
}

// Options returns a copy of the game's options.
func (g *Game) Options() *types.GameOptions {
	return g.options.Copy()
}

// Scenario returns the game's scenario, or types.ScenarioNone.
func (g *Game) Scenario() types.Scenario {
	return g.options.Scenario
}

// Phase returns the current phase.
func (g *Game) Phase() types.GamePhase {
	return g.phase
}

// SetPhase forces the phase. It is driven by the turn rules; the savegame
// loader also uses it when materializing a snapshot.
func (g *Game) SetPhase(phase types.GamePhase) {
	g.phase = phase
}

// Board returns the live board, or nil before the game has started.
func (g *Game) Board() *Board {
	return g.board
}

// SetBoard installs a board layout.
func (g *Game) SetBoard(board *Board) {
	g.board = board
}

// FirstPlayer returns the seat index that took the first turn, or -1.
func (g *Game) FirstPlayer() int {
	return g.firstPlayer
}

// CurrentPlayer returns the seat index whose turn it is, or -1.
func (g *Game) CurrentPlayer() int {
	return g.currentPlayer
}

// SetCurrentPlayer sets the current turn holder.
func (g *Game) SetCurrentPlayer(seat int) error {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	g.currentPlayer = seat
	return nil
}

// SetFirstPlayer sets the seat that holds the first turn.
func (g *Game) SetFirstPlayer(seat int) error {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	g.firstPlayer = seat
	return nil
}

// Player returns the live state of the given seat.
func (g *Game) Player(seat int) (*types.Player, error) {
	if err := g.checkSeat(seat); err != nil {
		return nil, err
	}
	return g.seats[seat], nil
}

// IsSeatVacant reports whether the given seat has no occupant.
func (g *Game) IsSeatVacant(seat int) (bool, error) {
	if err := g.checkSeat(seat); err != nil {
		return false, err
	}
	return g.seats[seat].Vacant, nil
}

// AddPlayer seats a named player at the given seat index.
func (g *Game) AddPlayer(name string, seat int) error {
	if name == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	p := g.seats[seat]
	if !p.Vacant {
		return fmt.Errorf("seat %d is already taken by %s", seat, p.Name)
	}
	if p.LockState == types.SeatLocked {
		return fmt.Errorf("seat %d is locked", seat)
	}
	p.Name = name
	p.Vacant = false
	return nil
}

// RemovePlayer vacates the given seat, returning its pieces to a full
// supply and zeroing its resources.
func (g *Game) RemovePlayer(seat int) error {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	lock := g.seats[seat].LockState
	g.seats[seat] = types.NewVacantPlayer()
	g.seats[seat].LockState = lock
	return nil
}

// SeatLock returns the lock state of the given seat.
func (g *Game) SeatLock(seat int) (types.SeatLockState, error) {
	if err := g.checkSeat(seat); err != nil {
		return 0, err
	}
	return g.seats[seat].LockState, nil
}

// SetSeatLock sets the lock state of the given seat.
func (g *Game) SetSeatLock(seat int, state types.SeatLockState) error {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	g.seats[seat].LockState = state
	return nil
}

// OccupiedSeats returns the indices of seats with an occupant, in order.
func (g *Game) OccupiedSeats() []int {
	var occupied []int
	for i, p := range g.seats {
		if !p.Vacant {
			occupied = append(occupied, i)
		}
	}
	return occupied
}

// Start begins the game: it generates the board layout, gives the first
// turn to the lowest occupied seat, and enters initial placement.
func (g *Game) Start() error {
	if g.phase != types.PhaseNew && g.phase != types.PhaseReady {
		return fmt.Errorf("game %s has already started", g.name)
	}
	occupied := g.OccupiedSeats()
	if len(occupied) < 2 {
		return fmt.Errorf("game %s needs at least 2 seated players to start", g.name)
	}

	g.board = NewBoard(time.Now().UnixNano())
	g.firstPlayer = occupied[0]
	g.currentPlayer = g.firstPlayer
	g.phase = types.PhaseStart1A
	return nil
}

func (g *Game) checkSeat(seat int) error {
	if seat < 0 || seat >= len(g.seats) {
		return fmt.Errorf("seat %d out of range [0,%d)", seat, len(g.seats))
	}
	return nil
}
