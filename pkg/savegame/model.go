// Package savegame captures a live game into a versioned snapshot file and
// reconstructs a live game from one. Snapshots are structural projections:
// the package checks when a game is safe to capture and that files round-trip
// without loss, but it does not judge rules correctness.
package savegame

import (
	"encoding/json"
	"fmt"

	"github.com/hexfieldgame/hexfield/pkg/game"
	"github.com/hexfieldgame/hexfield/pkg/game/types"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/version"
)

// ModelVersion is the current snapshot schema version. It increases, never
// decreases, whenever the schema changes shape.
const ModelVersion = 2500

// Model is the serializable snapshot of one game. It is built in full by
// NewModelFromGame or the loader and never patched in place afterwards;
// treat a constructed Model as read-only.
//
// ModelVersion and SavedByVersion are the first fields in the encoded
// document so consumers can check compatibility without parsing the rest.
type Model struct {
	ModelVersion       int             `json:"modelVersion"`
	SavedByVersion     int             `json:"savedByVersion"`
	GameName           string          `json:"gameName"`
	MaxSeats           int             `json:"maxSeats"`
	Phase              types.GamePhase `json:"phase"`
	CurrentPlayer      int             `json:"currentPlayer"`
	FirstPlayer        int             `json:"firstPlayer"`
	VictoryPointsToWin int             `json:"victoryPointsToWin"`
	Scenario           types.Scenario  `json:"scenario,omitempty"`
	Seats              []SeatSnapshot  `json:"seats"`
	// BoardState and ScenarioOptions are owned by the game engine; the
	// snapshot carries them byte-for-byte without interpreting them.
	BoardState      json.RawMessage `json:"boardState,omitempty"`
	ScenarioOptions json.RawMessage `json:"scenarioOptions,omitempty"`
}

// SeatSnapshot is the captured state of one seat, addressed by its index
// in Model.Seats. A nil Name means the seat is vacant; vacant seats have
// nil Resources and a full starting piece supply.
type SeatSnapshot struct {
	Name          *string                 `json:"name"`
	LockState     types.SeatLockState     `json:"lockState"`
	Resources     *types.ResourceSet      `json:"resources,omitempty"`
	Pieces        map[types.PieceType]int `json:"pieces"`
	VictoryPoints int                     `json:"victoryPoints"`
}

// IsVacant reports whether the seat had no occupant when captured.
func (s *SeatSnapshot) IsVacant() bool {
	return s.Name == nil
}

// NewModelFromGame captures a read-only projection of the live game into a
// snapshot, stamped with the current schema and host versions. The caller
// must hold the game's lock and must have passed CheckCanSave; this
// function copies field values out and keeps no reference into the game.
func NewModelFromGame(ga *game.Game) (*Model, error) {
	if err := CheckCanSave(ga); err != nil {
		return nil, err
	}

	opts := ga.Options()
	m := &Model{
		ModelVersion:       ModelVersion,
		SavedByVersion:     version.Number(),
		GameName:           ga.Name(),
		MaxSeats:           ga.MaxSeats(),
		Phase:              ga.Phase(),
		CurrentPlayer:      ga.CurrentPlayer(),
		FirstPlayer:        ga.FirstPlayer(),
		VictoryPointsToWin: opts.VictoryPointsToWin,
		Scenario:           opts.Scenario,
		Seats:              make([]SeatSnapshot, ga.MaxSeats()),
	}
	if opts.ScenarioOptions != nil {
		m.ScenarioOptions = append(json.RawMessage(nil), opts.ScenarioOptions...)
	}

	if board := ga.Board(); board != nil {
		boardState, err := board.MarshalState()
		if err != nil {
			return nil, fmt.Errorf("failed to capture board state: %v", err)
		}
		m.BoardState = boardState
	}

	for i := 0; i < ga.MaxSeats(); i++ {
		player, err := ga.Player(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read seat %d: %v", i, err)
		}
		seat := SeatSnapshot{
			LockState:     player.LockState,
			Pieces:        make(map[types.PieceType]int, len(types.PieceTypes)),
			VictoryPoints: player.VictoryPoints,
		}
		for _, t := range types.PieceTypes {
			seat.Pieces[t] = player.Pieces[t]
		}
		if !player.Vacant {
			name := player.Name
			seat.Name = &name
			resources := player.Resources
			seat.Resources = &resources
		}
		m.Seats[i] = seat
	}

	return m, nil
}

// Validate checks the snapshot's structural invariants. It does not check
// the model version; the loader rejects unsupported versions before this.
func (m *Model) Validate() error {
	if m.GameName == "" {
		return &InconsistentError{Field: "gameName", Want: "non-empty", Got: `""`}
	}
	if m.MaxSeats < types.DefaultMaxSeats || m.MaxSeats > types.MaxSeatsLimit {
		return &InconsistentError{
			Field: "maxSeats",
			Want:  fmt.Sprintf("between %d and %d", types.DefaultMaxSeats, types.MaxSeatsLimit),
			Got:   fmt.Sprintf("%d", m.MaxSeats),
		}
	}
	if len(m.Seats) != m.MaxSeats {
		return &InconsistentError{
			Field: "seats",
			Want:  fmt.Sprintf("%d", m.MaxSeats),
			Got:   fmt.Sprintf("%d", len(m.Seats)),
		}
	}
	if !m.Phase.HasStartedNormalPlay() {
		return &InconsistentError{
			Field: "phase",
			Want:  "at or after ROLL_OR_CARD",
			Got:   m.Phase.String(),
		}
	}

	for i := range m.Seats {
		seat := &m.Seats[i]
		if seat.Name != nil && *seat.Name == "" {
			return &InconsistentError{
				Field: fmt.Sprintf("seats[%d].name", i),
				Want:  "non-empty or null",
				Got:   `""`,
			}
		}
		if seat.Resources != nil {
			r := *seat.Resources
			if r.Clay < 0 || r.Ore < 0 || r.Sheep < 0 || r.Wheat < 0 || r.Wood < 0 {
				return &InconsistentError{
					Field: fmt.Sprintf("seats[%d].resources", i),
					Want:  "nonnegative counts",
					Got:   fmt.Sprintf("%+v", r),
				}
			}
		}
		for t, n := range seat.Pieces {
			if n < 0 {
				return &InconsistentError{
					Field: fmt.Sprintf("seats[%d].pieces.%s", i, t),
					Want:  "nonnegative count",
					Got:   fmt.Sprintf("%d", n),
				}
			}
		}
		if seat.IsVacant() {
			if seat.Resources != nil && !seat.Resources.IsZero() {
				return &InconsistentError{
					Field: fmt.Sprintf("seats[%d].resources", i),
					Want:  "all-zero for vacant seat",
					Got:   fmt.Sprintf("%+v", *seat.Resources),
				}
			}
			for _, t := range types.PieceTypes {
				if seat.Pieces[t] != types.StartingPieceCount(t) {
					return &InconsistentError{
						Field: fmt.Sprintf("seats[%d].pieces.%s", i, t),
						Want:  fmt.Sprintf("full supply %d for vacant seat", types.StartingPieceCount(t)),
						Got:   fmt.Sprintf("%d", seat.Pieces[t]),
					}
				}
			}
		}
	}

	// Turn-holder indices are validated against occupancy instead of being
	// trusted from the file.
	for _, field := range []struct {
		name string
		seat int
	}{
		{"firstPlayer", m.FirstPlayer},
		{"currentPlayer", m.CurrentPlayer},
	} {
		if field.seat < 0 || field.seat >= m.MaxSeats {
			return &InconsistentError{
				Field: field.name,
				Want:  fmt.Sprintf("in range [0,%d)", m.MaxSeats),
				Got:   fmt.Sprintf("%d", field.seat),
			}
		}
		if m.Seats[field.seat].IsVacant() {
			return &InconsistentError{
				Field: field.name,
				Want:  "an occupied seat",
				Got:   fmt.Sprintf("vacant seat %d", field.seat),
			}
		}
	}

	return nil
}

// Materialize constructs a fresh live game from the snapshot. The game
// list is the host context; materializing fails if a running game already
// has the snapshot's name. The returned game is not registered with the
// list; that is the caller's decision.
func (m *Model) Materialize(gl *gamelist.GameList) (*game.Game, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if gl != nil && gl.Has(m.GameName) {
		return nil, &NameInUseError{Name: m.GameName}
	}

	opts := types.DefaultGameOptions()
	opts.MaxSeats = m.MaxSeats
	opts.VictoryPointsToWin = m.VictoryPointsToWin
	opts.Scenario = m.Scenario
	if m.ScenarioOptions != nil {
		opts.ScenarioOptions = append(json.RawMessage(nil), m.ScenarioOptions...)
	}

	ga, err := game.NewGame(m.GameName, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %v", err)
	}

	// Seat occupants before applying locks so a LOCKED seat can still be
	// refilled with its saved occupant.
	for i := range m.Seats {
		seat := &m.Seats[i]
		if seat.IsVacant() {
			continue
		}
		if err := ga.AddPlayer(*seat.Name, i); err != nil {
			return nil, fmt.Errorf("failed to seat player %s: %v", *seat.Name, err)
		}
		player, err := ga.Player(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read seat %d: %v", i, err)
		}
		if seat.Resources != nil {
			player.Resources = *seat.Resources
		}
		player.VictoryPoints = seat.VictoryPoints
		for t, n := range seat.Pieces {
			player.Pieces[t] = n
		}
	}
	for i := range m.Seats {
		if err := ga.SetSeatLock(i, m.Seats[i].LockState); err != nil {
			return nil, fmt.Errorf("failed to set seat %d lock: %v", i, err)
		}
	}

	if len(m.BoardState) > 0 {
		board, err := game.UnmarshalBoardState(m.BoardState)
		if err != nil {
			return nil, &ParseError{Path: "boardState", Err: err}
		}
		ga.SetBoard(board)
	}

	if err := ga.SetFirstPlayer(m.FirstPlayer); err != nil {
		return nil, fmt.Errorf("failed to set first player: %v", err)
	}
	if err := ga.SetCurrentPlayer(m.CurrentPlayer); err != nil {
		return nil, fmt.Errorf("failed to set current player: %v", err)
	}
	ga.SetPhase(m.Phase)

	return ga, nil
}
