package types

import "encoding/json"

const (
	// DefaultMaxSeats is the seat count of a standard game.
	DefaultMaxSeats = 4
	// MaxSeatsLimit is the largest supported seat count.
	MaxSeatsLimit = 6
	// DefaultVictoryPointsToWin ends the game for the first seat to reach it.
	DefaultVictoryPointsToWin = 10
)

// GameOptions configures a game at creation time. The zero value is not
// usable; call DefaultGameOptions.
type GameOptions struct {
	MaxSeats           int
	VictoryPointsToWin int
	Scenario           Scenario
	// ScenarioOptions is the scenario module's own configuration. It is
	// owned by the scenario rules; the rest of the system carries it as an
	// opaque blob.
	ScenarioOptions json.RawMessage
}

// DefaultGameOptions returns the options of a standard 4-seat base game.
func DefaultGameOptions() *GameOptions {
	return &GameOptions{
		MaxSeats:           DefaultMaxSeats,
		VictoryPointsToWin: DefaultVictoryPointsToWin,
		Scenario:           ScenarioNone,
	}
}

// Copy returns a deep copy of the options.
func (o *GameOptions) Copy() *GameOptions {
	cp := &GameOptions{
		MaxSeats:           o.MaxSeats,
		VictoryPointsToWin: o.VictoryPointsToWin,
		Scenario:           o.Scenario,
	}
	if o.ScenarioOptions != nil {
		cp.ScenarioOptions = append(json.RawMessage(nil), o.ScenarioOptions...)
	}
	return cp
}
