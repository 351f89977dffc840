package types

import "fmt"

// GamePhase is the live state machine's current phase. The order of the
// constants matters: phases before PhaseRollOrCard are setup phases.
type GamePhase int

const (
	// PhaseNew is a game that has been created but not started.
	PhaseNew GamePhase = iota
	// PhaseReady has enough seated players to start.
	PhaseReady
	// PhaseStart1A through PhaseStart3B are the initial placement rounds:
	// each seated player places starting pieces before normal play begins.
	PhaseStart1A
	PhaseStart1B
	PhaseStart2A
	PhaseStart2B
	PhaseStart3A
	PhaseStart3B
	// PhaseRollOrCard is the first phase of a normal turn.
	PhaseRollOrCard
	// PhasePlay is the main action phase of a turn.
	PhasePlay
	// PhaseSpecialBuilding is the between-turns building window in 6-seat games.
	PhaseSpecialBuilding
	// PhaseOver means the game has ended.
	PhaseOver
)

var phaseNames = map[GamePhase]string{
	PhaseNew:             "NEW",
	PhaseReady:           "READY",
	PhaseStart1A:         "START1A",
	PhaseStart1B:         "START1B",
	PhaseStart2A:         "START2A",
	PhaseStart2B:         "START2B",
	PhaseStart3A:         "START3A",
	PhaseStart3B:         "START3B",
	PhaseRollOrCard:      "ROLL_OR_CARD",
	PhasePlay:            "PLAY",
	PhaseSpecialBuilding: "SPECIAL_BUILDING",
	PhaseOver:            "OVER",
}

func (g GamePhase) String() string {
	if name, ok := phaseNames[g]; ok {
		return name
	}
	return "unknown"
}

// ParseGamePhase parses the string form of a GamePhase.
func ParseGamePhase(s string) (GamePhase, error) {
	for phase, name := range phaseNames {
		if name == s {
			return phase, nil
		}
	}
	return 0, fmt.Errorf("unknown game phase: %s", s)
}

// IsInitialPlacement reports whether the phase is one of the initial
// placement rounds.
func (g GamePhase) IsInitialPlacement() bool {
	return g >= PhaseStart1A && g <= PhaseStart3B
}

// HasStartedNormalPlay reports whether the phase is at or past the first
// roll-or-card phase of normal turn order.
func (g GamePhase) HasStartedNormalPlay() bool {
	return g >= PhaseRollOrCard
}

// MarshalText implements encoding.TextMarshaler.
func (g GamePhase) MarshalText() ([]byte, error) {
	name, ok := phaseNames[g]
	if !ok {
		return nil, fmt.Errorf("invalid game phase: %d", int(g))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GamePhase) UnmarshalText(text []byte) error {
	parsed, err := ParseGamePhase(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
