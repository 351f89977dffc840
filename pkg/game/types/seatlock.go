package types

import "fmt"

// SeatLockState controls whether a seat can be taken, independent of
// whether it is currently occupied.
type SeatLockState int

const (
	// SeatUnlocked seats can be taken by anyone.
	SeatUnlocked SeatLockState = iota
	// SeatLocked seats cannot be taken.
	SeatLocked
	// SeatClearOnReset seats are unlocked and vacated when the game resets.
	SeatClearOnReset
)

var seatLockNames = map[SeatLockState]string{
	SeatUnlocked:     "UNLOCKED",
	SeatLocked:       "LOCKED",
	SeatClearOnReset: "CLEAR_ON_RESET",
}

func (s SeatLockState) String() string {
	if name, ok := seatLockNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeatLockState parses the string form of a SeatLockState.
func ParseSeatLockState(s string) (SeatLockState, error) {
	for state, name := range seatLockNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown seat lock state: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s SeatLockState) MarshalText() ([]byte, error) {
	name, ok := seatLockNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid seat lock state: %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SeatLockState) UnmarshalText(text []byte) error {
	parsed, err := ParseSeatLockState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
