package types

import "fmt"

// PieceType identifies a kind of buildable piece. Every seat starts with a
// fixed supply of each type; building takes pieces out of that supply.
type PieceType int

const (
	PieceRoad PieceType = iota
	PieceSettlement
	PieceCity
	PieceShip
	PieceFortress
	numPieceTypes
)

// PieceTypes lists every piece type in supply order.
var PieceTypes = []PieceType{PieceRoad, PieceSettlement, PieceCity, PieceShip, PieceFortress}

func (p PieceType) String() string {
	switch p {
	case PieceRoad:
		return "road"
	case PieceSettlement:
		return "settlement"
	case PieceCity:
		return "city"
	case PieceShip:
		return "ship"
	case PieceFortress:
		return "fortress"
	default:
		return "unknown"
	}
}

// ParsePieceType parses the string form of a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	for _, p := range PieceTypes {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown piece type: %s", s)
}

// MarshalText implements encoding.TextMarshaler so PieceType can be used
// as a JSON object key.
func (p PieceType) MarshalText() ([]byte, error) {
	if p < 0 || p >= numPieceTypes {
		return nil, fmt.Errorf("invalid piece type: %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PieceType) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// StartingPieceCount returns the full per-seat supply for a piece type in
// the base game. Ships and fortresses only enter the supply under scenarios
// that use them.
func StartingPieceCount(p PieceType) int {
	switch p {
	case PieceRoad:
		return 15
	case PieceSettlement:
		return 5
	case PieceCity:
		return 4
	default:
		return 0
	}
}

// StartingPieceCounts returns the full per-seat supply for every piece type.
func StartingPieceCounts() map[PieceType]int {
	counts := make(map[PieceType]int, len(PieceTypes))
	for _, p := range PieceTypes {
		counts[p] = StartingPieceCount(p)
	}
	return counts
}
