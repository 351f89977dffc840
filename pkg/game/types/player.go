package types

// Player is the per-seat live state. A vacant seat keeps a Player value
// with Vacant set, an empty name, zeroed resources, and a full piece supply.
type Player struct {
	Name          string
	Vacant        bool
	LockState     SeatLockState
	Resources     ResourceSet
	Pieces        map[PieceType]int
	VictoryPoints int
}

// NewVacantPlayer returns the live state of an empty seat.
func NewVacantPlayer() *Player {
	return &Player{
		Vacant: true,
		Pieces: StartingPieceCounts(),
	}
}

// Copy returns a deep copy of the player state.
func (p *Player) Copy() *Player {
	pieces := make(map[PieceType]int, len(p.Pieces))
	for t, n := range p.Pieces {
		pieces[t] = n
	}
	return &Player{
		Name:          p.Name,
		Vacant:        p.Vacant,
		LockState:     p.LockState,
		Resources:     p.Resources,
		Pieces:        pieces,
		VictoryPoints: p.VictoryPoints,
	}
}

// TakePiece removes one piece of the given type from the player's supply.
// It returns false if the supply is exhausted.
func (p *Player) TakePiece(t PieceType) bool {
	if p.Pieces[t] <= 0 {
		return false
	}
	p.Pieces[t]--
	return true
}

// ReturnPiece puts one piece of the given type back into the supply.
func (p *Player) ReturnPiece(t PieceType) {
	p.Pieces[t]++
}
