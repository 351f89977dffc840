package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Terrain kinds for board tiles.
const (
	TerrainHills    = "hills"
	TerrainMountain = "mountain"
	TerrainPasture  = "pasture"
	TerrainField    = "field"
	TerrainForest   = "forest"
	TerrainDesert   = "desert"
)

// Tile is one hex of the board.
type Tile struct {
	Terrain string `json:"terrain"`
	// Number is the dice number token on the tile, 0 for the desert.
	Number int `json:"number"`
}

// Board is the live board layout. The savegame core treats its serialized
// form as an opaque blob; only this package interprets it.
type Board struct {
	Tiles  []Tile `json:"tiles"`
	Robber int    `json:"robber"`
	Seed   int64  `json:"seed"`
}

// standardTerrainCounts is the tile bag of the base 19-hex board.
var standardTerrainCounts = []struct {
	terrain string
	count   int
}{
	{TerrainHills, 3},
	{TerrainMountain, 3},
	{TerrainPasture, 4},
	{TerrainField, 4},
	{TerrainForest, 4},
	{TerrainDesert, 1},
}

// standardNumbers are the dice number tokens placed on non-desert tiles.
var standardNumbers = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// NewBoard generates a shuffled base-game board layout from a seed.
func NewBoard(seed int64) *Board {
	rng := rand.New(rand.NewSource(seed))

	var tiles []Tile
	for _, tc := range standardTerrainCounts {
		for i := 0; i < tc.count; i++ {
			tiles = append(tiles, Tile{Terrain: tc.terrain})
		}
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	numbers := append([]int(nil), standardNumbers...)
	rng.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	robber := 0
	next := 0
	for i := range tiles {
		if tiles[i].Terrain == TerrainDesert {
			robber = i
			continue
		}
		tiles[i].Number = numbers[next]
		next++
	}

	return &Board{
		Tiles:  tiles,
		Robber: robber,
		Seed:   seed,
	}
}

// MarshalState serializes the board layout for a snapshot.
func (b *Board) MarshalState() (json.RawMessage, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board state: %v", err)
	}
	return data, nil
}

// UnmarshalBoardState reconstructs a board from its snapshot form.
func UnmarshalBoardState(data json.RawMessage) (*Board, error) {
	board := &Board{}
	if err := json.Unmarshal(data, board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board state: %v", err)
	}
	return board, nil
}
