package savegame

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfieldgame/hexfield/pkg/game/types"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
)

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.game.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// testModel returns a minimal valid snapshot document as a mutable map.
func testModel(t *testing.T) map[string]interface{} {
	t.Helper()
	ga := newBasicGame(t, "loadme")
	require.NoError(t, ga.Start())
	ga.SetPhase(types.PhaseRollOrCard)
	m, err := NewModelFromGame(ga)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func writeTestModel(t *testing.T, doc map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return writeTestFile(t, data)
}

func TestLoadMalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty file",
			data: []byte{},
		},
		{
			name: "truncated document",
			data: []byte(`{"modelVersion": 2500, "gameName": "oops"`),
		},
		{
			name: "not an object",
			data: []byte(`[1, 2, 3]`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTestFile(t, tt.data))
			require.Error(t, err)
			assert.True(t, IsParse(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.game.json"))
	require.Error(t, err)
	assert.False(t, IsParse(err))
}

func TestLoadUnsupportedVersion(t *testing.T) {
	doc := testModel(t)
	// a snapshot from a future release must fail loudly, never be
	// best-effort parsed
	doc["modelVersion"] = 9900

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsUnsupportedVersion(err))

	unsupported := &UnsupportedVersionError{}
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 9900, unsupported.Version)
	assert.Equal(t, CodeUnsupportedVersion, unsupported.ErrorCode())
	assert.Equal(t, "9900", unsupported.ErrorParams()["version"])
}

func TestLoadSupportedOlderVersion(t *testing.T) {
	doc := testModel(t)
	doc["modelVersion"] = 2400

	m, err := Load(writeTestModel(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 2400, m.ModelVersion)
}

func TestLoadSeatCountMismatch(t *testing.T) {
	doc := testModel(t)
	seats := doc["seats"].([]interface{})
	doc["seats"] = seats[:3]

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsInconsistent(err))

	inconsistent := &InconsistentError{}
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, "seats", inconsistent.Field)
	assert.Equal(t, "4", inconsistent.Want)
	assert.Equal(t, "3", inconsistent.Got)
}

func TestLoadVacantSeatWithResources(t *testing.T) {
	doc := testModel(t)
	seats := doc["seats"].([]interface{})
	vacant := seats[1].(map[string]interface{})
	vacant["resources"] = map[string]interface{}{
		"clay": 1, "ore": 0, "sheep": 0, "wheat": 0, "wood": 0,
	}

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsInconsistent(err))
}

func TestLoadVacantSeatMissingPieces(t *testing.T) {
	doc := testModel(t)
	seats := doc["seats"].([]interface{})
	vacant := seats[2].(map[string]interface{})
	pieces := vacant["pieces"].(map[string]interface{})
	pieces["road"] = 11

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsInconsistent(err))
}

func TestLoadTurnHolderValidatedAgainstOccupancy(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{
			name:  "first player out of range",
			field: "firstPlayer",
			value: 7,
		},
		{
			name:  "first player vacant",
			field: "firstPlayer",
			value: 1,
		},
		{
			name:  "current player negative",
			field: "currentPlayer",
			value: -1,
		},
		{
			name:  "current player vacant",
			field: "currentPlayer",
			value: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testModel(t)
			doc[tt.field] = tt.value

			_, err := Load(writeTestModel(t, doc))
			require.Error(t, err)
			assert.True(t, IsInconsistent(err))

			inconsistent := &InconsistentError{}
			require.ErrorAs(t, err, &inconsistent)
			assert.Equal(t, tt.field, inconsistent.Field)
		})
	}
}

func TestLoadInitialPlacementPhaseRejected(t *testing.T) {
	doc := testModel(t)
	doc["phase"] = "START2B"

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsInconsistent(err))
}

func TestLoadNegativeResourcesRejected(t *testing.T) {
	doc := testModel(t)
	seats := doc["seats"].([]interface{})
	occupied := seats[0].(map[string]interface{})
	occupied["resources"] = map[string]interface{}{
		"clay": -1, "ore": 0, "sheep": 0, "wheat": 0, "wood": 0,
	}

	_, err := Load(writeTestModel(t, doc))
	require.Error(t, err)
	assert.True(t, IsInconsistent(err))
}

func TestLoadedModelIsNotRegistered(t *testing.T) {
	m, err := Load(writeTestModel(t, testModel(t)))
	require.NoError(t, err)

	gl := gamelist.NewGameList()
	ga, err := m.Materialize(gl)
	require.NoError(t, err)
	assert.False(t, gl.Has(ga.Name()))
}
