package savegame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hexfieldgame/hexfield/pkg/game/types"
)

func TestSupportsModelVersion(t *testing.T) {
	assert.True(t, SupportsModelVersion(ModelVersion))
	assert.True(t, SupportsModelVersion(2400))
	assert.True(t, SupportsModelVersion(2300))

	assert.False(t, SupportsModelVersion(0))
	assert.False(t, SupportsModelVersion(2200))
	assert.False(t, SupportsModelVersion(ModelVersion+100))
}

func TestSupportsScenario(t *testing.T) {
	assert.True(t, SupportsScenario(types.ScenarioNone))
	assert.True(t, SupportsScenario(types.ScenarioFog))
	assert.False(t, SupportsScenario(types.ScenarioPirateIslands))
	assert.False(t, SupportsScenario(types.ScenarioForgottenTribe))
}
