package gamelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfieldgame/hexfield/pkg/game"
)

func TestGameList(t *testing.T) {
	gl := NewGameList()
	assert.Empty(t, gl.Names())
	assert.False(t, gl.Has("basic"))

	ga, err := game.NewGame("basic", nil)
	require.NoError(t, err)
	require.NoError(t, gl.Add(ga))

	assert.True(t, gl.Has("basic"))
	got, ok := gl.Get("basic")
	assert.True(t, ok)
	assert.Same(t, ga, got)
	assert.Equal(t, []string{"basic"}, gl.Names())

	// duplicate names are rejected
	dup, err := game.NewGame("basic", nil)
	require.NoError(t, err)
	assert.Error(t, gl.Add(dup))

	gl.Remove("basic")
	assert.False(t, gl.Has("basic"))
	_, ok = gl.Get("basic")
	assert.False(t, ok)
}
