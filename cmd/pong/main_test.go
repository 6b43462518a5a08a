package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/hostgame"
	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func held(keys ...ebiten.Key) hostgame.KeyFunc {
	return func(k ebiten.Key) bool {
		for _, key := range keys {
			if key == k {
				return true
			}
		}
		return false
	}
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want pong.Input
	}{
		{"none", nil, pong.Input{}},
		{"arrow up", []ebiten.Key{ebiten.KeyArrowUp}, pong.Input{Up: true}},
		{"s", []ebiten.Key{ebiten.KeyS}, pong.Input{Down: true}},
		{"both", []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowDown}, pong.Input{Up: true, Down: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := pong.NewStorage()
			readInput(storage, held(tt.keys...))

			var input *pong.Input
			require.True(t, storage.ReadSingleton(&input))
			assert.Equal(t, tt.want, *input)
		})
	}
}

func TestResizeStartsTheGame(t *testing.T) {
	storage := pong.NewStorage()
	resize(storage, 800, 600)
	require.True(t, pong.Spawn(storage))

	field := ecs.NewSingleton[spatial.Playfield](storage).Get()
	assert.Equal(t, spatial.Playfield{Width: 800, Height: 600}, *field)
}

func TestScoreLabels(t *testing.T) {
	storage := pong.NewStorage()
	assert.Nil(t, scoreLabels(storage, 800, 600))

	storage.AddSingleton(pong.Score{Player: 12, Ai: 3})
	labels := scoreLabels(storage, 800, 600)
	require.Len(t, labels, 2)
	assert.Equal(t, hostgame.Label{Text: "3", X: 24, Y: 24}, labels[0])
	assert.Equal(t, hostgame.Label{Text: "12", X: 800 - 24 - 12, Y: 24}, labels[1])
}
