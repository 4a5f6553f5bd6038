package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kidgames/internal/game"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Parse(embedded)
	require.NoError(t, err)

	entries, playable := c.Stats()
	assert.Equal(t, 11, entries)
	assert.Equal(t, len(game.Kinds()), playable)

	for _, k := range game.Kinds() {
		found := false
		for _, e := range c.Entries {
			if e.Game == k {
				found = true
			}
		}
		assert.True(t, found, "no landing card for %s", k)
	}

	bingo, ok := c.Lookup("bingo")
	require.True(t, ok)
	assert.False(t, bingo.Playable())
	assert.Equal(t, "#", bingo.Link)
}

func TestEmbeddedImagesFitGames(t *testing.T) {
	c, err := Parse(embedded)
	require.NoError(t, err)
	a := c.Assets()

	assert.Len(t, a.Critters, 8)
	assert.Len(t, a.MemoryGame, 20)
	assert.Len(t, a.MemoryCards, 11)

	assert.NoError(t, game.CountCritters(a.Critters).Validate())
	assert.NoError(t, game.MemoryGame(a.MemoryGame).Validate())
	assert.NoError(t, game.MemoryCards(a.MemoryCards).Validate())
}

func TestAssetsAreCopies(t *testing.T) {
	c, err := Parse(embedded)
	require.NoError(t, err)
	a := c.Assets()
	a.Critters[0] = "mutated"
	assert.NotEqual(t, "mutated", c.Assets().Critters[0])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "games: [\n"},
		{"empty", "games: []"},
		{"missing slug", `
games:
  - name: Bingo
images: {critters: [a], memory-game: [a], memory-cards: [a]}`},
		{"duplicate slug", `
games:
  - {name: A, slug: a}
  - {name: B, slug: a}
images: {critters: [a], memory-game: [a], memory-cards: [a]}`},
		{"unknown game", `
games:
  - {name: A, slug: a, game: hopscotch}
images: {critters: [a], memory-game: [a], memory-cards: [a]}`},
		{"missing images", `
games:
  - {name: A, slug: a}
images: {critters: [a]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(`
games:
  - {name: A, slug: a, game: hopscotch}
images: {critters: [a], memory-game: [a], memory-cards: [a]}`))
	assert.ErrorIs(t, err, game.ErrUnknownKind)
}
