package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVisitSectionEmitsAirWithinPopulatedSection guards against
// over-eagerly filtering "minecraft:air" positions: a populated section
// with some air cells must still emit those positions regardless of
// IncludeAir, since only whole empty sections are exempt by default.
func TestVisitSectionEmitsAirWithinPopulatedSection(t *testing.T) {
	s := &Section{Y: 0}
	s.Blocks[0] = "minecraft:air"
	s.Blocks[1] = "minecraft:stone"

	var got []Block
	visit := func(b Block) error {
		got = append(got, b)
		return nil
	}

	require.NoError(t, visitSection(s, 0, 0, &IterateOptions{IncludeAir: false}, visit))
	require.Len(t, got, 4096)
	assert.Equal(t, "minecraft:air", got[0].Name)
	assert.Equal(t, "minecraft:stone", got[1].Name)
}

// TestVisitSectionSkipsEmptySectionUnlessIncludeAir checks the
// section-level gate that IncludeAir actually controls.
func TestVisitSectionSkipsEmptySectionUnlessIncludeAir(t *testing.T) {
	s := &Section{Y: 0, Empty: true}

	var count int
	visit := func(b Block) error {
		count++
		return nil
	}

	require.NoError(t, visitSection(s, 0, 0, &IterateOptions{IncludeAir: false}, visit))
	assert.Equal(t, 0, count)

	count = 0
	require.NoError(t, visitSection(s, 0, 0, &IterateOptions{IncludeAir: true}, visit))
	assert.Equal(t, 4096, count)
}
