package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theJ8910/jnbt/nbt"
)

func compoundWith(entries map[string]*nbt.Node) *nbt.Compound {
	root := nbt.NewCompound()
	c, _ := root.AsCompound()
	for name, n := range entries {
		c.Set(name, n)
	}
	return c
}

func TestDecodeLegacySection(t *testing.T) {
	blocks := make([]byte, 4096)
	blocks[0] = 1 // stone at i=0 (x=0,y=0,z=0)
	blocks[256] = 2 // grass at i=256 (y=1,z=0,x=0)

	data := make([]byte, 2048)

	c := compoundWith(map[string]*nbt.Node{
		"Y":      nbt.NewByte(0),
		"Blocks": nbt.NewByteArray(blocks),
		"Data":   nbt.NewByteArray(data),
	})

	section, err := DecodeSection(c, 0)
	require.NoError(t, err)
	assert.False(t, section.Empty)
	assert.Equal(t, "minecraft:stone", section.BlockAt(0, 0, 0))
	assert.Equal(t, "minecraft:grass", section.BlockAt(0, 1, 0))
	assert.Equal(t, "minecraft:air", section.BlockAt(1, 0, 0))
}

func paletteList(names ...string) *nbt.Node {
	list := nbt.NewList(nbt.KindCompound)
	l, _ := list.AsList()
	for _, name := range names {
		entry := nbt.NewCompound()
		ec, _ := entry.AsCompound()
		ec.Set("Name", nbt.NewString(name))
		_ = l.Append(entry)
	}
	return list
}

func TestDecodeModernSectionNonStraddling(t *testing.T) {
	names := []string{"minecraft:air", "minecraft:stone", "minecraft:dirt", "minecraft:grass", "minecraft:bedrock"}
	indices := make([]int, 4096)
	for i := range indices {
		indices[i] = i % len(names)
	}
	bits := bitsForPaletteSize(len(names))
	packed := buildPackedNonStraddling(indices, bits)

	c := compoundWith(map[string]*nbt.Node{
		"Y":           nbt.NewByte(3),
		"Palette":     paletteList(names...),
		"BlockStates": nbt.NewLongArray(packed),
	})

	section, err := DecodeSection(c, StraddlingThresholdDataVersion)
	require.NoError(t, err)
	assert.False(t, section.Empty)
	for i := 0; i < 4096; i++ {
		y := i / 256
		z := (i % 256) / 16
		x := i % 16
		assert.Equal(t, names[indices[i]], section.BlockAt(x, y, z))
	}
}

func TestDecodeModernSectionStraddling(t *testing.T) {
	names := []string{"minecraft:air", "minecraft:stone", "minecraft:dirt", "minecraft:grass", "minecraft:bedrock"}
	indices := make([]int, 4096)
	for i := range indices {
		indices[i] = i % len(names)
	}
	bits := bitsForPaletteSize(len(names))
	packed := buildPackedStraddling(indices, bits)

	c := compoundWith(map[string]*nbt.Node{
		"Y":           nbt.NewByte(3),
		"Palette":     paletteList(names...),
		"BlockStates": nbt.NewLongArray(packed),
	})

	section, err := DecodeSection(c, StraddlingThresholdDataVersion-1)
	require.NoError(t, err)
	for i := 0; i < 4096; i++ {
		y := i / 256
		z := (i % 256) / 16
		x := i % 16
		require.Equal(t, names[indices[i]], section.BlockAt(x, y, z))
	}
}

func TestDecodeSectionWithoutBlockDataIsEmpty(t *testing.T) {
	c := compoundWith(map[string]*nbt.Node{
		"Y": nbt.NewByte(10),
	})
	section, err := DecodeSection(c, 0)
	require.NoError(t, err)
	require.True(t, section.Empty)
}
