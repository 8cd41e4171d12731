package block

import (
	"fmt"

	"github.com/theJ8910/jnbt/nbt"
)

// paletteEntry is one entry of a modern section's block or biome Palette:
// a namespaced name, plus (for blocks only) optional state properties this
// module doesn't need to interpret to resolve block identity.
type paletteEntry struct {
	Name string
}

func decodePalette(listNode *nbt.Node, sectionY int8) ([]paletteEntry, error) {
	list, err := listNode.AsList()
	if err != nil {
		return nil, malformedWrap(sectionY, "Palette", err)
	}
	entries := make([]paletteEntry, list.Len())
	for i, item := range list.Items() {
		compound, err := item.AsCompound()
		if err != nil {
			return nil, malformedWrap(sectionY, fmt.Sprintf("Palette[%d]", i), err)
		}
		nameNode, ok := compound.Get("Name")
		if !ok {
			return nil, malformed(sectionY, fmt.Sprintf("Palette[%d]: missing Name", i))
		}
		name, err := nameNode.AsString()
		if err != nil {
			return nil, malformedWrap(sectionY, fmt.Sprintf("Palette[%d].Name", i), err)
		}
		entries[i] = paletteEntry{Name: name}
	}
	return entries, nil
}

// decodeModernBlocks decodes a palette section's Palette/BlockStates pair
// into 4096 resolved block names, selecting the straddling or
// non-straddling packed-long layout per dataVersion.
func decodeModernBlocks(c *nbt.Compound, dataVersion int32, sectionY int8) ([4096]string, error) {
	var out [4096]string

	paletteNode, ok := c.Get("Palette")
	if !ok {
		return out, malformed(sectionY, "missing Palette")
	}
	palette, err := decodePalette(paletteNode, sectionY)
	if err != nil {
		return out, err
	}
	if len(palette) == 0 {
		return out, malformed(sectionY, "Palette is empty")
	}

	statesNode, ok := c.Get("BlockStates")
	if !ok {
		return out, malformed(sectionY, "missing BlockStates")
	}
	states, err := statesNode.AsLongArray()
	if err != nil {
		return out, malformedWrap(sectionY, "BlockStates", err)
	}

	bits := bitsForPaletteSize(len(palette))
	straddle := dataVersion < StraddlingThresholdDataVersion
	indices := unpackIndices(states, bits, 4096, straddle)

	for i, idx := range indices {
		if idx < 0 || idx >= len(palette) {
			return out, malformed(sectionY, fmt.Sprintf("decoded palette index %d out of range [0,%d) at position %d", idx, len(palette), i))
		}
		out[i] = palette[idx].Name
	}
	return out, nil
}

// decodeModernBiomes decodes a section's biomes sub-compound (same
// palette-plus-packed-indices machinery as blocks, over a 4x4x4 grid
// instead of 16x16x16) into 64 resolved biome names. Returns nil, nil if
// the section has no biomes sub-compound (older saves).
func decodeModernBiomes(c *nbt.Compound, dataVersion int32, sectionY int8) ([]string, error) {
	biomesNode, ok := c.Get("biomes")
	if !ok {
		return nil, nil
	}
	biomesCompound, err := biomesNode.AsCompound()
	if err != nil {
		return nil, malformedWrap(sectionY, "biomes", err)
	}

	paletteNode, ok := biomesCompound.Get("palette")
	if !ok {
		return nil, malformed(sectionY, "biomes: missing palette")
	}
	list, err := paletteNode.AsList()
	if err != nil {
		return nil, malformedWrap(sectionY, "biomes.palette", err)
	}
	names := make([]string, list.Len())
	for i, item := range list.Items() {
		name, err := item.AsString()
		if err != nil {
			return nil, malformedWrap(sectionY, fmt.Sprintf("biomes.palette[%d]", i), err)
		}
		names[i] = name
	}
	if len(names) == 0 {
		return nil, malformed(sectionY, "biomes.palette is empty")
	}

	// A single-entry palette has no accompanying data array: every cell is
	// that one biome.
	if len(names) == 1 {
		out := make([]string, 64)
		for i := range out {
			out[i] = names[0]
		}
		return out, nil
	}

	dataNode, ok := biomesCompound.Get("data")
	if !ok {
		return nil, malformed(sectionY, "biomes: missing data")
	}
	data, err := dataNode.AsLongArray()
	if err != nil {
		return nil, malformedWrap(sectionY, "biomes.data", err)
	}

	bits := bitsForPaletteSize(len(names))
	straddle := dataVersion < StraddlingThresholdDataVersion
	indices := unpackIndices(data, bits, 64, straddle)

	out := make([]string, 64)
	for i, idx := range indices {
		if idx < 0 || idx >= len(names) {
			return nil, malformed(sectionY, fmt.Sprintf("decoded biome palette index %d out of range [0,%d) at position %d", idx, len(names), i))
		}
		out[i] = names[idx]
	}
	return out, nil
}
