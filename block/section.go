package block

import (
	"github.com/theJ8910/jnbt/nbt"
)

// Section is one 16x16x16 sub-volume of a chunk, decoded to resolved block
// (and, where present, biome) names regardless of which on-disk layout
// produced it.
type Section struct {
	Y int8

	// Blocks holds 4096 resolved block names, indexed by
	// i = y*256 + z*16 + x (y, z, x each in [0,16)).
	Blocks [4096]string

	// Biomes holds 64 resolved biome names, indexed by
	// i = y*16 + z*4 + x (y, z, x each in [0,4)), or is nil if this
	// section's chunk predates biome palettes.
	Biomes []string

	// Meta holds legacy per-block metadata nibbles, indexed the same way as
	// Blocks. Always zero-valued for modern (palette) sections, whose block
	// state variations are folded into the palette entry's name instead.
	Meta [4096]byte

	// Empty is true for a section with no block data at all: such sections
	// are skipped and treated as all-air unless the caller asks otherwise.
	Empty bool
}

// BlockAt returns the resolved block name at local section coordinates
// (x, y, z), each in [0,16).
func (s *Section) BlockAt(x, y, z int) string {
	return s.Blocks[y*256+z*16+x]
}

// BiomeAt returns the resolved biome name at local section coordinates
// (x, y, z), each in [0,4), or "" if this section has no biome data.
func (s *Section) BiomeAt(x, y, z int) string {
	if s.Biomes == nil {
		return ""
	}
	return s.Biomes[y*16+z*4+x]
}

// DecodeSection decodes one section compound (an entry of a chunk's
// Sections list), dispatching to the legacy or modern layout based on
// which fields are present. dataVersion selects the modern layout's
// packed-long variant; it's ignored for legacy sections.
func DecodeSection(c *nbt.Compound, dataVersion int32) (*Section, error) {
	yNode, ok := c.Get("Y")
	var y int8
	if ok {
		v, err := yNode.AsByte()
		if err != nil {
			return nil, wrapError(ErrMalformedSection, 0, 0, y, "Y", err)
		}
		y = v
	}

	if _, ok := c.Get("Blocks"); ok {
		ids, err := decodeLegacySection(c, y)
		if err != nil {
			return nil, err
		}
		meta, err := decodeLegacyData(c, y)
		if err != nil {
			return nil, err
		}
		s := &Section{Y: y, Meta: meta}
		for i, id := range ids {
			s.Blocks[i] = legacyBlockName(id)
		}
		return s, nil
	}

	if _, hasPalette := c.Get("Palette"); hasPalette {
		if _, hasStates := c.Get("BlockStates"); hasStates {
			blocks, err := decodeModernBlocks(c, dataVersion, y)
			if err != nil {
				return nil, err
			}
			biomes, err := decodeModernBiomes(c, dataVersion, y)
			if err != nil {
				return nil, err
			}
			return &Section{Y: y, Blocks: blocks, Biomes: biomes}, nil
		}
	}

	return &Section{Y: y, Empty: true}, nil
}
