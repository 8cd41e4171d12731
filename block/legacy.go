package block

import (
	"fmt"

	"github.com/theJ8910/jnbt/nbt"
)

// nibble returns the 4-bit value at nibble index idx within a byte array
// packed two nibbles per byte, low nibble first.
func nibble(arr []byte, idx int) byte {
	b := arr[idx>>1]
	if idx&1 == 0 {
		return b & 0x0F
	}
	return (b >> 4) & 0x0F
}

// decodeLegacySection decodes a pre-palette section's Blocks/Add/Data
// arrays into 4096 numeric block IDs, indexed by i = y*256 + z*16 + x.
func decodeLegacySection(c *nbt.Compound, sectionY int8) ([4096]int, error) {
	var out [4096]int

	blocksNode, ok := c.Get("Blocks")
	if !ok {
		return out, malformed(sectionY, "missing Blocks array")
	}
	blocks, err := blocksNode.AsByteArray()
	if err != nil {
		return out, malformedWrap(sectionY, "Blocks", err)
	}
	if len(blocks) != 4096 {
		return out, malformed(sectionY, fmt.Sprintf("Blocks array has %d entries, want 4096", len(blocks)))
	}

	var add []byte
	if addNode, ok := c.Get("Add"); ok {
		add, err = addNode.AsByteArray()
		if err != nil {
			return out, malformedWrap(sectionY, "Add", err)
		}
		if len(add) != 2048 {
			return out, malformed(sectionY, fmt.Sprintf("Add array has %d entries, want 2048", len(add)))
		}
	}

	for i := 0; i < 4096; i++ {
		id := int(blocks[i]) & 0xFF
		if add != nil {
			id |= int(nibble(add, i)) << 8
		}
		out[i] = id
	}
	return out, nil
}

// decodeLegacyData decodes a legacy section's 4-bit-per-block "Data"
// metadata array.
func decodeLegacyData(c *nbt.Compound, sectionY int8) ([4096]byte, error) {
	var out [4096]byte
	dataNode, ok := c.Get("Data")
	if !ok {
		return out, nil // absent metadata defaults to 0 for every block
	}
	data, err := dataNode.AsByteArray()
	if err != nil {
		return out, malformedWrap(sectionY, "Data", err)
	}
	if len(data) != 2048 {
		return out, malformed(sectionY, fmt.Sprintf("Data array has %d entries, want 2048", len(data)))
	}
	for i := 0; i < 4096; i++ {
		out[i] = nibble(data, i)
	}
	return out, nil
}
