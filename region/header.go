package region

import (
	"encoding/binary"
	"fmt"
)

// entries is the number of chunk slots in a region file: a 32x32 grid of
// chunks.
const entries = 1024

const sectorSize = 4096

// headerBytes is the combined size of the offset table and the timestamp
// table: two 4096-byte sectors.
const headerBytes = 2 * sectorSize

// Entry is one region-file header slot: a 3-byte sector offset packed with
// a 1-byte sector count, plus its corresponding last-modified timestamp
// from the second header sector.
type Entry struct {
	// Offset is the chunk's starting sector, or 0 if no chunk is stored at
	// this slot.
	Offset uint32
	// SectorCount is how many 4096-byte sectors the chunk occupies.
	SectorCount uint8
	// Timestamp is the chunk's last-modified time, in Unix seconds.
	Timestamp int32
}

func (e Entry) present() bool { return e.Offset != 0 }

// Header is the decoded offset + timestamp tables for a region file.
type Header struct {
	entries [entries]Entry
}

// decodeHeader parses the 8192-byte region file header.
func decodeHeader(raw []byte) (*Header, error) {
	if len(raw) != headerBytes {
		return nil, fmt.Errorf("region: header must be exactly %d bytes, got %d", headerBytes, len(raw))
	}
	h := &Header{}
	for i := 0; i < entries; i++ {
		packed := binary.BigEndian.Uint32(raw[i*4 : i*4+4])
		h.entries[i].Offset = packed >> 8
		h.entries[i].SectorCount = uint8(packed & 0xff)
	}
	for i := 0; i < entries; i++ {
		ts := binary.BigEndian.Uint32(raw[sectorSize+i*4 : sectorSize+i*4+4])
		h.entries[i].Timestamp = int32(ts)
	}
	return h, nil
}

// index maps region-local chunk coordinates (each in [0,32)) to a header
// slot index.
func index(localX, localZ int) (int, error) {
	if localX < 0 || localX > 31 || localZ < 0 || localZ > 31 {
		return 0, fmt.Errorf("region: local chunk coordinates (%d,%d) out of range [0,32)", localX, localZ)
	}
	return localX + localZ*32, nil
}

// Get returns the header entry for the given region-local chunk coordinates.
func (h *Header) Get(localX, localZ int) (Entry, error) {
	i, err := index(localX, localZ)
	if err != nil {
		return Entry{}, err
	}
	return h.entries[i], nil
}

// sectorsInFile reports how many 4096-byte sectors fit in a file of the
// given size, for Verify's sector-range scan.
func sectorsInFile(size int64) int64 {
	return size / sectorSize
}
