package region

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFile assembles a minimal region file: an 8192-byte header followed
// by whatever sector-aligned payload bytes the caller supplies.
func buildFile(t *testing.T, header [headerBytes]byte, payload []byte) *bytes.Reader {
	t.Helper()
	buf := make([]byte, headerBytes+len(payload))
	copy(buf, header[:])
	copy(buf[headerBytes:], payload)
	return bytes.NewReader(buf)
}

func setEntry(header *[headerBytes]byte, localX, localZ int, offset uint32, count uint8, timestamp int32) {
	i, err := index(localX, localZ)
	if err != nil {
		panic(err)
	}
	packed := offset<<8 | uint32(count)
	binary.BigEndian.PutUint32(header[i*4:i*4+4], packed)
	binary.BigEndian.PutUint32(header[sectorSize+i*4:sectorSize+i*4+4], uint32(timestamp))
}

func TestRegionLookupScenario(t *testing.T) {
	// header entry (offset=2, count=1) at (3,4); chunk payload starts at
	// byte 8192 (sector 2), length = compressed size + 1, compression=2 (zlib).
	var header [headerBytes]byte
	setEntry(&header, 3, 4, 2, 1, 1700000000)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	original := []byte("hello region world")
	_, err := zw.Write(original)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	payloadLen := uint32(compressed.Len() + 1) // +1 for the compression byte itself
	var chunkHeader [5]byte
	binary.BigEndian.PutUint32(chunkHeader[:4], payloadLen)
	chunkHeader[4] = 2 // zlib

	payload := append(append([]byte{}, chunkHeader[:]...), compressed.Bytes()...)
	// Pad to a whole sector so the file has a sensible size.
	for len(payload) < sectorSize {
		payload = append(payload, 0)
	}

	f := buildFile(t, header, payload)
	r, err := NewRegion(f, "", 0, 0)
	require.NoError(t, err)

	require.True(t, r.ChunkExists(3, 4))
	out, err := r.ReadChunk(3, 4)
	require.NoError(t, err)
	decoded := new(bytes.Buffer)
	_, err = decoded.ReadFrom(out)
	require.NoError(t, err)
	require.Equal(t, original, decoded.Bytes())

	require.False(t, r.ChunkExists(0, 0))
	_, err = r.ReadChunk(0, 0)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrNoSuchChunk, rerr.Kind)
}

func TestVerifyDetectsSectorOverlap(t *testing.T) {
	var header [headerBytes]byte
	// Chunk (0,0) claims sectors [2,4) and chunk (1,0) claims [3,4): both claim sector 3.
	setEntry(&header, 0, 0, 2, 2, 0)
	setEntry(&header, 1, 0, 3, 1, 0)

	payload := make([]byte, 4*sectorSize)
	f := buildFile(t, header, payload)
	r, err := NewRegion(f, "", 0, 0)
	require.NoError(t, err)

	err = r.Verify()
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrSectorOverlap, rerr.Kind)
}

func TestVerifyDetectsOutOfBoundsEntry(t *testing.T) {
	var header [headerBytes]byte
	setEntry(&header, 0, 0, 50, 1, 0) // claims sector 50 in a file with only a handful of sectors

	payload := make([]byte, 4*sectorSize)
	f := buildFile(t, header, payload)
	r, err := NewRegion(f, "", 0, 0)
	require.NoError(t, err)

	err = r.Verify()
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, ErrCorruptHeader, rerr.Kind)
}

func TestVerifyAcceptsNonOverlappingHeader(t *testing.T) {
	var header [headerBytes]byte
	setEntry(&header, 0, 0, 2, 1, 0)
	setEntry(&header, 1, 0, 3, 1, 0)

	payload := make([]byte, 4*sectorSize)
	f := buildFile(t, header, payload)
	r, err := NewRegion(f, "", 0, 0)
	require.NoError(t, err)
	require.NoError(t, r.Verify())
}

func TestParseRegionFilename(t *testing.T) {
	x, z, err := ParseRegionFilename("r.3.-4.mca")
	require.NoError(t, err)
	require.Equal(t, 3, x)
	require.Equal(t, -4, z)

	_, _, err = ParseRegionFilename("not-a-region-file.txt")
	require.Error(t, err)
}
