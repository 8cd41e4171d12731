package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theJ8910/jnbt/nbt"
)

// compressionMask isolates the low 7 bits of a chunk's compression byte;
// bit 7 signals that the payload lives in an external ".mcc" sidecar file
// instead of being inlined after the length prefix.
const compressionMask = 0x7F
const externalFlag = 0x80

// Region gives random access to the up-to-1024 compressed chunk payloads
// stored in a single ".mcr"/".mca" file. A Region is not safe for
// concurrent use; distinct Region handles may be used concurrently.
type Region struct {
	source io.ReadSeeker
	closer io.Closer
	header *Header
	size   int64

	// dir and RegionX/RegionZ locate ".mcc" sidecar files, which are named
	// by absolute chunk coordinates rather than region-local ones.
	dir      string
	RegionX  int
	RegionZ  int
}

// Open opens the region file at path, deriving its region coordinates from
// the standard "r.<rx>.<rz>.mca"/".mcr" filename if it matches that
// pattern (regionX/regionZ are left at 0 otherwise; callers that already
// know the coordinates can ignore this and just not use the sidecar path).
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapError(ErrIoFailure, -1, -1, "failed to open region file", err)
	}
	rx, rz, _ := ParseRegionFilename(filepath.Base(path))
	r, err := NewRegion(f, filepath.Dir(path), rx, rz)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewRegion wraps an already-open source. dir is the directory to look for
// ".mcc" sidecar files in; pass "" if the caller knows the region file has
// none. regionX/regionZ are this region's coordinates, used only to name
// sidecar files.
func NewRegion(source io.ReadSeeker, dir string, regionX, regionZ int) (*Region, error) {
	r := &Region{source: source, dir: dir, RegionX: regionX, RegionZ: regionZ}

	if size, err := seekSize(source); err == nil {
		r.size = size
	} else {
		return nil, wrapError(ErrIoFailure, -1, -1, "failed to determine region file size", err)
	}

	if r.size < headerBytes {
		// A region file shorter than its own header is a CorruptHeader
		// report deferred to first access rather than Open failing outright
		// on e.g. a zero-byte placeholder file some tooling creates.
		r.header = &Header{}
		return r, nil
	}

	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, wrapError(ErrIoFailure, -1, -1, "failed to seek to header", err)
	}
	raw := make([]byte, headerBytes)
	if _, err := io.ReadFull(source, raw); err != nil {
		return nil, wrapError(ErrIoFailure, -1, -1, "failed to read header", err)
	}
	header, err := decodeHeader(raw)
	if err != nil {
		return nil, wrapError(ErrCorruptHeader, -1, -1, "malformed header", err)
	}
	r.header = header
	return r, nil
}

func seekSize(s io.ReadSeeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	size, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

// Close releases the underlying file, if Region opened it itself.
func (r *Region) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ChunkExists reports whether the header has a nonzero entry for the given
// region-local chunk coordinates.
func (r *Region) ChunkExists(localX, localZ int) bool {
	e, err := r.header.Get(localX, localZ)
	return err == nil && e.present()
}

// Timestamp returns the chunk's last-modified time, or zero if absent.
func (r *Region) Timestamp(localX, localZ int) (int32, error) {
	e, err := r.header.Get(localX, localZ)
	if err != nil {
		return 0, wrapError(ErrCorruptHeader, localX, localZ, "invalid chunk coordinates", err)
	}
	if !e.present() {
		return 0, nil
	}
	return e.Timestamp, nil
}

// ReadChunk reads and decompresses the chunk at region-local coordinates
// (localX, localZ), returning a reader over the raw (uncompressed) NBT
// bytes ready to hand to nbt.Parse or nbt.ParseTree, per the §4.F read
// protocol.
func (r *Region) ReadChunk(localX, localZ int) (io.Reader, error) {
	entry, err := r.header.Get(localX, localZ)
	if err != nil {
		return nil, wrapError(ErrCorruptHeader, localX, localZ, "invalid chunk coordinates", err)
	}
	if r.size < headerBytes {
		return nil, newError(ErrCorruptHeader, localX, localZ, fmt.Sprintf("%d-byte file is shorter than the %d-byte header", r.size, headerBytes))
	}
	if !entry.present() {
		return nil, newError(ErrNoSuchChunk, localX, localZ, "no chunk stored at these coordinates")
	}

	start := int64(entry.Offset) * sectorSize
	end := start + int64(entry.SectorCount)*sectorSize
	if entry.Offset < 2 || start >= r.size || end > r.size {
		return nil, newError(ErrCorruptHeader, localX, localZ, fmt.Sprintf("entry offset %d (sectors %d..%d) out of bounds for a %d-byte file", entry.Offset, entry.Offset, entry.Offset+uint32(entry.SectorCount), r.size))
	}

	if _, err := r.source.Seek(start, io.SeekStart); err != nil {
		return nil, wrapError(ErrIoFailure, localX, localZ, "failed to seek to chunk", err)
	}

	lenAndCompression := make([]byte, 5)
	if _, err := io.ReadFull(r.source, lenAndCompression); err != nil {
		return nil, wrapError(ErrTruncatedChunk, localX, localZ, "failed to read chunk length/compression header", err)
	}
	length := binary.BigEndian.Uint32(lenAndCompression[:4])
	compressionByte := lenAndCompression[4]

	var payload []byte
	if compressionByte&externalFlag != 0 {
		payload, err = r.readSidecar(localX, localZ)
		if err != nil {
			return nil, err
		}
	} else {
		if length == 0 {
			return nil, newError(ErrTruncatedChunk, localX, localZ, "zero-length chunk payload")
		}
		payload = make([]byte, length-1)
		if _, err := io.ReadFull(r.source, payload); err != nil {
			return nil, wrapError(ErrTruncatedChunk, localX, localZ, "chunk payload shorter than declared length", err)
		}
	}

	kind, err := compressionKindFromByte(compressionByte & compressionMask)
	if err != nil {
		return nil, wrapError(ErrUnknownCompression, localX, localZ, "unrecognized compression code", err)
	}
	decompressed, err := nbt.WrapDecompress(kind, bytes.NewReader(payload))
	if err != nil {
		return nil, wrapError(ErrIoFailure, localX, localZ, "failed to decompress chunk", err)
	}
	return decompressed, nil
}

func (r *Region) readSidecar(localX, localZ int) ([]byte, error) {
	if r.dir == "" {
		return nil, newError(ErrIoFailure, localX, localZ, "external chunk requires a sidecar directory")
	}
	chunkX := r.RegionX*32 + localX
	chunkZ := r.RegionZ*32 + localZ
	path := filepath.Join(r.dir, fmt.Sprintf("c.%d.%d.mcc", chunkX, chunkZ))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(ErrTruncatedChunk, localX, localZ, "failed to read external .mcc sidecar "+path, err)
	}
	return data, nil
}

func compressionKindFromByte(b byte) (nbt.CompressionKind, error) {
	switch b {
	case 1:
		return nbt.CompressionGzip, nil
	case 2:
		return nbt.CompressionZlib, nil
	case 3:
		return nbt.CompressionNone, nil
	default:
		return 0, fmt.Errorf("compression code %d", b)
	}
}
