package nbt

import (
	"encoding/binary"
	"io"
)

// maxEagerAlloc bounds how much memory ReadExact will reserve up front for a
// single claimed length. Longer reads are grown incrementally via io.ReadFull
// so that a corrupt or hostile length field can't force a huge allocation
// before any of the claimed bytes have actually been verified to exist.
const maxEagerAlloc = 64 * 1024

// ByteReader wraps an io.Reader with big-endian primitive reads, a running
// byte offset (for error reporting), and a bounded-read helper that never
// over-allocates on a claimed length.
type ByteReader struct {
	r   io.Reader
	pos int64
}

// NewByteReader wraps r. r is not required to support seeking; the reader
// only moves forward.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{r: r}
}

// Pos returns the number of bytes consumed so far.
func (r *ByteReader) Pos() int64 { return r.pos }

// ReadExact reads exactly n bytes, failing with UnexpectedEnd if the
// underlying reader runs dry first.
func (r *ByteReader) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, newError(ErrNegativeLength, r.pos, "negative read length")
	}
	if n == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, 0, minInt(n, maxEagerAlloc))
	remaining := n
	for remaining > 0 {
		chunk := minInt(remaining, maxEagerAlloc)
		start := len(buf)
		buf = append(buf, make([]byte, chunk)...)
		read, err := io.ReadFull(r.r, buf[start:start+chunk])
		r.pos += int64(read)
		if err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return nil, wrapError(ErrUnexpectedEnd, r.pos, "stream ended mid-tag", err)
			}
			return nil, wrapError(ErrIoFailure, r.pos, "read failed", err)
		}
		remaining -= chunk
	}
	return buf, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (r *ByteReader) ReadByte() (byte, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ByteReader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func (r *ByteReader) ReadInt16() (int16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *ByteReader) ReadInt32() (int32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *ByteReader) ReadInt64() (int64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *ByteReader) ReadFloat32() (float32, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	return int32BitsToFloat32(v), nil
}

func (r *ByteReader) ReadFloat64() (float64, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	return int64BitsToFloat64(v), nil
}

// ReadString reads a modified-UTF-8 STRING payload: an unsigned 2-byte BE
// length (0-65535) followed by that many bytes.
func (r *ByteReader) ReadString() (string, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return "", err
	}
	length := binary.BigEndian.Uint16(b)
	raw, err := r.ReadExact(int(length))
	if err != nil {
		return "", err
	}
	s, err := DecodeModifiedUTF8(raw)
	if err != nil {
		return "", wrapError(ErrInvalidUtf8, r.pos, "malformed modified UTF-8 string", err)
	}
	return s, nil
}
