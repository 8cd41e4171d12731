package nbt

import (
	"encoding/binary"
	"io"
)

// ByteWriter wraps an io.Writer with big-endian primitive writes. It does not
// buffer: every Write* call is flushed immediately to the underlying writer.
type ByteWriter struct {
	w   io.Writer
	pos int64
}

func NewByteWriter(w io.Writer) *ByteWriter {
	return &ByteWriter{w: w}
}

func (w *ByteWriter) Pos() int64 { return w.pos }

func (w *ByteWriter) WriteExact(b []byte) error {
	n, err := w.w.Write(b)
	w.pos += int64(n)
	if err != nil {
		return wrapError(ErrIoFailure, w.pos, "write failed", err)
	}
	return nil
}

func (w *ByteWriter) WriteByte(b byte) error {
	return w.WriteExact([]byte{b})
}

func (w *ByteWriter) WriteInt8(v int8) error {
	return w.WriteByte(byte(v))
}

func (w *ByteWriter) WriteInt16(v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return w.WriteExact(buf[:])
}

func (w *ByteWriter) WriteInt32(v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return w.WriteExact(buf[:])
}

func (w *ByteWriter) WriteInt64(v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return w.WriteExact(buf[:])
}

func (w *ByteWriter) WriteFloat32(v float32) error {
	return w.WriteInt32(float32ToInt32Bits(v))
}

func (w *ByteWriter) WriteFloat64(v float64) error {
	return w.WriteInt64(float64ToInt64Bits(v))
}

// WriteString writes a modified-UTF-8 STRING payload: an unsigned 2-byte
// BE length (0-65535) followed by the encoded bytes.
func (w *ByteWriter) WriteString(s string) error {
	enc := EncodeModifiedUTF8(s)
	if len(enc) > 0xffff {
		return newError(ErrStructuralError, w.pos, "string too long to encode as a 16-bit length")
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(len(enc)))
	if err := w.WriteExact(buf[:]); err != nil {
		return err
	}
	return w.WriteExact(enc)
}
