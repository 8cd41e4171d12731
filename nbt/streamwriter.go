package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
)

type writerFrame struct {
	kind      Kind // KindCompound or KindList
	isRoot    bool
	elemKind  Kind  // valid when kind == KindList
	remaining int32 // valid when kind == KindList
}

// Writer is a producer-driven NBT emitter mirroring the parser's event set.
// It validates structural well-formedness as tags are pushed and never
// buffers: bytes are written as soon as they're fully determined.
// A Writer is not safe for concurrent use.
type Writer struct {
	bw    *ByteWriter
	stack []writerFrame
}

// NewWriter wraps w. Callers drive it with Start, value calls, and End.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: NewByteWriter(w)}
}

func (w *Writer) structuralError(format string, args ...interface{}) error {
	return newError(ErrStructuralError, w.bw.Pos(), fmt.Sprintf(format, args...))
}

func (w *Writer) top() (*writerFrame, error) {
	if len(w.stack) == 0 {
		return nil, w.structuralError("no open container")
	}
	return &w.stack[len(w.stack)-1], nil
}

// Start begins the document, writing the root TAG_Compound's header.
func (w *Writer) Start(rootName string) error {
	if len(w.stack) != 0 {
		return w.structuralError("Start called with an already-open document")
	}
	if err := w.bw.WriteByte(byte(KindCompound)); err != nil {
		return err
	}
	if err := w.bw.WriteString(rootName); err != nil {
		return err
	}
	w.stack = append(w.stack, writerFrame{kind: KindCompound, isRoot: true})
	return nil
}

// End closes the document. The root compound must be the only open frame.
func (w *Writer) End() error {
	if len(w.stack) != 1 || !w.stack[0].isRoot {
		return w.structuralError("End called without a matching Start, or with unclosed containers")
	}
	if err := w.bw.WriteByte(byte(KindEnd)); err != nil {
		return err
	}
	w.stack = w.stack[:0]
	return nil
}

// writePrefix emits the (kind, name) header when writing at compound scope,
// or validates and accounts for the (header-less) element at list scope.
// Every value-writing method funnels through this before emitting its
// payload.
func (w *Writer) writePrefix(kind Kind, name *string) error {
	top, err := w.top()
	if err != nil {
		return err
	}
	switch top.kind {
	case KindCompound:
		if name == nil {
			return w.structuralError("a compound entry requires a name")
		}
		if err := w.bw.WriteByte(byte(kind)); err != nil {
			return err
		}
		return w.bw.WriteString(*name)
	case KindList:
		if name != nil {
			return w.structuralError("a list element must not have a name")
		}
		if kind != top.elemKind {
			return w.structuralError("list element kind mismatch: list holds %s, got %s", top.elemKind, kind)
		}
		if top.remaining <= 0 {
			return w.structuralError("more elements written than the list's declared length")
		}
		top.remaining--
		return nil
	default:
		return w.structuralError("current container is not a compound or list")
	}
}

func (w *Writer) Byte(name *string, v int8) error {
	if err := w.writePrefix(KindByte, name); err != nil {
		return err
	}
	return w.bw.WriteInt8(v)
}

func (w *Writer) Short(name *string, v int16) error {
	if err := w.writePrefix(KindShort, name); err != nil {
		return err
	}
	return w.bw.WriteInt16(v)
}

func (w *Writer) Int(name *string, v int32) error {
	if err := w.writePrefix(KindInt, name); err != nil {
		return err
	}
	return w.bw.WriteInt32(v)
}

func (w *Writer) Long(name *string, v int64) error {
	if err := w.writePrefix(KindLong, name); err != nil {
		return err
	}
	return w.bw.WriteInt64(v)
}

func (w *Writer) Float(name *string, v float32) error {
	if err := w.writePrefix(KindFloat, name); err != nil {
		return err
	}
	return w.bw.WriteFloat32(v)
}

func (w *Writer) Double(name *string, v float64) error {
	if err := w.writePrefix(KindDouble, name); err != nil {
		return err
	}
	return w.bw.WriteFloat64(v)
}

func (w *Writer) String(name *string, v string) error {
	if err := w.writePrefix(KindString, name); err != nil {
		return err
	}
	return w.bw.WriteString(v)
}

func (w *Writer) ByteArray(name *string, v []byte) error {
	if err := w.writePrefix(KindByteArray, name); err != nil {
		return err
	}
	if err := w.bw.WriteInt32(int32(len(v))); err != nil {
		return err
	}
	return w.bw.WriteExact(v)
}

func (w *Writer) IntArray(name *string, v []int32) error {
	if err := w.writePrefix(KindIntArray, name); err != nil {
		return err
	}
	if err := w.bw.WriteInt32(int32(len(v))); err != nil {
		return err
	}
	raw := make([]byte, len(v)*4)
	for i, x := range v {
		binary.BigEndian.PutUint32(raw[i*4:i*4+4], uint32(x))
	}
	return w.bw.WriteExact(raw)
}

func (w *Writer) LongArray(name *string, v []int64) error {
	if err := w.writePrefix(KindLongArray, name); err != nil {
		return err
	}
	if err := w.bw.WriteInt32(int32(len(v))); err != nil {
		return err
	}
	raw := make([]byte, len(v)*8)
	for i, x := range v {
		binary.BigEndian.PutUint64(raw[i*8:i*8+8], uint64(x))
	}
	return w.bw.WriteExact(raw)
}

// StartList writes a TAG_List header and pushes a LIST frame that tracks
// its declared element kind and remaining element count.
func (w *Writer) StartList(name *string, elementKind Kind, length int32) error {
	if err := w.writePrefix(KindList, name); err != nil {
		return err
	}
	if length < 0 {
		return w.structuralError("negative list length")
	}
	if err := w.bw.WriteByte(byte(elementKind)); err != nil {
		return err
	}
	if err := w.bw.WriteInt32(length); err != nil {
		return err
	}
	w.stack = append(w.stack, writerFrame{kind: KindList, elemKind: elementKind, remaining: length})
	return nil
}

// EndList pops the current LIST frame. Every declared element must have
// been written first.
func (w *Writer) EndList() error {
	top, err := w.top()
	if err != nil {
		return err
	}
	if top.kind != KindList {
		return w.structuralError("EndList called while not inside a list")
	}
	if top.remaining != 0 {
		return w.structuralError("EndList called with %d elements still unwritten", top.remaining)
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

// StartCompound writes a TAG_Compound header (or, inside a list, just
// accounts for the element) and pushes a COMPOUND frame.
func (w *Writer) StartCompound(name *string) error {
	if err := w.writePrefix(KindCompound, name); err != nil {
		return err
	}
	w.stack = append(w.stack, writerFrame{kind: KindCompound})
	return nil
}

// EndCompound writes the TAG_End terminator and pops the current COMPOUND
// frame. The root compound is closed with End, not EndCompound.
func (w *Writer) EndCompound() error {
	top, err := w.top()
	if err != nil {
		return err
	}
	if top.kind != KindCompound || top.isRoot {
		return w.structuralError("EndCompound called while not inside a nested compound")
	}
	if err := w.bw.WriteByte(byte(KindEnd)); err != nil {
		return err
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}
