package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ParseOptions configures optional, non-failing parser behavior.
type ParseOptions struct {
	// OnWarning, if non-nil, is invoked for conditions the parser tolerates
	// rather than rejects (currently: Open Question (a), a TAG_List
	// declaring element kind TAG_End with a nonzero length).
	OnWarning func(offset int64, message string)
}

type parseState struct {
	opts    *ParseOptions
	aborted bool
}

func (s *parseState) warn(offset int64, format string, args ...interface{}) {
	if s.opts != nil && s.opts.OnWarning != nil {
		s.opts.OnWarning(offset, fmt.Sprintf(format, args...))
	}
}

// Parse performs a single top-down walk of an uncompressed NBT byte stream,
// driving h as it goes. The root tag must be a named TAG_Compound; any
// other shape fails with InvalidRoot.
func Parse(r io.Reader, h Handler, opts *ParseOptions) error {
	br := NewByteReader(r)
	st := &parseState{opts: opts}

	kindByte, err := br.ReadByte()
	if err != nil {
		if isKind(err, ErrUnexpectedEnd) {
			return newError(ErrInvalidRoot, 0, "document is empty")
		}
		return err
	}

	kind := Kind(kindByte)
	if kind == KindEnd {
		return newError(ErrInvalidRoot, br.Pos()-1, "root tag must not be TAG_End")
	}
	if !kind.Valid() {
		return newError(ErrInvalidKind, br.Pos()-1, fmt.Sprintf("kind byte %d out of range", kindByte))
	}
	if kind != KindCompound {
		return newError(ErrInvalidRoot, br.Pos()-1, fmt.Sprintf("root tag must be TAG_Compound, got %s", kind))
	}

	name, err := br.ReadString()
	if err != nil {
		return err
	}

	ctrl := h.Start(name)
	if ctrl == Abort {
		return nil
	}
	handler := h
	if ctrl == Skip {
		handler = BaseHandler{}
	}

	if err := parseCompoundEntries(br, handler, st); err != nil {
		return err
	}
	if !st.aborted && ctrl != Skip {
		h.End()
	}
	return nil
}

func isKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// parseCompoundEntries reads named tags until a TAG_End terminator, used for
// both the root scope (called directly from Parse) and nested TAG_Compound
// scopes (called from parseCompoundTag).
func parseCompoundEntries(br *ByteReader, h Handler, st *parseState) error {
	for {
		kindByte, err := br.ReadByte()
		if err != nil {
			return err
		}
		kind := Kind(kindByte)
		if kind == KindEnd {
			return nil
		}
		if !kind.Valid() {
			return newError(ErrInvalidKind, br.Pos()-1, fmt.Sprintf("kind byte %d out of range", kindByte))
		}
		name, err := br.ReadString()
		if err != nil {
			return err
		}

		// Duplicate-name and list-element-kind-mismatch enforcement is left
		// to the materializer (§7): pure stream parsing takes the wire data
		// at face value and simply forwards events in document order.
		if err := dispatchValue(br, h, st, kind, &name); err != nil {
			return err
		}
		if st.aborted {
			return nil
		}
	}
}

func dispatchValue(br *ByteReader, h Handler, st *parseState, kind Kind, name *string) error {
	switch kind {
	case KindByte:
		v, err := br.ReadInt8()
		if err != nil {
			return err
		}
		if h.Byte(name, v) == Abort {
			st.aborted = true
		}
	case KindShort:
		v, err := br.ReadInt16()
		if err != nil {
			return err
		}
		if h.Short(name, v) == Abort {
			st.aborted = true
		}
	case KindInt:
		v, err := br.ReadInt32()
		if err != nil {
			return err
		}
		if h.Int(name, v) == Abort {
			st.aborted = true
		}
	case KindLong:
		v, err := br.ReadInt64()
		if err != nil {
			return err
		}
		if h.Long(name, v) == Abort {
			st.aborted = true
		}
	case KindFloat:
		v, err := br.ReadFloat32()
		if err != nil {
			return err
		}
		if h.Float(name, v) == Abort {
			st.aborted = true
		}
	case KindDouble:
		v, err := br.ReadFloat64()
		if err != nil {
			return err
		}
		if h.Double(name, v) == Abort {
			st.aborted = true
		}
	case KindString:
		v, err := br.ReadString()
		if err != nil {
			return err
		}
		if h.String(name, v) == Abort {
			st.aborted = true
		}
	case KindByteArray:
		return parseByteArrayTag(br, h, st, name)
	case KindIntArray:
		return parseIntArrayTag(br, h, st, name)
	case KindLongArray:
		return parseLongArrayTag(br, h, st, name)
	case KindList:
		return parseListTag(br, h, st, name)
	case KindCompound:
		return parseCompoundTag(br, h, st, name)
	default:
		return newError(ErrInvalidKind, br.Pos(), fmt.Sprintf("unsupported kind %d", kind))
	}
	return nil
}

func parseByteArrayTag(br *ByteReader, h Handler, st *parseState, name *string) error {
	length, err := br.ReadInt32()
	if err != nil {
		return err
	}
	if length < 0 {
		return newError(ErrNegativeLength, br.Pos(), "negative TAG_Byte_Array length")
	}
	data, err := br.ReadExact(int(length))
	if err != nil {
		return err
	}
	if h.ByteArray(name, data) == Abort {
		st.aborted = true
	}
	return nil
}

func parseIntArrayTag(br *ByteReader, h Handler, st *parseState, name *string) error {
	length, err := br.ReadInt32()
	if err != nil {
		return err
	}
	if length < 0 {
		return newError(ErrNegativeLength, br.Pos(), "negative TAG_Int_Array length")
	}
	raw, err := br.ReadExact(int(length) * 4)
	if err != nil {
		return err
	}
	values := make([]int32, length)
	for i := range values {
		values[i] = int32(binary.BigEndian.Uint32(raw[i*4 : i*4+4]))
	}
	if h.IntArray(name, values) == Abort {
		st.aborted = true
	}
	return nil
}

func parseLongArrayTag(br *ByteReader, h Handler, st *parseState, name *string) error {
	length, err := br.ReadInt32()
	if err != nil {
		return err
	}
	if length < 0 {
		return newError(ErrNegativeLength, br.Pos(), "negative TAG_Long_Array length")
	}
	raw, err := br.ReadExact(int(length) * 8)
	if err != nil {
		return err
	}
	values := make([]int64, length)
	for i := range values {
		values[i] = int64(binary.BigEndian.Uint64(raw[i*8 : i*8+8]))
	}
	if h.LongArray(name, values) == Abort {
		st.aborted = true
	}
	return nil
}

func parseListTag(br *ByteReader, h Handler, st *parseState, name *string) error {
	elemKindByte, err := br.ReadByte()
	if err != nil {
		return err
	}
	elemKind := Kind(elemKindByte)
	length, err := br.ReadInt32()
	if err != nil {
		return err
	}
	if length < 0 {
		return newError(ErrNegativeLength, br.Pos(), "negative TAG_List length")
	}
	if !elemKind.Valid() {
		return newError(ErrInvalidKind, br.Pos(), fmt.Sprintf("list element kind %d out of range", elemKindByte))
	}
	if elemKind == KindEnd && length > 0 {
		st.warn(br.Pos(), "TAG_List declares element kind TAG_End with length %d; treating as empty", length)
		length = 0
	}

	ctrl := h.StartList(name, elemKind, length)
	if ctrl == Abort {
		st.aborted = true
		return nil
	}
	elementHandler := h
	if ctrl == Skip {
		elementHandler = BaseHandler{}
	}

	for i := int32(0); i < length; i++ {
		if err := dispatchValue(br, elementHandler, st, elemKind, nil); err != nil {
			return err
		}
		if st.aborted {
			return nil
		}
	}

	if ctrl != Skip {
		if h.EndList() == Abort {
			st.aborted = true
		}
	}
	return nil
}

func parseCompoundTag(br *ByteReader, h Handler, st *parseState, name *string) error {
	ctrl := h.StartCompound(name)
	if ctrl == Abort {
		st.aborted = true
		return nil
	}
	entryHandler := h
	if ctrl == Skip {
		entryHandler = BaseHandler{}
	}

	if err := parseCompoundEntries(br, entryHandler, st); err != nil {
		return err
	}
	if st.aborted {
		return nil
	}
	if ctrl != Skip {
		if h.EndCompound() == Abort {
			st.aborted = true
		}
	}
	return nil
}
