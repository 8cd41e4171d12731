package nbt

import "fmt"

// Node is a tagged union over the 13 NBT value shapes. The zero Node is
// not valid; use one of the New* constructors.
type Node struct {
	kind Kind

	i8  int8
	i16 int16
	i32 int32
	i64 int64
	f32 float32
	f64 float64

	str string

	bytes []byte
	ints  []int32
	longs []int64

	list     *List
	compound *Compound
}

func (n *Node) Kind() Kind { return n.kind }

func wrongKind(expected, actual Kind) error {
	return newError(ErrWrongKind, -1, fmt.Sprintf("expected %s, got %s", expected, actual))
}

// --- constructors ---

func NewByte(v int8) *Node      { return &Node{kind: KindByte, i8: v} }
func NewShort(v int16) *Node    { return &Node{kind: KindShort, i16: v} }
func NewInt(v int32) *Node      { return &Node{kind: KindInt, i32: v} }
func NewLong(v int64) *Node     { return &Node{kind: KindLong, i64: v} }
func NewFloat(v float32) *Node  { return &Node{kind: KindFloat, f32: v} }
func NewDouble(v float64) *Node { return &Node{kind: KindDouble, f64: v} }
func NewString(v string) *Node  { return &Node{kind: KindString, str: v} }

func NewByteArray(v []byte) *Node  { return &Node{kind: KindByteArray, bytes: v} }
func NewIntArray(v []int32) *Node  { return &Node{kind: KindIntArray, ints: v} }
func NewLongArray(v []int64) *Node { return &Node{kind: KindLongArray, longs: v} }

// NewList creates an empty list. elementKind may be KindEnd, meaning the
// list's element kind is not yet bound; it binds to the kind of the first
// node appended.
func NewList(elementKind Kind) *Node {
	return &Node{kind: KindList, list: &List{elemKind: elementKind}}
}

func NewCompound() *Node {
	return &Node{kind: KindCompound, compound: newCompound()}
}

// --- typed accessors; each fails with WrongKind if n.kind differs ---

func (n *Node) AsByte() (int8, error) {
	if n.kind != KindByte {
		return 0, wrongKind(KindByte, n.kind)
	}
	return n.i8, nil
}

func (n *Node) AsShort() (int16, error) {
	if n.kind != KindShort {
		return 0, wrongKind(KindShort, n.kind)
	}
	return n.i16, nil
}

func (n *Node) AsInt() (int32, error) {
	if n.kind != KindInt {
		return 0, wrongKind(KindInt, n.kind)
	}
	return n.i32, nil
}

func (n *Node) AsLong() (int64, error) {
	if n.kind != KindLong {
		return 0, wrongKind(KindLong, n.kind)
	}
	return n.i64, nil
}

func (n *Node) AsFloat() (float32, error) {
	if n.kind != KindFloat {
		return 0, wrongKind(KindFloat, n.kind)
	}
	return n.f32, nil
}

func (n *Node) AsDouble() (float64, error) {
	if n.kind != KindDouble {
		return 0, wrongKind(KindDouble, n.kind)
	}
	return n.f64, nil
}

func (n *Node) AsString() (string, error) {
	if n.kind != KindString {
		return "", wrongKind(KindString, n.kind)
	}
	return n.str, nil
}

func (n *Node) AsByteArray() ([]byte, error) {
	if n.kind != KindByteArray {
		return nil, wrongKind(KindByteArray, n.kind)
	}
	return n.bytes, nil
}

func (n *Node) AsIntArray() ([]int32, error) {
	if n.kind != KindIntArray {
		return nil, wrongKind(KindIntArray, n.kind)
	}
	return n.ints, nil
}

func (n *Node) AsLongArray() ([]int64, error) {
	if n.kind != KindLongArray {
		return nil, wrongKind(KindLongArray, n.kind)
	}
	return n.longs, nil
}

func (n *Node) AsList() (*List, error) {
	if n.kind != KindList {
		return nil, wrongKind(KindList, n.kind)
	}
	return n.list, nil
}

func (n *Node) AsCompound() (*Compound, error) {
	if n.kind != KindCompound {
		return nil, wrongKind(KindCompound, n.kind)
	}
	return n.compound, nil
}
