package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinimalDocument round-trips the smallest possible document: an
// empty, named root compound.
func TestMinimalDocument(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00}

	root, rootName, err := ParseTree(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "hello", rootName)
	require.Equal(t, KindCompound, root.Kind())
	compound, err := root.AsCompound()
	require.NoError(t, err)
	require.Equal(t, 0, compound.Len())

	var out bytes.Buffer
	require.NoError(t, WriteTree(NewWriter(&out), rootName, root))
	require.Equal(t, raw, out.Bytes())
}

// TestPrimitiveRoundTrip round-trips one of every scalar tag kind through
// a single compound and checks the encoded byte length exactly.
func TestPrimitiveRoundTrip(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()
	require.NoError(t, c.Insert("b", NewByte(-1)))
	require.NoError(t, c.Insert("s", NewShort(258)))
	require.NoError(t, c.Insert("i", NewInt(65538)))
	require.NoError(t, c.Insert("l", NewLong(1)))
	require.NoError(t, c.Insert("f", NewFloat(1.0)))
	require.NoError(t, c.Insert("d", NewDouble(2.0)))

	var out bytes.Buffer
	require.NoError(t, WriteTree(NewWriter(&out), "root", root))

	// 1 (root kind) + 2 (root name len) + 4 ("root")
	// + (1+2+1+1) byte "b"
	// + (1+2+1+2) short "s"
	// + (1+2+1+4) int "i"
	// + (1+2+1+8) long "l"
	// + (1+2+1+4) float "f"
	// + (1+2+1+8) double "d"
	// + 1 (TAG_End)
	want := 1 + 2 + 4 +
		(1 + 2 + 1 + 1) +
		(1 + 2 + 1 + 2) +
		(1 + 2 + 1 + 4) +
		(1 + 2 + 1 + 8) +
		(1 + 2 + 1 + 4) +
		(1 + 2 + 1 + 8) +
		1
	require.Equal(t, want, out.Len())

	parsed, rootName, err := ParseTree(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "root", rootName)
	pc, err := parsed.AsCompound()
	require.NoError(t, err)

	bNode, _ := pc.Get("b")
	bVal, _ := bNode.AsByte()
	assert.Equal(t, int8(-1), bVal)

	sNode, _ := pc.Get("s")
	sVal, _ := sNode.AsShort()
	assert.Equal(t, int16(258), sVal)

	iNode, _ := pc.Get("i")
	iVal, _ := iNode.AsInt()
	assert.Equal(t, int32(65538), iVal)

	lNode, _ := pc.Get("l")
	lVal, _ := lNode.AsLong()
	assert.Equal(t, int64(1), lVal)

	fNode, _ := pc.Get("f")
	fVal, _ := fNode.AsFloat()
	assert.Equal(t, float32(1.0), fVal)

	dNode, _ := pc.Get("d")
	dVal, _ := dNode.AsDouble()
	assert.Equal(t, 2.0, dVal)
}

// TestListOfStringsRoundTrip inspects a TAG_List of TAG_String byte-by-byte
// and checks it round-trips through the parser.
func TestListOfStringsRoundTrip(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()
	list := NewList(KindString)
	l, _ := list.AsList()
	require.NoError(t, l.Append(NewString("ab")))
	require.NoError(t, l.Append(NewString("cd")))
	require.NoError(t, c.Insert("xs", list))

	var out bytes.Buffer
	require.NoError(t, WriteTree(NewWriter(&out), "root", root))

	body := out.Bytes()
	// Strip the root header (kind + name len + "root") to inspect the entry.
	entry := body[1+2+len("root"):]
	require.Equal(t, byte(KindList), entry[0])
	nameLen := int(entry[1])<<8 | int(entry[2])
	require.Equal(t, 2, nameLen)
	require.Equal(t, "xs", string(entry[3:5]))
	rest := entry[5:]
	require.Equal(t, byte(KindString), rest[0])
	require.Equal(t, []byte{0, 0, 0, 2}, rest[1:5])
	require.Equal(t, []byte{0x00, 0x02, 'a', 'b', 0x00, 0x02, 'c', 'd'}, rest[5:5+2+2+2+2])

	parsed, _, err := ParseTree(bytes.NewReader(body))
	require.NoError(t, err)
	pc, _ := parsed.AsCompound()
	xsNode, ok := pc.Get("xs")
	require.True(t, ok)
	xs, err := xsNode.AsList()
	require.NoError(t, err)
	require.Equal(t, KindString, xs.ElementKind())
	require.Equal(t, 2, xs.Len())
	v0, _ := xs.Items()[0].AsString()
	v1, _ := xs.Items()[1].AsString()
	assert.Equal(t, "ab", v0)
	assert.Equal(t, "cd", v1)
}

// TestModifiedUTF8RoundTrip covers the two cases that differ from standard
// UTF-8: an embedded NUL (encoded as two bytes, never a literal 0x00) and
// a supplementary-plane code point (encoded as a surrogate pair).
func TestModifiedUTF8RoundTrip(t *testing.T) {
	nul := "\x00"
	encNul := EncodeModifiedUTF8(nul)
	require.Equal(t, []byte{0xC0, 0x80}, encNul)
	decNul, err := DecodeModifiedUTF8(encNul)
	require.NoError(t, err)
	require.Equal(t, nul, decNul)

	emoji := string(rune(0x1F600))
	encEmoji := EncodeModifiedUTF8(emoji)
	require.Len(t, encEmoji, 6)
	decEmoji, err := DecodeModifiedUTF8(encEmoji)
	require.NoError(t, err)
	require.Equal(t, emoji, decEmoji)
}

func TestCompoundRejectsDuplicateNames(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()
	require.NoError(t, c.Insert("a", NewByte(1)))
	require.Error(t, c.Insert("a", NewByte(2)))
}

// TestListElementKindConsistency checks that every element inserted into a
// list must match the kind the list is bound to.
func TestListElementKindConsistency(t *testing.T) {
	list := NewList(KindInt)
	l, _ := list.AsList()
	require.NoError(t, l.Append(NewInt(1)))
	require.Error(t, l.Append(NewString("nope")))
}

// TestListIndexErrorsAreTyped checks that Get/Set/Remove on an out-of-range
// index return a *nbt.Error carrying ErrIndexOutOfRange, like every other
// documented error path in the package.
func TestListIndexErrorsAreTyped(t *testing.T) {
	list := NewList(KindInt)
	l, _ := list.AsList()
	require.NoError(t, l.Append(NewInt(1)))

	_, err := l.Get(5)
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, ErrIndexOutOfRange, nerr.Kind)

	err = l.Set(5, NewInt(2))
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, ErrIndexOutOfRange, nerr.Kind)

	err = l.Remove(5)
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, ErrIndexOutOfRange, nerr.Kind)
}

func TestLoadReaderRejectsNonCompoundRoot(t *testing.T) {
	raw := []byte{0x01, 0x00, 0x00, 0x05} // TAG_Byte root, not a compound
	_, err := LoadReader(bytes.NewReader(raw), nil)
	require.Error(t, err)
}
