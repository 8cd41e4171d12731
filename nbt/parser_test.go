package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingHandler logs every scalar name it sees and lets each test
// control Skip/Abort behavior via the skipOnName/abortOnInt names.
type recordingHandler struct {
	BaseHandler
	seen         []string
	anonIntCount int
	skipOnName   string
	abortOnInt   string
}

func (h *recordingHandler) Int(name *string, v int32) Control {
	if name == nil {
		h.anonIntCount++
		return Continue
	}
	h.seen = append(h.seen, *name)
	if *name == h.abortOnInt {
		return Abort
	}
	return Continue
}

func (h *recordingHandler) StartCompound(name *string) Control {
	if name != nil {
		h.seen = append(h.seen, "{"+*name)
		if *name == h.skipOnName {
			return Skip
		}
	}
	return Continue
}

func (h *recordingHandler) EndCompound() Control {
	h.seen = append(h.seen, "}")
	return Continue
}

func (h *recordingHandler) StartList(name *string, elementKind Kind, length int32) Control {
	if name != nil {
		h.seen = append(h.seen, "["+*name)
		if *name == h.skipOnName {
			return Skip
		}
	}
	return Continue
}

func (h *recordingHandler) EndList() Control {
	h.seen = append(h.seen, "]")
	return Continue
}

func encode(t *testing.T, root *Node) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteTree(NewWriter(&buf), "root", root))
	return buf.Bytes()
}

func TestParseAbortStopsBeforeLaterSiblings(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()
	require.NoError(t, c.Insert("a", NewInt(1)))
	require.NoError(t, c.Insert("b", NewInt(2)))

	h := &recordingHandler{abortOnInt: "a"}
	err := Parse(bytes.NewReader(encode(t, root)), h, nil)
	require.NoError(t, err) // Abort unwinds cleanly, it isn't a parse error
	require.Equal(t, []string{"a"}, h.seen)
}

func TestParseSkipCompoundOmitsChildrenButContinues(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()

	inner := NewCompound()
	ic, _ := inner.AsCompound()
	require.NoError(t, ic.Insert("hidden", NewInt(99)))
	require.NoError(t, c.Insert("skip_me", inner))
	require.NoError(t, c.Insert("after", NewInt(7)))

	h := &recordingHandler{skipOnName: "skip_me"}
	err := Parse(bytes.NewReader(encode(t, root)), h, nil)
	require.NoError(t, err)

	require.Contains(t, h.seen, "{skip_me")
	require.NotContains(t, h.seen, "hidden")
	require.Contains(t, h.seen, "after")
}

func TestParseSkipListOmitsElementsButContinues(t *testing.T) {
	root := NewCompound()
	c, _ := root.AsCompound()

	list := NewList(KindInt)
	l, _ := list.AsList()
	require.NoError(t, l.Append(NewInt(1)))
	require.NoError(t, l.Append(NewInt(2)))
	require.NoError(t, c.Insert("skip_me", list))
	require.NoError(t, c.Insert("after", NewInt(7)))

	h := &recordingHandler{skipOnName: "skip_me"}
	err := Parse(bytes.NewReader(encode(t, root)), h, nil)
	require.NoError(t, err)

	require.Contains(t, h.seen, "[skip_me")
	require.Equal(t, 0, h.anonIntCount) // both list elements suppressed by Skip
	require.Contains(t, h.seen, "after")
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	err := Parse(bytes.NewReader(nil), BaseHandler{}, nil)
	require.Error(t, err)
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, ErrInvalidRoot, nerr.Kind)
}

func TestParseRejectsNonCompoundRoot(t *testing.T) {
	raw := []byte{byte(KindInt), 0x00, 0x00}
	err := Parse(bytes.NewReader(raw), BaseHandler{}, nil)
	require.Error(t, err)
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, ErrInvalidRoot, nerr.Kind)
}

func TestParseWarnsOnEndKindListWithNonzeroLength(t *testing.T) {
	// TAG_Compound "root" { TAG_List "xs" kind=END length=3 } TAG_End
	var buf bytes.Buffer
	buf.WriteByte(byte(KindCompound))
	buf.Write([]byte{0x00, 0x04})
	buf.WriteString("root")

	buf.WriteByte(byte(KindList))
	buf.Write([]byte{0x00, 0x02})
	buf.WriteString("xs")
	buf.WriteByte(byte(KindEnd))
	buf.Write([]byte{0x00, 0x00, 0x00, 0x03}) // length=3

	buf.WriteByte(byte(KindEnd)) // close compound

	var warned bool
	opts := &ParseOptions{OnWarning: func(offset int64, message string) { warned = true }}

	h := &recordingHandler{}
	err := Parse(bytes.NewReader(buf.Bytes()), h, opts)
	require.NoError(t, err)
	require.True(t, warned)
}
