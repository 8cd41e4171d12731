package nbt

import "io"

// TreeBuilder is a Handler that materializes the events of a streaming
// parse into a Node tree: it's registered as a handler into the streaming
// parser, so one parser implementation serves both the event-push and
// tree-build styles. After Parse returns, callers must check Err()
// before trusting Root()/RootName() — a malformed document (e.g. a
// duplicate compound key) surfaces here rather than as Parse's return
// value, since the Handler interface has no error channel of its own.
type TreeBuilder struct {
	root     *Node
	rootName string
	stack    []*Node
	err      error
}

// NewTreeBuilder returns a ready-to-use materializing handler.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

func (b *TreeBuilder) Err() error { return b.err }

// Root returns the parsed document's root compound. Valid only if Err()
// is nil and Parse has returned.
func (b *TreeBuilder) Root() *Node { return b.root }

func (b *TreeBuilder) RootName() string { return b.rootName }

func (b *TreeBuilder) fail(err error) Control {
	if b.err == nil {
		b.err = err
	}
	return Abort
}

func (b *TreeBuilder) top() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// insert attaches n under the current top-of-stack container, using name
// when the container is a compound and ignoring it (lists never carry
// per-element names) when it's a list.
func (b *TreeBuilder) insert(name *string, n *Node) Control {
	top := b.top()
	if top == nil {
		// Only reachable for the root compound itself, which is installed
		// directly by Start/StartCompound, not through insert.
		return b.fail(newError(ErrStructuralError, -1, "value emitted outside of any container"))
	}
	switch top.kind {
	case KindCompound:
		if name == nil {
			return b.fail(newError(ErrStructuralError, -1, "compound entry emitted without a name"))
		}
		if err := top.compound.Insert(*name, n); err != nil {
			return b.fail(err)
		}
	case KindList:
		if err := top.list.Append(n); err != nil {
			return b.fail(err)
		}
	default:
		return b.fail(newError(ErrStructuralError, -1, "value emitted into a non-container top"))
	}
	return Continue
}

func (b *TreeBuilder) Start(rootName string) Control {
	b.rootName = rootName
	root := NewCompound()
	b.root = root
	b.stack = append(b.stack, root)
	return Continue
}

func (b *TreeBuilder) End() Control {
	if len(b.stack) != 1 {
		return b.fail(newError(ErrStructuralError, -1, "End called with unbalanced container stack"))
	}
	b.stack = b.stack[:0]
	return Continue
}

func (b *TreeBuilder) Byte(name *string, v int8) Control      { return b.insert(name, NewByte(v)) }
func (b *TreeBuilder) Short(name *string, v int16) Control    { return b.insert(name, NewShort(v)) }
func (b *TreeBuilder) Int(name *string, v int32) Control      { return b.insert(name, NewInt(v)) }
func (b *TreeBuilder) Long(name *string, v int64) Control     { return b.insert(name, NewLong(v)) }
func (b *TreeBuilder) Float(name *string, v float32) Control  { return b.insert(name, NewFloat(v)) }
func (b *TreeBuilder) Double(name *string, v float64) Control { return b.insert(name, NewDouble(v)) }
func (b *TreeBuilder) String(name *string, v string) Control  { return b.insert(name, NewString(v)) }

func (b *TreeBuilder) ByteArray(name *string, v []byte) Control {
	return b.insert(name, NewByteArray(v))
}
func (b *TreeBuilder) IntArray(name *string, v []int32) Control {
	return b.insert(name, NewIntArray(v))
}
func (b *TreeBuilder) LongArray(name *string, v []int64) Control {
	return b.insert(name, NewLongArray(v))
}

func (b *TreeBuilder) StartList(name *string, elementKind Kind, length int32) Control {
	n := NewList(elementKind)
	if ctrl := b.insert(name, n); ctrl != Continue {
		return ctrl
	}
	b.stack = append(b.stack, n)
	return Continue
}

func (b *TreeBuilder) EndList() Control {
	return b.popContainer(KindList)
}

func (b *TreeBuilder) StartCompound(name *string) Control {
	n := NewCompound()
	if ctrl := b.insert(name, n); ctrl != Continue {
		return ctrl
	}
	b.stack = append(b.stack, n)
	return Continue
}

func (b *TreeBuilder) EndCompound() Control {
	return b.popContainer(KindCompound)
}

func (b *TreeBuilder) popContainer(expect Kind) Control {
	top := b.top()
	if top == nil || top.kind != expect {
		return b.fail(newError(ErrStructuralError, -1, "mismatched container end"))
	}
	b.stack = b.stack[:len(b.stack)-1]
	return Continue
}

// ParseTree parses r into a new Node tree, returning the root compound and
// its name. This is the primary materializing entry point; Parse + a
// TreeBuilder directly is only needed when the caller wants ParseOptions.
func ParseTree(r io.Reader) (root *Node, rootName string, err error) {
	b := NewTreeBuilder()
	if err := Parse(r, b, nil); err != nil {
		return nil, "", err
	}
	if b.Err() != nil {
		return nil, "", b.Err()
	}
	return b.Root(), b.RootName(), nil
}
