package nbt

import "fmt"

// List is a homogeneous, length-prefixed sequence of tags sharing one kind.
// elemKind may be KindEnd, meaning "uninitialized": it binds to the kind of
// the first node appended into an empty list and, once bound, every
// subsequent mutation must match it.
type List struct {
	elemKind Kind
	items    []*Node
}

// NewNodeList constructs a list with a pre-declared element kind. Pass
// KindEnd to defer binding until the first Append.
func NewNodeList(elementKind Kind) *List {
	return &List{elemKind: elementKind}
}

func (l *List) ElementKind() Kind { return l.elemKind }
func (l *List) Len() int          { return len(l.items) }

// Items returns the list's elements in order. Callers must not mutate the
// returned slice's elements' kinds; use Set/Append/Remove instead.
func (l *List) Items() []*Node {
	return l.items
}

func (l *List) Get(i int) (*Node, error) {
	if i < 0 || i >= len(l.items) {
		return nil, newError(ErrIndexOutOfRange, -1, fmt.Sprintf("list index %d out of range [0,%d)", i, len(l.items)))
	}
	return l.items[i], nil
}

func (l *List) checkKind(n *Node) error {
	if l.elemKind == KindEnd && len(l.items) == 0 {
		return nil // unbound, binds on insertion
	}
	if n.Kind() != l.elemKind {
		return newError(ErrStructuralError, -1, fmt.Sprintf("list element kind mismatch: list holds %s, got %s", l.elemKind, n.Kind()))
	}
	return nil
}

// Append adds n to the end of the list, lazily binding the list's element
// kind if this is the first element inserted into an unbound/empty list.
func (l *List) Append(n *Node) error {
	if err := l.checkKind(n); err != nil {
		return err
	}
	if l.elemKind == KindEnd {
		l.elemKind = n.Kind()
	}
	l.items = append(l.items, n)
	return nil
}

// Set replaces the element at index i.
func (l *List) Set(i int, n *Node) error {
	if i < 0 || i >= len(l.items) {
		return newError(ErrIndexOutOfRange, -1, fmt.Sprintf("list index %d out of range [0,%d)", i, len(l.items)))
	}
	if n.Kind() != l.elemKind {
		return newError(ErrStructuralError, -1, fmt.Sprintf("list element kind mismatch: list holds %s, got %s", l.elemKind, n.Kind()))
	}
	l.items[i] = n
	return nil
}

// Remove deletes the element at index i. The list's element kind is
// retained even if this empties the list: a list written after containing
// typed elements keeps that element kind on the wire.
func (l *List) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return newError(ErrIndexOutOfRange, -1, fmt.Sprintf("list index %d out of range [0,%d)", i, len(l.items)))
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}
