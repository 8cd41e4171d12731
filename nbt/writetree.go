package nbt

import "fmt"

// WriteTree drives w through rootName/root (root must be a compound),
// reproducing the tree as NBT bytes. This is the builder-to-writer path:
// Builder (§4.D) → Writer (§4.E) → byte stream (§4.A).
func WriteTree(w *Writer, rootName string, root *Node) error {
	if root.Kind() != KindCompound {
		return newError(ErrInvalidRoot, -1, fmt.Sprintf("root must be TAG_Compound, got %s", root.Kind()))
	}
	if err := w.Start(rootName); err != nil {
		return err
	}
	compound, _ := root.AsCompound()
	if err := writeCompoundEntries(w, compound); err != nil {
		return err
	}
	return w.End()
}

func writeCompoundEntries(w *Writer, c *Compound) error {
	for _, name := range c.Names() {
		n, _ := c.Get(name)
		if err := writeNode(w, &name, n); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w *Writer, name *string, n *Node) error {
	switch n.Kind() {
	case KindByte:
		v, _ := n.AsByte()
		return w.Byte(name, v)
	case KindShort:
		v, _ := n.AsShort()
		return w.Short(name, v)
	case KindInt:
		v, _ := n.AsInt()
		return w.Int(name, v)
	case KindLong:
		v, _ := n.AsLong()
		return w.Long(name, v)
	case KindFloat:
		v, _ := n.AsFloat()
		return w.Float(name, v)
	case KindDouble:
		v, _ := n.AsDouble()
		return w.Double(name, v)
	case KindString:
		v, _ := n.AsString()
		return w.String(name, v)
	case KindByteArray:
		v, _ := n.AsByteArray()
		return w.ByteArray(name, v)
	case KindIntArray:
		v, _ := n.AsIntArray()
		return w.IntArray(name, v)
	case KindLongArray:
		v, _ := n.AsLongArray()
		return w.LongArray(name, v)
	case KindList:
		list, _ := n.AsList()
		elemKind := list.ElementKind()
		if err := w.StartList(name, elemKind, int32(list.Len())); err != nil {
			return err
		}
		for _, item := range list.Items() {
			if err := writeNode(w, nil, item); err != nil {
				return err
			}
		}
		return w.EndList()
	case KindCompound:
		compound, _ := n.AsCompound()
		if err := w.StartCompound(name); err != nil {
			return err
		}
		if err := writeCompoundEntries(w, compound); err != nil {
			return err
		}
		return w.EndCompound()
	default:
		return newError(ErrInvalidKind, -1, fmt.Sprintf("cannot write node of kind %s", n.Kind()))
	}
}
