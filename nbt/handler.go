package nbt

// Control is returned by every Handler callback to steer the parser.
type Control int

const (
	// Continue tells the parser to proceed normally.
	Continue Control = iota
	// Skip, returned from Start, StartList or StartCompound, tells the
	// parser to discard the contents of the container just opened without
	// emitting further callbacks for it (including its closing EndList,
	// EndCompound or End). The parser still consumes the bytes so the
	// stream stays aligned. Skip returned from any other callback is
	// treated as Continue.
	Skip
	// Abort tells the parser to stop immediately and unwind cleanly.
	Abort
)

// Handler receives callbacks as the streaming parser walks an NBT document
// in document order. name is non-nil only when the tag appears at compound
// scope; list elements are always passed a nil name.
//
// Embed BaseHandler to get no-op defaults for callbacks you don't care
// about.
type Handler interface {
	Start(rootName string) Control
	End() Control

	Byte(name *string, v int8) Control
	Short(name *string, v int16) Control
	Int(name *string, v int32) Control
	Long(name *string, v int64) Control
	Float(name *string, v float32) Control
	Double(name *string, v float64) Control
	String(name *string, v string) Control

	ByteArray(name *string, v []byte) Control
	IntArray(name *string, v []int32) Control
	LongArray(name *string, v []int64) Control

	StartList(name *string, elementKind Kind, length int32) Control
	EndList() Control

	StartCompound(name *string) Control
	EndCompound() Control
}

// BaseHandler implements Handler with every callback returning Continue and
// doing nothing else. Embed it in concrete handlers to only override the
// callbacks you need, mirroring the no-op base class the reference
// implementation provides for the same purpose.
type BaseHandler struct{}

func (BaseHandler) Start(rootName string) Control                     { return Continue }
func (BaseHandler) End() Control                                      { return Continue }
func (BaseHandler) Byte(name *string, v int8) Control                 { return Continue }
func (BaseHandler) Short(name *string, v int16) Control                { return Continue }
func (BaseHandler) Int(name *string, v int32) Control                  { return Continue }
func (BaseHandler) Long(name *string, v int64) Control                 { return Continue }
func (BaseHandler) Float(name *string, v float32) Control              { return Continue }
func (BaseHandler) Double(name *string, v float64) Control             { return Continue }
func (BaseHandler) String(name *string, v string) Control              { return Continue }
func (BaseHandler) ByteArray(name *string, v []byte) Control           { return Continue }
func (BaseHandler) IntArray(name *string, v []int32) Control           { return Continue }
func (BaseHandler) LongArray(name *string, v []int64) Control          { return Continue }
func (BaseHandler) StartList(name *string, elementKind Kind, length int32) Control {
	return Continue
}
func (BaseHandler) EndList() Control                  { return Continue }
func (BaseHandler) StartCompound(name *string) Control { return Continue }
func (BaseHandler) EndCompound() Control                { return Continue }
