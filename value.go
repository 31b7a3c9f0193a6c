package quoteless

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int8

// These are the kinds of [Value].
const (
	NullKind = Kind(iota)
	UndefinedKind
	StringKind
	NumberKind
	BooleanKind
	ArrayKind
	ObjectKind
	OtherKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case UndefinedKind:
		return "Undefined"
	case StringKind:
		return "String"
	case NumberKind:
		return "Number"
	case BooleanKind:
		return "Boolean"
	case ArrayKind:
		return "Array"
	case ObjectKind:
		return "Object"
	case OtherKind:
		return "Other"
	default:
		panic("Unknown Kind")
	}
}

func (k Kind) GoString() string {
	return k.String()
}

// Value is a node in the tree passed to [Stringify].
//
// The set of implementations is closed: [Null], [Undefined], [String],
// [Number], [Boolean], *[Array], *[Object] and [Other]. Arrays and objects are
// always used by pointer, and two composites are the same value only if they
// are the same pointer. This is what allows a tree to refer back to one of its
// ancestors.
type Value interface {
	Kind() Kind
	isValue()
}

type null struct{}
type undefined struct{}

func (null) Kind() Kind      { return NullKind }
func (undefined) Kind() Kind { return UndefinedKind }
func (null) isValue()        {}
func (undefined) isValue()   {}

var (
	// Null is the absence of a value. It is rendered as "null".
	Null Value = null{}
	// Undefined is a missing value. It is rendered as "undefined".
	Undefined Value = undefined{}
)

// String is a text value.
type String string

func (String) Kind() Kind { return StringKind }
func (String) isValue()   {}

// Boolean is true or false.
type Boolean bool

func (Boolean) Kind() Kind { return BooleanKind }
func (Boolean) isValue()   {}

// Number is a numeric value. Numbers created with [Int] or [Uint] keep
// their exact decimal form, others are held as a float64.
type Number struct {
	f    float64
	text string
}

func (Number) Kind() Kind { return NumberKind }
func (Number) isValue()   {}

// Float returns a [Number] holding f.
func Float(f float64) Number {
	return Number{f: f}
}

// Int returns a [Number] holding i exactly.
func Int(i int64) Number {
	return Number{f: float64(i), text: strconv.FormatInt(i, 10)}
}

// Uint returns a [Number] holding u exactly.
func Uint(u uint64) Number {
	return Number{f: float64(u), text: strconv.FormatUint(u, 10)}
}

func float32Number(f float32) Number {
	n := Number{f: float64(f)}
	if !math.IsNaN(n.f) && !math.IsInf(n.f, 0) {
		n.text = formatFloat(n.f, 32)
	}
	return n
}

// Float64 returns the number as a float64, which may lose precision for
// large integers.
func (n Number) Float64() float64 {
	return n.f
}

// String returns the decimal form used by [Stringify].
func (n Number) String() string {
	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return "null"
	}
	if n.text != "" {
		return n.text
	}
	return formatFloat(n.f, 64)
}

// formatFloat prints the shortest decimal that round-trips, in plain
// notation for 1e-6 <= |f| < 1e21 and exponent notation otherwise.
func formatFloat(f float64, bitSize int) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exp, _ := strings.Cut(s, "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// Array is an ordered sequence of values.
type Array struct {
	elems []Value
}

func (*Array) Kind() Kind { return ArrayKind }
func (*Array) isValue()   {}

// NewArray returns an array holding elems.
func NewArray(elems ...Value) *Array {
	return &Array{elems: elems}
}

// Append adds elems to the end of the array.
func (a *Array) Append(elems ...Value) {
	a.elems = append(a.elems, elems...)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the i'th element.
func (a *Array) At(i int) Value {
	return a.elems[i]
}

// All iterates over the elements in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Object is a mapping from keys to values that remembers the order in which
// keys were first set.
type Object struct {
	keys   []string
	values []Value
	index  map[string]int
}

func (*Object) Kind() Kind { return ObjectKind }
func (*Object) isValue()   {}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set associates v with key. Setting a key that is already present
// replaces its value but keeps its original position.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = map[string]int{}
	}
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// All iterates over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, k := range o.keys {
			if !yield(k, o.values[i]) {
				return
			}
		}
	}
}

// Other carries a value that has no natural representation, such as a
// channel or a func. It is rendered with [fmt.Sprint].
type Other struct {
	V any
}

func (Other) Kind() Kind { return OtherKind }
func (Other) isValue()   {}

func (o Other) String() string {
	return fmt.Sprint(o.V)
}
