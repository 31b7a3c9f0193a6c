package quoteless

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

var (
	valueType         = reflect.TypeFor[Value]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	jsonNumberType    = reflect.TypeFor[json.Number]()
)

// ValueOf converts a go value into a [Value].
//
// Strings, numbers and bools become the matching scalars; nil pointers,
// interfaces, maps and slices become [Null]. Slices and arrays become an
// [Array] and maps become an [Object] with keys in sorted order. A []byte is
// base64 encoded like in [encoding/json].
//
// Structs become an [Object] with one entry per exported field in declaration
// order. ValueOf will first look for the name in a `quoteless:"name"` tag,
// then in a `json:"name"` tag, and otherwise use the field name. Fields tagged
// "-" are skipped, as are zero fields tagged "omitempty".
//
// If a type implements [encoding.TextMarshaler] then its text is used as a
// string. Values that have no natural representation, such as channels and
// funcs, are wrapped in [Other].
//
// Maps, slices and pointers that are reached more than once are converted
// once, so a cyclic go value produces a cyclic [Value].
func ValueOf(v any) Value {
	if v, ok := v.(Value); ok {
		return v
	}
	c := converter{seen: map[ref]Value{}}
	return c.convert(reflect.ValueOf(v))
}

type ref struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type converter struct {
	seen map[ref]Value
}

// remember records a composite before its children are converted so that
// references back to it resolve to the same Value.
func (c *converter) remember(r *ref, v Value) {
	if r != nil {
		c.seen[*r] = v
	}
}

func (c *converter) convert(val reflect.Value) Value {
	return c.convertRef(val, nil)
}

func (c *converter) convertRef(val reflect.Value, r *ref) Value {
	if !val.IsValid() {
		return Null
	}

	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return Null
		}
	}

	if isValue(val) {
		return val.Interface().(Value)
	}
	if val.Type().Implements(textMarshalerType) && val.CanInterface() {
		text, err := val.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return Other{V: val.Interface()}
		}
		return String(text)
	}
	if val.Type() == jsonNumberType {
		return parseNumber(val.String())
	}

	switch val.Kind() {
	case reflect.Pointer:
		key := ref{ptr: val.Pointer(), typ: val.Type()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		// a pointer chain that leads back to itself without passing
		// through a composite has nothing to print.
		c.seen[key] = Null
		v := c.convertRef(val.Elem(), &key)
		c.seen[key] = v
		return v
	case reflect.Interface:
		return c.convertRef(val.Elem(), r)
	case reflect.String:
		return String(val.String())
	case reflect.Bool:
		return Boolean(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(val.Uint())
	case reflect.Float32:
		return float32Number(float32(val.Float()))
	case reflect.Float64:
		return Float(val.Float())
	case reflect.Slice:
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return String(base64.StdEncoding.EncodeToString(val.Bytes()))
		}
		key := ref{ptr: val.Pointer(), typ: val.Type(), len: val.Len()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		arr := &Array{elems: make([]Value, 0, val.Len())}
		c.remember(&key, arr)
		c.remember(r, arr)
		c.convertList(val, arr)
		return arr
	case reflect.Array:
		if val.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, val.Len())
			reflect.Copy(reflect.ValueOf(b), val)
			return String(base64.StdEncoding.EncodeToString(b))
		}
		arr := &Array{elems: make([]Value, 0, val.Len())}
		c.remember(r, arr)
		c.convertList(val, arr)
		return arr
	case reflect.Map:
		key := ref{ptr: val.Pointer(), typ: val.Type()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		obj := NewObject()
		c.remember(&key, obj)
		c.remember(r, obj)
		c.convertMap(val, obj)
		return obj
	case reflect.Struct:
		obj := NewObject()
		c.remember(r, obj)
		c.convertStruct(val, obj)
		return obj
	}

	if val.CanInterface() {
		return Other{V: val.Interface()}
	}
	return Other{V: fmt.Sprint(val)}
}

// isValue reports whether val already is a Value. A *String is not: it is
// followed like any other pointer.
func isValue(val reflect.Value) bool {
	if !val.CanInterface() || !val.Type().Implements(valueType) {
		return false
	}
	return val.Kind() != reflect.Pointer || !val.Type().Elem().Implements(valueType)
}

func (c *converter) convertList(val reflect.Value, arr *Array) {
	for i := range val.Len() {
		arr.elems = append(arr.elems, c.convert(val.Index(i)))
	}
}

func (c *converter) convertMap(val reflect.Value, obj *Object) {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := []entry{}
	for iter := val.MapRange(); iter.Next(); {
		entries = append(entries, entry{mapKey(iter.Key()), iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})
	for _, e := range entries {
		obj.Set(e.key, c.convert(e.value))
	}
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.Interface {
		if key.IsNil() {
			return "null"
		}
		key = key.Elem()
	}
	if key.Type().Implements(textMarshalerType) && key.CanInterface() {
		if key.Kind() != reflect.Pointer || !key.IsNil() {
			if text, err := key.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
				return string(text)
			}
		}
	}
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprint(key)
}

func (c *converter) convertStruct(val reflect.Value, obj *Object) {
	for i := range val.Type().NumField() {
		field := val.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup("quoteless")
		if !ok {
			tag, _ = field.Tag.Lookup("json")
		}
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		fv := val.Field(i)
		if hasOption(options, "omitempty") && fv.IsZero() {
			continue
		}
		obj.Set(name, c.convert(fv))
	}
}

func hasOption(options, name string) bool {
	for option := range strings.SplitSeq(options, ",") {
		if option == name {
			return true
		}
	}
	return false
}

// parseNumber converts a decimal literal, keeping integers exact.
func parseNumber(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}
