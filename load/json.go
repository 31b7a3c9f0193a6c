package load

import (
	"bytes"
	"io"

	"github.com/go-errors/errors"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/ConradIrwin/quoteless-go"
)

// DecodeJSON parses a single JSON value. Object keys keep their order; if a
// key is repeated the last value wins but the key stays where it first
// appeared.
func DecodeJSON(data []byte) (quoteless.Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data), jsontext.AllowDuplicateNames(true))
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, errors.WrapPrefix(err, "json", 0)
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			err = errors.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return nil, errors.WrapPrefix(err, "json", 0)
	}
	return v, nil
}

func decodeJSON(dec *jsontext.Decoder) (quoteless.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return quoteless.Null, nil
	case 't', 'f':
		return quoteless.Boolean(tok.Bool()), nil
	case '"':
		return quoteless.String(tok.String()), nil
	case '0':
		return quoteless.Float(tok.Float()), nil
	case '[':
		arr := quoteless.NewArray()
		for dec.PeekKind() != ']' {
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := quoteless.NewObject()
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// name is invalidated by the next read.
			key := name.String()
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	}
	return nil, errors.Errorf("unexpected %v at offset %d", tok.Kind(), dec.InputOffset())
}

// DecodeJSON5 parses a JSON5 document. JSON5 objects are decoded into go
// maps, so their keys come out sorted.
//
// Comments, unquoted keys and trailing commas are accepted. Strings must be
// double-quoted: single-quoted strings are rejected with an error.
func DecodeJSON5(data []byte) (quoteless.Value, error) {
	var v any
	if err := json5.Unmarshal(data, &v); err != nil {
		return nil, errors.WrapPrefix(err, "json5", 0)
	}
	return quoteless.ValueOf(v), nil
}
