package load

import (
	"cmp"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/go-errors/errors"

	"github.com/ConradIrwin/quoteless-go"
)

// DecodeTOML parses a TOML document. Keys keep the order in which they are
// first defined; keys whose position is not recorded by the decoder (such
// as those of inline tables inside arrays) follow in sorted order.
// Dates and times are rendered as RFC 3339 strings.
func DecodeTOML(data []byte) (quoteless.Value, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	order := map[string]int{}
	for i, key := range md.Keys() {
		if _, ok := order[key.String()]; !ok {
			order[key.String()] = i
		}
	}
	t := tomlDecoder{order: order}
	return t.decode(doc, nil), nil
}

type tomlDecoder struct {
	order map[string]int
}

func (t *tomlDecoder) decode(v any, path toml.Key) quoteless.Value {
	switch v := v.(type) {
	case map[string]any:
		return t.table(v, path)
	case []map[string]any:
		arr := quoteless.NewArray()
		for _, table := range v {
			arr.Append(t.table(table, path))
		}
		return arr
	case []any:
		arr := quoteless.NewArray()
		for _, elem := range v {
			arr.Append(t.decode(elem, path))
		}
		return arr
	}
	return quoteless.ValueOf(v)
}

func (t *tomlDecoder) table(table map[string]any, path toml.Key) *quoteless.Object {
	type entry struct {
		key  string
		rank int
		ok   bool
	}
	entries := make([]entry, 0, len(table))
	for k := range table {
		rank, ok := t.order[child(path, k).String()]
		entries = append(entries, entry{k, rank, ok})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.ok && b.ok:
			return cmp.Compare(a.rank, b.rank)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return cmp.Compare(a.key, b.key)
	})

	obj := quoteless.NewObject()
	for _, e := range entries {
		obj.Set(e.key, t.decode(table[e.key], child(path, e.key)))
	}
	return obj
}

func child(path toml.Key, key string) toml.Key {
	return append(path[:len(path):len(path)], key)
}
