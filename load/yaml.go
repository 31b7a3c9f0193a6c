package load

import (
	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	"github.com/ConradIrwin/quoteless-go"
)

// DecodeYAML parses the first document of a YAML stream. An empty stream
// decodes to [quoteless.Undefined].
//
// Aliases refer to the same value as their anchor, so a mapping that is
// aliased twice is one [quoteless.Object] reached from two places. Merge keys
// ("<<") copy the entries of the merged mappings that are not set explicitly.
func DecodeYAML(data []byte) (quoteless.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, 0)
	}
	if doc.Kind == 0 {
		return quoteless.Undefined, nil
	}
	d := yamlDecoder{anchors: map[*yaml.Node]quoteless.Value{}}
	v, err := d.decode(&doc)
	if err != nil {
		return nil, errors.WrapPrefix(err, "yaml", 0)
	}
	return v, nil
}

type yamlDecoder struct {
	anchors map[*yaml.Node]quoteless.Value
}

func (d *yamlDecoder) decode(n *yaml.Node) (quoteless.Value, error) {
	if v, ok := d.anchors[n]; ok {
		return v, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return quoteless.Undefined, nil
		}
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		return d.decode(n.Alias)
	case yaml.SequenceNode:
		arr := quoteless.NewArray()
		d.anchors[n] = arr
		for _, child := range n.Content {
			v, err := d.decode(child)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := quoteless.NewObject()
		d.anchors[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
				if err := d.merge(obj, value); err != nil {
					return nil, err
				}
				continue
			}
			k, err := d.key(key)
			if err != nil {
				return nil, err
			}
			v, err := d.decode(value)
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return d.scalar(n)
	}
	return nil, errors.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

func (d *yamlDecoder) key(n *yaml.Node) (string, error) {
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	v, err := d.decode(n)
	if err != nil {
		return "", err
	}
	return quoteless.Stringify(v, quoteless.Options{Compact: true}), nil
}

// merge copies into obj the entries of a "<<" value, which is a mapping or
// a sequence of mappings. Earlier mappings in a sequence take precedence.
func (d *yamlDecoder) merge(obj *quoteless.Object, n *yaml.Node) error {
	v, err := d.decode(n)
	if err != nil {
		return err
	}
	sources := []quoteless.Value{v}
	if arr, ok := v.(*quoteless.Array); ok {
		sources = sources[:0]
		for _, elem := range arr.All() {
			sources = append(sources, elem)
		}
	}
	for _, source := range sources {
		src, ok := source.(*quoteless.Object)
		if !ok {
			return errors.Errorf("line %d: map merge requires a mapping", n.Line)
		}
		for k, v := range src.All() {
			if _, exists := obj.Get(k); !exists {
				obj.Set(k, v)
			}
		}
	}
	return nil
}

func (d *yamlDecoder) scalar(n *yaml.Node) (quoteless.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return quoteless.Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return quoteless.Boolean(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return quoteless.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return quoteless.Uint(u), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return quoteless.Float(f), nil
	}
	return quoteless.String(n.Value), nil
}
