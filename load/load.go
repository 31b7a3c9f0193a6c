// Package load decodes documents into [quoteless.Value] trees.
//
// JSON, YAML and TOML documents keep the order in which keys were written, so
// that rendering a document with [quoteless.Stringify] reads the same way as
// the source. JSON5 documents are decoded through go maps, and so have their
// keys sorted.
package load

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"

	"github.com/ConradIrwin/quoteless-go"
)

// Format names a document syntax understood by [Decode].
type Format string

// The supported formats.
const (
	JSON  Format = "json"
	JSON5 Format = "json5"
	YAML  Format = "yaml"
	TOML  Format = "toml"
)

// ErrUnknownFormat is returned for format names and file extensions that
// are not supported.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat returns the format called name. Names are case-insensitive
// and "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "json5":
		return JSON5, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", errors.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks a format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) (quoteless.Value, error) {
	switch format {
	case JSON:
		return DecodeJSON(data)
	case JSON5:
		return DecodeJSON5(data)
	case YAML:
		return DecodeYAML(data)
	case TOML:
		return DecodeTOML(data)
	}
	return nil, errors.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// File reads and decodes the file at path. If format is empty it is chosen
// from the file's extension.
func File(path string, format Format) (quoteless.Value, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	v, err := Decode(format, data)
	if err != nil {
		return nil, errors.WrapPrefix(err, path, 0)
	}
	return v, nil
}
