package load_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ConradIrwin/quoteless-go"
	"github.com/ConradIrwin/quoteless-go/load"
)

func compact(v quoteless.Value) string {
	return quoteless.Stringify(v, quoteless.Options{Compact: true})
}

func TestDecode(t *testing.T) {
	for _, test := range []struct {
		name   string
		format load.Format
		in     string
		out    string
	}{
		{
			name:   "json",
			format: load.JSON,
			in:     `{"z": 1, "a": [true, null, "two words"], "b": {}}`,
			out:    "{z: 1, a: [true, null, 'two words'], b: {}}",
		},
		{
			name:   "json duplicate keys",
			format: load.JSON,
			in:     `{"z": 1, "a": 2, "z": 3}`,
			out:    "{z: 3, a: 2}",
		},
		{
			name:   "json numbers",
			format: load.JSON,
			in:     `[1.0, 1e21, -0, 0.25]`,
			out:    "[1, 1e+21, 0, 0.25]",
		},
		{
			name:   "json nested",
			format: load.JSON,
			in:     `{"outer": {"inner": {"list": [{"k": "v"}, {}]}, "n": 1}, "last": null}`,
			out:    "{outer: {inner: {list: [{k: v}, {}]}, n: 1}, last: null}",
		},
		{
			name:   "json scalar",
			format: load.JSON,
			in:     ` "it's" `,
			out:    `"it's"`,
		},
		{
			name:   "json5",
			format: load.JSON5,
			in: `{
				// comments and trailing commas are fine
				b: 1,
				a: "x",
				c: [1, 2,],
				d: {e: [{f: null}]},
			}`,
			out: "{a: x, b: 1, c: [1, 2], d: {e: [{f: null}]}}",
		},
		{
			name:   "yaml",
			format: load.YAML,
			in: strings.Join([]string{
				"name: app",
				"ports:",
				"  - 80",
				"  - 443",
				"base: &base",
				"  debug: false",
				"  level: info",
				"prod:",
				"  <<: *base",
				"  level: warn",
				"empty:",
				"ratio: .5",
				"inf: .inf",
				`quoted: "123"`,
			}, "\n"),
			out: "{name: app, ports: [80, 443], base: {debug: false, level: info}, " +
				"prod: {debug: false, level: warn}, empty: null, ratio: 0.5, inf: null, quoted: 123}",
		},
		{
			name:   "yaml empty",
			format: load.YAML,
			in:     "",
			out:    "undefined",
		},
		{
			name:   "toml",
			format: load.TOML,
			in: strings.Join([]string{
				`title = "example"`,
				`zeta = 1`,
				``,
				`[server]`,
				`host = "localhost"`,
				`port = 8080`,
				``,
				`[[products]]`,
				`name = "Hammer"`,
				`sku = 738594937`,
				``,
				`[[products]]`,
				`name = "Nail"`,
			}, "\n"),
			out: "{title: example, zeta: 1, server: {host: localhost, port: 8080}, " +
				"products: [{name: Hammer, sku: 738594937}, {name: Nail}]}",
		},
		{
			name:   "toml datetime",
			format: load.TOML,
			in:     `when = 1979-05-27T07:32:00Z`,
			out:    "{when: '1979-05-27T07:32:00Z'}",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			v, err := load.Decode(test.format, []byte(test.in))
			if err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if out := compact(v); out != test.out {
				t.Fatalf("expected\n%s\ngot\n%s", test.out, out)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name   string
		format load.Format
		in     string
		prefix string
	}{
		{"json empty", load.JSON, "", "json: "},
		{"json invalid", load.JSON, `{"a": }`, "json: "},
		{"json trailing", load.JSON, `{} {}`, "json: "},
		{"json5 invalid", load.JSON5, `{a: }`, "json5: "},
		{"json5 single quotes", load.JSON5, `{a: 'x'}`, "json5: "},
		{"yaml invalid", load.YAML, "a: [1, 2", "yaml: "},
		{"toml invalid", load.TOML, "a = ", "toml: "},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := load.Decode(test.format, []byte(test.in))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.HasPrefix(err.Error(), test.prefix) {
				t.Fatalf("expected %q to start with %q", err.Error(), test.prefix)
			}
		})
	}

	if _, err := load.Decode("xml", nil); !errors.Is(err, load.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestYAMLAliasesShareValues(t *testing.T) {
	v, err := load.DecodeYAML([]byte("a: &x [1]\nb: *x\n"))
	if err != nil {
		t.Fatal(err)
	}
	obj := v.(*quoteless.Object)
	a, _ := obj.Get("a")
	b, _ := obj.Get("b")
	if a != b {
		t.Fatalf("expected a and b to be the same array")
	}
	if out := compact(v); out != "{a: [1], b: [1]}" {
		t.Fatalf("got %s", out)
	}
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]load.Format{
		"json":  load.JSON,
		"JSON5": load.JSON5,
		"yml":   load.YAML,
		"yaml":  load.YAML,
		"toml":  load.TOML,
	} {
		if f, err := load.ParseFormat(name); err != nil || f != expected {
			t.Errorf("%s: expected %s, got %s (%v)", name, expected, f, err)
		}
	}
	if _, err := load.ParseFormat("xml"); !errors.Is(err, load.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	if f, err := load.FormatFromPath("conf/app.TOML"); err != nil || f != load.TOML {
		t.Errorf("expected toml, got %s (%v)", f, err)
	}
	if _, err := load.FormatFromPath("Makefile"); !errors.Is(err, load.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"b": [1], "a": "x y"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := load.File(path, "")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if out := compact(v); out != "{b: [1], a: 'x y'}" {
		t.Fatalf("got %s", out)
	}

	if _, err := load.File(filepath.Join(dir, "missing.json"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := load.File(bad, ""); err == nil || !strings.HasPrefix(err.Error(), bad+": json: ") {
		t.Fatalf("expected a path prefixed error, got %v", err)
	}
}
