package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(strings.NewReader(stdin), &stdout, &stderr)
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStdin(t *testing.T) {
	out, _, err := execute(t, context.Background(), `{"a": [1, 2]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "{\n  a: [\n    1,\n    2\n  ]\n}\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFlags(t *testing.T) {
	for _, test := range []struct {
		name  string
		stdin string
		args  []string
		out   string
	}{
		{
			name:  "compact",
			stdin: `{"a": [1, 2]}`,
			args:  []string{"--compact"},
			out:   "{a: [1, 2]}\n",
		},
		{
			name:  "indent",
			stdin: `[[1]]`,
			args:  []string{"-i", "4"},
			out:   "[\n    [\n        1\n    ]\n]\n",
		},
		{
			name:  "format",
			stdin: "b: 1\na: two words\n",
			args:  []string{"-c", "--format", "yaml", "-"},
			out:   "{b: 1, a: 'two words'}\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out, _, err := execute(t, context.Background(), test.stdin, test.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != test.out {
				t.Fatalf("expected %q, got %q", test.out, out)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	toml := writeFile(t, "a.toml", "name = \"x\"\n")
	yaml := writeFile(t, "b.yml", "- 1\n")

	out, _, err := execute(t, context.Background(), "", "-c", toml, yaml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "{name: x}\n[1]\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStdinMatchesFile(t *testing.T) {
	doc := `{"server": {"host": "example.com", "ports": [80, 443]}, "tags": {"env": "prod"}, "debug": false}`
	expected := "{server: {host: example.com, ports: [80, 443]}, tags: {env: prod}, debug: false}\n"

	fromStdin, _, err := execute(t, context.Background(), doc, "-c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromFile, _, err := execute(t, context.Background(), "", "-c", writeFile(t, "doc.json", doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromStdin != expected {
		t.Fatalf("stdin: expected %q, got %q", expected, fromStdin)
	}
	if fromFile != expected {
		t.Fatalf("file: expected %q, got %q", expected, fromFile)
	}
}

func TestFailuresContinue(t *testing.T) {
	bad := writeFile(t, "bad.json", "{")
	good := writeFile(t, "good.json", "true")

	out, stderr, err := execute(t, context.Background(), "", bad, good)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 documents") {
		t.Fatalf("expected a failure count, got %v", err)
	}
	if out != "true\n" {
		t.Fatalf("expected the good document to be printed, got %q", out)
	}
	if !strings.Contains(stderr, "could not load document") {
		t.Fatalf("expected the failure to be logged, got %q", stderr)
	}
}

func TestUnknownFormat(t *testing.T) {
	_, _, err := execute(t, context.Background(), "", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected an unknown format error, got %v", err)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := execute(t, ctx, "{}")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
