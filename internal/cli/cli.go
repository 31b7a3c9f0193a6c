// Package cli implements the quoteless command-line interface.
//
// The command reads JSON, JSON5, YAML or TOML documents from files (or stdin)
// and prints each one with [quoteless.Stringify]. Diagnostics go to stderr
// through charmbracelet/log; --verbose adds debug output including the stack
// of any load error.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/ConradIrwin/quoteless-go"
	"github.com/ConradIrwin/quoteless-go/load"
)

// CLI holds the streams and logger shared by the command.
type CLI struct {
	Logger *log.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// New creates a CLI that logs to stderr at info level.
func New(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
		Stdin:  stdin,
		Stdout: stdout,
	}
}

type flags struct {
	indent  int
	compact bool
	format  string
	verbose bool
}

func (f flags) options() quoteless.Options {
	return quoteless.Options{Indent: f.indent, Compact: f.compact}
}

// RootCommand creates the quoteless command.
func (c *CLI) RootCommand() *cobra.Command {
	f := flags{}
	root := &cobra.Command{
		Use:   "quoteless [flags] [file ...]",
		Short: "Print JSON, JSON5, YAML and TOML documents as quoteless text",
		Long: `quoteless prints each document it is given in a relaxed, quote-optional
syntax that is easy to read. With no files, or with "-", it reads stdin.

The input format is taken from --format, or else from the file extension.
Stdin is read as JSON unless --format says otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), f, args)
		},
	}

	root.Flags().IntVarP(&f.indent, "indent", "i", quoteless.DefaultIndent, "spaces per nesting level")
	root.Flags().BoolVarP(&f.compact, "compact", "c", false, "print each document on a single line")
	root.Flags().StringVarP(&f.format, "format", "f", "", "input format: json, json5, yaml or toml")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	return root
}

func (c *CLI) run(ctx context.Context, f flags, paths []string) error {
	var format load.Format
	if f.format != "" {
		parsed, err := load.ParseFormat(f.format)
		if err != nil {
			return err
		}
		format = parsed
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := c.load(path, format)
		if err != nil {
			failed++
			c.Logger.Error("could not load document", "path", path, "err", err)
			var stack *goerrors.Error
			if errors.As(err, &stack) {
				c.Logger.Debug(stack.ErrorStack())
			}
			continue
		}
		c.Logger.Debug("loaded document", "path", path, "kind", v.Kind())
		if _, err := fmt.Fprintln(c.Stdout, quoteless.Stringify(v, f.options())); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be loaded", failed, len(paths))
	}
	return nil
}

func (c *CLI) load(path string, format load.Format) (quoteless.Value, error) {
	if path != "-" {
		return load.File(path, format)
	}
	if format == "" {
		format = load.JSON
	}
	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, goerrors.Wrap(err, 0)
	}
	return load.Decode(format, data)
}
