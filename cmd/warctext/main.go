// Command warctext extracts readable text from the response records of a
// WARC web archive into a single output file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dsullivan/warctext"
	"github.com/dsullivan/warctext/fs"
	"github.com/dsullivan/warctext/pipeline"
	"github.com/dsullivan/warctext/whatlang"
)

// Exit codes: 0 on success, 1 on a runtime fault, 2 on a usage error.
const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	os.Exit(NewMain().Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments and returns the process
// exit code.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("warctext"),
		kong.Description("Extract readable text from the response records of a WARC archive."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_processors": strings.Join(defaultProcessors, ", ")},
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitRuntime
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return exitOK
		}
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if err := validate(cli); err != nil {
		fmt.Fprintln(stderr, warctext.ErrorMessage(err))
		return exitUsage
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	chain, err := buildChain(cli.Processor, cli.Verbose, logger)
	if err != nil {
		fmt.Fprintln(stderr, warctext.ErrorMessage(err))
		return exitUsage
	}

	var annotators []warctext.Annotator
	if cli.DetectLanguage {
		annotators = append(annotators, whatlang.NewAnnotator())
	}

	stats, err := m.run(ctx, cli, chain, annotators, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", warctext.ErrorMessage(err))
		return exitRuntime
	}

	fmt.Fprintln(stdout, stats.Summary())
	return exitOK
}

func (m *Main) run(ctx context.Context, cli *CLI, chain *warctext.Chain, annotators []warctext.Annotator, logger *slog.Logger) (*warctext.Stats, error) {
	parser := warctext.NewParser(logger)

	if cli.Workers > 1 {
		s := &pipeline.Sharder{
			Parser:     parser,
			Chain:      chain,
			Annotators: annotators,
			Logger:     logger,
			Overwrite:  cli.Overwrite,
			Workers:    cli.Workers,
			NewWriter:  func() warctext.OutputWriter { return fs.NewTextWriter() },
		}
		return s.Run(ctx, cli.Input, cli.Output)
	}

	p := &pipeline.Pipeline{
		Parser:     parser,
		Chain:      chain,
		Writer:     newWriter(cli.Format),
		Annotators: annotators,
		Logger:     logger,
		Overwrite:  cli.Overwrite,
	}
	return p.Run(ctx, cli.Input, cli.Output)
}

func newWriter(format string) warctext.OutputWriter {
	if format == "structured" {
		return fs.NewJSONWriter()
	}
	return fs.NewTextWriter()
}

// validate enforces the flag constraints Kong cannot express.
func validate(cli *CLI) error {
	if cli.Workers < 1 {
		return warctext.Errorf(warctext.ECONFIG, "workers must be at least 1, got %d", cli.Workers)
	}
	if cli.Workers > 1 && cli.Format == "structured" {
		return warctext.Errorf(warctext.ECONFIG, "structured output cannot be produced with multiple workers")
	}
	return nil
}
