// Command grafbreak breaks the paragraphs of a document into lines with the
// Knuth-Plass algorithm and prints them with a marker at every break.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dgallion1/grafbreak/internal/config"
	"github.com/dgallion1/grafbreak/internal/paragraph"
	"github.com/dgallion1/grafbreak/internal/pipeline"
	"github.com/dgallion1/grafbreak/internal/source"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath    string
	width         int
	ratio         float64
	hyphenPenalty int
	marker        string
	rejectUnknown bool
	format        string
	url           string
	jsonOut       bool
	logLevel      string
	showVersion   bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("grafbreak", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	fs.IntVar(&opts.width, "width", 0, "Target line width in units (default from config, 390)")
	fs.Float64Var(&opts.ratio, "ratio", 0, "Maximum adjustment ratio (default from config, 10)")
	fs.IntVar(&opts.hyphenPenalty, "hyphen-penalty", 0, "Penalty for breaking at a hyphen (default from config, 50)")
	fs.StringVar(&opts.marker, "marker", "", "Marker inserted at every break (default soft hyphen)")
	fs.BoolVar(&opts.rejectUnknown, "reject-unknown", false, "Fail on characters missing from the metrics table")
	fs.StringVar(&opts.format, "format", "txt", "Input format when reading stdin (txt, md, html, pdf, docx)")
	fs.StringVar(&opts.url, "url", "", "Fetch the document from a URL instead of a file")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print paragraph results as JSON")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "grafbreak - optimal paragraph line breaking\n\n")
		fmt.Fprintf(stderr, "Usage: grafbreak [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  grafbreak tale.md                 Break every paragraph of a file\n")
		fmt.Fprintf(stderr, "  echo text | grafbreak -width 200  Break stdin at width 200\n")
		fmt.Fprintf(stderr, "  grafbreak -marker '|' -json a.txt Show break positions and line ratios\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "grafbreak %s\n", version)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 2
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(fs, opts, &cfg)

	filename, data, err := readInput(ctx, fs.Args(), opts, cfg, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.Debug("read input", "filename", filename, "bytes", len(data))

	w := pipeline.NewWorker(nil, nil, log, pipeline.WorkerConfigFrom(cfg))
	tree, err := w.Parse(filename, data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: parse %s: %v\n", filename, err)
		return 1
	}
	paras := paragraph.Collect(tree, paragraph.Config{MinRunes: cfg.MinParagraphRunes})
	results := w.BreakAll(ctx, paras, nil)

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []pipeline.ParagraphResult{}
		}
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	code := 0
	for i, r := range results {
		if r.Failed() {
			fmt.Fprintf(stderr, "Error: paragraph %d: %s\n", r.Index, r.Error)
			code = 1
			continue
		}
		if opts.jsonOut {
			continue
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout, r.Annotated)
	}
	return code
}

// applyFlags overrides configuration with the flags given on the command line.
func applyFlags(fs *flag.FlagSet, opts options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			if opts.width > 0 {
				cfg.TargetWidth = opts.width
			}
		case "ratio":
			if opts.ratio >= 0 {
				cfg.RatioMax = opts.ratio
			}
		case "hyphen-penalty":
			cfg.HyphenPenalty = opts.hyphenPenalty
		case "marker":
			if opts.marker != "" {
				cfg.Marker = opts.marker
			}
		case "reject-unknown":
			cfg.RejectUnknown = opts.rejectUnknown
		}
	})
}

func readInput(ctx context.Context, args []string, opts options, cfg config.Config, stdin io.Reader) (string, []byte, error) {
	switch {
	case opts.url != "":
		doc, err := source.NewClient(cfg.FetchTimeout, cfg.MaxUploadBytes).Fetch(ctx, opts.url)
		if err != nil {
			return "", nil, err
		}
		return doc.Filename, doc.Data, nil
	case len(args) > 1:
		return "", nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("read input: %w", err)
		}
		return filepath.Base(args[0]), data, nil
	default:
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, io.LimitReader(stdin, cfg.MaxUploadBytes+1)); err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		if int64(buf.Len()) > cfg.MaxUploadBytes {
			return "", nil, fmt.Errorf("input exceeds %d bytes", cfg.MaxUploadBytes)
		}
		return "stdin." + strings.TrimPrefix(opts.format, "."), buf.Bytes(), nil
	}
}
