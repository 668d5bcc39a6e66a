// Command osmclip cuts a bounding box out of an OSM XML file.
//
// Usage:
//
//	osmclip [flags] <input.osm> <minLon> <minLat> <maxLon> <maxLat>
//
// Nodes inside the box are kept, ways are kept when all of their nodes
// were kept, and relations are kept when they have members, with members
// pruned to kept ways. The input must list nodes, then ways, then
// relations, as OSM exports do.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beetlebugorg/osmclip/internal/config"
	"github.com/beetlebugorg/osmclip/internal/logging"
	"github.com/beetlebugorg/osmclip/internal/metrics"
	"github.com/beetlebugorg/osmclip/pkg/osm"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// boxList collects repeated -box flags.
type boxList []string

func (b *boxList) String() string { return strings.Join(*b, ";") }

func (b *boxList) Set(s string) error {
	if _, err := osm.ParseBoundsString(s); err != nil {
		return err
	}
	*b = append(*b, s)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("osmclip", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		boxes          boxList
		output         string
		configPath     = fs.String("config", "", "YAML configuration file")
		progress       = fs.Int64("progress", osm.DefaultProgressInterval, "report progress every N input lines (0 disables)")
		logLevel       = fs.String("log-level", "info", "log level: debug, info, warn, error")
		logFormat      = fs.String("log-format", "text", "log format: text or json")
		metricsFile    = fs.String("metrics-file", "", "write Prometheus metrics to this file at exit")
		lineEnding     = fs.String("line-ending", "lf", "output line terminator: lf or crlf")
		strict         = fs.Bool("strict", false, "abort on elements with missing or invalid id/lat/lon")
		requireMembers = fs.Bool("require-members", false, "drop relations whose members were all pruned")
	)
	fs.StringVar(&output, "output", "output.osm", "output file")
	fs.StringVar(&output, "o", "output.osm", "output file (shorthand)")
	fs.Var(&boxes, "box", "extra box minLon,minLat,maxLon,maxLat (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: osmclip [flags] <input.osm> <minLon> <minLat> <maxLon> <maxLat>\n\n")
		fmt.Fprintln(stderr, "Extracts the part of an OSM XML file inside a bounding box.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) != 5 {
		fmt.Fprintf(stderr, "error: expected 5 arguments, got %d\n", len(rest))
		fs.Usage()
		return exitUsage
	}
	input := rest[0]
	if input == "" {
		fmt.Fprintln(stderr, "error: input path is empty")
		return exitUsage
	}

	bounds, err := osm.ParseBounds(rest[1:])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	// only flags given on the command line override file and environment
	overrides := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output", "o":
			overrides["output"] = output
		case "box":
			overrides["boxes"] = boxes.String()
		case "progress":
			overrides["progress_interval"] = *progress
		case "log-level":
			overrides["log.level"] = *logLevel
		case "log-format":
			overrides["log.format"] = *logFormat
		case "metrics-file":
			overrides["metrics.file"] = *metricsFile
		case "line-ending":
			overrides["line_ending"] = *lineEnding
		case "strict":
			overrides["strict"] = *strict
		case "require-members":
			overrides["require_members"] = *requireMembers
		}
	})

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr).
		With("run_id", uuid.NewString())

	extra, err := cfg.ExtraBounds()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	recorder := metrics.NewRecorder()

	opts := osm.DefaultExtractOptions()
	opts.Bounds = append([]osm.Bounds{bounds}, extra...)
	opts.Strict = cfg.Strict
	opts.RequireSurvivingMember = cfg.RequireMembers
	opts.LineEnding = cfg.LineEnding
	opts.ProgressInterval = cfg.ProgressInterval
	opts.MaxLineSize = cfg.MaxLineSize
	opts.Logger = logger
	opts.Progress = func(s osm.Stats) {
		recorder.Observe(s)
		logger.Info(s.String())
	}

	logger.Info("extracting",
		"input", input,
		"output", cfg.Output,
		"bounds", bounds.String(),
		"extra_boxes", len(extra))

	start := time.Now()
	stats, err := osm.ExtractFile(input, cfg.Output, opts)
	recorder.Finish(time.Since(start), err == nil)
	writeMetrics(logger, recorder, cfg.Metrics.File)

	if err != nil {
		logger.Error("extraction failed", "error", err, "lines", stats.Lines)
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, osm.ErrOutputCollision) || errors.Is(err, osm.ErrEmptyInputPath) ||
			errors.Is(err, osm.ErrInvalidBounds) {
			return exitUsage
		}
		return exitError
	}

	logger.Info("finished",
		"elements", stats.Elements,
		"kept", stats.Kept,
		"dropped", stats.Dropped,
		"malformed", stats.Malformed,
		"non_whitelisted", stats.NonWhitelisted,
		"bytes", stats.Bytes,
		"elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(stdout, stats.String())
	return exitOK
}

func writeMetrics(logger *slog.Logger, recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		logger.Warn("write metrics", "path", path, "error", err)
	}
}
