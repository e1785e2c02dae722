// Command analyze scores résumé files from the command line and writes the batch result as
// JSON, or the summary table as CSV or XLSX.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/kirillkom/resume-quality-checker/internal/bootstrap"
	"github.com/kirillkom/resume-quality-checker/internal/config"
	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/export"
	"github.com/kirillkom/resume-quality-checker/internal/observability/logging"
)

const (
	service = "analyze"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(service, flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "json", "output format: json, csv or xlsx")
	outPath := flags.String("out", "", "output file (default stdout)")
	spell := flags.String("spell", "", "spell backend override: languagetool, dictionary or none")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-format json|csv|xlsx] [-out path] [-spell backend] files or directories...\n", service)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}
	if *format != "json" {
		if _, err := export.ForFormat(*format); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "load .env: %v\n", err)
		return exitError
	}
	cfg := config.Load()
	if *spell != "" {
		cfg.SpellBackend = *spell
	}
	logger := logging.NewJSONLoggerTo(stderr, service, cfg.LogLevel)

	paths, err := expandPaths(flags.Args())
	if err != nil {
		logger.Error("collect_inputs_failed", "error", err)
		return exitError
	}
	docs, err := readDocuments(paths)
	if err != nil {
		logger.Error("read_inputs_failed", "error", err)
		return exitError
	}

	app, err := bootstrap.New(cfg, service, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		return exitError
	}
	result := app.Analyzer.AnalyzeBatch(ctx, docs)

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("open_output_failed", "path", *outPath, "error", err)
			return exitError
		}
		defer f.Close()
		out = f
	}
	if err := writeResult(out, *format, result); err != nil {
		logger.Error("write_output_failed", "format", *format, "error", err)
		return exitError
	}

	logger.Info("batch_finished",
		"batch_id", result.ID,
		"documents", len(result.Items),
		"analyzed", len(result.Summary),
	)
	return exitOK
}

func writeResult(w io.Writer, format string, result *domain.BatchResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	exporter, err := export.ForFormat(format)
	if err != nil {
		return err
	}
	return exporter.Export(w, result.Summary)
}

// expandPaths replaces each directory argument with the supported files directly inside it,
// in name order. File arguments are kept as given, so unsupported files still get an outcome.
func expandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, ok := domain.ParseFormat(entry.Name()); ok {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, filepath.Join(arg, name))
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no résumé files found")
	}
	return out, nil
}

func readDocuments(paths []string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.NewDocument(filepath.Base(path), data))
	}
	return docs, nil
}
