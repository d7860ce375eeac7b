// slbinspect validates the relocation footer of SLB files and lists the offsets in them.
//
// Usage:
//
//	slbinspect [--config file] [--format text|yaml|cbor] file...
//
// Every file must end in a well formed footer; the magic, the slot count and every slot are checked.
// The report includes a BLAKE3 digest of each file, so repacked files can be compared.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		format     string
	)

	flagSet := pflag.NewFlagSet("slbinspect", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVarP(&format, "format", "f", "", "report format: text, yaml or cbor (overrides the config file)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Format = config.Format(format)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	files := flagSet.Args()
	if len(files) == 0 {
		return errors.New("no files given")
	}

	reports := make([]*Report, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		report, err := inspect(file, data, cfg.CheckTargets)
		if err != nil {
			return err
		}

		logger.Debug("inspected file",
			slog.String("file", file),
			slog.Int("offsets", len(report.Offsets)),
			slog.Int64("data_size", report.DataSize),
		)
		reports = append(reports, report)
	}

	return writeReports(stdout, cfg.Format, reports)
}
