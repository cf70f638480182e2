// Command processor converts a plate-reader growth-curve export (CSV, XLSX
// or XLS) into a tidy long-format CSV, one row per well per timepoint,
// optionally annotated with experimental conditions from a mapping file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"odcli/internal/conditions"
	"odcli/internal/config"
	"odcli/internal/exporter"
	"odcli/internal/infrastructure"
	"odcli/internal/plate"
	"odcli/internal/validation"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] input_file\n\n"+
			"Process bacterial growth data from a plate reader CSV or Excel export.\n\n"+
			"Arguments:\n"+
			"  input_file\n"+
			"        path to the plate-reader export (CSV, XLSX or XLS)\n\n"+
			"Flags:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	mapPath := flag.String("map", "", "CSV or Excel file mapping wells to conditions (must contain 'Well' and 'Condition' columns)")
	var outPath string
	flag.StringVar(&outPath, "o", "", "path for the output processed CSV file")
	flag.StringVar(&outPath, "output_file", "", "path for the output processed CSV file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if outPath == "" {
		outPath = cfg.Output.DefaultFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := run(inputPath, *mapPath, outPath, logger); err != nil {
		logger.Error("Processing failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run executes the whole pipeline: validate, load, detect, extract, reshape,
// join, write. Any returned error is fatal and no output file exists for it.
func run(inputPath, mapPath, outPath string, logger *slog.Logger) error {
	logger.Info("Starting growth-data processing",
		slog.String("input_file", inputPath),
		slog.String("mapping_file", mapPath),
		slog.String("output_file", outPath))

	// All fatal validation happens before the output file is created, so a
	// failed run never leaves a partial output behind.
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(inputPath); err != nil {
		return err
	}
	if mapPath != "" {
		if err := validator.ValidateInputFile(mapPath); err != nil {
			return err
		}
	}

	var condMap conditions.Map
	if mapPath != "" {
		var err error
		condMap, err = conditions.Load(mapPath, logger)
		if err != nil {
			return err
		}
	}

	p, layout, err := plate.Read(inputPath, logger)
	if err != nil {
		return err
	}
	records := plate.Reshape(p)

	var out []conditions.Record
	if condMap != nil {
		out = conditions.Join(records, condMap, logger)
	} else {
		out = conditions.Bare(records)
	}

	if err := exporter.WriteLong(outPath, out, condMap != nil); err != nil {
		return err
	}

	wells := len(p.Wells())
	timepoints := distinctTimepoints(records)
	logger.Info("Processing complete",
		slog.String("layout", layout.String()),
		slog.Int("records", len(out)),
		slog.Int("wells", wells),
		slog.Int("timepoints", timepoints),
		slog.String("output_file", outPath))

	fmt.Printf("Processing complete. Output saved to '%s'.\n", outPath)
	fmt.Printf("Processed %d data points from %d wells across %d time points.\n",
		len(out), wells, timepoints)
	return nil
}

func distinctTimepoints(records []plate.MeasurementRecord) int {
	seen := make(map[float64]bool)
	for _, r := range records {
		seen[r.TimeS] = true
	}
	return len(seen)
}
