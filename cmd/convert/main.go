package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/statement"
	"github.com/insightdelivered/statement-analyzer/internal/summary"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

const version = "1.0.0"

func main() {
	outputFlag := flag.String("output", "", "Output path without extension (defaults to the input path)")
	formatFlag := flag.String("format", "csv", "Export format: csv, xlsx or both")
	summaryFlag := flag.Bool("summary", true, "Include period totals in the export")
	roundingFlag := flag.String("rounding", "half-even", "Rounding for totals: half-even or half-away")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Analyzer
by Insight Delivered (QEA AutoLens)

Converts bank statement PDFs (or plain text dumps) into classified
transaction exports with period totals.

Usage:
  statement-convert [flags] <input.pdf|input.txt> [input2 ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement PDF to CSV
  statement-convert statement.pdf

  # Produce both export formats under a custom name
  statement-convert --format=both --output=january statement.pdf

  # Convert several files without summary rows
  statement-convert --summary=false jan.txt feb.txt mar.txt
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-convert v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	cfg := statement.DefaultConfig()
	switch strings.ToLower(*roundingFlag) {
	case "half-even":
		cfg.Rounding = summary.RoundHalfEven
	case "half-away":
		cfg.Rounding = summary.RoundHalfAwayFromZero
	default:
		fatalf("Unknown rounding mode %q. Supported: half-even, half-away\n", *roundingFlag)
	}

	formats, err := exportFormats(*formatFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	if err := validateOutputFlag(*outputFlag, flag.NArg()); err != nil {
		fatalf("%v\n", err)
	}

	// Progress goes to stdout below; the pipeline's own logging would
	// only repeat it.
	processor := statement.NewProcessor(cfg, zerolog.Nop())

	for _, inputPath := range flag.Args() {
		if err := processFile(processor, inputPath, *outputFlag, formats, *summaryFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(processor *statement.Processor, inputPath, outputPath string, formats []string, includeSummary bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := readInput(inputPath)
	if err != nil {
		return err
	}

	stmt, err := processor.Process(text)
	if err != nil {
		return err
	}

	base := outputPath
	if base == "" {
		base = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}

	for _, format := range formats {
		outPath := base + "." + format
		if err := writeExport(outPath, format, includeSummary, stmt); err != nil {
			return err
		}
		fmt.Printf("  Output: %s\n", outPath)
	}

	printSummary(stmt.Summary)
	fmt.Println("  Done.")
	return nil
}

func readInput(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err := extractor.ExtractText(path)
		if err != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", err)
		}
		return text, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("expected a .pdf or .txt file, got %q", ext)
	}
}

func writeExport(path, format string, includeSummary bool, stmt *models.Statement) error {
	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeSummary: includeSummary}
		if err := w.WriteToFile(path, stmt); err != nil {
			return fmt.Errorf("csv write failed: %w", err)
		}
	case "xlsx":
		w := &writer.XLSXWriter{IncludeSummary: includeSummary}
		if err := w.WriteToFile(path, stmt); err != nil {
			return fmt.Errorf("xlsx write failed: %w", err)
		}
	}
	return nil
}

// validateOutputFlag rejects a fixed output base for multi-file runs;
// every file would overwrite the previous one's exports.
func validateOutputFlag(output string, inputs int) error {
	if output != "" && inputs > 1 {
		return fmt.Errorf("-output names a single base path and cannot be used with %d inputs; drop it or convert one file at a time", inputs)
	}
	return nil
}

func exportFormats(mode string) ([]string, error) {
	switch strings.ToLower(mode) {
	case "csv":
		return []string{"csv"}, nil
	case "xlsx":
		return []string{"xlsx"}, nil
	case "both":
		return []string{"csv", "xlsx"}, nil
	default:
		return nil, fmt.Errorf("unknown format %q. Supported: csv, xlsx, both", mode)
	}
}

func printSummary(sum models.PeriodSummary) {
	fmt.Printf("  Transactions: %d\n", sum.TotalTransactions)
	fmt.Printf("  Total credit: %s\n", sum.TotalCredit.StringFixed(2))
	fmt.Printf("  Total debit:  %s\n", sum.TotalDebit.StringFixed(2))
	if sum.OpeningBalance.Valid {
		fmt.Printf("  Opening balance: %s\n", sum.OpeningBalance.Decimal.StringFixed(2))
	}
	if sum.ClosingBalance.Valid {
		fmt.Printf("  Closing balance: %s\n", sum.ClosingBalance.Decimal.StringFixed(2))
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
