package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fleetfuel/reconciliation-engine/internal/narrative"
	"github.com/fleetfuel/reconciliation-engine/internal/report"
	"github.com/fleetfuel/reconciliation-engine/internal/repository"
	"github.com/fleetfuel/reconciliation-engine/internal/service"
	"github.com/fleetfuel/reconciliation-engine/pkg/resilience"
)

const defaultDateFormat = "2/1/2006"

func main() {
	// Command-line flags
	var (
		bankFile       string
		bookFile       string
		bankDateFormat string
		bookDateFormat string
		outputFormat   string
		outputFile     string
		agentURL       string
		prettyPrint    bool
		verbose        bool
	)

	flag.StringVar(&bankFile, "bank-file", "", "Path to bank settlement CSV file")
	flag.StringVar(&bookFile, "book-file", "", "Path to book ledger CSV file")
	flag.StringVar(&bankDateFormat, "bank-date-format", defaultDateFormat, "Go layout for bank transaction dates")
	flag.StringVar(&bookDateFormat, "book-date-format", defaultDateFormat, "Go layout for book posting dates")
	flag.StringVar(&outputFormat, "format", "json", "Output format: json or text")
	flag.StringVar(&outputFile, "output", "", "Path to output file (if empty, writes to stdout)")
	flag.StringVar(&agentURL, "agent-url", "", "Analysis agent base URL (if empty, no narrative is generated)")
	flag.BoolVar(&prettyPrint, "pretty", true, "Pretty print JSON output")
	flag.BoolVar(&verbose, "verbose", false, "Log ingestion warnings to stderr")

	flag.Parse()

	// Validate required flags
	if bankFile == "" {
		exitWithError("Bank settlement file path is required")
	}
	if bookFile == "" {
		exitWithError("Book ledger file path is required")
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			exitWithError(fmt.Sprintf("Failed to create logger: %v", err))
		}
		defer logger.Sync()
	}

	bankRepo := repository.NewCSVBankRepository(bankFile, bankDateFormat, logger)
	bookRepo := repository.NewCSVBookRepository(bookFile, bookDateFormat, logger)

	var narrator service.NarrativeGenerator
	if agentURL != "" {
		narrator = narrative.NewAgentClient(
			&http.Client{Timeout: 10 * time.Second},
			agentURL,
			resilience.Config{MaxRetries: 2, InitialBackoff: 100 * time.Millisecond},
		)
	}

	reconciliationService := service.NewReconciliationService(bankRepo, bookRepo, narrator, logger)

	result, err := reconciliationService.Reconcile(context.Background())
	if err != nil {
		exitWithError(fmt.Sprintf("Reconciliation failed: %v", err))
	}

	// Format the output
	var formatter report.OutputFormatter
	switch outputFormat {
	case "json":
		formatter = report.NewJSONFormatter(prettyPrint)
	case "text":
		formatter = report.NewTextFormatter()
	default:
		exitWithError(fmt.Sprintf("Unsupported output format: %s", outputFormat))
		return
	}

	output, err := formatter.Format(result)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to format output: %v", err))
	}

	// Output the result
	if outputFile != "" {
		// If no extension is provided, add the formatter's default extension
		if !strings.Contains(outputFile, ".") {
			outputFile = fmt.Sprintf("%s.%s", outputFile, formatter.FileExtension())
		}

		err := os.WriteFile(outputFile, output, 0644)
		if err != nil {
			exitWithError(fmt.Sprintf("Failed to write output file: %v", err))
		}

	} else {

		// Write output to stdout
		fmt.Println(string(output))
	}
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
