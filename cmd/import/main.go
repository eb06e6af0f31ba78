// Package main replaces the product table with the rows of a spreadsheet.
//
// Usage:
//
//	import -source sheets                      # Google Sheet from SHEETS_* env
//	import -source xlsx -file inventory.xlsx   # local workbook
//	import -source xlsx -file inv.xlsx -dry-run -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventrack/internal/config"
	"inventrack/internal/domain/importer"
	"inventrack/internal/infrastructure/metrics"
	"inventrack/internal/infrastructure/numerator"
	"inventrack/internal/infrastructure/spreadsheet"
	"inventrack/internal/infrastructure/storage/postgres"
	"inventrack/internal/infrastructure/storage/postgres/product_repo"
	"inventrack/pkg/logger"
)

func main() {
	var (
		source      = flag.String("source", "sheets", "row source: sheets or xlsx")
		file        = flag.String("file", "", "workbook path for -source xlsx")
		sheet       = flag.String("sheet", "", "sheet name (default: SHEETS_SHEET_NAME for sheets, first sheet for xlsx)")
		dryRun      = flag.Bool("dry-run", false, "parse and validate without writing")
		jsonReport  = flag.Bool("json", false, "print the report as JSON")
		metricsFile = flag.String("metrics-file", "", "write import metrics in Prometheus textfile format")
	)
	flag.Parse()

	cfg, err := config.LoadImport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	src, err := newSource(cfg, *source, *file, *sheet)
	if err != nil {
		log.Fatalw("invalid source", "error", err)
	}

	if cfg.MigrateOnStart && !*dryRun {
		if _, err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool).WithStatementTimeout(cfg.DBStatementTimeout)

	var m *metrics.Metrics
	if *metricsFile != "" {
		m = metrics.New(false)
	}

	svc := importer.NewService(importer.ServiceConfig{
		Repo: product_repo.NewProductRepo(txm),
		Numerator: numerator.New(func(ctx context.Context) numerator.Querier {
			return txm.GetQuerier(ctx)
		}),
		TxManager: txm,
		Metrics:   m,
	})

	log.Infow("import started", "source", src.Name(), "dry_run", *dryRun)
	report, err := svc.Run(ctx, src, importer.Options{DryRun: *dryRun})
	if err != nil {
		log.Fatalw("import failed, products left unchanged", "source", src.Name(), "error", err)
	}

	for _, w := range report.Warnings {
		log.Warnw("row skipped", "line", w.Line, "reason", w.Message)
	}
	log.Infow("import finished",
		"rows", report.Rows,
		"imported", report.Imported,
		"skipped", report.Skipped,
		"generated_codes", report.Generated,
		"deleted", report.Deleted,
	)

	if *jsonReport {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Errorw("failed to print report", "error", err)
		}
	}

	if *metricsFile != "" {
		if err := m.WriteTextfile(*metricsFile); err != nil {
			log.Errorw("failed to write metrics file", "path", *metricsFile, "error", err)
		}
	}
}

func newSource(cfg *config.Import, kind, file, sheet string) (importer.Source, error) {
	switch kind {
	case "sheets":
		name := cfg.SheetsSheetName
		if sheet != "" {
			name = sheet
		}
		return spreadsheet.NewGoogleSheet(spreadsheet.GoogleConfig{
			SpreadsheetID: cfg.SheetsSpreadsheetID,
			SheetName:     name,
			APIKey:        cfg.SheetsAPIKey,
		})
	case "xlsx":
		if file == "" {
			return nil, fmt.Errorf("-file is required for -source xlsx")
		}
		return spreadsheet.NewWorkbook(file, sheet), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want sheets or xlsx)", kind)
	}
}
