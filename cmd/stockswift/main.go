package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stockswift/stockswift/internal/backup"
	backupdomain "github.com/stockswift/stockswift/internal/backup/domain"
	"github.com/stockswift/stockswift/internal/clock"
	"github.com/stockswift/stockswift/internal/config"
	"github.com/stockswift/stockswift/internal/migration"
	"github.com/stockswift/stockswift/internal/product"
	"github.com/stockswift/stockswift/internal/report"
	"github.com/stockswift/stockswift/internal/sale"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
	"github.com/stockswift/stockswift/pkg/db"
	"github.com/stockswift/stockswift/pkg/log"
	"go.uber.org/fx"
)

func main() {
	var (
		exportPath = flag.String("export", "", "write a full backup to the given file")
		importPath = flag.String("import", "", "restore a backup from the given file (replaces all data)")
		reportFlag = flag.String("report", "", "render the monthly report for the given period (YYYY-MM)")
		format     = flag.String("format", "json", "report format: json, csv or pdf")
		outPath    = flag.String("out", "", "output file for the report (defaults to stdout for json/csv)")
		clearFlag  = flag.Bool("clear", false, "irreversibly delete all products and sales")
		yes        = flag.Bool("yes", false, "confirm destructive operations")
	)
	flag.Parse()

	var (
		backups  backupdomain.Service
		sales    saledomain.Service
		exporter *report.Exporter
	)

	app := fx.New(
		config.Module,
		log.Module,
		db.Module,
		clock.Module,
		fx.Provide(newSnowflakeNode),
		migration.Module,

		product.Module,
		sale.Module,
		report.Module,
		backup.Module,

		fx.NopLogger,
		fx.Populate(&backups, &sales, &exporter),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fatal(err)
	}
	defer app.Stop(ctx)

	switch {
	case *exportPath != "":
		runExport(ctx, backups, *exportPath)
	case *importPath != "":
		runImport(ctx, backups, *importPath)
	case *reportFlag != "":
		runReport(ctx, sales, exporter, *reportFlag, *format, *outPath)
	case *clearFlag:
		if !*yes {
			fatal(fmt.Errorf("refusing to clear all data without -yes"))
		}
		if err := backups.ClearAll(ctx); err != nil {
			fatal(err)
		}
		fmt.Println("all data cleared")
	default:
		flag.Usage()
	}
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func runExport(ctx context.Context, backups backupdomain.Service, path string) {
	data, err := backups.Export(ctx)
	if err != nil {
		fatal(err)
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("backup written to %s (%d products, %d sales)\n", path, len(data.Products), len(data.Sales))
}

func runImport(ctx context.Context, backups backupdomain.Service, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	data, err := backupdomain.ParseBackup(raw)
	if err != nil {
		fatal(err)
	}
	if err := backups.Import(ctx, data); err != nil {
		fatal(err)
	}
	fmt.Printf("backup restored from %s (%d products, %d sales)\n", path, len(data.Products), len(data.Sales))
}

func runReport(ctx context.Context, sales saledomain.Service, exporter *report.Exporter, periodFlag, format, outPath string) {
	parsed, err := time.Parse("2006-01", periodFlag)
	if err != nil {
		fatal(fmt.Errorf("invalid period %q, expected YYYY-MM", periodFlag))
	}
	period := report.Period{Year: parsed.Year(), Month: parsed.Month()}

	periodSales, err := sales.ListByPeriod(ctx, period.Year, period.Month)
	if err != nil {
		fatal(err)
	}
	summary := report.Summarize(periodSales)

	var rendered []byte
	switch format {
	case "json":
		rendered, err = exporter.JSON(periodSales, summary, period)
	case "csv":
		rendered, err = exporter.CSV(periodSales, summary)
	case "pdf":
		if outPath == "" {
			fatal(fmt.Errorf("pdf output requires -out"))
		}
		rendered, err = exporter.PDF(periodSales, summary, period)
	default:
		fatal(fmt.Errorf("unknown report format %q", format))
	}
	if err != nil {
		fatal(err)
	}

	if outPath == "" {
		fmt.Println(string(rendered))
		return
	}
	if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("report written to %s\n", outPath)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "stockswift:", err)
	os.Exit(1)
}
