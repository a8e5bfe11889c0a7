// Command export-report writes one report, its expenses, receipts and
// comments to an xlsx workbook and prints where it went.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/config"
	"github.com/garyjia/expense-companion/internal/container"
	"github.com/garyjia/expense-companion/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	reportID := flag.String("report", "", "id of the report to export")
	flag.Parse()

	if *reportID == "" {
		fmt.Fprintln(os.Stderr, "usage: export-report -report <id> [-config path]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: "stderr",
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path, err := export(context.Background(), cfg, logger, *reportID)
	if err != nil {
		logger.Error("Export failed", zap.String("report_id", *reportID), zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(path)
}

func export(ctx context.Context, cfg *config.Config, logger *zap.Logger, reportID string) (string, error) {
	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return "", err
	}
	if err := c.Start(ctx); err != nil {
		return "", err
	}
	defer c.Close()

	path, err := c.Services().Export.ExportReport(ctx, reportID)
	if err != nil {
		return "", err
	}
	return c.Files().GetFullPath(path), nil
}
