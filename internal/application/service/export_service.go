package service

import (
	"context"
	"fmt"

	"github.com/garyjia/expense-companion/internal/application/port"
)

// ExportService renders reports into downloadable documents
type ExportService interface {
	// ExportReport writes the report detail and returns the document's storage path
	ExportReport(ctx context.Context, reportID string) (string, error)
}

type exportServiceImpl struct {
	reports ReportService
	writer  port.ReportWriter
	logger  Logger
}

// NewExportService creates a new ExportService
func NewExportService(reports ReportService, writer port.ReportWriter, logger Logger) ExportService {
	return &exportServiceImpl{reports: reports, writer: writer, logger: logger}
}

func (s *exportServiceImpl) ExportReport(ctx context.Context, reportID string) (string, error) {
	detail, err := s.reports.Detail(ctx, reportID)
	if err != nil {
		return "", err
	}

	path, err := s.writer.Write(ctx, detail)
	if err != nil {
		s.logger.Error("Failed to export report", "error", err, "report_id", reportID)
		return "", fmt.Errorf("export report %s: %w", reportID, err)
	}

	s.logger.Info("Report exported", "report_id", reportID, "path", path)
	return path, nil
}
