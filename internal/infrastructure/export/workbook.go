// Package export renders report details as xlsx workbooks.
package export

import (
	"context"
	"fmt"
	"path"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/infrastructure/storage"
)

// Sheet names of an exported workbook
const (
	SheetSummary  = "Report"
	SheetExpenses = "Expenses"
	SheetReceipts = "Receipts"
	SheetComments = "Comments"
)

const moneyFormat = `"$"#,##0.00`

// WorkbookWriter implements port.ReportWriter with excelize
type WorkbookWriter struct {
	files  port.FileStorage
	dir    string
	logger *zap.Logger
}

// NewWorkbookWriter creates a writer saving workbooks under dir of files
func NewWorkbookWriter(files port.FileStorage, dir string, logger *zap.Logger) *WorkbookWriter {
	return &WorkbookWriter{
		files:  files,
		dir:    dir,
		logger: logger,
	}
}

// Write renders detail and returns the workbook's path relative to the file storage
func (w *WorkbookWriter) Write(ctx context.Context, detail *port.ReportDetail) (string, error) {
	if detail == nil || detail.Report == nil {
		return "", fmt.Errorf("export: empty report detail")
	}
	report := detail.Report

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return "", err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetExpenses, SheetReceipts, SheetComments} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	w.fillSummary(f, styles, detail)
	w.fillExpenses(f, styles, detail)
	w.fillReceipts(f, styles, detail)
	w.fillComments(f, styles, detail)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("failed to render workbook: %w", err)
	}

	name := fmt.Sprintf("%s-%s.xlsx", storage.SafeName(report.Title), storage.SafeName(report.ID))
	rel := path.Join(w.dir, name)
	if err := w.files.Save(ctx, rel, buf.Bytes()); err != nil {
		return "", err
	}

	w.logger.Info("Report workbook written",
		zap.String("report_id", report.ID),
		zap.String("path", rel),
		zap.Int("expenses", len(detail.Expenses)))
	return rel, nil
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	format := moneyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create money style: %w", err)
	}
	return styles{header: header, money: money}, nil
}

func (w *WorkbookWriter) fillSummary(f *excelize.File, st styles, detail *port.ReportDetail) {
	r := detail.Report
	rows := [][]interface{}{
		{"Title", r.Title},
		{"Submitted by", r.SubmittedBy},
		{"Submission date", r.SubmissionDate},
		{"Status", r.Status.String()},
		{"Category", r.Category},
		{"Business purpose", r.BusinessPurpose},
		{"Expenses", r.ExpenseCount},
		{"Total", r.TotalAmount},
	}
	if r.DecidedBy != "" {
		rows = append(rows, []interface{}{"Decided by", r.DecidedBy})
	}
	if r.DecisionComment != "" {
		rows = append(rows, []interface{}{"Decision comment", r.DecisionComment})
	}

	for i, row := range rows {
		w.setRow(f, SheetSummary, i+1, row)
	}
	w.style(f, SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), st.header)
	w.style(f, SheetSummary, "B8", "B8", st.money)
	w.width(f, SheetSummary, "A", 20)
	w.width(f, SheetSummary, "B", 40)
}

func (w *WorkbookWriter) fillExpenses(f *excelize.File, st styles, detail *port.ReportDetail) {
	w.setRow(f, SheetExpenses, 1, []interface{}{"Date", "Description", "Category", "Status", "Amount"})
	w.style(f, SheetExpenses, "A1", "E1", st.header)

	total := 0.0
	for i, e := range detail.Expenses {
		w.setRow(f, SheetExpenses, i+2, []interface{}{e.Date, e.Description, e.Category, e.Status.String(), e.Amount})
		total += e.Amount
	}
	last := len(detail.Expenses) + 2
	w.setRow(f, SheetExpenses, last, []interface{}{"", "", "", "Total", total})
	w.style(f, SheetExpenses, fmt.Sprintf("D%d", last), fmt.Sprintf("D%d", last), st.header)
	w.style(f, SheetExpenses, "E2", fmt.Sprintf("E%d", last), st.money)
	w.width(f, SheetExpenses, "B", 36)
}

func (w *WorkbookWriter) fillReceipts(f *excelize.File, st styles, detail *port.ReportDetail) {
	w.setRow(f, SheetReceipts, 1, []interface{}{"Date", "Description", "Expense", "Type", "Amount"})
	w.style(f, SheetReceipts, "A1", "E1", st.header)

	for i, r := range detail.Receipts {
		kind := "image"
		if r.IsPDF() {
			kind = "pdf"
		}
		w.setRow(f, SheetReceipts, i+2, []interface{}{r.Date, r.Description, r.ExpenseDescription, kind, r.Amount})
	}
	if n := len(detail.Receipts); n > 0 {
		w.style(f, SheetReceipts, "E2", fmt.Sprintf("E%d", n+1), st.money)
	}
	w.width(f, SheetReceipts, "B", 30)
	w.width(f, SheetReceipts, "C", 30)
}

func (w *WorkbookWriter) fillComments(f *excelize.File, st styles, detail *port.ReportDetail) {
	w.setRow(f, SheetComments, 1, []interface{}{"Time", "Author", "Kind", "Comment"})
	w.style(f, SheetComments, "A1", "D1", st.header)

	for i, c := range detail.Comments {
		w.setRow(f, SheetComments, i+2, []interface{}{c.Timestamp.Format("2006-01-02 15:04"), c.Author, c.Kind, c.Content})
	}
	w.width(f, SheetComments, "D", 60)
}

// setRow writes values starting at column A of row
func (w *WorkbookWriter) setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.logger.Warn("Invalid row", zap.String("sheet", sheet), zap.Int("row", row), zap.Error(err))
		return
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		w.logger.Warn("Failed to set row",
			zap.String("sheet", sheet),
			zap.Int("row", row),
			zap.Error(err))
	}
}

func (w *WorkbookWriter) style(f *excelize.File, sheet, from, to string, style int) {
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		w.logger.Warn("Failed to set cell style",
			zap.String("sheet", sheet),
			zap.String("range", from+":"+to),
			zap.Error(err))
	}
}

func (w *WorkbookWriter) width(f *excelize.File, sheet, col string, width float64) {
	if err := f.SetColWidth(sheet, col, col, width); err != nil {
		w.logger.Warn("Failed to set column width", zap.String("sheet", sheet), zap.String("col", col), zap.Error(err))
	}
}

var _ port.ReportWriter = (*WorkbookWriter)(nil)
