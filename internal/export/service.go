package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"jobtrack/internal/common"
	"jobtrack/internal/entity"
	"jobtrack/internal/repository"
)

// Column order is part of the export contract.
var headers = []string{"id", "title", "company", "status", "deadline", "link", "notes"}

// Service is a tiny façade over the job repository that writes export files.
type Service struct {
	jobRepo repository.JobRepository
	logger  *slog.Logger
}

func NewService(jobRepo repository.JobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobRepo: jobRepo, logger: logger}
}

// ExportCSV writes all jobs to path as UTF-8 CSV with a header row and
// returns the number of data rows. When there are no jobs it writes nothing
// and returns ErrEmptyResult, which callers report without failing.
func (s *Service) ExportCSV(ctx context.Context, path string) (int, error) {
	start := time.Now()

	jobs, err := s.jobRepo.ListJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("query jobs: %w", err)
	}
	if len(jobs) == 0 {
		return 0, common.ErrEmptyResult
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return 0, fmt.Errorf("csv write header: %w", err)
	}
	for _, job := range jobs {
		if err := w.Write(record(job)); err != nil {
			return 0, fmt.Errorf("csv write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("csv flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export file: %w", err)
	}

	s.logger.Info("export.csv.ok",
		"path", path,
		"rows", len(jobs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return len(jobs), nil
}

// ExportXLSX writes all jobs to path as an XLSX workbook with the same
// columns as the CSV export. Empty table writes nothing and returns
// ErrEmptyResult.
func (s *Service) ExportXLSX(ctx context.Context, path string) (int, error) {
	start := time.Now()

	jobs, err := s.jobRepo.ListJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("query jobs: %w", err)
	}
	if len(jobs) == 0 {
		return 0, common.ErrEmptyResult
	}

	f := excelize.NewFile()
	const sheet = "Jobs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return 0, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, job := range jobs {
		for col, v := range record(job) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 6)  // id
	_ = f.SetColWidth(sheet, "B", "C", 28) // title, company
	_ = f.SetColWidth(sheet, "D", "E", 14) // status, deadline
	_ = f.SetColWidth(sheet, "F", "F", 48) // link
	_ = f.SetColWidth(sheet, "G", "G", 60) // notes

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(jobs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return len(jobs), nil
}

// record renders one job in export column order, empty strings for absent
// optional fields, ISO date for the deadline.
func record(job *entity.Job) []string {
	return []string{
		strconv.FormatInt(job.ID, 10),
		job.Title,
		job.Company,
		string(job.Status),
		job.DeadlineString(),
		job.Link,
		job.Notes,
	}
}
