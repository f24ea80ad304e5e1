package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/internal/scheduling"
	"github.com/acadsync/timetable-api/pkg/export"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// ExportTimetableSource provides the rows an export renders.
type ExportTimetableSource interface {
	ListAll(ctx context.Context) ([]models.TimetableEntryDetail, error)
}

// ExportService renders the current timetable as CSV or PDF downloads.
type ExportService struct {
	source ExportTimetableSource
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(source ExportTimetableSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		source: source,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

func (s *ExportService) dataset(ctx context.Context) (export.Dataset, error) {
	entries, err := s.source.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Headers: []string{"Day", "Slot", "Batch", "Subject", "Code", "Faculty", "Room"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, entry := range entries {
		data.Rows = append(data.Rows, []string{
			scheduling.DayName(entry.Day),
			scheduling.SlotLabel(entry.Slot),
			entry.BatchName,
			entry.SubjectName,
			entry.SubjectCode,
			entry.FacultyName,
			entry.RoomName,
		})
	}
	return data, nil
}

// TimetableCSV renders the full timetable as CSV bytes.
func (s *ExportService) TimetableCSV(ctx context.Context) ([]byte, string, error) {
	data, err := s.dataset(ctx)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, "timetable.csv", nil
}

// TimetablePDF renders the full timetable as a landscape PDF.
func (s *ExportService) TimetablePDF(ctx context.Context) ([]byte, string, error) {
	data, err := s.dataset(ctx)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(data, fmt.Sprintf("Weekly Timetable (%d classes)", len(data.Rows)))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, "timetable.pdf", nil
}
