package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"uni-analytics/backend/internal/dto"
)

var (
	ErrExportNoData       = errors.New("report contains no attendees to export")
	ErrExportGenerateFail = errors.New("failed to generate Excel file")
)

// ExportService renders the worst-attendance report as a downloadable
// .xlsx workbook. The buffer is returned to the handler layer, which sets
// the HTTP headers and streams it out.
type ExportService interface {
	// ExportAttendance builds the report, then renders it. Returns the
	// workbook bytes and a suggested filename.
	ExportAttendance(ctx context.Context, req *dto.AttendanceReportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	attendance AttendanceReportService
	logger     *zap.Logger
}

// NewExportService creates an ExportService on top of the report assembler.
func NewExportService(attendance AttendanceReportService, logger *zap.Logger) ExportService {
	return &exportService{attendance: attendance, logger: logger}
}

func (s *exportService) ExportAttendance(ctx context.Context, req *dto.AttendanceReportRequest) (*bytes.Buffer, string, error) {
	report, err := s.attendance.Report(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if len(report.WorstAttendees) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Attendance"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("failed to create sheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "E", 14)
	f.SetColWidth(sheetName, "F", "G", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Title row spans the table and names the search term and period.
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Worst attendance — %q, %s", report.SearchTerm, report.Period))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Student ID", "Name", "Group", "Book number", "Missed", "Total lectures", "Attendance %"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
		f.SetCellStyle(sheetName, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for _, a := range report.WorstAttendees {
		f.SetCellValue(sheetName, cell("A", row), a.StudentID)
		f.SetCellValue(sheetName, cell("B", row), a.Name)
		f.SetCellValue(sheetName, cell("C", row), a.GroupID)
		f.SetCellValue(sheetName, cell("D", row), a.BookNumber)
		f.SetCellValue(sheetName, cell("E", row), a.MissedLectures)
		f.SetCellValue(sheetName, cell("F", row), a.TotalLectures)
		f.SetCellValue(sheetName, cell("G", row), a.AttendancePercent)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write Excel buffer", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "attendance_report.xlsx", nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
