package handler

import (
	"errors"
	"net/http"
	"net/url"
	"sort"

	"github.com/gin-gonic/gin"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/service"
	pkgerrors "uni-analytics/backend/pkg/errors"
	"uni-analytics/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceReportHandler serves the worst-attendance report routes.
type AttendanceReportHandler struct {
	reportSvc service.AttendanceReportService
	exportSvc service.ExportService
}

// NewAttendanceReportHandler creates an AttendanceReportHandler.
func NewAttendanceReportHandler(reportSvc service.AttendanceReportService, exportSvc service.ExportService) *AttendanceReportHandler {
	return &AttendanceReportHandler{reportSvc: reportSvc, exportSvc: exportSvc}
}

// Report builds the worst-attendance report.
// POST /api/lab1/report
func (h *AttendanceReportHandler) Report(c *gin.Context) {
	body, ok := bindReportBody(c, "material", "start_date", "end_date")
	if !ok {
		return
	}

	req, ok := attendanceRequestFrom(c, body)
	if !ok {
		return
	}

	report, err := h.reportSvc.Report(c.Request.Context(), req)
	if err != nil {
		writeReportError(c, err)
		return
	}

	response.Report(c, report)
}

// Export renders the report as an .xlsx attachment. Parameters arrive as
// query values because the download is driven by a plain link.
// GET /api/lab1/report/export?material=…&start_date=…&end_date=…
func (h *AttendanceReportHandler) Export(c *gin.Context) {
	req, ok := attendanceQueryFrom(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrExportNoData) {
			response.BadRequest(c, "report contains no attendees to export")
			return
		}
		writeReportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func attendanceRequestFrom(c *gin.Context, body map[string]interface{}) (*dto.AttendanceReportRequest, bool) {
	material, ok1 := fieldString(body["material"])
	startDate, ok2 := fieldString(body["start_date"])
	endDate, ok3 := fieldString(body["end_date"])
	if !ok1 || !ok2 || !ok3 {
		response.InvalidFields(c, []string{"material", "start_date", "end_date"}, "fields must be strings")
		return nil, false
	}
	return &dto.AttendanceReportRequest{
		Material:  material,
		StartDate: startDate,
		EndDate:   endDate,
	}, true
}

func attendanceQueryFrom(c *gin.Context) (*dto.AttendanceReportRequest, bool) {
	req := &dto.AttendanceReportRequest{
		Material:  c.Query("material"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	var missing []string
	if req.Material == "" {
		missing = append(missing, "material")
	}
	if req.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if req.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		received := make([]string, 0, len(c.Request.URL.Query()))
		for k := range c.Request.URL.Query() {
			received = append(received, k)
		}
		sort.Strings(received)
		response.MissingFields(c, missing, received)
		return nil, false
	}
	return req, true
}

// writeReportError maps the error taxonomy onto the wire contract:
// validation failures enumerate their fields as 400, everything else is a
// generic 500 with the cause attached for the request log.
func writeReportError(c *gin.Context, err error) {
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		response.InvalidFields(c, verr.Fields, verr.Reason)
		return
	}
	_ = c.Error(err)
	response.InternalError(c)
}
