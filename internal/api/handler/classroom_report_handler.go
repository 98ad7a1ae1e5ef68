package handler

import (
	"github.com/gin-gonic/gin"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/service"
	"uni-analytics/backend/pkg/response"
)

// ClassroomReportHandler serves the per-semester classroom report route.
type ClassroomReportHandler struct {
	reportSvc service.ClassroomReportService
}

// NewClassroomReportHandler creates a ClassroomReportHandler.
func NewClassroomReportHandler(reportSvc service.ClassroomReportService) *ClassroomReportHandler {
	return &ClassroomReportHandler{reportSvc: reportSvc}
}

// Report builds the classroom report for one semester.
// POST /api/lab2/report
func (h *ClassroomReportHandler) Report(c *gin.Context) {
	body, ok := bindReportBody(c, "semester", "year")
	if !ok {
		return
	}

	// Both fields arrive as numbers or strings depending on the caller.
	semester, ok1 := fieldInt(body["semester"])
	year, ok2 := fieldString(body["year"])
	if !ok1 || !ok2 {
		response.InvalidFields(c, []string{"semester", "year"}, "semester must be a number, year a string or number")
		return
	}

	report, err := h.reportSvc.Report(c.Request.Context(), &dto.ClassroomReportRequest{
		Semester: semester,
		Year:     year,
	})
	if err != nil {
		writeReportError(c, err)
		return
	}

	response.Report(c, report)
}
