package handler

import (
	"github.com/gin-gonic/gin"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/service"
	"uni-analytics/backend/pkg/response"
)

// GroupReportHandler serves the per-group hours report route.
type GroupReportHandler struct {
	reportSvc service.GroupReportService
}

// NewGroupReportHandler creates a GroupReportHandler.
func NewGroupReportHandler(reportSvc service.GroupReportService) *GroupReportHandler {
	return &GroupReportHandler{reportSvc: reportSvc}
}

// Report builds the planned-vs-listened hours report for one group.
// POST /api/lab3/report
func (h *GroupReportHandler) Report(c *gin.Context) {
	body, ok := bindReportBody(c, "group_name")
	if !ok {
		return
	}

	groupName, ok := fieldString(body["group_name"])
	if !ok {
		response.InvalidFields(c, []string{"group_name"}, "group_name must be a string")
		return
	}

	report, err := h.reportSvc.Report(c.Request.Context(), &dto.GroupReportRequest{GroupName: groupName})
	if err != nil {
		writeReportError(c, err)
		return
	}

	response.Report(c, report)
}
