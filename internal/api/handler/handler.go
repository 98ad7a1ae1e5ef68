package handler

import "uni-analytics/backend/internal/service"

// Handler aggregates the HTTP handlers for all routes.
type Handler struct {
	Auth       *AuthHandler
	Attendance *AttendanceReportHandler
	Classroom  *ClassroomReportHandler
	Group      *GroupReportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Attendance: NewAttendanceReportHandler(svc.Attendance, svc.Export),
		Classroom:  NewClassroomReportHandler(svc.Classroom),
		Group:      NewGroupReportHandler(svc.Group),
	}
}
