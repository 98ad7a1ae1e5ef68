package service

import (
	"go.uber.org/zap"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/store"
	"uni-analytics/backend/pkg/jwt"
)

// Service aggregates every report assembler plus auth and export.
type Service struct {
	Auth       AuthService
	Attendance AttendanceReportService
	Classroom  ClassroomReportService
	Group      GroupReportService
	Export     ExportService
}

// NewService wires the service aggregate.
func NewService(cfg *config.Config, st *store.Store, jwtMgr *jwt.Manager, logger *zap.Logger) *Service {
	attendance := NewAttendanceReportService(st, &cfg.Report, logger)
	return &Service{
		Auth:       NewAuthService(&cfg.Auth, jwtMgr, logger),
		Attendance: attendance,
		Classroom:  NewClassroomReportService(st, logger),
		Group:      NewGroupReportService(st, &cfg.Report, logger),
		Export:     NewExportService(attendance, logger),
	}
}
