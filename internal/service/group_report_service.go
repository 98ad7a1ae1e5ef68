package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/store"
	pkgerrors "uni-analytics/backend/pkg/errors"
)

// GroupReportService builds the per-group planned-vs-listened hours report.
type GroupReportService interface {
	Report(ctx context.Context, req *dto.GroupReportRequest) (*dto.GroupReport, error)
}

type groupReportService struct {
	store  *store.Store
	cfg    *config.ReportConfig
	logger *zap.Logger
}

func NewGroupReportService(st *store.Store, cfg *config.ReportConfig, logger *zap.Logger) GroupReportService {
	return &groupReportService{store: st, cfg: cfg, logger: logger}
}

// Report resolves the group by name, finds the courses tagged with the
// group's department, then computes per-student hour totals. Planned hours
// come from the schedule count, listened hours from the attendance count,
// both scaled by the configured session length. An unknown group name is a
// valid empty report; an unresolvable department is not, because the tag
// drives the whole course selection.
func (s *groupReportService) Report(ctx context.Context, req *dto.GroupReportRequest) (*dto.GroupReport, error) {
	name := strings.TrimSpace(req.GroupName)
	if name == "" {
		return nil, pkgerrors.NewValidation("group_name must not be empty", "group_name")
	}

	report := &dto.GroupReport{Students: []dto.StudentReport{}}

	group, err := s.store.Attendance.StudentGroupByName(ctx, name)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return report, nil
		}
		return nil, err
	}
	report.GroupInfo = dto.GroupInfo{
		ID:           group.ID,
		Name:         group.Name,
		DepartmentID: group.DepartmentID,
		CourseYear:   group.CourseYear,
	}

	departmentName, err := s.store.OrgHierarchy.DepartmentName(ctx, group.DepartmentID)
	if err != nil {
		return nil, err
	}

	students, err := s.store.GroupRoster.RosterFor(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return report, nil
	}

	courses, err := s.store.ScheduleGraph.FindTaggedCourses(ctx, group.ID, departmentName)
	if err != nil {
		return nil, err
	}

	for _, st := range students {
		sr := dto.StudentReport{
			ID:             st.ID,
			Name:           st.Name,
			GroupID:        st.GroupID,
			BookNumber:     st.BookNumber,
			EnrollmentYear: st.EnrollmentYear,
			DateOfBirth:    st.DateOfBirth,
			Email:          st.Email,
			Courses:        make([]dto.CourseReport, 0, len(courses)),
		}
		for _, course := range courses {
			attended, err := s.store.Attendance.AttendanceCountFor(ctx, st.ID, course.ScheduleIDs)
			if err != nil {
				s.logger.Warn("attendance count failed, reporting zero listened hours",
					zap.Int("student_id", st.ID),
					zap.Int("course_id", course.CourseID),
					zap.Error(err),
				)
				attended = 0
			}
			sr.Courses = append(sr.Courses, dto.CourseReport{
				CourseInfo: dto.CourseInfo{
					ID:          course.CourseID,
					Name:        course.Name,
					Description: course.Description,
					SpecialtyID: course.SpecialtyID,
				},
				PlannedHours:  len(course.ScheduleIDs) * s.cfg.HoursPerSession,
				ListenedHours: attended * s.cfg.HoursPerSession,
			})
		}
		report.Students = append(report.Students, sr)
	}

	return report, nil
}
