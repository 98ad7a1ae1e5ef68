package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/model"
	"uni-analytics/backend/internal/store"
	pkgerrors "uni-analytics/backend/pkg/errors"
)

// ClassroomReportService builds the per-semester course and lecture report.
type ClassroomReportService interface {
	Report(ctx context.Context, req *dto.ClassroomReportRequest) (*dto.ClassroomReport, error)
}

type classroomReportService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewClassroomReportService(st *store.Store, logger *zap.Logger) ClassroomReportService {
	return &classroomReportService{store: st, logger: logger}
}

// Report resolves the semester to a date window, expands the lecture graph
// inside it, then decorates each course with its department name and each
// lecture with the course audience size. Counts go through the cache first;
// a miss falls back to the relational store and is written back.
func (s *classroomReportService) Report(ctx context.Context, req *dto.ClassroomReportRequest) (*dto.ClassroomReport, error) {
	start, end, err := semesterDateRange(req.Year, req.Semester)
	if err != nil {
		return nil, err
	}

	report := &dto.ClassroomReport{
		Semester: req.Semester,
		Year:     req.Year,
		Courses:  []dto.CourseSummary{},
	}

	rows, err := s.store.ScheduleGraph.FindCourseRollup(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return report, nil
	}

	// Rows arrive one per (course, lecture) pair; fold them back into
	// courses, keeping first-seen order stable per course id.
	var order []int
	byCourse := make(map[int][]model.CourseRollup)
	for _, row := range rows {
		if _, seen := byCourse[row.CourseID]; !seen {
			order = append(order, row.CourseID)
		}
		byCourse[row.CourseID] = append(byCourse[row.CourseID], row)
	}
	sort.Ints(order)

	for _, courseID := range order {
		lectures := byCourse[courseID]
		head := lectures[0]

		tags := s.departmentTags(ctx, head.DepartmentID)
		count := s.studentCount(ctx, courseID, head.GroupIDs)

		summary := dto.CourseSummary{
			Name:         head.CourseName,
			DepartmentID: head.DepartmentID,
			SpecialtyID:  head.SpecialtyID,
			Description:  head.Description,
			Lectures:     make([]dto.LectureSummary, 0, len(lectures)),
		}
		for _, lec := range lectures {
			summary.Lectures = append(summary.Lectures, dto.LectureSummary{
				Name:             lec.LectureName,
				Tags:             tags,
				Type:             lec.LectureType,
				TechRequirements: lec.TechRequirements,
				StudentCount:     count,
			})
		}
		report.Courses = append(report.Courses, summary)
	}

	return report, nil
}

// departmentTags resolves the owning department name for a course. An
// unknown department yields empty tags; the report is still produced.
func (s *classroomReportService) departmentTags(ctx context.Context, departmentID int) string {
	name, err := s.store.OrgHierarchy.DepartmentName(ctx, departmentID)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			s.logger.Warn("department lookup failed",
				zap.Int("department_id", departmentID),
				zap.Error(err),
			)
		}
		return ""
	}
	return name
}

// studentCount returns the audience size for a course. The per-course cache
// is checked first, then the cached group rosters are summed; an unsynced
// roster cache (zero total) falls back to the relational count. Whatever
// source answered, the result is written back to the per-course cache.
func (s *classroomReportService) studentCount(ctx context.Context, courseID int, groupIDs []int) int {
	count, ok, err := s.store.GroupRoster.CourseStudentCount(ctx, courseID)
	if err != nil {
		s.logger.Warn("student count cache read failed",
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
	} else if ok {
		return count
	}

	count = s.rosterSum(ctx, groupIDs)
	if count == 0 {
		count, err = s.store.Attendance.StudentCountForCourse(ctx, courseID)
		if err != nil {
			s.logger.Warn("student count query failed",
				zap.Int("course_id", courseID),
				zap.Error(err),
			)
			return 0
		}
	}

	if err := s.store.GroupRoster.SetCourseStudentCount(ctx, courseID, count); err != nil {
		s.logger.Warn("student count cache write failed",
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
	}
	return count
}

// rosterSum adds up the cached roster sizes of the given groups, zero when
// any read fails.
func (s *classroomReportService) rosterSum(ctx context.Context, groupIDs []int) int {
	var total int64
	for _, id := range groupIDs {
		n, err := s.store.GroupRoster.CountFor(ctx, id)
		if err != nil {
			s.logger.Warn("group size read failed",
				zap.Int("group_id", id),
				zap.Error(err),
			)
			return 0
		}
		total += n
	}
	return int(total)
}
