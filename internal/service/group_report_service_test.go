package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/model"
	pkgerrors "uni-analytics/backend/pkg/errors"
)

func TestGroupReport_FullFlow(t *testing.T) {
	group := &model.GroupInfo{ID: 5, Name: "МЕХ-101", DepartmentID: 7, CourseYear: 1}
	roster := []model.StudentSummary{
		{ID: 1, Name: "Иванов И.И.", GroupID: 5, BookNumber: "2023-001", EnrollmentYear: 2023, DateOfBirth: "2005-03-14", Email: "ivanov@example.com"},
		{ID: 2, Name: "Петров П.П.", GroupID: 5, BookNumber: "2023-002", EnrollmentYear: 2023},
	}
	courses := []model.TaggedCourse{
		{CourseID: 42, Name: "Теоретическая механика", Description: "Основы", SpecialtyID: 3, ScheduleIDs: []int{101, 102, 103}},
	}
	attendedByStudent := map[int]int{1: 1, 2: 3}

	svc := NewGroupReportService(newMockStore(
		nil,
		&mockScheduleGraph{FindTaggedCoursesFn: func(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error) {
			if groupID != 5 {
				t.Fatalf("groupID = %d, want 5", groupID)
			}
			if tag != "Кафедра теоретической механики" {
				t.Fatalf("tag = %q, want the department name", tag)
			}
			return courses, nil
		}},
		&mockGroupRoster{RosterForFn: func(ctx context.Context, groupID int) ([]model.StudentSummary, error) {
			return roster, nil
		}},
		&mockAttendance{
			StudentGroupByNameFn: func(ctx context.Context, name string) (*model.GroupInfo, error) {
				if name != "МЕХ-101" {
					t.Fatalf("group name = %q", name)
				}
				return group, nil
			},
			AttendanceCountForFn: func(ctx context.Context, studentID int, scheduleIDs []int) (int, error) {
				if len(scheduleIDs) != 3 {
					t.Fatalf("scheduleIDs = %v", scheduleIDs)
				}
				return attendedByStudent[studentID], nil
			},
		},
		&mockOrgHierarchy{DepartmentNameFn: func(ctx context.Context, departmentID int) (string, error) {
			if departmentID != 7 {
				t.Fatalf("departmentID = %d", departmentID)
			}
			return "Кафедра теоретической механики", nil
		}},
	), testReportConfig(), zap.NewNop())

	report, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: "МЕХ-101"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if report.GroupInfo.ID != 5 || report.GroupInfo.Name != "МЕХ-101" || report.GroupInfo.DepartmentID != 7 {
		t.Errorf("GroupInfo = %+v", report.GroupInfo)
	}
	if len(report.Students) != 2 {
		t.Fatalf("Students = %d, want 2", len(report.Students))
	}

	first := report.Students[0]
	if first.ID != 1 || first.Name != "Иванов И.И." || first.BookNumber != "2023-001" {
		t.Errorf("first student = %+v", first)
	}
	if len(first.Courses) != 1 {
		t.Fatalf("first student Courses = %d, want 1", len(first.Courses))
	}
	got := first.Courses[0]
	if got.CourseInfo.ID != 42 || got.CourseInfo.Name != "Теоретическая механика" {
		t.Errorf("CourseInfo = %+v", got.CourseInfo)
	}
	if got.PlannedHours != 6 {
		t.Errorf("PlannedHours = %d, want 6", got.PlannedHours)
	}
	if got.ListenedHours != 2 {
		t.Errorf("ListenedHours = %d, want 2", got.ListenedHours)
	}
	if second := report.Students[1].Courses[0]; second.ListenedHours != 6 {
		t.Errorf("second student ListenedHours = %d, want 6", second.ListenedHours)
	}
}

func TestGroupReport_UnknownGroupYieldsShell(t *testing.T) {
	svc := NewGroupReportService(newMockStore(
		nil, nil, nil,
		&mockAttendance{StudentGroupByNameFn: func(ctx context.Context, name string) (*model.GroupInfo, error) {
			return nil, pkgerrors.ErrNotFound
		}},
		nil,
	), testReportConfig(), zap.NewNop())

	report, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: "НЕТ-999"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.Students == nil || len(report.Students) != 0 {
		t.Errorf("Students = %v, want empty non-nil slice", report.Students)
	}
	if report.GroupInfo.ID != 0 {
		t.Errorf("GroupInfo = %+v, want zero value", report.GroupInfo)
	}
}

func TestGroupReport_BlankNameIsInvalid(t *testing.T) {
	svc := NewGroupReportService(newMockStore(nil, nil, nil, nil, nil), testReportConfig(), zap.NewNop())

	for _, name := range []string{"", "   "} {
		_, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: name})
		if !pkgerrors.IsValidation(err) {
			t.Errorf("Report(%q) err = %v, want validation error", name, err)
		}
	}
}

func TestGroupReport_MissingDepartmentIsFatal(t *testing.T) {
	svc := NewGroupReportService(newMockStore(
		nil, nil, nil,
		&mockAttendance{StudentGroupByNameFn: func(ctx context.Context, name string) (*model.GroupInfo, error) {
			return &model.GroupInfo{ID: 5, Name: "МЕХ-101", DepartmentID: 7}, nil
		}},
		&mockOrgHierarchy{DepartmentNameFn: func(ctx context.Context, departmentID int) (string, error) {
			return "", pkgerrors.ErrNotFound
		}},
	), testReportConfig(), zap.NewNop())

	_, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: "МЕХ-101"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want not-found passed through", err)
	}
}

func TestGroupReport_AttendanceFailureReportsZeroListened(t *testing.T) {
	svc := NewGroupReportService(newMockStore(
		nil,
		&mockScheduleGraph{FindTaggedCoursesFn: func(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error) {
			return []model.TaggedCourse{{CourseID: 42, Name: "Механика", ScheduleIDs: []int{101, 102}}}, nil
		}},
		&mockGroupRoster{RosterForFn: func(ctx context.Context, groupID int) ([]model.StudentSummary, error) {
			return []model.StudentSummary{{ID: 1, Name: "Иванов И.И.", GroupID: 5}}, nil
		}},
		&mockAttendance{
			StudentGroupByNameFn: func(ctx context.Context, name string) (*model.GroupInfo, error) {
				return &model.GroupInfo{ID: 5, Name: "МЕХ-101", DepartmentID: 7}, nil
			},
			AttendanceCountForFn: func(ctx context.Context, studentID int, scheduleIDs []int) (int, error) {
				return 0, pkgerrors.NewStore("postgres", "attendance count", errors.New("down"))
			},
		},
		&mockOrgHierarchy{DepartmentNameFn: func(ctx context.Context, departmentID int) (string, error) {
			return "Кафедра", nil
		}},
	), testReportConfig(), zap.NewNop())

	report, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: "МЕХ-101"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	got := report.Students[0].Courses[0]
	if got.PlannedHours != 4 || got.ListenedHours != 0 {
		t.Errorf("hours = (%d, %d), want (4, 0)", got.PlannedHours, got.ListenedHours)
	}
}

func TestGroupReport_EmptyRosterYieldsShellWithGroupInfo(t *testing.T) {
	svc := NewGroupReportService(newMockStore(
		nil, nil,
		&mockGroupRoster{RosterForFn: func(ctx context.Context, groupID int) ([]model.StudentSummary, error) {
			return nil, nil
		}},
		&mockAttendance{StudentGroupByNameFn: func(ctx context.Context, name string) (*model.GroupInfo, error) {
			return &model.GroupInfo{ID: 5, Name: "МЕХ-101", DepartmentID: 7}, nil
		}},
		&mockOrgHierarchy{DepartmentNameFn: func(ctx context.Context, departmentID int) (string, error) {
			return "Кафедра", nil
		}},
	), testReportConfig(), zap.NewNop())

	report, err := svc.Report(context.Background(), &dto.GroupReportRequest{GroupName: "МЕХ-101"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.GroupInfo.Name != "МЕХ-101" {
		t.Errorf("GroupInfo = %+v", report.GroupInfo)
	}
	if len(report.Students) != 0 {
		t.Errorf("Students = %v, want empty", report.Students)
	}
}
