package service

import (
	"context"

	"uni-analytics/backend/internal/model"
	"uni-analytics/backend/internal/store"
)

// Hand-written store fakes. Each method delegates to an optional function
// field; an unset field returns zero values so tests only wire the calls
// they care about.

type mockMaterialSearch struct {
	SearchFn func(ctx context.Context, term string) ([]int, error)
}

func (m *mockMaterialSearch) Search(ctx context.Context, term string) ([]int, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	return nil, nil
}

type mockScheduleGraph struct {
	FindLectureSchedulesFn func(ctx context.Context, classIDs []int, startDate, endDate string) ([]model.ScheduleOccurrence, error)
	FindCourseRollupFn     func(ctx context.Context, startDate, endDate string) ([]model.CourseRollup, error)
	FindTaggedCoursesFn    func(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error)
}

func (m *mockScheduleGraph) FindLectureSchedules(ctx context.Context, classIDs []int, startDate, endDate string) ([]model.ScheduleOccurrence, error) {
	if m.FindLectureSchedulesFn != nil {
		return m.FindLectureSchedulesFn(ctx, classIDs, startDate, endDate)
	}
	return nil, nil
}

func (m *mockScheduleGraph) FindCourseRollup(ctx context.Context, startDate, endDate string) ([]model.CourseRollup, error) {
	if m.FindCourseRollupFn != nil {
		return m.FindCourseRollupFn(ctx, startDate, endDate)
	}
	return nil, nil
}

func (m *mockScheduleGraph) FindTaggedCourses(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error) {
	if m.FindTaggedCoursesFn != nil {
		return m.FindTaggedCoursesFn(ctx, groupID, tag)
	}
	return nil, nil
}

type mockGroupRoster struct {
	RosterForFn             func(ctx context.Context, groupID int) ([]model.StudentSummary, error)
	CountForFn              func(ctx context.Context, groupID int) (int64, error)
	CourseStudentCountFn    func(ctx context.Context, courseID int) (int, bool, error)
	SetCourseStudentCountFn func(ctx context.Context, courseID, count int) error
}

func (m *mockGroupRoster) RosterFor(ctx context.Context, groupID int) ([]model.StudentSummary, error) {
	if m.RosterForFn != nil {
		return m.RosterForFn(ctx, groupID)
	}
	return nil, nil
}

func (m *mockGroupRoster) CountFor(ctx context.Context, groupID int) (int64, error) {
	if m.CountForFn != nil {
		return m.CountForFn(ctx, groupID)
	}
	return 0, nil
}

func (m *mockGroupRoster) CourseStudentCount(ctx context.Context, courseID int) (int, bool, error) {
	if m.CourseStudentCountFn != nil {
		return m.CourseStudentCountFn(ctx, courseID)
	}
	return 0, false, nil
}

func (m *mockGroupRoster) SetCourseStudentCount(ctx context.Context, courseID, count int) error {
	if m.SetCourseStudentCountFn != nil {
		return m.SetCourseStudentCountFn(ctx, courseID, count)
	}
	return nil
}

type mockAttendance struct {
	WorstAttendanceFn       func(ctx context.Context, scheduleIDs, studentIDs []int, limit int) ([]model.AttendanceStat, error)
	StudentGroupByNameFn    func(ctx context.Context, name string) (*model.GroupInfo, error)
	StudentCountForCourseFn func(ctx context.Context, courseID int) (int, error)
	AttendanceCountForFn    func(ctx context.Context, studentID int, scheduleIDs []int) (int, error)
}

func (m *mockAttendance) WorstAttendance(ctx context.Context, scheduleIDs, studentIDs []int, limit int) ([]model.AttendanceStat, error) {
	if m.WorstAttendanceFn != nil {
		return m.WorstAttendanceFn(ctx, scheduleIDs, studentIDs, limit)
	}
	return nil, nil
}

func (m *mockAttendance) StudentGroupByName(ctx context.Context, name string) (*model.GroupInfo, error) {
	if m.StudentGroupByNameFn != nil {
		return m.StudentGroupByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockAttendance) StudentCountForCourse(ctx context.Context, courseID int) (int, error) {
	if m.StudentCountForCourseFn != nil {
		return m.StudentCountForCourseFn(ctx, courseID)
	}
	return 0, nil
}

func (m *mockAttendance) AttendanceCountFor(ctx context.Context, studentID int, scheduleIDs []int) (int, error) {
	if m.AttendanceCountForFn != nil {
		return m.AttendanceCountForFn(ctx, studentID, scheduleIDs)
	}
	return 0, nil
}

type mockOrgHierarchy struct {
	DepartmentNameFn func(ctx context.Context, departmentID int) (string, error)
}

func (m *mockOrgHierarchy) DepartmentName(ctx context.Context, departmentID int) (string, error) {
	if m.DepartmentNameFn != nil {
		return m.DepartmentNameFn(ctx, departmentID)
	}
	return "", nil
}

// newMockStore assembles a Store whose five clients are the given fakes.
// Nil arguments get zero-value fakes.
func newMockStore(
	search *mockMaterialSearch,
	graph *mockScheduleGraph,
	roster *mockGroupRoster,
	attendance *mockAttendance,
	org *mockOrgHierarchy,
) *store.Store {
	if search == nil {
		search = &mockMaterialSearch{}
	}
	if graph == nil {
		graph = &mockScheduleGraph{}
	}
	if roster == nil {
		roster = &mockGroupRoster{}
	}
	if attendance == nil {
		attendance = &mockAttendance{}
	}
	if org == nil {
		org = &mockOrgHierarchy{}
	}
	return &store.Store{
		MaterialSearch: search,
		ScheduleGraph:  graph,
		GroupRoster:    roster,
		Attendance:     attendance,
		OrgHierarchy:   org,
	}
}
