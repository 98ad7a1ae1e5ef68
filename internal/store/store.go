// Package store holds the per-backend query clients of the report pipeline.
// Each client exposes one narrow capability (full-text search, graph pattern
// match, hash lookup, relational aggregate, document fetch); the report
// services depend only on the interfaces so tests substitute in-memory
// fakes. All clients are read-only and safe for concurrent use.
package store

import (
	"context"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/model"
)

// lectureType is the session-kind tag shared verbatim across all stores.
const lectureType = "лекция"

// MaterialSearchStore finds class ids whose learning materials match a
// free-text term.
type MaterialSearchStore interface {
	// Search returns deduplicated class ids in relevance order. An empty
	// term is a provider-defined best-effort match, not an error.
	Search(ctx context.Context, term string) ([]int, error)
}

// ScheduleGraphStore traverses the schedule/course graph.
type ScheduleGraphStore interface {
	// FindLectureSchedules returns lecture occurrences for the classes
	// within [startDate, endDate], sorted by (scheduledDate, startTime).
	FindLectureSchedules(ctx context.Context, classIDs []int, startDate, endDate string) ([]model.ScheduleOccurrence, error)
	// FindCourseRollup returns every (course, lecture) pair active in the
	// range with the deduplicated group ids attending.
	FindCourseRollup(ctx context.Context, startDate, endDate string) ([]model.CourseRollup, error)
	// FindTaggedCourses returns the courses whose lectures carry the tag
	// for one group, with the full schedule-id list per course.
	FindTaggedCourses(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error)
}

// GroupRosterStore reads the precomputed per-group student cache.
type GroupRosterStore interface {
	// RosterFor returns the cached students of a group, sorted by id.
	// A missing group index yields an empty list, not an error.
	RosterFor(ctx context.Context, groupID int) ([]model.StudentSummary, error)
	// CountFor returns the cached roster size of a group.
	CountFor(ctx context.Context, groupID int) (int64, error)
	// CourseStudentCount reads the cached per-course student count;
	// the second result reports whether the cache held a value.
	CourseStudentCount(ctx context.Context, courseID int) (int, bool, error)
	// SetCourseStudentCount caches a per-course student count.
	SetCourseStudentCount(ctx context.Context, courseID, count int) error
}

// AttendanceStore computes relational attendance aggregates.
type AttendanceStore interface {
	// WorstAttendance ranks students worst-first over the schedule set.
	// With a non-nil studentIDs it covers exactly that candidate set:
	// candidates without attendance rows appear fully absent.
	WorstAttendance(ctx context.Context, scheduleIDs, studentIDs []int, limit int) ([]model.AttendanceStat, error)
	// StudentGroupByName resolves a group by case-insensitive partial name.
	StudentGroupByName(ctx context.Context, name string) (*model.GroupInfo, error)
	// StudentCountForCourse counts distinct students scheduled for a course.
	StudentCountForCourse(ctx context.Context, courseID int) (int, error)
	// AttendanceCountFor counts attended sessions of one student over a
	// schedule set.
	AttendanceCountFor(ctx context.Context, studentID int, scheduleIDs []int) (int, error)
}

// OrgHierarchyStore reads the university document hierarchy.
type OrgHierarchyStore interface {
	// DepartmentName resolves a department id to its display name.
	// A miss returns pkg/errors.ErrNotFound.
	DepartmentName(ctx context.Context, departmentID int) (string, error)
}

// Store aggregates the five capability clients.
type Store struct {
	MaterialSearch MaterialSearchStore
	ScheduleGraph  ScheduleGraphStore
	GroupRoster    GroupRosterStore
	Attendance     AttendanceStore
	OrgHierarchy   OrgHierarchyStore
}

// NewStore wires the canonical client implementations.
func NewStore(
	db *gorm.DB,
	rdb *goredis.Client,
	mongoDB *mongo.Database,
	driver neo4j.DriverWithContext,
	es *elasticsearch.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Store {
	return &Store{
		MaterialSearch: NewMaterialSearch(es, cfg.Elastic.MaterialsIndex, &cfg.Report, logger),
		ScheduleGraph:  NewScheduleGraph(driver, cfg.Report.CallTimeout, logger),
		GroupRoster:    NewGroupRoster(rdb, &cfg.Report, logger),
		Attendance:     NewAttendance(db, cfg.Report.CallTimeout, logger),
		OrgHierarchy:   NewOrgHierarchy(mongoDB, cfg.Report.CallTimeout, logger),
	}
}

// withTimeout bounds one external-store call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}
