package store

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"uni-analytics/backend/internal/model"
	apperrors "uni-analytics/backend/pkg/errors"
)

// scheduleGraph is the Neo4j-backed ScheduleGraphStore. Graph queries are
// read-only; a connection failure is fatal for the current request only.
type scheduleGraph struct {
	driver  neo4j.DriverWithContext
	timeout time.Duration
	logger  *zap.Logger
}

// NewScheduleGraph creates the canonical ScheduleGraphStore.
func NewScheduleGraph(driver neo4j.DriverWithContext, timeout time.Duration, logger *zap.Logger) ScheduleGraphStore {
	return &scheduleGraph{driver: driver, timeout: timeout, logger: logger}
}

const lectureSchedulesCypher = `
MATCH (c:Class)-[:FOR_CLASS]-(sch:Schedule)-[:FOR_GROUP]->(g:StudentGroup)
WHERE c.id IN $class_ids
  AND c.type = $lecture_type
  AND sch.scheduled_date >= $start_date
  AND sch.scheduled_date <= $end_date
RETURN sch.id AS id,
       c.id AS class_id,
       g.id AS group_id,
       sch.room AS room,
       sch.scheduled_date AS scheduled_date,
       sch.start_time AS start_time,
       sch.end_time AS end_time
ORDER BY sch.scheduled_date, sch.start_time`

// FindLectureSchedules returns lecture occurrences of the given classes
// within [startDate, endDate], both ends inclusive. Ordering by
// (scheduledDate, startTime) is part of the contract; downstream
// "earliest missed lecture" displays rely on it.
func (s *scheduleGraph) FindLectureSchedules(ctx context.Context, classIDs []int, startDate, endDate string) ([]model.ScheduleOccurrence, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.run(tctx, lectureSchedulesCypher, map[string]interface{}{
		"class_ids":    classIDs,
		"lecture_type": lectureType,
		"start_date":   startDate,
		"end_date":     endDate,
	})
	if err != nil {
		return nil, apperrors.NewStore("neo4j", "find lecture schedules", err)
	}

	occurrences := make([]model.ScheduleOccurrence, 0, len(records))
	for _, rec := range records {
		occurrences = append(occurrences, model.ScheduleOccurrence{
			ScheduleID:    asInt(rec["id"]),
			ClassID:       asInt(rec["class_id"]),
			GroupID:       asInt(rec["group_id"]),
			Room:          asString(rec["room"]),
			ScheduledDate: asString(rec["scheduled_date"]),
			StartTime:     asString(rec["start_time"]),
			EndTime:       asString(rec["end_time"]),
		})
	}

	s.logger.Debug("lecture schedules fetched",
		zap.Int("class_ids", len(classIDs)),
		zap.Int("schedules", len(occurrences)),
	)

	return occurrences, nil
}

const courseRollupCypher = `
MATCH (co:Course)-[:HAS_CLASS]->(c:Class {type: $lecture_type})-[:FOR_CLASS]-(sch:Schedule)-[:FOR_GROUP]->(g:StudentGroup)
WHERE sch.scheduled_date >= $start_date
  AND sch.scheduled_date <= $end_date
RETURN co.id AS course_id,
       co.name AS course_name,
       co.description AS description,
       co.department_id AS department_id,
       co.specialty_id AS specialty_id,
       c.id AS lecture_id,
       c.name AS lecture_name,
       c.type AS lecture_type,
       co.tech_requirements AS tech_requirements,
       collect(DISTINCT g.id) AS group_ids
ORDER BY course_id, lecture_id`

// FindCourseRollup aggregates at the course level: one row per
// (course, lecture) pair active in the range, with the distinct group ids
// attending across all its schedule occurrences.
func (s *scheduleGraph) FindCourseRollup(ctx context.Context, startDate, endDate string) ([]model.CourseRollup, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.run(tctx, courseRollupCypher, map[string]interface{}{
		"lecture_type": lectureType,
		"start_date":   startDate,
		"end_date":     endDate,
	})
	if err != nil {
		return nil, apperrors.NewStore("neo4j", "find course rollup", err)
	}

	rollups := make([]model.CourseRollup, 0, len(records))
	for _, rec := range records {
		rollups = append(rollups, model.CourseRollup{
			CourseID:         asInt(rec["course_id"]),
			CourseName:       asString(rec["course_name"]),
			Description:      asString(rec["description"]),
			DepartmentID:     asInt(rec["department_id"]),
			SpecialtyID:      asInt(rec["specialty_id"]),
			LectureID:        asInt(rec["lecture_id"]),
			LectureName:      asString(rec["lecture_name"]),
			LectureType:      asString(rec["lecture_type"]),
			TechRequirements: asString(rec["tech_requirements"]),
			GroupIDs:         asIntSlice(rec["group_ids"]),
		})
	}

	return rollups, nil
}

const taggedCoursesCypher = `
MATCH (co:Course)-[:HAS_CLASS]->(c:Class {type: $lecture_type})-[:FOR_CLASS]-(sch:Schedule)-[:FOR_GROUP]->(g:StudentGroup {id: $group_id})
WHERE c.tags CONTAINS $tag
RETURN co.id AS course_id,
       co.name AS name,
       co.description AS description,
       co.specialty_id AS specialty_id,
       collect(DISTINCT sch.id) AS schedule_ids
ORDER BY course_id`

// FindTaggedCourses returns the courses whose lectures carry the given tag
// for one group, each with its full schedule-id list.
func (s *scheduleGraph) FindTaggedCourses(ctx context.Context, groupID int, tag string) ([]model.TaggedCourse, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.run(tctx, taggedCoursesCypher, map[string]interface{}{
		"lecture_type": lectureType,
		"group_id":     groupID,
		"tag":          tag,
	})
	if err != nil {
		return nil, apperrors.NewStore("neo4j", "find tagged courses", err)
	}

	courses := make([]model.TaggedCourse, 0, len(records))
	for _, rec := range records {
		courses = append(courses, model.TaggedCourse{
			CourseID:    asInt(rec["course_id"]),
			Name:        asString(rec["name"]),
			Description: asString(rec["description"]),
			SpecialtyID: asInt(rec["specialty_id"]),
			ScheduleIDs: asIntSlice(rec["schedule_ids"]),
		})
	}

	return courses, nil
}

// run executes one read query and materializes all records as maps.
func (s *scheduleGraph) run(ctx context.Context, cypher string, params map[string]interface{}) ([]map[string]interface{}, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var records []map[string]interface{}
	for result.Next(ctx) {
		records = append(records, result.Record().AsMap())
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// asInt converts a bolt value to int. Bolt integers arrive as int64.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// asString converts a bolt value to string, empty when absent.
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asIntSlice converts a bolt list to []int.
func asIntSlice(v interface{}) []int {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, asInt(item))
	}
	return out
}
