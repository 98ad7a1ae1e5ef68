package store

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uni-analytics/backend/internal/model"
	apperrors "uni-analytics/backend/pkg/errors"
)

// attendance is the PostgreSQL-backed AttendanceStore.
type attendance struct {
	db      *gorm.DB
	timeout time.Duration
	logger  *zap.Logger
}

// NewAttendance creates the canonical AttendanceStore.
func NewAttendance(db *gorm.DB, timeout time.Duration, logger *zap.Logger) AttendanceStore {
	return &attendance{db: db, timeout: timeout, logger: logger}
}

// WorstAttendance ranks students by lowest attendance over the schedule set.
//
// The denominator is the size of the input schedule-id set for every
// student. When studentIDs is non-nil the aggregate covers exactly that
// candidate set with outer-join semantics: a candidate without any
// attendance row appears with missedCount == totalLectures. When studentIDs
// is nil the universe is every student holding at least one attendance row
// for the schedules. Ordering is ascending (attendedCount, studentID), so
// results are deterministic and paginable.
func (s *attendance) WorstAttendance(ctx context.Context, scheduleIDs, studentIDs []int, limit int) ([]model.AttendanceStat, error) {
	if limit <= 0 {
		return nil, apperrors.NewValidation("must be positive", "limit")
	}
	if len(scheduleIDs) == 0 {
		return []model.AttendanceStat{}, nil
	}

	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var rows []struct {
		StudentID     int `gorm:"column:student_id"`
		AttendedCount int `gorm:"column:attended_count"`
	}

	query := `
		SELECT student_id,
		       SUM(CASE WHEN attended THEN 1 ELSE 0 END) AS attended_count
		FROM attendance
		WHERE schedule_id IN ?`
	args := []interface{}{scheduleIDs}
	if studentIDs != nil {
		query += ` AND student_id IN ?`
		args = append(args, studentIDs)
	}
	query += ` GROUP BY student_id`

	if err := s.db.WithContext(tctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, apperrors.NewStore("postgres", "aggregate attendance", err)
	}

	attended := make(map[int]int, len(rows))
	for _, row := range rows {
		attended[row.StudentID] = row.AttendedCount
	}

	return rankWorst(studentIDs, attended, len(scheduleIDs), limit), nil
}

// rankWorst materializes per-student stats over a fixed denominator, sorts
// them worst-first with a deterministic tie-break and applies the limit.
// A nil candidate set means "every student present in attended".
func rankWorst(candidates []int, attended map[int]int, total, limit int) []model.AttendanceStat {
	if candidates == nil {
		candidates = make([]int, 0, len(attended))
		for id := range attended {
			candidates = append(candidates, id)
		}
	}

	stats := make([]model.AttendanceStat, 0, len(candidates))
	seen := make(map[int]struct{}, len(candidates))
	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		att := attended[id]
		stats = append(stats, model.AttendanceStat{
			StudentID:         id,
			AttendedCount:     att,
			MissedCount:       total - att,
			TotalLectures:     total,
			AttendancePercent: attendancePercent(att, total),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AttendedCount != stats[j].AttendedCount {
			return stats[i].AttendedCount < stats[j].AttendedCount
		}
		return stats[i].StudentID < stats[j].StudentID
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// attendancePercent is (attended/total)*100 rounded to 2 decimals,
// defined as 0 when total is 0.
func attendancePercent(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*100) / 100
}

// StudentGroupByName resolves a group by case-insensitive partial name
// match. Ambiguous names resolve to the lowest id; a miss returns
// ErrNotFound.
func (s *attendance) StudentGroupByName(ctx context.Context, name string) (*model.GroupInfo, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var row struct {
		ID           int    `gorm:"column:id"`
		Name         string `gorm:"column:name"`
		DepartmentID int    `gorm:"column:department_id"`
		CourseYear   int    `gorm:"column:course_year"`
	}

	res := s.db.WithContext(tctx).Raw(`
		SELECT id, name, department_id, course_year
		FROM student_groups
		WHERE name ILIKE ?
		ORDER BY id
		LIMIT 1`, "%"+name+"%").Scan(&row)
	if res.Error != nil {
		return nil, apperrors.NewStore("postgres", "resolve group by name", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &model.GroupInfo{
		ID:           row.ID,
		Name:         row.Name,
		DepartmentID: row.DepartmentID,
		CourseYear:   row.CourseYear,
	}, nil
}

// StudentCountForCourse counts distinct students whose group is scheduled
// for the course.
func (s *attendance) StudentCountForCourse(ctx context.Context, courseID int) (int, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	err := s.db.WithContext(tctx).Raw(`
		SELECT COUNT(DISTINCT st.id)
		FROM students st
		JOIN student_groups g ON st.group_id = g.id
		JOIN schedule sch ON g.id = sch.group_id
		WHERE sch.course_of_class_id = ?`, courseID).Scan(&count).Error
	if err != nil {
		return 0, apperrors.NewStore("postgres", "count course students", err)
	}
	return count, nil
}

// AttendanceCountFor counts the sessions of the schedule set one student
// actually attended.
func (s *attendance) AttendanceCountFor(ctx context.Context, studentID int, scheduleIDs []int) (int, error) {
	if len(scheduleIDs) == 0 {
		return 0, nil
	}

	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	err := s.db.WithContext(tctx).Raw(`
		SELECT COUNT(*)
		FROM attendance
		WHERE student_id = ?
		  AND schedule_id IN ?
		  AND attended = TRUE`, studentID, scheduleIDs).Scan(&count).Error
	if err != nil {
		return 0, apperrors.NewStore("postgres", "count attended sessions", err)
	}
	return count, nil
}
