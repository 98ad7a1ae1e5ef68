package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/model"
	apperrors "uni-analytics/backend/pkg/errors"
)

// Key layout populated by the external synchronizer:
//   student:{id}                    hash of student attributes
//   index:student:group_id:{id}     set of student ids per group
//   course:{id}:student_count       cached per-course student count
const (
	studentKeyPrefix  = "student:"
	groupIndexKeyFmt  = "index:student:group_id:%d"
	courseCountKeyFmt = "course:%d:student_count"
)

// groupRoster is the Redis-backed GroupRosterStore.
type groupRoster struct {
	rdb      *goredis.Client
	timeout  time.Duration
	countTTL time.Duration
	logger   *zap.Logger
}

// NewGroupRoster creates the canonical GroupRosterStore.
func NewGroupRoster(rdb *goredis.Client, cfg *config.ReportConfig, logger *zap.Logger) GroupRosterStore {
	return &groupRoster{
		rdb:      rdb,
		timeout:  cfg.CallTimeout,
		countTTL: cfg.CountCacheTTL,
		logger:   logger,
	}
}

// RosterFor reads the cached students of a group: set members first, then a
// pipelined hash fetch per student. A missing group index yields an empty
// list. Results are sorted by student id so repeated reads within one report
// are identical.
func (s *groupRoster) RosterFor(ctx context.Context, groupID int) ([]model.StudentSummary, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ids, err := s.rdb.SMembers(tctx, fmt.Sprintf(groupIndexKeyFmt, groupID)).Result()
	if err != nil {
		return nil, apperrors.NewStore("redis", "read group index", err)
	}
	if len(ids) == 0 {
		return []model.StudentSummary{}, nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*goredis.MapStringStringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGetAll(tctx, studentKeyPrefix+id))
	}
	if _, err := pipe.Exec(tctx); err != nil {
		return nil, apperrors.NewStore("redis", "read student hashes", err)
	}

	students := make([]model.StudentSummary, 0, len(cmds))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			// Index member without a hash record: sync lag, skip it.
			continue
		}
		student, err := parseStudentHash(data)
		if err != nil {
			s.logger.Warn("malformed student hash skipped",
				zap.Int("group_id", groupID),
				zap.Error(err),
			)
			continue
		}
		students = append(students, student)
	}

	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	return students, nil
}

// CountFor returns the cached roster size of a group, zero when the group
// index is absent.
func (s *groupRoster) CountFor(ctx context.Context, groupID int) (int64, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.rdb.SCard(tctx, fmt.Sprintf(groupIndexKeyFmt, groupID)).Result()
	if err != nil {
		return 0, apperrors.NewStore("redis", "count group index", err)
	}
	return n, nil
}

// CourseStudentCount reads the cached per-course student count.
func (s *groupRoster) CourseStudentCount(ctx context.Context, courseID int) (int, bool, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	val, err := s.rdb.Get(tctx, fmt.Sprintf(courseCountKeyFmt, courseID)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.NewStore("redis", "read course count", err)
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, apperrors.NewStore("redis", "parse course count", err)
	}
	return n, true, nil
}

// SetCourseStudentCount caches a per-course student count with a TTL.
func (s *groupRoster) SetCourseStudentCount(ctx context.Context, courseID, count int) error {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.rdb.Set(tctx, fmt.Sprintf(courseCountKeyFmt, courseID), count, s.countTTL).Err()
	if err != nil {
		return apperrors.NewStore("redis", "write course count", err)
	}
	return nil
}

// parseStudentHash converts one cached hash into a StudentSummary. Numeric
// fields are coerced from the string representation Redis stores; a
// string/int mismatch must not leak to callers.
func parseStudentHash(data map[string]string) (model.StudentSummary, error) {
	id, err := strconv.Atoi(data["id"])
	if err != nil {
		return model.StudentSummary{}, fmt.Errorf("student hash id %q: %w", data["id"], err)
	}

	student := model.StudentSummary{
		ID:          id,
		Name:        data["name"],
		BookNumber:  data["book_number"],
		DateOfBirth: data["date_of_birth"],
		Email:       data["email"],
	}
	if v, err := strconv.Atoi(data["group_id"]); err == nil {
		student.GroupID = v
	}
	if v, err := strconv.Atoi(data["enrollment_year"]); err == nil {
		student.EnrollmentYear = v
	}

	return student, nil
}
