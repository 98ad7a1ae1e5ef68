package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/model"
	"uni-analytics/backend/internal/store"
)

// AttendanceReportService builds the worst-attendance report: material term
// and date range in, ranked attendee list out.
type AttendanceReportService interface {
	Report(ctx context.Context, req *dto.AttendanceReportRequest) (*dto.AttendanceReport, error)
}

type attendanceReportService struct {
	store  *store.Store
	cfg    *config.ReportConfig
	logger *zap.Logger
}

// NewAttendanceReportService creates the lab1 assembler.
func NewAttendanceReportService(st *store.Store, cfg *config.ReportConfig, logger *zap.Logger) AttendanceReportService {
	return &attendanceReportService{store: st, cfg: cfg, logger: logger}
}

// Report runs the full fanout: term → class ids → schedules → rosters →
// attendance aggregate → merge. Every stage that legitimately finds nothing
// short-circuits into the empty report shell; only backend failures on
// required stages abort the request.
//
// Merge policy: the roster is authoritative for scope. A roster member
// without attendance rows appears fully absent (outer-join semantics);
// an aggregate row without a roster entry is dropped.
func (s *attendanceReportService) Report(ctx context.Context, req *dto.AttendanceReportRequest) (*dto.AttendanceReport, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	report := &dto.AttendanceReport{
		SearchTerm:     req.Material,
		Period:         req.StartDate + " - " + req.EndDate,
		WorstAttendees: []dto.WorstAttendee{},
	}

	// Stage 1: full-text search. Search unavailability is treated exactly
	// like "no matches": logged, never fatal.
	classIDs, err := s.store.MaterialSearch.Search(ctx, req.Material)
	if err != nil {
		s.logger.Warn("material search unavailable, returning empty report",
			zap.String("term", req.Material),
			zap.Error(err),
		)
		return report, nil
	}
	if len(classIDs) == 0 {
		return report, nil
	}

	// Stage 2: graph expansion. Connection loss here is fatal for the
	// request; graph reads are idempotent but not retried.
	schedules, err := s.store.ScheduleGraph.FindLectureSchedules(ctx, classIDs, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return report, nil
	}

	scheduleIDs := make([]int, 0, len(schedules))
	groupSet := make(map[int]struct{})
	for _, occ := range schedules {
		scheduleIDs = append(scheduleIDs, occ.ScheduleID)
		groupSet[occ.GroupID] = struct{}{}
	}
	groupIDs := make([]int, 0, len(groupSet))
	for id := range groupSet {
		groupIDs = append(groupIDs, id)
	}
	sort.Ints(groupIDs)

	// Stage 3: roster enrichment. Required for the report shape, so a
	// cache failure aborts instead of producing a report without names.
	students, err := s.rosterForGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return report, nil
	}

	studentIDs := make([]int, 0, len(students))
	byID := make(map[int]model.StudentSummary, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
		byID[st.ID] = st
	}

	// Stage 4: relational aggregate over exactly the candidate set.
	// Aggregate reads are best-effort: a query failure degrades to the
	// empty shell rather than a 500.
	stats, err := s.store.Attendance.WorstAttendance(ctx, scheduleIDs, studentIDs, len(studentIDs))
	if err != nil {
		s.logger.Warn("attendance aggregate failed, returning empty report",
			zap.Int("schedules", len(scheduleIDs)),
			zap.Int("students", len(studentIDs)),
			zap.Error(err),
		)
		return report, nil
	}

	// Stage 5: merge stats with display attributes by student id.
	for _, stat := range stats {
		student, ok := byID[stat.StudentID]
		if !ok {
			continue
		}
		report.WorstAttendees = append(report.WorstAttendees, dto.WorstAttendee{
			StudentID:         stat.StudentID,
			Name:              student.Name,
			GroupID:           student.GroupID,
			BookNumber:        student.BookNumber,
			MissedLectures:    stat.MissedCount,
			TotalLectures:     stat.TotalLectures,
			AttendancePercent: stat.AttendancePercent,
		})
	}

	return report, nil
}

// rosterForGroups fans out per-group roster reads over a bounded pool and
// merges the results in ascending group-id order, deduplicating students
// reachable via multiple groups. groupIDs must already be sorted.
func (s *attendanceReportService) rosterForGroups(ctx context.Context, groupIDs []int) ([]model.StudentSummary, error) {
	rosters := make([][]model.StudentSummary, len(groupIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RosterConcurrency)
	for i, id := range groupIDs {
		i, id := i, id
		g.Go(func() error {
			students, err := s.store.GroupRoster.RosterFor(gctx, id)
			if err != nil {
				return err
			}
			rosters[i] = students
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	var merged []model.StudentSummary
	for _, students := range rosters {
		for _, st := range students {
			if _, dup := seen[st.ID]; dup {
				continue
			}
			seen[st.ID] = struct{}{}
			merged = append(merged, st)
		}
	}
	return merged, nil
}
