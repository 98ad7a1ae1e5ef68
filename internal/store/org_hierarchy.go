package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"uni-analytics/backend/internal/model"
	apperrors "uni-analytics/backend/pkg/errors"
)

const universitiesCollection = "universities"

// orgHierarchy is the MongoDB-backed OrgHierarchyStore. The hierarchy is a
// single nested document per university: institutes carry departments.
type orgHierarchy struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  *zap.Logger
}

// NewOrgHierarchy creates the canonical OrgHierarchyStore.
func NewOrgHierarchy(db *mongo.Database, timeout time.Duration, logger *zap.Logger) OrgHierarchyStore {
	return &orgHierarchy{
		col:     db.Collection(universitiesCollection),
		timeout: timeout,
		logger:  logger,
	}
}

// DepartmentName flattens institutes→departments and matches on the
// department id. A miss surfaces as ErrNotFound so the caller decides
// whether the missing tag aborts report assembly.
func (s *orgHierarchy) DepartmentName(ctx context.Context, departmentID int) (string, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$institutes"}},
		{{Key: "$unwind", Value: "$institutes.departments"}},
		{{Key: "$match", Value: bson.D{
			{Key: "institutes.departments.department_id", Value: departmentID},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "department_name", Value: "$institutes.departments.name"},
			{Key: "institute_name", Value: "$institutes.name"},
			{Key: "university_name", Value: "$name"},
		}}},
	}

	cur, err := s.col.Aggregate(tctx, pipeline)
	if err != nil {
		return "", apperrors.NewStore("mongodb", "resolve department", err)
	}
	defer cur.Close(tctx)

	var rows []model.DepartmentInfo
	if err := cur.All(tctx, &rows); err != nil {
		return "", apperrors.NewStore("mongodb", "decode department", err)
	}
	if len(rows) == 0 {
		return "", apperrors.ErrNotFound
	}

	s.logger.Debug("department resolved",
		zap.Int("department_id", departmentID),
		zap.String("department", rows[0].DepartmentName),
		zap.String("institute", rows[0].InstituteName),
		zap.String("university", rows[0].UniversityName),
	)

	return rows[0].DepartmentName, nil
}
