package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "uni-analytics/backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// semesterDateRange resolves (year, semester) into an inclusive calendar
// range: semester 1 of year Y is the fall term [Y-09-01, Y-12-31];
// semester 2 is the following spring term [(Y+1)-01-01, (Y+1)-06-30].
func semesterDateRange(year string, semester int) (string, string, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return "", "", apperrors.NewValidation("must be a number", "year")
	}

	switch semester {
	case 1:
		return fmt.Sprintf("%d-09-01", y), fmt.Sprintf("%d-12-31", y), nil
	case 2:
		return fmt.Sprintf("%d-01-01", y+1), fmt.Sprintf("%d-06-30", y+1), nil
	}
	return "", "", apperrors.NewValidation("must be 1 or 2", "semester")
}

// validateDateRange checks calendar-date form and ordering before any
// external call is issued.
func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return apperrors.NewValidation("must be YYYY-MM-DD", "start_date")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return apperrors.NewValidation("must be YYYY-MM-DD", "end_date")
	}
	if start.After(end) {
		return apperrors.NewValidation("start_date must not be after end_date", "start_date", "end_date")
	}
	return nil
}
