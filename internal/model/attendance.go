package model

// AttendanceStat is the per-student attendance aggregate over one schedule
// set. TotalLectures is the size of the input schedule-id set, identical for
// every student sharing that set; it is never recomputed from a student's
// individual enrollment.
type AttendanceStat struct {
	StudentID         int
	AttendedCount     int
	MissedCount       int
	TotalLectures     int
	AttendancePercent float64
}
