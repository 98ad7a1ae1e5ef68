package model

// ScheduleOccurrence is one concrete timetabled meeting of a class for a
// group. Produced by graph traversal; the date range and the lecture-type
// filter are enforced at query time, never post-filtered.
type ScheduleOccurrence struct {
	ScheduleID    int
	ClassID       int
	GroupID       int
	Room          string
	ScheduledDate string // YYYY-MM-DD
	StartTime     string // HH:MM:SS
	EndTime       string // HH:MM:SS
}

// CourseRollup is one (course, lecture) pair active in a date range,
// with the deduplicated set of group ids attending.
type CourseRollup struct {
	CourseID         int
	CourseName       string
	Description      string
	DepartmentID     int
	SpecialtyID      int
	LectureID        int
	LectureName      string
	LectureType      string
	TechRequirements string
	GroupIDs         []int
}

// TaggedCourse is a course whose lectures carry a given tag for one group,
// with the full schedule-id list used to derive planned hours.
type TaggedCourse struct {
	CourseID    int
	Name        string
	Description string
	SpecialtyID int
	ScheduleIDs []int
}
