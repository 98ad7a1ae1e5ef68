package dto

// GroupReportRequest is the lab3 query: a group resolved by display name.
type GroupReportRequest struct {
	GroupName string `json:"group_name"`
}

// GroupReport is the lab3 report body: planned vs listened hours per student
// per tagged course.
type GroupReport struct {
	GroupInfo GroupInfo       `json:"group_info"`
	Students  []StudentReport `json:"students"`
}

// GroupInfo describes the resolved group.
type GroupInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
	CourseYear   int    `json:"course_year"`
}

// StudentReport is one student with their per-course hour totals.
type StudentReport struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	GroupID        int            `json:"group_id"`
	BookNumber     string         `json:"book_number"`
	EnrollmentYear int            `json:"enrollment_year"`
	DateOfBirth    string         `json:"date_of_birth"`
	Email          string         `json:"email"`
	Courses        []CourseReport `json:"courses"`
}

// CourseReport is one tagged course with hour totals for a student.
type CourseReport struct {
	CourseInfo    CourseInfo `json:"course_info"`
	PlannedHours  int        `json:"planned_hours"`
	ListenedHours int        `json:"listened_hours"`
}

// CourseInfo describes the course of a CourseReport.
type CourseInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpecialtyID int    `json:"specialty_id"`
}
