package dto

// ClassroomReportRequest is the lab2 query: the semester number and year are
// resolved into a calendar-date range before any store is queried.
type ClassroomReportRequest struct {
	Semester int    `json:"semester"` // 1 | 2
	Year     string `json:"year"`
}

// ClassroomReport is the lab2 report body: a per-course classroom/capacity
// rollup for the resolved semester.
type ClassroomReport struct {
	Semester int             `json:"semester"`
	Year     string          `json:"year"`
	Courses  []CourseSummary `json:"courses"`
}

// CourseSummary is one course with its in-range lectures.
type CourseSummary struct {
	Name         string           `json:"name"`
	DepartmentID int              `json:"department_id"`
	SpecialtyID  int              `json:"specialty_id"`
	Description  string           `json:"description"`
	Lectures     []LectureSummary `json:"lectures"`
}

// LectureSummary is one lecture with its capacity requirement.
type LectureSummary struct {
	Name             string `json:"name"`
	Tags             string `json:"tags"`
	Type             string `json:"type"`
	TechRequirements string `json:"tech_requirements"`
	StudentCount     int    `json:"student_count"`
}
