package dto

// AttendanceReportRequest is the lab1 query: a free-text material term plus
// an inclusive calendar-date range.
type AttendanceReportRequest struct {
	Material  string `json:"material"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// AttendanceReport is the lab1 report body.
type AttendanceReport struct {
	SearchTerm     string          `json:"search_term"`
	Period         string          `json:"period"` // "start - end"
	WorstAttendees []WorstAttendee `json:"worst_attendees"`
}

// WorstAttendee is one ranked entry of the worst-attendance rollup.
type WorstAttendee struct {
	StudentID         int     `json:"student_id"`
	Name              string  `json:"name"`
	GroupID           int     `json:"group_id"`
	BookNumber        string  `json:"book_number"`
	MissedLectures    int     `json:"missed_lectures"`
	TotalLectures     int     `json:"total_lectures"`
	AttendancePercent float64 `json:"attendance_percent"`
}
