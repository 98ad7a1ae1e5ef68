package model

// StudentSummary is the lightweight student record cached per group.
// Entries are write-once per sync cycle; within one report request they are
// treated as immutable snapshots.
type StudentSummary struct {
	ID             int
	Name           string
	GroupID        int
	BookNumber     string
	EnrollmentYear int
	DateOfBirth    string // YYYY-MM-DD
	Email          string
}

// GroupInfo identifies a student group resolved by name.
type GroupInfo struct {
	ID           int
	Name         string
	DepartmentID int
	CourseYear   int
}
