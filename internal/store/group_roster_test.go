package store

import "testing"

func TestParseStudentHash(t *testing.T) {
	data := map[string]string{
		"id":              "8",
		"name":            "Иванов Иван",
		"group_id":        "1",
		"book_number":     "01001",
		"enrollment_year": "2023",
		"date_of_birth":   "2002-05-12",
		"email":           "ivan.ivanov@university.edu",
	}

	student, err := parseStudentHash(data)
	if err != nil {
		t.Fatalf("parseStudentHash: %v", err)
	}

	if student.ID != 8 {
		t.Errorf("expected ID=8, got %d", student.ID)
	}
	if student.GroupID != 1 {
		t.Errorf("expected GroupID=1, got %d", student.GroupID)
	}
	if student.EnrollmentYear != 2023 {
		t.Errorf("expected EnrollmentYear=2023, got %d", student.EnrollmentYear)
	}
	if student.Name != "Иванов Иван" {
		t.Errorf("unexpected name %q", student.Name)
	}
	if student.BookNumber != "01001" {
		t.Errorf("unexpected book number %q", student.BookNumber)
	}
}

func TestParseStudentHash_BadID(t *testing.T) {
	_, err := parseStudentHash(map[string]string{"id": "abc"})
	if err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}

func TestParseStudentHash_MissingNumericFields(t *testing.T) {
	student, err := parseStudentHash(map[string]string{"id": "3", "name": "x"})
	if err != nil {
		t.Fatalf("parseStudentHash: %v", err)
	}
	if student.GroupID != 0 || student.EnrollmentYear != 0 {
		t.Errorf("expected zero defaults, got group=%d year=%d",
			student.GroupID, student.EnrollmentYear)
	}
}

func TestDedupOrdered(t *testing.T) {
	got := dedupOrdered([]int{3, 1, 3, 2, 1})

	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
