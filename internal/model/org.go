package model

// DepartmentInfo is the flattened result of the university→institute→
// department hierarchy lookup. The department name doubles as the free-text
// tag marking "special" lecture sets.
type DepartmentInfo struct {
	DepartmentName string `bson:"department_name"`
	InstituteName  string `bson:"institute_name"`
	UniversityName string `bson:"university_name"`
}
