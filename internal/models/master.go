package models

// Branch maps to the branches master table.
type Branch struct {
	BranchID     int64  `json:"branchID"` // Primary Key (serial)
	Name         string `json:"name"`
	Code         string `json:"code"`
	LocationCode string `json:"locationCode"`
	LocationName string `json:"locationName"`
}

// AcademicYear maps to the academic_years master table.
type AcademicYear struct {
	AcademicYearID int64  `json:"academicYearID"` // Primary Key (serial)
	Code           string `json:"code"`           // e.g. "2025-2026"
}

// Student maps to the students table, read-only from this service's point of view.
type Student struct {
	StudentID      string `json:"studentID"` // Primary Key (UUID)
	Name           string `json:"name"`
	ClassName      string `json:"className"`
	Section        string `json:"section"`
	Branch         string `json:"branch"`
	Location       string `json:"location"`
	AcademicYear   string `json:"academicYear"`
	IsNewAdmission bool   `json:"isNewAdmission"`
	Status         string `json:"status"`
}
