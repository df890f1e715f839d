package domain

// BranchAll is the wildcard branch scope used by fee structures, installments and
// concession rules that apply to every branch.
const BranchAll = "All"

// IsAllLocation reports whether a location scope means "no location restriction".
func IsAllLocation(location string) bool {
	return location == "" || location == "All" || location == "All Locations"
}

// Branch is a read-only master-data lookup result. Branch CRUD lives outside this
// service; the ledger core only resolves names/codes to IDs and location scope.
type Branch struct {
	BranchID     int64  `json:"branchID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	LocationCode string `json:"locationCode"`
	LocationName string `json:"locationName"`
}

// AcademicYear is a read-only master-data lookup result (e.g. code "2025-2026").
type AcademicYear struct {
	AcademicYearID int64  `json:"academicYearID"`
	Code           string `json:"code"`
}

// Student is the point-in-time view of a student the fee engines operate on.
// The student master is owned elsewhere; this is a lookup value, never written back.
type Student struct {
	StudentID      string `json:"studentID"`
	Name           string `json:"name"`
	ClassName      string `json:"className"`
	Section        string `json:"section"`
	Branch         string `json:"branch"`
	Location       string `json:"location"`
	AcademicYear   string `json:"academicYear"`
	IsNewAdmission bool   `json:"isNewAdmission"`
	Status         string `json:"status"`
}
