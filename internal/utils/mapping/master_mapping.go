package mapping

import (
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	"github.com/schoolworks/fee_management_app/internal/models"
)

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:     m.BranchID,
		Name:         m.Name,
		Code:         m.Code,
		LocationCode: m.LocationCode,
		LocationName: m.LocationName,
	}
}

// ToDomainAcademicYear converts a model AcademicYear to a domain AcademicYear
func ToDomainAcademicYear(m models.AcademicYear) domain.AcademicYear {
	return domain.AcademicYear{
		AcademicYearID: m.AcademicYearID,
		Code:           m.Code,
	}
}

// ToDomainStudent converts a model Student to a domain Student
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:      m.StudentID,
		Name:           m.Name,
		ClassName:      m.ClassName,
		Section:        m.Section,
		Branch:         m.Branch,
		Location:       m.Location,
		AcademicYear:   m.AcademicYear,
		IsNewAdmission: m.IsNewAdmission,
		Status:         m.Status,
	}
}

// ToDomainSequence converts a model BranchYearSequence to a domain BranchYearSequence
func ToDomainSequence(m models.BranchYearSequence) domain.BranchYearSequence {
	return domain.BranchYearSequence{
		SequenceID:      m.SequenceID,
		BranchID:        m.BranchID,
		AcademicYearID:  m.AcademicYearID,
		AdmissionPrefix: m.AdmissionPrefix,
		LastAdmissionNo: m.LastAdmissionNo,
		ReceiptPrefix:   m.ReceiptPrefix,
		LastReceiptNo:   m.LastReceiptNo,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
