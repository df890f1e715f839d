package mapping

import (
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	"github.com/schoolworks/fee_management_app/internal/models"
)

// ToModelStudentFee converts a domain StudentFee to a model StudentFee
func ToModelStudentFee(d domain.StudentFee) models.StudentFee {
	return models.StudentFee{
		FeeID:        d.FeeID,
		StudentID:    d.StudentID,
		FeeTypeID:    d.FeeTypeID,
		FeeTypeName:  d.FeeTypeName,
		AcademicYear: d.AcademicYear,
		Period:       d.Period,
		TotalFee:     d.TotalFee,
		PaidAmount:   d.PaidAmount,
		Concession:   d.Concession,
		DueAmount:    d.DueAmount,
		Status:       models.FeeStatus(d.Status),
		DueDate:      d.DueDate,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainStudentFee converts a model StudentFee to a domain StudentFee
func ToDomainStudentFee(m models.StudentFee) domain.StudentFee {
	return domain.StudentFee{
		FeeID:        m.FeeID,
		StudentID:    m.StudentID,
		FeeTypeID:    m.FeeTypeID,
		FeeTypeName:  m.FeeTypeName,
		AcademicYear: m.AcademicYear,
		Period:       m.Period,
		TotalFee:     m.TotalFee,
		PaidAmount:   m.PaidAmount,
		Concession:   m.Concession,
		DueAmount:    m.DueAmount,
		Status:       domain.FeeStatus(m.Status),
		DueDate:      m.DueDate,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainStudentFeeSlice converts a slice of model StudentFees to domain StudentFees
func ToDomainStudentFeeSlice(ms []models.StudentFee) []domain.StudentFee {
	ds := make([]domain.StudentFee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudentFee(m)
	}
	return ds
}

// ToDomainFeeStructure converts a model FeeStructure to a domain FeeStructure
func ToDomainFeeStructure(m models.FeeStructure) domain.FeeStructure {
	return domain.FeeStructure{
		FeeStructureID:    m.FeeStructureID,
		ClassName:         m.ClassName,
		FeeTypeID:         m.FeeTypeID,
		FeeTypeName:       m.FeeTypeName,
		AcademicYear:      m.AcademicYear,
		Branch:            m.Branch,
		Location:          m.Location,
		TotalAmount:       m.TotalAmount,
		MonthlyAmount:     m.MonthlyAmount,
		InstallmentsCount: m.InstallmentsCount,
		IsNewAdmission:    m.IsNewAdmission,
		FeeGroup:          m.FeeGroup,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainFeeInstallment converts a model FeeInstallment to a domain FeeInstallment
func ToDomainFeeInstallment(m models.FeeInstallment) domain.FeeInstallment {
	return domain.FeeInstallment{
		FeeInstallmentID: m.FeeInstallmentID,
		InstallmentNo:    m.InstallmentNo,
		Title:            m.Title,
		Branch:           m.Branch,
		Location:         m.Location,
		AcademicYear:     m.AcademicYear,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		LastPayDate:      m.LastPayDate,
		FeeTypeID:        m.FeeTypeID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainConcession converts a model Concession to a domain Concession
func ToDomainConcession(m models.Concession) domain.Concession {
	return domain.Concession{
		ConcessionID: m.ConcessionID,
		Title:        m.Title,
		Description:  m.Description,
		Branch:       m.Branch,
		Location:     m.Location,
		AcademicYear: m.AcademicYear,
		FeeTypeID:    m.FeeTypeID,
		Value:        m.Value,
		IsPercentage: m.IsPercentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
