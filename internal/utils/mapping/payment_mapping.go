package mapping

import (
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	"github.com/schoolworks/fee_management_app/internal/models"
)

// ToModelFeePayment converts a domain FeePayment to a model FeePayment
func ToModelFeePayment(d domain.FeePayment) models.FeePayment {
	return models.FeePayment{
		PaymentID:        d.PaymentID,
		ReceiptNo:        d.ReceiptNo,
		Branch:           d.Branch,
		Location:         d.Location,
		AcademicYear:     d.AcademicYear,
		StudentID:        d.StudentID,
		ClassName:        d.ClassName,
		Section:          d.Section,
		InstallmentName:  d.InstallmentName,
		FeeTypeName:      d.FeeTypeName,
		GrossAmount:      d.GrossAmount,
		ConcessionAmount: d.ConcessionAmount,
		NetPayable:       d.NetPayable,
		AmountPaid:       d.AmountPaid,
		DueAmount:        d.DueAmount,
		PaymentMode:      d.PaymentMode,
		PaymentDate:      d.PaymentDate,
		Note:             d.Note,
		CollectedBy:      d.CollectedBy,
		CollectedByName:  d.CollectedByName,
		IsActive:         d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainFeePayment converts a model FeePayment to a domain FeePayment
func ToDomainFeePayment(m models.FeePayment) domain.FeePayment {
	return domain.FeePayment{
		PaymentID:        m.PaymentID,
		ReceiptNo:        m.ReceiptNo,
		Branch:           m.Branch,
		Location:         m.Location,
		AcademicYear:     m.AcademicYear,
		StudentID:        m.StudentID,
		ClassName:        m.ClassName,
		Section:          m.Section,
		InstallmentName:  m.InstallmentName,
		FeeTypeName:      m.FeeTypeName,
		GrossAmount:      m.GrossAmount,
		ConcessionAmount: m.ConcessionAmount,
		NetPayable:       m.NetPayable,
		AmountPaid:       m.AmountPaid,
		DueAmount:        m.DueAmount,
		PaymentMode:      m.PaymentMode,
		PaymentDate:      m.PaymentDate,
		Note:             m.Note,
		CollectedBy:      m.CollectedBy,
		CollectedByName:  m.CollectedByName,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainFeePaymentSlice converts a slice of model FeePayments to domain FeePayments
func ToDomainFeePaymentSlice(ms []models.FeePayment) []domain.FeePayment {
	ds := make([]domain.FeePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeePayment(m)
	}
	return ds
}
