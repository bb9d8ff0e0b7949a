package mapping

import (
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/models"
)

// ToModelPayrollRecord converts a domain PayrollRecord to a model PayrollRecord
func ToModelPayrollRecord(d domain.PayrollRecord) models.PayrollRecord {
	return models.PayrollRecord{
		RecordID:    d.RecordID,
		EmployeeID:  d.EmployeeID,
		Period:      d.Period,
		BasicSalary: d.BasicSalary,
		Allowances:  d.Allowances,
		Overtime:    d.Overtime,
		Bonus:       d.Bonus,
		Deductions:  d.Deductions,
		NetSalary:   d.NetSalary,
		Status:      models.PayrollStatus(d.Status),
		BatchID:     d.BatchID,
		ApprovedBy:  d.ApprovedBy,
		ApprovedAt:  d.ApprovedAt,
		PayDate:     d.PayDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRecord converts a model PayrollRecord to a domain PayrollRecord
func ToDomainPayrollRecord(m models.PayrollRecord) domain.PayrollRecord {
	return domain.PayrollRecord{
		RecordID:    m.RecordID,
		EmployeeID:  m.EmployeeID,
		Period:      m.Period,
		BasicSalary: m.BasicSalary,
		Allowances:  m.Allowances,
		Overtime:    m.Overtime,
		Bonus:       m.Bonus,
		Deductions:  m.Deductions,
		NetSalary:   m.NetSalary,
		Status:      domain.PayrollStatus(m.Status),
		BatchID:     m.BatchID,
		ApprovedBy:  m.ApprovedBy,
		ApprovedAt:  m.ApprovedAt,
		PayDate:     m.PayDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayrollRecordSlice converts a slice of model PayrollRecords to domain PayrollRecords
func ToDomainPayrollRecordSlice(ms []models.PayrollRecord) []domain.PayrollRecord {
	ds := make([]domain.PayrollRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayrollRecord(m)
	}
	return ds
}

// ToModelPayrollBatch converts a domain PayrollBatch to a model PayrollBatch
func ToModelPayrollBatch(d domain.PayrollBatch) models.PayrollBatch {
	return models.PayrollBatch{
		BatchID:         d.BatchID,
		Period:          d.Period,
		Status:          models.BatchStatus(d.Status),
		TotalGross:      d.TotalGross,
		TotalDeductions: d.TotalDeductions,
		TotalNet:        d.TotalNet,
		TotalPaid:       d.TotalPaid,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		PostedAt:        d.PostedAt,
		PaidAt:          d.PaidAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollBatch converts a model PayrollBatch to a domain PayrollBatch
func ToDomainPayrollBatch(m models.PayrollBatch) domain.PayrollBatch {
	return domain.PayrollBatch{
		BatchID:         m.BatchID,
		Period:          m.Period,
		Status:          domain.BatchStatus(m.Status),
		TotalGross:      m.TotalGross,
		TotalDeductions: m.TotalDeductions,
		TotalNet:        m.TotalNet,
		TotalPaid:       m.TotalPaid,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		PostedAt:        m.PostedAt,
		PaidAt:          m.PaidAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
