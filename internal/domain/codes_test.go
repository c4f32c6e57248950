package domain_test

import (
	"testing"

	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsValidAnnualCode(t *testing.T) {
	tests := []struct {
		code     string
		format   bool
		expected bool
	}{
		{"001", true, true},
		{"999", true, true},
		{"042", true, true},
		{"000", true, false},
		{"1", false, false},
		{"01", false, false},
		{"1000", false, false},
		{"0a1", false, false},
		{"", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.format, domain.IsAnnualCodeFormat(tc.code))
			assert.Equal(t, tc.expected, domain.IsValidAnnualCode(tc.code))
		})
	}
}

func TestFormatCodes(t *testing.T) {
	assert.Equal(t, "001", domain.FormatAnnualCode(1))
	assert.Equal(t, "042", domain.FormatAnnualCode(42))
	assert.Equal(t, "999", domain.FormatAnnualCode(999))
	assert.Equal(t, "10001", domain.FormatPermanentCode(10001))
	assert.Equal(t, "00042", domain.FormatPermanentCode(42))
	assert.True(t, domain.IsPermanentCodeFormat("10001"))
	assert.False(t, domain.IsPermanentCodeFormat("1001"))
}

func TestIssuingCompanyCodes(t *testing.T) {
	assert.Equal(t, "30", domain.IssuingCompanyDET.Code())
	assert.Equal(t, "10", domain.IssuingCompanyFZCO.Code())
	assert.Equal(t, "00", domain.IssuingCompanyDMCC.Code())
	assert.Equal(t, "", domain.IssuingCompany("OTHER").Code())
	assert.False(t, domain.IssuingCompany("det").IsValid())

	for _, c := range domain.AllIssuingCompanies() {
		got, ok := domain.IssuingCompanyByCode(c.Code())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	assert.True(t, domain.InvoiceStatusDraft.CanTransitionTo(domain.InvoiceStatusIssued))
	assert.True(t, domain.InvoiceStatusDraft.CanTransitionTo(domain.InvoiceStatusCancelled))
	assert.False(t, domain.InvoiceStatusDraft.CanTransitionTo(domain.InvoiceStatusPaid))
	assert.True(t, domain.InvoiceStatusIssued.CanTransitionTo(domain.InvoiceStatusPaid))
	assert.False(t, domain.InvoiceStatusPaid.CanTransitionTo(domain.InvoiceStatusDraft))
	assert.True(t, domain.InvoiceStatusPaid.IsTerminal())
	assert.True(t, domain.InvoiceStatusCancelled.IsTerminal())
	assert.False(t, domain.InvoiceStatusDraft.IsTerminal())
}

func TestAnnualCodeExhaustedError_Message(t *testing.T) {
	err := &domain.AnnualCodeExhaustedError{Year: 2025}
	assert.Contains(t, err.Error(), "Annual code limit reached (999)")
	assert.Contains(t, err.Error(), "2025")
}
