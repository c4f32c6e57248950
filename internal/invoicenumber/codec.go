// Package invoicenumber encodes and decodes the invoice display number.
//
// Format: {YY}{MM}{AAA}-{PPPPP}-{CC} PMS
// Example: 2503001-10001-10 PMS (March 2025, annual code 001, client 10001, FZCO)
//
// The number is printed on invoices and parsed back for lookups, so the
// layout is a cross-system contract and must stay byte-exact.
package invoicenumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pms-portal/billing-api/internal/domain"
)

// Suffix is appended to every encoded number
const Suffix = "PMS"

// The number keeps only the last two digits of the year, so dates outside
// this range cannot be told apart from dates inside it.
const (
	MinYear = 2000
	MaxYear = 2099
)

var numberPattern = regexp.MustCompile(`^(\d{2})(\d{2})(\d{3})-(\d{5})-(\d{2})$`)

// Components are the fields recovered from an invoice number.
// Year assumes the 2000s; there are no earlier invoices.
type Components struct {
	Year        int
	Month       int
	AnnualCode  string
	ClientCode  string
	CompanyCode string
}

// ValidateDate rejects dates whose year the number cannot carry
func ValidateDate(date time.Time) error {
	if y := date.Year(); y < MinYear || y > MaxYear {
		return &domain.ValidationError{Field: "date", Value: date.Format("2006-01-02")}
	}
	return nil
}

// Encode builds the invoice number for a client's codes on the given date.
func Encode(permanentCode, annualCode string, company domain.IssuingCompany, date time.Time) (string, error) {
	if err := ValidateDate(date); err != nil {
		return "", err
	}
	if !domain.IsPermanentCodeFormat(permanentCode) {
		return "", &domain.ValidationError{Field: "permanentCode", Value: permanentCode}
	}
	if !domain.IsAnnualCodeFormat(annualCode) {
		return "", &domain.ValidationError{Field: "annualCode", Value: annualCode}
	}
	companyCode := company.Code()
	if companyCode == "" {
		return "", &domain.ValidationError{Field: "issuingCompany", Value: string(company)}
	}

	return fmt.Sprintf("%02d%02d%s-%s-%s %s",
		date.Year()%100,
		int(date.Month()),
		annualCode,
		permanentCode,
		companyCode,
		Suffix,
	), nil
}

// Decode parses an invoice number, with or without the trailing " PMS".
func Decode(invoiceNumber string) (*Components, error) {
	body := strings.TrimSuffix(invoiceNumber, " "+Suffix)

	m := numberPattern.FindStringSubmatch(body)
	if m == nil {
		return nil, &domain.InvalidInvoiceNumberFormatError{Value: invoiceNumber}
	}

	// The pattern guarantees the digit groups parse
	yy, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])

	return &Components{
		Year:        MinYear + yy,
		Month:       mm,
		AnnualCode:  m[3],
		ClientCode:  m[4],
		CompanyCode: m[5],
	}, nil
}

// IssuingCompanyForCode maps a 2-digit company code back to its company.
// Unknown codes return false rather than an error; the result is informational.
func IssuingCompanyForCode(companyCode string) (domain.IssuingCompany, bool) {
	return domain.IssuingCompanyByCode(companyCode)
}

// IsValid reports whether invoiceNumber decodes
func IsValid(invoiceNumber string) bool {
	_, err := Decode(invoiceNumber)
	return err == nil
}
