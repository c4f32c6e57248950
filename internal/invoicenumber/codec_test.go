package invoicenumber_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/invoicenumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestEncode_Format(t *testing.T) {
	tests := []struct {
		name          string
		permanentCode string
		annualCode    string
		company       domain.IssuingCompany
		date          time.Time
		expected      string
	}{
		{
			name:          "FZCO march 2025",
			permanentCode: "10001",
			annualCode:    "001",
			company:       domain.IssuingCompanyFZCO,
			date:          date(2025, time.March, 15),
			expected:      "2503001-10001-10 PMS",
		},
		{
			name:          "DET december 2024",
			permanentCode: "00042",
			annualCode:    "999",
			company:       domain.IssuingCompanyDET,
			date:          date(2024, time.December, 1),
			expected:      "2412999-00042-30 PMS",
		},
		{
			name:          "DMCC january 2030",
			permanentCode: "54321",
			annualCode:    "120",
			company:       domain.IssuingCompanyDMCC,
			date:          date(2030, time.January, 31),
			expected:      "3001120-54321-00 PMS",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := invoicenumber.Encode(tc.permanentCode, tc.annualCode, tc.company, tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEncode_PrefixComposition(t *testing.T) {
	got, err := invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, date(2025, time.March, 15))
	require.NoError(t, err)

	// YY + MM + AAA form the 7 characters before the first dash
	assert.Equal(t, "2503001", got[:7])
	assert.Equal(t, byte('-'), got[7])
	assert.Equal(t, "10001", got[8:13])
	assert.Equal(t, "-10 PMS", got[13:])
}

func TestEncode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		permanentCode string
		annualCode    string
		company       domain.IssuingCompany
		field         string
	}{
		{"short permanent code", "1001", "001", domain.IssuingCompanyDET, "permanentCode"},
		{"long permanent code", "100011", "001", domain.IssuingCompanyDET, "permanentCode"},
		{"non-numeric permanent code", "1000a", "001", domain.IssuingCompanyDET, "permanentCode"},
		{"short annual code", "10001", "01", domain.IssuingCompanyDET, "annualCode"},
		{"long annual code", "10001", "0001", domain.IssuingCompanyDET, "annualCode"},
		{"empty annual code", "10001", "", domain.IssuingCompanyDET, "annualCode"},
		{"unknown company", "10001", "001", domain.IssuingCompany("ACME"), "issuingCompany"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invoicenumber.Encode(tc.permanentCode, tc.annualCode, tc.company, date(2025, time.March, 1))
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestEncode_YearOutsideCentury(t *testing.T) {
	for _, d := range []time.Time{
		date(2125, time.March, 15),
		date(1999, time.December, 31),
		date(2100, time.January, 1),
	} {
		t.Run(d.Format("2006-01-02"), func(t *testing.T) {
			_, err := invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, d)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
			assert.Equal(t, "date", ve.Field)
			assert.Equal(t, d.Format("2006-01-02"), ve.Value)
		})
	}

	for _, d := range []time.Time{date(2000, time.January, 1), date(2099, time.December, 31)} {
		number, err := invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, d)
		require.NoError(t, err)
		decoded, err := invoicenumber.Decode(number)
		require.NoError(t, err)
		assert.Equal(t, d.Year(), decoded.Year)
	}
}

func TestDecode(t *testing.T) {
	t.Run("with suffix", func(t *testing.T) {
		c, err := invoicenumber.Decode("2503001-10001-10 PMS")
		require.NoError(t, err)
		assert.Equal(t, 2025, c.Year)
		assert.Equal(t, 3, c.Month)
		assert.Equal(t, "001", c.AnnualCode)
		assert.Equal(t, "10001", c.ClientCode)
		assert.Equal(t, "10", c.CompanyCode)
	})

	t.Run("without suffix", func(t *testing.T) {
		c, err := invoicenumber.Decode("2412999-00042-30")
		require.NoError(t, err)
		assert.Equal(t, 2024, c.Year)
		assert.Equal(t, 12, c.Month)
		assert.Equal(t, "999", c.AnnualCode)
		assert.Equal(t, "00042", c.ClientCode)
		assert.Equal(t, "30", c.CompanyCode)
	})
}

func TestDecode_RejectsMalformed(t *testing.T) {
	inputs := []string{
		"abc",
		"25031-10001-10",
		"250301100011",
		"2503001-10001-10 PMS ",
		"2503001-10001-1",
		"2503001-1000-10",
		"2503001_10001_10",
		" 2503001-10001-10",
		"2503001-10001-10 XYZ",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := invoicenumber.Decode(in)
			require.Error(t, err)

			var fe *domain.InvalidInvoiceNumberFormatError
			require.True(t, errors.As(err, &fe), "expected InvalidInvoiceNumberFormatError, got %T", err)
			assert.Equal(t, in, fe.Value)
			assert.False(t, invoicenumber.IsValid(in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	permanentCodes := []string{"00000", "10001", "54321", "99999"}
	annualCodes := []string{"001", "042", "999"}
	dates := []time.Time{
		date(2024, time.January, 1),
		date(2025, time.March, 15),
		date(2031, time.December, 31),
	}

	for _, company := range domain.AllIssuingCompanies() {
		for _, pc := range permanentCodes {
			for _, ac := range annualCodes {
				for _, d := range dates {
					number, err := invoicenumber.Encode(pc, ac, company, d)
					require.NoError(t, err)
					assert.True(t, invoicenumber.IsValid(number))

					c, err := invoicenumber.Decode(number)
					require.NoError(t, err)
					assert.Equal(t, ac, c.AnnualCode)
					assert.Equal(t, pc, c.ClientCode)
					assert.Equal(t, d.Year(), c.Year)
					assert.Equal(t, int(d.Month()), c.Month)

					got, ok := invoicenumber.IssuingCompanyForCode(c.CompanyCode)
					require.True(t, ok)
					assert.Equal(t, company, got)
				}
			}
		}
	}
}

func TestEncode_Injective(t *testing.T) {
	base, err := invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, date(2025, time.March, 15))
	require.NoError(t, err)

	variants := map[string]func() (string, error){
		"month": func() (string, error) {
			return invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, date(2025, time.April, 15))
		},
		"year": func() (string, error) {
			return invoicenumber.Encode("10001", "001", domain.IssuingCompanyFZCO, date(2026, time.March, 15))
		},
		"annual code": func() (string, error) {
			return invoicenumber.Encode("10001", "002", domain.IssuingCompanyFZCO, date(2025, time.March, 15))
		},
		"permanent code": func() (string, error) {
			return invoicenumber.Encode("10002", "001", domain.IssuingCompanyFZCO, date(2025, time.March, 15))
		},
		"company": func() (string, error) {
			return invoicenumber.Encode("10001", "001", domain.IssuingCompanyDMCC, date(2025, time.March, 15))
		},
	}

	seen := map[string]string{base: "base"}
	for name, fn := range variants {
		got, err := fn()
		require.NoError(t, err)
		prev, dup := seen[got]
		assert.False(t, dup, "%s variant collides with %s: %s", name, prev, got)
		seen[got] = name
	}
}

func TestIssuingCompanyForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected domain.IssuingCompany
		ok       bool
	}{
		{"30", domain.IssuingCompanyDET, true},
		{"10", domain.IssuingCompanyFZCO, true},
		{"00", domain.IssuingCompanyDMCC, true},
		{"20", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := invoicenumber.IssuingCompanyForCode(tc.code)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
