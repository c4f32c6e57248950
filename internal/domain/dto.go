package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Client DTOs

type ClientDTO struct {
	ID                    uuid.UUID      `json:"id"`
	ClientName            string         `json:"clientName"`
	PermanentCode         string         `json:"permanentCode"`
	AnnualCode            *string        `json:"annualCode"`
	AnnualCodeYear        int            `json:"annualCodeYear"`
	IssuingCompany        IssuingCompany `json:"issuingCompany"`
	IsActive              bool           `json:"isActive"`
	Email                 string         `json:"email,omitempty"`
	Phone                 string         `json:"phone,omitempty"`
	Address               string         `json:"address,omitempty"`
	TaxRegistrationNumber string         `json:"taxRegistrationNumber,omitempty"`
	CreatedAt             string         `json:"createdAt"`
	UpdatedAt             string         `json:"updatedAt"`
}

type CreateClientRequest struct {
	ClientName            string         `json:"clientName" validate:"required,max=200"`
	IssuingCompany        IssuingCompany `json:"issuingCompany" validate:"required,oneof=DET FZCO DMCC"`
	Email                 string         `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone                 string         `json:"phone,omitempty" validate:"max=50"`
	Address               string         `json:"address,omitempty" validate:"max=500"`
	TaxRegistrationNumber string         `json:"taxRegistrationNumber,omitempty" validate:"max=50"`
}

// UpdateClientRequest is a partial update: only non-nil fields are applied.
// PermanentCode and IssuingCompany are immutable and deliberately absent.
type UpdateClientRequest struct {
	ClientName            *string `json:"clientName,omitempty" validate:"omitempty,min=1,max=200"`
	Email                 *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone                 *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address               *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TaxRegistrationNumber *string `json:"taxRegistrationNumber,omitempty" validate:"omitempty,max=50"`
	IsActive              *bool   `json:"isActive,omitempty"`
}

// IsEmpty reports whether the request carries no changes
func (r *UpdateClientRequest) IsEmpty() bool {
	return r.ClientName == nil && r.Email == nil && r.Phone == nil &&
		r.Address == nil && r.TaxRegistrationNumber == nil && r.IsActive == nil
}

// Annual code DTOs

type AnnualCodeDTO struct {
	ClientID   uuid.UUID `json:"clientId"`
	AnnualCode string    `json:"annualCode"`
	Year       int       `json:"year"`
}

type AnnualCodeStatusDTO struct {
	Year         int   `json:"year"`
	LastCode     int   `json:"lastCode"`
	Remaining    int   `json:"remaining"`
	NeedsReset   bool  `json:"needsReset"`
	ActiveCount  int64 `json:"activeClients"`
	MissingCodes int64 `json:"clientsWithoutCode"`
}

type AnnualCodeBatchResultDTO struct {
	Year     int `json:"year"`
	Assigned int `json:"assigned"`
}

// AnnualCodeSequenceDTO is one year's counter
type AnnualCodeSequenceDTO struct {
	Year      int `json:"year"`
	LastCode  int `json:"lastCode"`
	Remaining int `json:"remaining"`
}

// PermanentCodeCounterDTO describes the lifetime permanent code counter.
// NextCode is empty once the code space is used up.
type PermanentCodeCounterDTO struct {
	LastCode  int    `json:"lastCode"`
	NextCode  string `json:"nextCode"`
	Remaining int    `json:"remaining"`
}

// AdvancePermanentCounterRequest moves the permanent counter forward,
// typically after importing clients that already carry codes.
type AdvancePermanentCounterRequest struct {
	LastCode int `json:"lastCode" validate:"required,gte=10000,lte=99999"`
}

type AnnualCodeCheckDTO struct {
	Code     string `json:"code"`
	Year     int    `json:"year"`
	Valid    bool   `json:"valid"`
	Assigned bool   `json:"assigned"`
}

// Invoice DTOs

type InvoiceItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceDTO struct {
	ID             uuid.UUID        `json:"id"`
	ClientID       uuid.UUID        `json:"clientId"`
	ClientName     string           `json:"clientName,omitempty"`
	InvoiceNumber  string           `json:"invoiceNumber"`
	IssuingCompany IssuingCompany   `json:"issuingCompany"`
	InvoiceDate    string           `json:"invoiceDate"`
	DueDate        string           `json:"dueDate"`
	Currency       string           `json:"currency"`
	Status         InvoiceStatus    `json:"status"`
	VATRate        decimal.Decimal  `json:"vatRate"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	VATAmount      decimal.Decimal  `json:"vatAmount"`
	Total          decimal.Decimal  `json:"total"`
	Notes          string           `json:"notes,omitempty"`
	Items          []InvoiceItemDTO `json:"items"`
	CreatedAt      string           `json:"createdAt"`
}

type CreateInvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type CreateInvoiceRequest struct {
	ClientID uuid.UUID `json:"clientId" validate:"required"`
	// InvoiceDate in YYYY-MM-DD; defaults to today
	InvoiceDate string `json:"invoiceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// DueDate in YYYY-MM-DD; defaults to invoice date plus the configured payment terms
	DueDate  string                     `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency string                     `json:"currency,omitempty" validate:"omitempty,len=3"`
	VATRate  *decimal.Decimal           `json:"vatRate,omitempty"`
	Notes    string                     `json:"notes,omitempty" validate:"max=2000"`
	Items    []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required,oneof=draft issued paid cancelled"`
}

// DecodedInvoiceNumberDTO is the tooling view of a parsed invoice number
type DecodedInvoiceNumberDTO struct {
	InvoiceNumber  string          `json:"invoiceNumber"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	AnnualCode     string          `json:"annualCode"`
	ClientCode     string          `json:"clientCode"`
	CompanyCode    string          `json:"companyCode"`
	IssuingCompany *IssuingCompany `json:"issuingCompany"`
}
