package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IssuingCompany is the group entity an invoice is raised under
type IssuingCompany string

const (
	IssuingCompanyDET  IssuingCompany = "DET"
	IssuingCompanyFZCO IssuingCompany = "FZCO"
	IssuingCompanyDMCC IssuingCompany = "DMCC"
)

// issuingCompanyCodes is the fixed 2-digit code table embedded in invoice numbers.
var issuingCompanyCodes = map[IssuingCompany]string{
	IssuingCompanyDET:  "30",
	IssuingCompanyFZCO: "10",
	IssuingCompanyDMCC: "00",
}

// IsValid reports whether c is one of the known issuing companies
func (c IssuingCompany) IsValid() bool {
	_, ok := issuingCompanyCodes[c]
	return ok
}

// Code returns the 2-digit company code, or "" for an unknown company
func (c IssuingCompany) Code() string {
	return issuingCompanyCodes[c]
}

// IssuingCompanyByCode is the reverse lookup of Code.
func IssuingCompanyByCode(code string) (IssuingCompany, bool) {
	for company, c := range issuingCompanyCodes {
		if c == code {
			return company, true
		}
	}
	return "", false
}

// AllIssuingCompanies returns the issuing companies in a stable order
func AllIssuingCompanies() []IssuingCompany {
	return []IssuingCompany{IssuingCompanyDET, IssuingCompanyFZCO, IssuingCompanyDMCC}
}

// Client is a customer of the firm. PermanentCode never changes; AnnualCode is
// re-issued every calendar year and is only unique within AnnualCodeYear.
type Client struct {
	BaseModel
	ClientName            string         `gorm:"type:varchar(200);not null;index;column:client_name"`
	PermanentCode         string         `gorm:"type:varchar(5);not null;uniqueIndex;column:permanent_code"`
	AnnualCode            *string        `gorm:"type:varchar(3);column:annual_code;uniqueIndex:idx_clients_annual_code_year"`
	AnnualCodeYear        int            `gorm:"not null;column:annual_code_year;uniqueIndex:idx_clients_annual_code_year"`
	IssuingCompany        IssuingCompany `gorm:"type:varchar(10);not null;column:issuing_company"`
	IsActive              bool           `gorm:"not null;default:true;index;column:is_active"`
	Email                 string         `gorm:"type:varchar(255)"`
	Phone                 string         `gorm:"type:varchar(50)"`
	Address               string         `gorm:"type:varchar(500)"`
	TaxRegistrationNumber string         `gorm:"type:varchar(50);column:tax_registration_number"`
}

// HasAnnualCodeFor reports whether the client holds an annual code issued for year
func (c *Client) HasAnnualCodeFor(year int) bool {
	return c.AnnualCode != nil && *c.AnnualCode != "" && c.AnnualCodeYear == year
}

// AnnualCodeSequence tracks the last annual code handed out in a year.
type AnnualCodeSequence struct {
	Year      int       `gorm:"primaryKey;autoIncrement:false"`
	LastCode  int       `gorm:"not null;column:last_code"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AnnualCodeSequence) TableName() string {
	return "annual_code_sequences"
}

// PermanentCodeSequenceID is the id of the single permanent code counter row
const PermanentCodeSequenceID = 1

// PermanentCodeSequence is the lifetime counter behind client permanent codes.
type PermanentCodeSequence struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false"`
	LastCode  int       `gorm:"not null;column:last_code"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PermanentCodeSequence) TableName() string {
	return "permanent_code_sequences"
}

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// invoiceTransitions lists the statuses reachable from each status
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:  {InvoiceStatusIssued, InvoiceStatusCancelled},
	InvoiceStatusIssued: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransitionTo reports whether an invoice in status s may move to next
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

// Invoice is a bill raised against a client. InvoiceNumber is computed once at
// creation from the client's codes at that moment and is never recomputed.
type Invoice struct {
	BaseModel
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id"`
	Client         *Client         `gorm:"foreignKey:ClientID"`
	InvoiceNumber  string          `gorm:"type:varchar(30);not null;index;column:invoice_number"`
	IssuingCompany IssuingCompany  `gorm:"type:varchar(10);not null;column:issuing_company"`
	InvoiceDate    time.Time       `gorm:"not null;column:invoice_date"`
	DueDate        time.Time       `gorm:"not null;column:due_date"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'AED'"`
	Status         InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	VATRate        decimal.Decimal `gorm:"type:numeric(5,4);not null;column:vat_rate"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	VATAmount      decimal.Decimal `gorm:"type:numeric(15,2);not null;column:vat_amount"`
	Total          decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Notes          string          `gorm:"type:text"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem is a single billed line
type InvoiceItem struct {
	BaseModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index;column:invoice_id"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(15,2);not null;column:unit_price"`
	Amount      decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	SortOrder   int             `gorm:"not null;default:0;column:sort_order"`
}
