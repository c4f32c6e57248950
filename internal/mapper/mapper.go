package mapper

import (
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/invoicenumber"
	"github.com/samber/lo"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:                    client.ID,
		ClientName:            client.ClientName,
		PermanentCode:         client.PermanentCode,
		AnnualCode:            client.AnnualCode,
		AnnualCodeYear:        client.AnnualCodeYear,
		IssuingCompany:        client.IssuingCompany,
		IsActive:              client.IsActive,
		Email:                 client.Email,
		Phone:                 client.Phone,
		Address:               client.Address,
		TaxRegistrationNumber: client.TaxRegistrationNumber,
		CreatedAt:             client.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:             client.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// ToClientDTOs converts a slice of clients
func ToClientDTOs(clients []domain.Client) []domain.ClientDTO {
	return lo.Map(clients, func(c domain.Client, _ int) domain.ClientDTO {
		return ToClientDTO(&c)
	})
}

// ToInvoiceItemDTO converts InvoiceItem to InvoiceItemDTO
func ToInvoiceItemDTO(item *domain.InvoiceItem) domain.InvoiceItemDTO {
	return domain.InvoiceItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:             invoice.ID,
		ClientID:       invoice.ClientID,
		InvoiceNumber:  invoice.InvoiceNumber,
		IssuingCompany: invoice.IssuingCompany,
		InvoiceDate:    invoice.InvoiceDate.UTC().Format(dateLayout),
		DueDate:        invoice.DueDate.UTC().Format(dateLayout),
		Currency:       invoice.Currency,
		Status:         invoice.Status,
		VATRate:        invoice.VATRate,
		Subtotal:       invoice.Subtotal,
		VATAmount:      invoice.VATAmount,
		Total:          invoice.Total,
		Notes:          invoice.Notes,
		Items: lo.Map(invoice.Items, func(item domain.InvoiceItem, _ int) domain.InvoiceItemDTO {
			return ToInvoiceItemDTO(&item)
		}),
		CreatedAt: invoice.CreatedAt.UTC().Format(timestampLayout),
	}

	if invoice.Client != nil {
		dto.ClientName = invoice.Client.ClientName
	}

	return dto
}

// ToInvoiceDTOs converts a slice of invoices
func ToInvoiceDTOs(invoices []domain.Invoice) []domain.InvoiceDTO {
	return lo.Map(invoices, func(inv domain.Invoice, _ int) domain.InvoiceDTO {
		return ToInvoiceDTO(&inv)
	})
}

// ToDecodedInvoiceNumberDTO converts decoded components to their API view
func ToDecodedInvoiceNumberDTO(number string, c *invoicenumber.Components) domain.DecodedInvoiceNumberDTO {
	dto := domain.DecodedInvoiceNumberDTO{
		InvoiceNumber: number,
		Year:          c.Year,
		Month:         c.Month,
		AnnualCode:    c.AnnualCode,
		ClientCode:    c.ClientCode,
		CompanyCode:   c.CompanyCode,
	}
	if company, ok := invoicenumber.IssuingCompanyForCode(c.CompanyCode); ok {
		dto.IssuingCompany = &company
	}
	return dto
}

// ToAnnualCodeSequenceDTOs converts yearly counters
func ToAnnualCodeSequenceDTOs(sequences []domain.AnnualCodeSequence) []domain.AnnualCodeSequenceDTO {
	return lo.Map(sequences, func(seq domain.AnnualCodeSequence, _ int) domain.AnnualCodeSequenceDTO {
		return domain.AnnualCodeSequenceDTO{
			Year:      seq.Year,
			LastCode:  seq.LastCode,
			Remaining: domain.MaxAnnualCode - seq.LastCode,
		}
	})
}

// ToPermanentCodeCounterDTO describes the permanent counter at lastCode
func ToPermanentCodeCounterDTO(lastCode int) domain.PermanentCodeCounterDTO {
	dto := domain.PermanentCodeCounterDTO{
		LastCode:  lastCode,
		Remaining: domain.MaxPermanentCode - lastCode,
	}
	if lastCode < domain.MaxPermanentCode {
		dto.NextCode = domain.FormatPermanentCode(lastCode + 1)
	}
	return dto
}
