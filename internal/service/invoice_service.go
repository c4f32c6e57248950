package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/invoicenumber"
	"github.com/pms-portal/billing-api/internal/mapper"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	clientRepo  *repository.ClientRepository
	annualCodes *AnnualCodeService
	settings    config.InvoicingConfig
	db          *gorm.DB
	logger      *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	clientRepo *repository.ClientRepository,
	annualCodes *AnnualCodeService,
	settings config.InvoicingConfig,
	db *gorm.DB,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		annualCodes: annualCodes,
		settings:    settings,
		db:          db,
		logger:      logger,
	}
}

// Create raises a draft invoice for an active client. If the client has no
// annual code for the current year one is allocated in the same transaction.
// The invoice number is fixed here and never recomputed, even after the client's
// annual code changes in a later year.
func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoiceDate, dueDate, err := s.resolveDates(req)
	if err != nil {
		return nil, err
	}

	vatRate := decimal.NewFromFloat(s.settings.DefaultVATRate)
	if req.VATRate != nil {
		vatRate = *req.VATRate
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: vatRate must be between 0 and 1", ErrInvalidInput)
	}

	currency := s.settings.Currency
	if req.Currency != "" {
		currency = strings.ToUpper(req.Currency)
	}

	items, subtotal, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	vatAmount := subtotal.Mul(vatRate).Round(2)

	invoice := &domain.Invoice{
		ClientID:    req.ClientID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Currency:    currency,
		Status:      domain.InvoiceStatusDraft,
		VATRate:     vatRate,
		Subtotal:    subtotal,
		VATAmount:   vatAmount,
		Total:       subtotal.Add(vatAmount),
		Notes:       req.Notes,
		Items:       items,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.GetByIDForUpdate(ctx, tx, req.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("failed to get client: %w", err)
		}
		if !client.IsActive {
			return ErrClientInactive
		}

		annualCode, err := s.annualCodes.AssignCodeToClientTx(ctx, tx, client)
		if err != nil {
			return err
		}

		number, err := invoicenumber.Encode(client.PermanentCode, annualCode, client.IssuingCompany, invoiceDate)
		if err != nil {
			return err
		}

		invoice.InvoiceNumber = number
		invoice.IssuingCompany = client.IssuingCompany
		invoice.Client = client

		if err := s.invoiceRepo.Create(ctx, tx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create invoice",
			zap.String("client_id", req.ClientID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("client_id", invoice.ClientID.String()),
		zap.String("total", invoice.Total.StringFixed(2)))

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) resolveDates(req *domain.CreateInvoiceRequest) (time.Time, time.Time, error) {
	now := s.annualCodes.Now()
	invoiceDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.InvoiceDate != "" {
		d, err := time.Parse(dateLayout, req.InvoiceDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invoiceDate must be YYYY-MM-DD", ErrInvalidInput)
		}
		invoiceDate = d
	}
	if err := invoicenumber.ValidateDate(invoiceDate); err != nil {
		return time.Time{}, time.Time{}, err
	}

	dueDate := invoiceDate.AddDate(0, 0, s.settings.PaymentTermsDays)
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: dueDate must be YYYY-MM-DD", ErrInvalidInput)
		}
		dueDate = d
	}
	if dueDate.Before(invoiceDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dueDate is before invoiceDate", ErrInvalidInput)
	}

	return invoiceDate, dueDate, nil
}

// buildItems computes line amounts rounded to 2 places and their sum
func buildItems(reqs []domain.CreateInvoiceItemRequest) ([]domain.InvoiceItem, decimal.Decimal, error) {
	if len(reqs) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	items := make([]domain.InvoiceItem, 0, len(reqs))
	subtotal := decimal.Zero
	for i, r := range reqs {
		if !r.Quantity.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("%w: items[%d].quantity must be positive", ErrInvalidInput, i)
		}
		if r.UnitPrice.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: items[%d].unitPrice must not be negative", ErrInvalidInput, i)
		}
		amount := r.Quantity.Mul(r.UnitPrice).Round(2)
		items = append(items, domain.InvoiceItem{
			Description: strings.TrimSpace(r.Description),
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      amount,
			SortOrder:   i,
		})
		subtotal = subtotal.Add(amount)
	}
	return items, subtotal, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters *repository.InvoiceFilters) (*domain.PaginatedResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	invoices, total, err := s.invoiceRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return newPaginatedResponse(mapper.ToInvoiceDTOs(invoices), total, page, pageSize), nil
}

// ListByClient lists a client's invoices, newest first
func (s *InvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return s.List(ctx, page, pageSize, &repository.InvoiceFilters{ClientID: &clientID})
}

// FindByNumber returns the invoices carrying number. The trailing " PMS" is
// optional. Malformed numbers are rejected before the database is queried.
func (s *InvoiceService) FindByNumber(ctx context.Context, number string) ([]domain.InvoiceDTO, error) {
	number = strings.TrimSpace(number)
	if _, err := invoicenumber.Decode(number); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(number, " "+invoicenumber.Suffix) {
		number = number + " " + invoicenumber.Suffix
	}

	invoices, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}
	if len(invoices) > 1 {
		s.logger.Warn("invoice number shared by several invoices",
			zap.String("invoice_number", number),
			zap.Int("count", len(invoices)))
	}
	return mapper.ToInvoiceDTOs(invoices), nil
}

// UpdateStatus moves an invoice along its lifecycle
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if !invoice.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, invoice.Status, status)
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.logger.Info("invoice status changed",
		zap.String("invoice_id", id.String()),
		zap.String("from", string(invoice.Status)),
		zap.String("to", string(status)))

	invoice.Status = status
	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// DecodeNumber splits an invoice number into its parts
func (s *InvoiceService) DecodeNumber(number string) (*domain.DecodedInvoiceNumberDTO, error) {
	number = strings.TrimSpace(number)
	components, err := invoicenumber.Decode(number)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDecodedInvoiceNumberDTO(number, components)
	return &dto, nil
}
