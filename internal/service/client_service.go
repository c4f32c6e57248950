package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/mapper"
	"github.com/pms-portal/billing-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo    *repository.ClientRepository
	permanentRepo *repository.PermanentCodeRepository
	annualCodes   *AnnualCodeService
	db            *gorm.DB
	logger        *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	permanentRepo *repository.PermanentCodeRepository,
	annualCodes *AnnualCodeService,
	db *gorm.DB,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:    clientRepo,
		permanentRepo: permanentRepo,
		annualCodes:   annualCodes,
		db:            db,
		logger:        logger,
	}
}

// Create registers a client with a fresh permanent code and an annual code for
// the current year. Nothing is persisted if either code cannot be issued.
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	if !req.IssuingCompany.IsValid() {
		return nil, ErrInvalidIssuingCompany
	}

	client := &domain.Client{
		ClientName:            strings.TrimSpace(req.ClientName),
		IssuingCompany:        req.IssuingCompany,
		IsActive:              true,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Address:               req.Address,
		TaxRegistrationNumber: req.TaxRegistrationNumber,
		AnnualCodeYear:        s.annualCodes.CurrentYear(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := s.permanentRepo.NextCode(ctx, tx)
		if err != nil {
			return err
		}
		client.PermanentCode = code

		if err := s.clientRepo.Create(ctx, tx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		_, err = s.annualCodes.AssignCodeToClientTx(ctx, tx, client)
		return err
	})
	if err != nil {
		s.logger.Error("failed to create client",
			zap.String("client_name", client.ClientName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("permanent_code", client.PermanentCode),
		zap.Stringp("annual_code", client.AnnualCode))

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) GetByPermanentCode(ctx context.Context, code string) (*domain.ClientDTO, error) {
	if !domain.IsPermanentCodeFormat(code) {
		return nil, &domain.ValidationError{Field: "permanentCode", Value: code}
	}
	client, err := s.clientRepo.GetByPermanentCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// Update applies a partial update. Only fields present in req are written.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	var columns []string
	if req.ClientName != nil {
		name := strings.TrimSpace(*req.ClientName)
		if name == "" {
			return nil, fmt.Errorf("%w: clientName must not be blank", ErrInvalidInput)
		}
		client.ClientName = name
		columns = append(columns, "client_name")
	}
	if req.Email != nil {
		client.Email = *req.Email
		columns = append(columns, "email")
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
		columns = append(columns, "phone")
	}
	if req.Address != nil {
		client.Address = *req.Address
		columns = append(columns, "address")
	}
	if req.TaxRegistrationNumber != nil {
		client.TaxRegistrationNumber = *req.TaxRegistrationNumber
		columns = append(columns, "tax_registration_number")
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}

	if len(columns) > 0 {
		if err := s.clientRepo.UpdateColumns(ctx, client, columns...); err != nil {
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
		s.logger.Info("client updated",
			zap.String("client_id", client.ID.String()),
			zap.Strings("columns", columns))
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) List(ctx context.Context, page, pageSize int, filters *repository.ClientFilters) (*domain.PaginatedResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	clients, total, err := s.clientRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return newPaginatedResponse(mapper.ToClientDTOs(clients), total, page, pageSize), nil
}

// PermanentCodeCounter reports the lifetime permanent code counter
func (s *ClientService) PermanentCodeCounter(ctx context.Context) (*domain.PermanentCodeCounterDTO, error) {
	last, err := s.permanentRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPermanentCodeCounterDTO(last)
	return &dto, nil
}

// AdvancePermanentCounter moves the permanent counter forward to lastCode so
// codes already held by imported clients are never issued again. A value at or
// below the current counter leaves it unchanged.
func (s *ClientService) AdvancePermanentCounter(ctx context.Context, lastCode int) (*domain.PermanentCodeCounterDTO, error) {
	if lastCode < domain.PermanentCodeFloor || lastCode > domain.MaxPermanentCode {
		return nil, fmt.Errorf("%w: lastCode must be between %d and %d", ErrInvalidInput, domain.PermanentCodeFloor, domain.MaxPermanentCode)
	}

	before, err := s.permanentRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.permanentRepo.SetLastCode(ctx, lastCode); err != nil {
		return nil, err
	}

	if lastCode > before {
		s.logger.Info("permanent code counter advanced",
			zap.Int("from", before),
			zap.Int("to", lastCode))
	} else {
		s.logger.Warn("permanent code counter not moved backwards",
			zap.Int("current", before),
			zap.Int("requested", lastCode))
	}

	return s.PermanentCodeCounter(ctx)
}

// normalizePage clamps paging parameters to sane bounds
func normalizePage(page, pageSize int) (int, int) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return page, pageSize
}

func newPaginatedResponse(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
