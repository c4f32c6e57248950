package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// ClientFilters holds the optional list filters for clients
type ClientFilters struct {
	Search         string
	ActiveOnly     bool
	IssuingCompany *domain.IssuingCompany
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *ClientRepository) Create(ctx context.Context, tx *gorm.DB, client *domain.Client) error {
	return r.conn(ctx, tx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByIDForUpdate loads a client and holds its row lock until tx ends
func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.conn(ctx, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) GetByPermanentCode(ctx context.Context, code string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).Where("permanent_code = ?", code).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateColumns writes only the named columns of client
func (r *ClientRepository) UpdateColumns(ctx context.Context, client *domain.Client, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	columns = append(columns, "updated_at")
	return r.db.WithContext(ctx).Model(client).Select(columns).Updates(client).Error
}

func (r *ClientRepository) List(ctx context.Context, page, pageSize int, filters *ClientFilters) ([]domain.Client, int64, error) {
	var clients []domain.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Client{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(client_name) LIKE ? OR permanent_code LIKE ? OR annual_code LIKE ?",
				searchPattern, searchPattern, searchPattern)
		}
		if filters.ActiveOnly {
			query = query.Where("is_active = ?", true)
		}
		if filters.IssuingCompany != nil {
			query = query.Where("issuing_company = ?", *filters.IssuingCompany)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("client_name ASC").Find(&clients).Error

	return clients, total, err
}

// CountStale counts clients whose annual code belongs to a year before year
func (r *ClientRepository) CountStale(ctx context.Context, tx *gorm.DB, year int) (int64, error) {
	var count int64
	err := r.conn(ctx, tx).Model(&domain.Client{}).
		Where("annual_code_year < ?", year).
		Count(&count).Error
	return count, err
}

func (r *ClientRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// CountActiveWithoutCode counts active clients lacking a code for year
func (r *ClientRepository) CountActiveWithoutCode(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where("is_active = ?", true).
		Where("annual_code IS NULL OR annual_code_year < ?", year).
		Count(&count).Error
	return count, err
}

// ClearAnnualCodes nulls every client's annual code and stamps year on all rows
func (r *ClientRepository) ClearAnnualCodes(ctx context.Context, tx *gorm.DB, year int) (int64, error) {
	result := r.conn(ctx, tx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&domain.Client{}).
		Updates(map[string]interface{}{
			"annual_code":      nil,
			"annual_code_year": year,
		})
	return result.RowsAffected, result.Error
}

// ListNeedingAnnualCode returns active clients with no code for year, sorted by
// name. Rows stay locked until tx ends.
func (r *ClientRepository) ListNeedingAnnualCode(ctx context.Context, tx *gorm.DB, year int) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.conn(ctx, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("is_active = ?", true).
		Where("annual_code IS NULL OR annual_code_year < ?", year).
		Order("client_name ASC").
		Order("permanent_code ASC").
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) SetAnnualCode(ctx context.Context, tx *gorm.DB, id uuid.UUID, code string, year int) error {
	return r.conn(ctx, tx).Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"annual_code":      code,
			"annual_code_year": year,
		}).Error
}

// IsAnnualCodeTaken reports whether any client holds code in year
func (r *ClientRepository) IsAnnualCodeTaken(ctx context.Context, code string, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where("annual_code = ? AND annual_code_year = ?", code, year).
		Count(&count).Error
	return count > 0, err
}
