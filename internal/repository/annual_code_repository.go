package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pms-portal/billing-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnualCodeRepository handles the per-year annual code counter.
// The counter row is the single source of truth for the next code; nothing
// about it is cached in process memory.
type AnnualCodeRepository struct {
	db *gorm.DB
}

// NewAnnualCodeRepository creates a new AnnualCodeRepository
func NewAnnualCodeRepository(db *gorm.DB) *AnnualCodeRepository {
	return &AnnualCodeRepository{db: db}
}

// conn returns tx when the caller is inside a transaction, otherwise the base handle
func (r *AnnualCodeRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// ensureYear creates the counter row for year at zero if it does not exist yet
func (r *AnnualCodeRepository) ensureYear(db *gorm.DB, year int) error {
	seq := domain.AnnualCodeSequence{Year: year, LastCode: 0, UpdatedAt: time.Now()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return fmt.Errorf("failed to create annual code sequence: %w", err)
	}
	return nil
}

// NextCode atomically increments the counter for year and returns the new value.
// The increment and the read happen in one UPDATE ... RETURNING statement, so two
// concurrent callers can never observe the same value. Once the counter reaches
// 999 no row matches and AnnualCodeExhaustedError is returned; the counter is
// left untouched.
func (r *AnnualCodeRepository) NextCode(ctx context.Context, tx *gorm.DB, year int) (int, error) {
	db := r.conn(ctx, tx)
	if err := r.ensureYear(db, year); err != nil {
		return 0, err
	}

	var next int
	err := db.Raw(
		`UPDATE annual_code_sequences
		SET last_code = last_code + 1, updated_at = ?
		WHERE year = ? AND last_code < ?
		RETURNING last_code`,
		time.Now(), year, domain.MaxAnnualCode,
	).Row().Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.AnnualCodeExhaustedError{Year: year}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment annual code sequence: %w", err)
	}

	return next, nil
}

// LockYear returns the counter row for year with a row lock held until tx ends.
// The row is created at zero first if needed.
func (r *AnnualCodeRepository) LockYear(ctx context.Context, tx *gorm.DB, year int) (*domain.AnnualCodeSequence, error) {
	db := r.conn(ctx, tx)
	if err := r.ensureYear(db, year); err != nil {
		return nil, err
	}

	var seq domain.AnnualCodeSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&seq).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock annual code sequence: %w", err)
	}
	return &seq, nil
}

// SetLastCode overwrites the counter for year, creating the row if needed.
// Unlike NextCode this may move the counter down; it is used by resets.
func (r *AnnualCodeRepository) SetLastCode(ctx context.Context, tx *gorm.DB, year int, value int) error {
	db := r.conn(ctx, tx)
	if err := r.ensureYear(db, year); err != nil {
		return err
	}

	err := db.Model(&domain.AnnualCodeSequence{}).
		Where("year = ?", year).
		Updates(map[string]interface{}{
			"last_code":  value,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update annual code sequence: %w", err)
	}
	return nil
}

// GetCurrent returns the last issued code for year without incrementing.
// Returns 0 if nothing was issued yet.
func (r *AnnualCodeRepository) GetCurrent(ctx context.Context, year int) (int, error) {
	var seq domain.AnnualCodeSequence
	err := r.db.WithContext(ctx).Where("year = ?", year).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get annual code sequence: %w", err)
	}
	return seq.LastCode, nil
}

// ListSequences returns all yearly counters, newest first
func (r *AnnualCodeRepository) ListSequences(ctx context.Context) ([]domain.AnnualCodeSequence, error) {
	var sequences []domain.AnnualCodeSequence
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&sequences).Error
	return sequences, err
}
