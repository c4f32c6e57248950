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

// PermanentCodeRepository issues the lifetime-unique 5-digit client codes.
// Codes are never handed out twice, even after a client is deactivated.
type PermanentCodeRepository struct {
	db *gorm.DB
}

// NewPermanentCodeRepository creates a new PermanentCodeRepository
func NewPermanentCodeRepository(db *gorm.DB) *PermanentCodeRepository {
	return &PermanentCodeRepository{db: db}
}

// NextCode atomically advances the counter and returns the new code, zero-padded.
// The first code issued is 10001.
func (r *PermanentCodeRepository) NextCode(ctx context.Context, tx *gorm.DB) (string, error) {
	db := r.db.WithContext(ctx)
	if tx != nil {
		db = tx.WithContext(ctx)
	}

	seed := domain.PermanentCodeSequence{
		ID:        domain.PermanentCodeSequenceID,
		LastCode:  domain.PermanentCodeFloor,
		UpdatedAt: time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", fmt.Errorf("failed to create permanent code sequence: %w", err)
	}

	var next int
	err := db.Raw(
		`UPDATE permanent_code_sequences
		SET last_code = last_code + 1, updated_at = ?
		WHERE id = ? AND last_code < ?
		RETURNING last_code`,
		time.Now(), domain.PermanentCodeSequenceID, domain.MaxPermanentCode,
	).Row().Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &domain.PermanentCodeExhaustedError{}
	}
	if err != nil {
		return "", fmt.Errorf("failed to increment permanent code sequence: %w", err)
	}

	return domain.FormatPermanentCode(next), nil
}

// GetCurrent returns the last issued permanent code value (10000 if none)
func (r *PermanentCodeRepository) GetCurrent(ctx context.Context) (int, error) {
	var seq domain.PermanentCodeSequence
	err := r.db.WithContext(ctx).Where("id = ?", domain.PermanentCodeSequenceID).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.PermanentCodeFloor, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get permanent code sequence: %w", err)
	}
	return seq.LastCode, nil
}

// SetLastCode moves the counter forward, e.g. after importing legacy clients.
// Values at or below the current counter are ignored so codes are never reused.
func (r *PermanentCodeRepository) SetLastCode(ctx context.Context, value int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.PermanentCodeSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", domain.PermanentCodeSequenceID).
			First(&seq)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			seq = domain.PermanentCodeSequence{
				ID:        domain.PermanentCodeSequenceID,
				LastCode:  max(value, domain.PermanentCodeFloor),
				UpdatedAt: time.Now(),
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create permanent code sequence: %w", err)
			}
			return nil
		} else if result.Error != nil {
			return fmt.Errorf("failed to get permanent code sequence: %w", result.Error)
		}

		if value > seq.LastCode {
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_code":  value,
				"updated_at": time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update permanent code sequence: %w", err)
			}
		}
		return nil
	})
}
