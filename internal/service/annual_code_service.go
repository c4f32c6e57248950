package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/mapper"
	"github.com/pms-portal/billing-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnnualCodeService allocates the 3-digit per-year client codes.
//
// Two allocation policies exist side by side:
//   - incremental (GetNextAnnualCode, AssignCodeToClient): arrival order, the
//     next counter value goes to whoever asks next
//   - batch (AssignAllCodes, BulkAssignForNewYear): alphabetical by client name
//
// Every multi-step mutation runs in a single database transaction and the
// counter is advanced with an atomic increment-and-fetch, so the service keeps
// no allocation state in memory and is safe across multiple instances.
type AnnualCodeService struct {
	clientRepo *repository.ClientRepository
	seqRepo    *repository.AnnualCodeRepository
	db         *gorm.DB
	logger     *zap.Logger
	now        func() time.Time
}

// NewAnnualCodeService creates a new AnnualCodeService
func NewAnnualCodeService(
	clientRepo *repository.ClientRepository,
	seqRepo *repository.AnnualCodeRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *AnnualCodeService {
	return &AnnualCodeService{
		clientRepo: clientRepo,
		seqRepo:    seqRepo,
		db:         db,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the time source used to determine the current year
func (s *AnnualCodeService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the current time according to the service clock
func (s *AnnualCodeService) Now() time.Time {
	return s.now()
}

// CurrentYear returns the calendar year annual codes are currently issued for
func (s *AnnualCodeService) CurrentYear() int {
	return s.now().Year()
}

// NeedsReset reports whether any client still carries a code from an earlier year.
func (s *AnnualCodeService) NeedsReset(ctx context.Context) (bool, error) {
	stale, err := s.clientRepo.CountStale(ctx, nil, s.CurrentYear())
	if err != nil {
		return false, fmt.Errorf("failed to count stale annual codes: %w", err)
	}
	return stale > 0, nil
}

// ResetAllCodes clears every client's annual code, stamps the current year on
// all clients and sets the year's counter back to 0. All or nothing.
func (s *AnnualCodeService) ResetAllCodes(ctx context.Context) error {
	year := s.CurrentYear()

	var cleared int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cleared, err = s.resetTx(ctx, tx, year)
		return err
	})
	if err != nil {
		s.logger.Error("failed to reset annual codes", zap.Int("year", year), zap.Error(err))
		return err
	}

	s.logger.Info("annual codes reset",
		zap.Int("year", year),
		zap.Int64("clients", cleared))
	return nil
}

// AssignAllCodes gives a code to every active client that has none for the
// current year, in ascending order of client name. Numbering continues from the
// year's counter, so after ResetAllCodes the clients get 001, 002, ... in order.
// When codes were already issued this year it does not restart at 001 and the
// counter ends at last+n rather than n, so existing codes are never reissued.
// Returns the number of clients that received a code.
func (s *AnnualCodeService) AssignAllCodes(ctx context.Context) (int, error) {
	year := s.CurrentYear()

	var assigned int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		assigned, err = s.assignAllTx(ctx, tx, year)
		return err
	})
	if err != nil {
		s.logger.Error("failed to assign annual codes", zap.Int("year", year), zap.Error(err))
		return 0, err
	}

	s.logger.Info("annual codes assigned",
		zap.Int("year", year),
		zap.Int("assigned", assigned))
	return assigned, nil
}

// GetNextAnnualCode advances the current year's counter and returns the new
// code zero-padded to 3 digits. Returns AnnualCodeExhaustedError past 999.
func (s *AnnualCodeService) GetNextAnnualCode(ctx context.Context) (string, error) {
	return s.nextCode(ctx, nil, s.CurrentYear())
}

func (s *AnnualCodeService) nextCode(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	next, err := s.seqRepo.NextCode(ctx, tx, year)
	if err != nil {
		var exhausted *domain.AnnualCodeExhaustedError
		if errors.As(err, &exhausted) {
			s.logger.Error("annual code space exhausted", zap.Int("year", year))
		}
		return "", err
	}
	return domain.FormatAnnualCode(next), nil
}

// AssignCodeToClient returns the client's code for the current year, allocating
// one if it has none. Calling it again in the same year returns the same code
// without touching the counter.
func (s *AnnualCodeService) AssignCodeToClient(ctx context.Context, clientID uuid.UUID) (string, error) {
	var code string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.GetByIDForUpdate(ctx, tx, clientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("failed to get client: %w", err)
		}
		code, err = s.AssignCodeToClientTx(ctx, tx, client)
		return err
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// AssignCodeToClientTx is AssignCodeToClient for a client already loaded and
// locked inside the caller's transaction. client is updated in place.
func (s *AnnualCodeService) AssignCodeToClientTx(ctx context.Context, tx *gorm.DB, client *domain.Client) (string, error) {
	year := s.CurrentYear()
	if client.HasAnnualCodeFor(year) {
		return *client.AnnualCode, nil
	}

	code, err := s.nextCode(ctx, tx, year)
	if err != nil {
		return "", err
	}

	if err := s.clientRepo.SetAnnualCode(ctx, tx, client.ID, code, year); err != nil {
		return "", fmt.Errorf("failed to store annual code: %w", err)
	}
	client.AnnualCode = &code
	client.AnnualCodeYear = year

	s.logger.Info("annual code assigned",
		zap.String("client_id", client.ID.String()),
		zap.String("permanent_code", client.PermanentCode),
		zap.String("annual_code", code),
		zap.Int("year", year))

	return code, nil
}

// BulkAssignForNewYear is the January rollover. If no client carries a code from
// an earlier year it does nothing. Otherwise it clears all codes and re-derives
// them for every active client alphabetically, in one transaction.
func (s *AnnualCodeService) BulkAssignForNewYear(ctx context.Context) (int, error) {
	needsReset, err := s.NeedsReset(ctx)
	if err != nil {
		return 0, err
	}
	if !needsReset {
		s.logger.Debug("annual code rollover not needed", zap.Int("year", s.CurrentYear()))
		return 0, nil
	}

	year := s.CurrentYear()
	var assigned int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		assigned, err = s.BulkAssignForNewYearTx(ctx, tx)
		return err
	})
	if err != nil {
		s.logger.Error("annual code rollover failed", zap.Int("year", year), zap.Error(err))
		return 0, err
	}

	s.logger.Info("annual code rollover completed",
		zap.Int("year", year),
		zap.Int("assigned", assigned))
	return assigned, nil
}

// BulkAssignForNewYearTx runs the rollover inside tx. The year's counter row is
// locked before the stale check, so when several instances fire at once only
// the first resets; the others find nothing stale and return 0.
func (s *AnnualCodeService) BulkAssignForNewYearTx(ctx context.Context, tx *gorm.DB) (int, error) {
	year := s.CurrentYear()

	if _, err := s.seqRepo.LockYear(ctx, tx, year); err != nil {
		return 0, err
	}
	stale, err := s.clientRepo.CountStale(ctx, tx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to count stale annual codes: %w", err)
	}
	if stale == 0 {
		s.logger.Info("annual code rollover already done", zap.Int("year", year))
		return 0, nil
	}

	if _, err := s.resetTx(ctx, tx, year); err != nil {
		return 0, err
	}
	return s.assignAllTx(ctx, tx, year)
}

// IsCodeAssigned reports whether code is held by a client in year (default: the
// current year). The same code in different years is not a collision.
func (s *AnnualCodeService) IsCodeAssigned(ctx context.Context, code string, year *int) (bool, error) {
	y := s.CurrentYear()
	if year != nil {
		y = *year
	}
	taken, err := s.clientRepo.IsAnnualCodeTaken(ctx, code, y)
	if err != nil {
		return false, fmt.Errorf("failed to check annual code: %w", err)
	}
	return taken, nil
}

// IsValidCode reports whether code could ever have been issued ("001".."999")
func (s *AnnualCodeService) IsValidCode(code string) bool {
	return domain.IsValidAnnualCode(code)
}

// Status summarizes the current year's allocation state
func (s *AnnualCodeService) Status(ctx context.Context) (*domain.AnnualCodeStatusDTO, error) {
	year := s.CurrentYear()

	last, err := s.seqRepo.GetCurrent(ctx, year)
	if err != nil {
		return nil, err
	}
	needsReset, err := s.NeedsReset(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.clientRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}
	missing, err := s.clientRepo.CountActiveWithoutCode(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients without code: %w", err)
	}

	return &domain.AnnualCodeStatusDTO{
		Year:         year,
		LastCode:     last,
		Remaining:    domain.MaxAnnualCode - last,
		NeedsReset:   needsReset,
		ActiveCount:  active,
		MissingCodes: missing,
	}, nil
}

// History lists every year's counter, newest first
func (s *AnnualCodeService) History(ctx context.Context) ([]domain.AnnualCodeSequenceDTO, error) {
	sequences, err := s.seqRepo.ListSequences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list annual code sequences: %w", err)
	}
	return mapper.ToAnnualCodeSequenceDTOs(sequences), nil
}

func (s *AnnualCodeService) resetTx(ctx context.Context, tx *gorm.DB, year int) (int64, error) {
	cleared, err := s.clientRepo.ClearAnnualCodes(ctx, tx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to clear annual codes: %w", err)
	}
	if err := s.seqRepo.SetLastCode(ctx, tx, year, 0); err != nil {
		return 0, err
	}
	return cleared, nil
}

func (s *AnnualCodeService) assignAllTx(ctx context.Context, tx *gorm.DB, year int) (int, error) {
	seq, err := s.seqRepo.LockYear(ctx, tx, year)
	if err != nil {
		return 0, err
	}

	clients, err := s.clientRepo.ListNeedingAnnualCode(ctx, tx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to list clients needing annual code: %w", err)
	}
	if len(clients) == 0 {
		return 0, nil
	}

	if seq.LastCode+len(clients) > domain.MaxAnnualCode {
		s.logger.Error("annual code space exhausted",
			zap.Int("year", year),
			zap.Int("last_code", seq.LastCode),
			zap.Int("requested", len(clients)))
		return 0, &domain.AnnualCodeExhaustedError{Year: year}
	}

	next := seq.LastCode
	for _, client := range clients {
		next++
		if err := s.clientRepo.SetAnnualCode(ctx, tx, client.ID, domain.FormatAnnualCode(next), year); err != nil {
			return 0, fmt.Errorf("failed to store annual code for client %s: %w", client.ID, err)
		}
	}

	if err := s.seqRepo.SetLastCode(ctx, tx, year, next); err != nil {
		return 0, err
	}

	return len(clients), nil
}
