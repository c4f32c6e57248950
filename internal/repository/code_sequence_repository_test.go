package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAnnualCodeRepository_NextCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAnnualCodeRepository(db)
	ctx := context.Background()

	current, err := repo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, current)

	for want := 1; want <= 3; want++ {
		got, err := repo.NextCode(ctx, nil, 2025)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.NextCode(ctx, nil, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, other)

	seqs, err := repo.ListSequences(ctx)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, 2026, seqs[0].Year)
	assert.Equal(t, 3, seqs[1].LastCode)
}

func TestAnnualCodeRepository_NextCode_StopsAt999(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAnnualCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetLastCode(ctx, nil, 2025, 999))

	_, err := repo.NextCode(ctx, nil, 2025)
	var exhausted *domain.AnnualCodeExhaustedError
	require.True(t, errors.As(err, &exhausted))

	current, err := repo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 999, current)
}

func TestAnnualCodeRepository_RollbackUndoesIncrement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAnnualCodeRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.NextCode(ctx, tx, 2025)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	current, err := repo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestPermanentCodeRepository_NextCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPermanentCodeRepository(db)
	ctx := context.Background()

	first, err := repo.NextCode(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "10001", first)

	second, err := repo.NextCode(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "10002", second)
}

func TestPermanentCodeRepository_SetLastCode_ForwardOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPermanentCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetLastCode(ctx, 12000))
	next, err := repo.NextCode(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "12001", next)

	// moving backwards is ignored so codes are never reissued
	require.NoError(t, repo.SetLastCode(ctx, 11000))
	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12001, current)
}

func TestPermanentCodeRepository_Exhausted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPermanentCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetLastCode(ctx, domain.MaxPermanentCode))
	_, err := repo.NextCode(ctx, nil)
	var exhausted *domain.PermanentCodeExhaustedError
	assert.True(t, errors.As(err, &exhausted))
}
