package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/service"
	"github.com/pms-portal/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func reload(t *testing.T, f *fixture, id uuid.UUID) *domain.Client {
	t.Helper()
	c, err := f.clientRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func TestAnnualCodeService_GetNextAnnualCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, want := range []string{"001", "002", "003"} {
		code, err := f.annual.GetNextAnnualCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, code)
	}

	last, err := f.annualRepo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestAnnualCodeService_GetNextAnnualCode_Exhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 998))

	code, err := f.annual.GetNextAnnualCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "999", code)

	_, err = f.annual.GetNextAnnualCode(ctx)
	var exhausted *domain.AnnualCodeExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 2025, exhausted.Year)
	assert.Contains(t, err.Error(), "999")

	// the counter never wraps or advances past the limit
	last, err := f.annualRepo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 999, last)
}

func TestAnnualCodeService_GetNextAnnualCode_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 20
	codes := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code, err := f.annual.GetNextAnnualCode(ctx)
			assert.NoError(t, err)
			codes[i] = code
		}(i)
	}
	wg.Wait()

	sort.Strings(codes)
	for i, code := range codes {
		assert.Equal(t, domain.FormatAnnualCode(i+1), code)
	}
}

func TestAnnualCodeService_CountersAreIsolatedPerYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setClock(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))
	_, err := f.annual.GetNextAnnualCode(ctx)
	require.NoError(t, err)
	_, err = f.annual.GetNextAnnualCode(ctx)
	require.NoError(t, err)

	f.setClock(time.Date(2025, time.January, 1, 0, 10, 0, 0, time.UTC))
	code, err := f.annual.GetNextAnnualCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "001", code)
}

func TestAnnualCodeService_AssignCodeToClient(t *testing.T) {
	t.Run("allocates once and is idempotent within the year", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		client := testutil.CreateTestClient(t, f.db, "Acme Trading", "10001", "", 2025)

		code, err := f.annual.AssignCodeToClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "001", code)

		again, err := f.annual.AssignCodeToClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "001", again)

		last, err := f.annualRepo.GetCurrent(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, 1, last)

		stored := reload(t, f, client.ID)
		require.NotNil(t, stored.AnnualCode)
		assert.Equal(t, "001", *stored.AnnualCode)
		assert.Equal(t, 2025, stored.AnnualCodeYear)
	})

	t.Run("replaces a code from an earlier year", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		client := testutil.CreateTestClient(t, f.db, "Acme Trading", "10001", "042", 2024)

		code, err := f.annual.AssignCodeToClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "001", code)

		stored := reload(t, f, client.ID)
		assert.Equal(t, 2025, stored.AnnualCodeYear)
	})

	t.Run("unknown client", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.annual.AssignCodeToClient(context.Background(), uuid.New())
		assert.ErrorIs(t, err, service.ErrClientNotFound)
	})

	t.Run("exhausted leaves the client without a code", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		client := testutil.CreateTestClient(t, f.db, "Acme Trading", "10001", "", 2025)
		require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 999))

		_, err := f.annual.AssignCodeToClient(ctx, client.ID)
		var exhausted *domain.AnnualCodeExhaustedError
		assert.True(t, errors.As(err, &exhausted))

		assert.Nil(t, reload(t, f, client.ID).AnnualCode)
	})
}

func TestAnnualCodeService_AssignAllCodes_Alphabetical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	zeta := testutil.CreateTestClient(t, f.db, "Zeta Logistics", "10001", "", 2025)
	alpha := testutil.CreateTestClient(t, f.db, "Alpha Holdings", "10002", "", 2025)
	mike := testutil.CreateTestClient(t, f.db, "Mike & Sons", "10003", "", 2025)
	dormant := testutil.CreateTestClient(t, f.db, "Beta Dormant", "10004", "", 2025)
	testutil.DeactivateClient(t, f.db, dormant)

	assigned, err := f.annual.AssignAllCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, assigned)

	assert.Equal(t, "001", *reload(t, f, alpha.ID).AnnualCode)
	assert.Equal(t, "002", *reload(t, f, mike.ID).AnnualCode)
	assert.Equal(t, "003", *reload(t, f, zeta.ID).AnnualCode)
	assert.Nil(t, reload(t, f, dormant.ID).AnnualCode)

	last, err := f.annualRepo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	// a second run has nothing to do
	assigned, err = f.annual.AssignAllCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, assigned)
}

func TestAnnualCodeService_AssignAllCodes_ContinuesFromCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := testutil.CreateTestClient(t, f.db, "Alpha Holdings", "10001", "001", 2025)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 1))
	newcomer := testutil.CreateTestClient(t, f.db, "Aardvark Ltd", "10002", "", 2025)

	assigned, err := f.annual.AssignAllCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)

	assert.Equal(t, "001", *reload(t, f, existing.ID).AnnualCode)
	assert.Equal(t, "002", *reload(t, f, newcomer.ID).AnnualCode)
}

func TestAnnualCodeService_AssignAllCodes_ExhaustedIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := testutil.CreateTestClient(t, f.db, "Alpha", "10001", "", 2025)
	b := testutil.CreateTestClient(t, f.db, "Bravo", "10002", "", 2025)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 998))

	_, err := f.annual.AssignAllCodes(ctx)
	var exhausted *domain.AnnualCodeExhaustedError
	require.True(t, errors.As(err, &exhausted))

	assert.Nil(t, reload(t, f, a.ID).AnnualCode)
	assert.Nil(t, reload(t, f, b.ID).AnnualCode)

	last, err := f.annualRepo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 998, last)
}

func TestAnnualCodeService_NeedsReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	needs, err := f.annual.NeedsReset(ctx)
	require.NoError(t, err)
	assert.False(t, needs, "no clients means nothing to reset")

	testutil.CreateTestClient(t, f.db, "Current", "10001", "001", 2025)
	needs, err = f.annual.NeedsReset(ctx)
	require.NoError(t, err)
	assert.False(t, needs)

	testutil.CreateTestClient(t, f.db, "Stale", "10002", "007", 2024)
	needs, err = f.annual.NeedsReset(ctx)
	require.NoError(t, err)
	assert.True(t, needs)
}

func TestAnnualCodeService_ResetAllCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := testutil.CreateTestClient(t, f.db, "Alpha", "10001", "004", 2024)
	b := testutil.CreateTestClient(t, f.db, "Bravo", "10002", "002", 2025)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 2))

	require.NoError(t, f.annual.ResetAllCodes(ctx))

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		c := reload(t, f, id)
		assert.Nil(t, c.AnnualCode)
		assert.Equal(t, 2025, c.AnnualCodeYear)
	}

	needs, err := f.annual.NeedsReset(ctx)
	require.NoError(t, err)
	assert.False(t, needs)

	code, err := f.annual.GetNextAnnualCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "001", code)
}

func TestAnnualCodeService_BulkAssignForNewYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setClock(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	charlie := testutil.CreateTestClient(t, f.db, "Charlie", "10001", "001", 2024)
	alpha := testutil.CreateTestClient(t, f.db, "Alpha", "10002", "002", 2024)
	bravo := testutil.CreateTestClient(t, f.db, "Bravo", "10003", "003", 2024)
	gone := testutil.CreateTestClient(t, f.db, "Aaron Closed", "10004", "004", 2024)
	testutil.DeactivateClient(t, f.db, gone)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2024, 4))

	f.setClock(time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC))

	assigned, err := f.annual.BulkAssignForNewYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, assigned)

	assert.Equal(t, "001", *reload(t, f, alpha.ID).AnnualCode)
	assert.Equal(t, "002", *reload(t, f, bravo.ID).AnnualCode)
	assert.Equal(t, "003", *reload(t, f, charlie.ID).AnnualCode)

	closed := reload(t, f, gone.ID)
	assert.Nil(t, closed.AnnualCode)
	assert.Equal(t, 2025, closed.AnnualCodeYear)

	// the previous year's counter is left alone
	last2024, err := f.annualRepo.GetCurrent(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 4, last2024)

	// already rolled over: second run is a no-op
	assigned, err = f.annual.BulkAssignForNewYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, assigned)
	assert.Equal(t, "001", *reload(t, f, alpha.ID).AnnualCode)
}

func TestAnnualCodeService_BulkAssignForNewYearTx_SecondRunIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setClock(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	bravo := testutil.CreateTestClient(t, f.db, "Bravo", "10501", "001", 2024)
	alpha := testutil.CreateTestClient(t, f.db, "Alpha", "10502", "002", 2024)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2024, 2))

	f.setClock(time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC))

	// both instances saw stale codes before either opened its transaction
	needsReset, err := f.annual.NeedsReset(ctx)
	require.NoError(t, err)
	require.True(t, needsReset)

	var first int
	require.NoError(t, f.db.Transaction(func(tx *gorm.DB) error {
		first, err = f.annual.BulkAssignForNewYearTx(ctx, tx)
		return err
	}))
	assert.Equal(t, 2, first)

	// a client registered between the two runs takes the next code
	aaron := createClient(t, f, "Aaron", domain.IssuingCompanyDET)
	require.NotNil(t, aaron.AnnualCode)
	assert.Equal(t, "003", *aaron.AnnualCode)

	var second int
	require.NoError(t, f.db.Transaction(func(tx *gorm.DB) error {
		second, err = f.annual.BulkAssignForNewYearTx(ctx, tx)
		return err
	}))
	assert.Equal(t, 0, second)

	assert.Equal(t, "001", *reload(t, f, alpha.ID).AnnualCode)
	assert.Equal(t, "002", *reload(t, f, bravo.ID).AnnualCode)
	assert.Equal(t, "003", *reload(t, f, aaron.ID).AnnualCode, "codes are not reshuffled")

	last, err := f.annualRepo.GetCurrent(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestAnnualCodeService_IsCodeAssigned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.CreateTestClient(t, f.db, "Last Year", "10001", "001", 2024)

	assigned, err := f.annual.IsCodeAssigned(ctx, "001", nil)
	require.NoError(t, err)
	assert.False(t, assigned, "a 2024 code does not occupy 2025")

	year := 2024
	assigned, err = f.annual.IsCodeAssigned(ctx, "001", &year)
	require.NoError(t, err)
	assert.True(t, assigned)

	testutil.CreateTestClient(t, f.db, "This Year", "10002", "001", 2025)
	assigned, err = f.annual.IsCodeAssigned(ctx, "001", nil)
	require.NoError(t, err)
	assert.True(t, assigned)
}

func TestAnnualCodeService_IsValidCode(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.annual.IsValidCode("001"))
	assert.True(t, f.annual.IsValidCode("999"))
	assert.False(t, f.annual.IsValidCode("000"))
	assert.False(t, f.annual.IsValidCode("1000"))
	assert.False(t, f.annual.IsValidCode("12"))
	assert.False(t, f.annual.IsValidCode("abc"))
}

func TestAnnualCodeService_Status(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.CreateTestClient(t, f.db, "Coded", "10001", "001", 2025)
	testutil.CreateTestClient(t, f.db, "Uncoded", "10002", "", 2025)
	testutil.CreateTestClient(t, f.db, "Stale", "10003", "009", 2024)
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 1))

	status, err := f.annual.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2025, status.Year)
	assert.Equal(t, 1, status.LastCode)
	assert.Equal(t, 998, status.Remaining)
	assert.True(t, status.NeedsReset)
	assert.Equal(t, int64(3), status.ActiveCount)
	assert.Equal(t, int64(2), status.MissingCodes)
}
