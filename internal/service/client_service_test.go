package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func createClient(t *testing.T, f *fixture, name string, company domain.IssuingCompany) *domain.ClientDTO {
	t.Helper()
	dto, err := f.clients.Create(context.Background(), &domain.CreateClientRequest{
		ClientName:     name,
		IssuingCompany: company,
	})
	require.NoError(t, err)
	return dto
}

func TestClientService_Create_IssuesCodes(t *testing.T) {
	f := newFixture(t)

	first := createClient(t, f, "Acme Trading", domain.IssuingCompanyFZCO)
	assert.Equal(t, "10001", first.PermanentCode)
	require.NotNil(t, first.AnnualCode)
	assert.Equal(t, "001", *first.AnnualCode)
	assert.Equal(t, 2025, first.AnnualCodeYear)
	assert.True(t, first.IsActive)

	second := createClient(t, f, "Blue Harbour", domain.IssuingCompanyDET)
	assert.Equal(t, "10002", second.PermanentCode)
	assert.Equal(t, "002", *second.AnnualCode)

	stored, err := f.clientRepo.GetByPermanentCode(context.Background(), "10002")
	require.NoError(t, err)
	assert.Equal(t, "Blue Harbour", stored.ClientName)
	assert.Equal(t, domain.IssuingCompanyDET, stored.IssuingCompany)
}

func TestClientService_Create_InvalidCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.clients.Create(context.Background(), &domain.CreateClientRequest{
		ClientName:     "Nowhere LLC",
		IssuingCompany: "ACME",
	})
	assert.ErrorIs(t, err, service.ErrInvalidIssuingCompany)
}

func TestClientService_Create_AnnualExhaustedRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.annualRepo.SetLastCode(ctx, nil, 2025, 999))

	_, err := f.clients.Create(ctx, &domain.CreateClientRequest{
		ClientName:     "Too Late Ltd",
		IssuingCompany: domain.IssuingCompanyDMCC,
	})
	var exhausted *domain.AnnualCodeExhaustedError
	require.True(t, errors.As(err, &exhausted))

	// neither the client nor its permanent code survive
	list, err := f.clients.List(ctx, 1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.Total)

	current, err := f.permanentRepo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PermanentCodeFloor, current)
}

func TestClientService_Update_Partial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := createClient(t, f, "Acme Trading", domain.IssuingCompanyFZCO)

	updated, err := f.clients.Update(ctx, created.ID, &domain.UpdateClientRequest{
		Email: strPtr("billing@acme.ae"),
	})
	require.NoError(t, err)
	assert.Equal(t, "billing@acme.ae", updated.Email)
	assert.Equal(t, "Acme Trading", updated.ClientName)

	stored, err := f.clientRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "billing@acme.ae", stored.Email)
	assert.Equal(t, "Acme Trading", stored.ClientName)
	assert.Equal(t, "10001", stored.PermanentCode)
	assert.Equal(t, "001", *stored.AnnualCode)

	_, err = f.clients.Update(ctx, created.ID, &domain.UpdateClientRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	stored, err = f.clientRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestClientService_Update_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.clients.Update(ctx, uuid.New(), &domain.UpdateClientRequest{Email: strPtr("x@y.z")})
	assert.ErrorIs(t, err, service.ErrClientNotFound)

	created := createClient(t, f, "Acme Trading", domain.IssuingCompanyFZCO)
	_, err = f.clients.Update(ctx, created.ID, &domain.UpdateClientRequest{ClientName: strPtr("   ")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestClientService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestClientService_GetByPermanentCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createClient(t, f, "Acme Trading", domain.IssuingCompanyFZCO)

	dto, err := f.clients.GetByPermanentCode(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading", dto.ClientName)

	_, err = f.clients.GetByPermanentCode(ctx, "1001")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = f.clients.GetByPermanentCode(ctx, "99999")
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestClientService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	createClient(t, f, "Zeta Logistics", domain.IssuingCompanyFZCO)
	createClient(t, f, "Alpha Holdings", domain.IssuingCompanyDET)
	dormant := createClient(t, f, "Mike Dormant", domain.IssuingCompanyDMCC)
	_, err := f.clients.Update(ctx, dormant.ID, &domain.UpdateClientRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)

	all, err := f.clients.List(ctx, 1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	dtos := all.Data.([]domain.ClientDTO)
	assert.Equal(t, "Alpha Holdings", dtos[0].ClientName)

	active, err := f.clients.List(ctx, 1, 20, &repository.ClientFilters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), active.Total)

	company := domain.IssuingCompanyDET
	det, err := f.clients.List(ctx, 1, 20, &repository.ClientFilters{IssuingCompany: &company})
	require.NoError(t, err)
	assert.Equal(t, int64(1), det.Total)

	search, err := f.clients.List(ctx, 1, 20, &repository.ClientFilters{Search: "zeta"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), search.Total)

	paged, err := f.clients.List(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, paged.TotalPages)
	assert.Len(t, paged.Data.([]domain.ClientDTO), 1)
}

func TestClientService_AdvancePermanentCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	counter, err := f.clients.PermanentCodeCounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PermanentCodeFloor, counter.LastCode)
	assert.Equal(t, "10001", counter.NextCode)

	counter, err = f.clients.AdvancePermanentCounter(ctx, 15000)
	require.NoError(t, err)
	assert.Equal(t, 15000, counter.LastCode)

	created := createClient(t, f, "Imported Later", domain.IssuingCompanyDMCC)
	assert.Equal(t, "15001", created.PermanentCode)

	counter, err = f.clients.AdvancePermanentCounter(ctx, 12000)
	require.NoError(t, err)
	assert.Equal(t, 15001, counter.LastCode)

	_, err = f.clients.AdvancePermanentCounter(ctx, 100000)
	assert.True(t, errors.Is(err, service.ErrInvalidInput))
}
