package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAnalyticsRepository mock de AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) PartnerOverview(ctx context.Context, partnerID int64) (*repository.PartnerOverview, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PartnerOverview), args.Error(1)
}

func (m *MockAnalyticsRepository) AppOverview(ctx context.Context) (*repository.AppOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AppOverview), args.Error(1)
}

func (m *MockAnalyticsRepository) CRMOverview(ctx context.Context, partnerID int64) (*repository.CRMOverview, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CRMOverview), args.Error(1)
}

func (m *MockAnalyticsRepository) CommissionOverview(ctx context.Context, partnerID int64, now time.Time, months, topN int) (*repository.CommissionOverview, error) {
	args := m.Called(ctx, partnerID, now, months, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CommissionOverview), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

func newDashboard(repo *MockAnalyticsRepository) *DashboardUseCase {
	uc := NewDashboardUseCase(repo, repository.Repositories{})
	uc.clock = func() time.Time { return fixedNow }
	return uc
}

func TestCommissions_ProyeccionPromedioYTendencia(t *testing.T) {
	repo := new(MockAnalyticsRepository)
	repo.On("CommissionOverview", mock.Anything, int64(7), fixedNow, trendMonths, topClientsMax).Return(&repository.CommissionOverview{
		MRR:           decimal.NewFromInt(700),
		YearMonthly:   decimal.NewFromInt(500),
		ActiveClients: 3,
		Trend: []repository.MonthAmount{
			{Month: "2025-12", Amount: decimal.NewFromInt(200)},
			{Month: "2026-01", Amount: decimal.NewFromInt(500)},
		},
		TopClients: []repository.ClientCommission{
			{ClientName: "Acme", MonthlyValue: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(500)},
		},
	}, nil)

	resp, err := newDashboard(repo).Commissions(context.Background(), 7)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.True(t, decimal.NewFromInt(6000).Equal(resp.AnnualProjection), resp.AnnualProjection.String())
	assert.Equal(t, "233.33", resp.AveragePerClient.StringFixed(2))
	require.Len(t, resp.Trend, 12)
	assert.Equal(t, "2025-04", resp.Trend[0].Month)
	assert.Equal(t, "2026-03", resp.Trend[11].Month)
	assert.Equal(t, "Dic 2025", resp.Trend[8].Label)
	assert.True(t, decimal.NewFromInt(200).Equal(resp.Trend[8].Amount))
	assert.True(t, resp.Trend[10].Amount.IsZero())
	require.Len(t, resp.TopClients, 1)
}

func TestCommissions_SinClientesPromedioCero(t *testing.T) {
	repo := new(MockAnalyticsRepository)
	repo.On("CommissionOverview", mock.Anything, int64(1), fixedNow, trendMonths, topClientsMax).
		Return(&repository.CommissionOverview{MRR: decimal.Zero, YearMonthly: decimal.Zero}, nil)

	resp, err := newDashboard(repo).Commissions(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.AveragePerClient.IsZero())
	assert.Empty(t, resp.TopClients)
}

func TestCRM_PropagaErrorDelRepositorio(t *testing.T) {
	repo := new(MockAnalyticsRepository)
	boom := errors.New("db caída")
	repo.On("CRMOverview", mock.Anything, int64(3)).Return(nil, boom)

	_, err := newDashboard(repo).CRM(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
}

func TestPartner_RedondeaIngresos(t *testing.T) {
	repo := new(MockAnalyticsRepository)
	repo.On("PartnerOverview", mock.Anything, int64(2)).Return(&repository.PartnerOverview{
		ActiveContacts:   4,
		ValidatedPending: 1,
		MonthlyRevenue:   decimal.RequireFromString("1234.567"),
	}, nil)

	resp, err := newDashboard(repo).Partner(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.ActiveContacts)
	assert.Equal(t, 1, resp.ValidatedPending)
	assert.Equal(t, "1234.57", resp.MonthlyRevenue.StringFixed(2))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Febrero 2026", monthLabel(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sep 2025", shortMonthLabel(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}
