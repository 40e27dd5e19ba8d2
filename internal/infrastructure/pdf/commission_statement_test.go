package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommissionStatement_GeneraPDF(t *testing.T) {
	st := &dto.CommissionStatement{
		PartnerName: "María Gómez",
		Company:     "Soluciones SAS",
		Email:       "maria@sol.co",
		GeneratedAt: time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		Period:      "Febrero 2026",
		Summary: dto.CommissionDashboardResponse{
			MRR:              decimal.NewFromInt(700),
			AnnualProjection: decimal.NewFromInt(8400),
			ActiveClients:    2,
			AveragePerClient: decimal.NewFromInt(350),
			Trend: []dto.MonthPoint{
				{Month: "2026-01", Label: "Ene 2026", Amount: decimal.NewFromInt(500)},
				{Month: "2026-02", Label: "Feb 2026", Amount: decimal.NewFromInt(200)},
			},
		},
		Commissions: []dto.CommissionResponse{
			{ClientName: "Acme", MonthlyValue: decimal.NewFromInt(1000), Rate: decimal.RequireFromString("0.5"),
				Amount: decimal.NewFromInt(500), StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), Status: "active"},
		},
	}

	data, err := NewStatementGenerator("BCS Blackbox").RenderCommissionStatement(st)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderCommissionStatement_SinComisiones(t *testing.T) {
	data, err := NewStatementGenerator("BCS").RenderCommissionStatement(&dto.CommissionStatement{PartnerName: "P", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestMoneyYPorcentaje(t *testing.T) {
	assert.Equal(t, "$1.234.567", money(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$250", money(decimal.RequireFromString("249.6")))
	assert.Equal(t, "-$1.000", money(decimal.NewFromInt(-1000)))
	assert.Equal(t, "50%", percent(decimal.RequireFromString("0.5")))
}
