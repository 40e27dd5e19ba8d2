package crm_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/sqlite"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/jhoicas/bcs-blackbox/pkg/password"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repos    repository.Repositories
	contacts *crm.ContactUseCase
	leads    *crm.LeadUseCase
	users    *usecase.UserUseCase
	partner  *entity.Partner
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DBConfig{Path: filepath.Join(t.TempDir(), "crm.db")})
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := password.NewHasher(password.SchemeSHA256)
	require.NoError(t, err)
	repos := sqlite.NewRepositories(db)
	tx := sqlite.NewTxRunner(db)

	now := time.Now().UTC()
	p := &entity.Partner{Name: "Socio", Company: "Acme", Email: "socio@acme.co", Status: entity.PartnerActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Partners.Create(ctx, p))

	return &testEnv{
		repos:    repos,
		contacts: crm.NewContactUseCase(repos.Contacts, repos.Activities, tx, hasher, nil),
		leads:    crm.NewLeadUseCase(repos, tx, nil),
		users:    usecase.NewUserUseCase(repos.Users, repos.Roles, tx, hasher, nil),
		partner:  p,
	}
}

func countUsers(t *testing.T, env *testEnv) int {
	t.Helper()
	st, err := env.repos.Users.Stats(context.Background())
	require.NoError(t, err)
	return st.Total
}

func TestConvert_FlujoCompletoJuanPerez(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	pid := env.partner.ID

	c, err := env.contacts.Create(ctx, pid, dto.ContactRequest{Name: "Juan Pérez", Company: "JP Ltda"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ContactUnvalidated), c.State)

	convert := dto.ConvertContactRequest{Username: "jperez", Password: "cliente1", ConfirmPassword: "cliente1"}

	// sin validar: rechazo sin efectos
	_, err = env.contacts.Convert(ctx, pid, c.ID, convert)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, countUsers(t, env))
	still, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.False(t, still.ConvertedToUser)

	act, err := env.contacts.CreateActivity(ctx, pid, dto.ActivityRequest{
		ContactID: &c.ID, Type: entity.ActivityValidation, Subject: "Llamada de validación",
		Completed: true, ValidationSuccess: true,
	})
	require.NoError(t, err)
	assert.True(t, act.ContactValidated)

	validated, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.True(t, validated.Validated)
	assert.NotNil(t, validated.ValidationDate)

	sug, err := env.contacts.SuggestUsername(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "jperez", sug.Username)

	u, err := env.contacts.Convert(ctx, pid, c.ID, convert)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCliente, u.Role)
	require.NotNil(t, u.CreatedByPartnerID)
	assert.Equal(t, pid, *u.CreatedByPartnerID)

	converted, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ContactConverted), converted.State)
	require.NotNil(t, converted.ConvertedUserID)
	assert.Equal(t, u.ID, *converted.ConvertedUserID)

	_, err = env.contacts.Convert(ctx, pid, c.ID, convert)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Equal(t, 1, countUsers(t, env))
}

func TestConvert_EliminarClienteReabreElContacto(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	pid := env.partner.ID

	c, err := env.contacts.Create(ctx, pid, dto.ContactRequest{Name: "Juan Pérez"})
	require.NoError(t, err)
	_, err = env.contacts.CreateActivity(ctx, pid, dto.ActivityRequest{
		ContactID: &c.ID, Type: entity.ActivityValidation, Subject: "Validación",
		Completed: true, ValidationSuccess: true,
	})
	require.NoError(t, err)

	convert := dto.ConvertContactRequest{Username: "jperez", Password: "cliente1", ConfirmPassword: "cliente1"}
	u, err := env.contacts.Convert(ctx, pid, c.ID, convert)
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, u.ID))

	reopened, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ContactValidated), reopened.State)
	assert.False(t, reopened.ConvertedToUser)
	assert.Nil(t, reopened.ConvertedUserID)
	assert.Nil(t, reopened.ConversionDate)
	assert.True(t, reopened.Validated, "la validación se conserva")

	again, err := env.contacts.Convert(ctx, pid, c.ID, convert)
	require.NoError(t, err)
	converted, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	require.NotNil(t, converted.ConvertedUserID)
	assert.Equal(t, again.ID, *converted.ConvertedUserID)
	assert.Equal(t, 1, countUsers(t, env))
}

func TestConvert_ValidacionesYDuplicados(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	pid := env.partner.ID

	validate := func(id int64) {
		_, err := env.contacts.CreateActivity(ctx, pid, dto.ActivityRequest{
			ContactID: &id, Type: entity.ActivityValidation, Subject: "ok", Completed: true, ValidationSuccess: true,
		})
		require.NoError(t, err)
	}

	a, err := env.contacts.Create(ctx, pid, dto.ContactRequest{Name: "Ana Gómez", Email: "ana@cliente.co"})
	require.NoError(t, err)
	b, err := env.contacts.Create(ctx, pid, dto.ContactRequest{Name: "Ana Gómez", Email: "ana@cliente.co"})
	require.NoError(t, err)
	validate(a.ID)
	validate(b.ID)

	_, err = env.contacts.Convert(ctx, pid, a.ID, dto.ConvertContactRequest{Username: "agomez", Password: "clave123", ConfirmPassword: "otra123"})
	assert.ErrorIs(t, err, domain.ErrValidation, "contraseñas distintas")

	_, err = env.contacts.Convert(ctx, pid, a.ID, dto.ConvertContactRequest{Username: "agomez", Password: "clave123", ConfirmPassword: "clave123"})
	require.NoError(t, err)

	// mismo email en otro contacto: duplicado y el contacto queda sin convertir
	_, err = env.contacts.Convert(ctx, pid, b.ID, dto.ConvertContactRequest{Username: "agomez2", Password: "clave123", ConfirmPassword: "clave123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	again, err := env.contacts.Get(ctx, pid, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ContactValidated), again.State)

	// contacto de otro partner se trata como inexistente
	_, err = env.contacts.Convert(ctx, pid+1, a.ID, dto.ConvertContactRequest{Username: "x123", Password: "clave123", ConfirmPassword: "clave123"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivity_ValidacionSinExitoNoValida(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	pid := env.partner.ID

	c, err := env.contacts.Create(ctx, pid, dto.ContactRequest{Name: "Pedro"})
	require.NoError(t, err)

	act, err := env.contacts.CreateActivity(ctx, pid, dto.ActivityRequest{
		ContactID: &c.ID, Type: entity.ActivityValidation, Subject: "intento", Completed: false, ValidationSuccess: true,
	})
	require.NoError(t, err)
	assert.False(t, act.ContactValidated)

	pending, err := env.contacts.ListActivities(ctx, pid, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, env.contacts.SetActivityCompleted(ctx, pid, act.ID, true))
	got, err := env.contacts.Get(ctx, pid, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Validated)

	list, err := env.contacts.List(ctx, pid, dto.ContactFilterQuery{Validation: "validated"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = env.contacts.List(ctx, pid, dto.ContactFilterQuery{Validation: "unvalidated"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.contacts.CreateActivity(ctx, pid, dto.ActivityRequest{Type: entity.ActivityValidation, Subject: "sin contacto"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLeads_OportunidadYComision(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	pid := env.partner.ID

	l, err := env.leads.CreateLead(ctx, pid, dto.LeadRequest{CompanyName: "Textiles SA", ContactName: "Laura"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadNew, l.Status)

	oppReq := dto.OpportunityRequest{
		LeadID: l.ID, Name: "ERP Textiles", EstimatedUsers: 10,
		PricePerUser: decimal.NewFromInt(50), Probability: 40,
	}
	_, err = env.leads.CreateOpportunity(ctx, pid, oppReq)
	assert.ErrorIs(t, err, domain.ErrValidation, "lead nuevo no admite oportunidad")

	require.NoError(t, env.leads.UpdateLeadStatus(ctx, pid, l.ID, entity.LeadQualified))
	o, err := env.leads.CreateOpportunity(ctx, pid, oppReq)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6000).Equal(o.TotalValue), "10 x 50 x 12")
	assert.True(t, decimal.NewFromInt(2400).Equal(o.WeightedValue))
	assert.Equal(t, entity.OpportunityOpen, o.Status)

	_, err = env.leads.CreateCommission(ctx, pid, dto.CommissionRequest{
		OpportunityID: &o.ID, ClientName: "Textiles SA", MonthlyValue: decimal.NewFromInt(500), StartDate: "2026-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "oportunidad abierta")

	oppReq.Stage = entity.StageClosedWon
	won, err := env.leads.UpdateOpportunity(ctx, pid, o.ID, oppReq)
	require.NoError(t, err)
	assert.Equal(t, entity.OpportunityWon, won.Status)
	assert.NotNil(t, won.ActualCloseDate)

	com, err := env.leads.CreateCommission(ctx, pid, dto.CommissionRequest{
		OpportunityID: &o.ID, ClientName: "Textiles SA", MonthlyValue: decimal.NewFromInt(500), StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	assert.True(t, entity.DefaultCommissionRate.Equal(com.Rate))
	assert.True(t, decimal.NewFromInt(250).Equal(com.Amount))

	require.NoError(t, env.leads.SetCommissionStatus(ctx, pid, com.ID, dto.CommissionStatusRequest{Status: entity.CommissionPaid}))
	list, err := env.leads.ListCommissions(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.CommissionPaid, list[0].Status)
	assert.NotNil(t, list[0].PaymentDate)

	// actividades automáticas: lead creado, oportunidad creada y actualizada
	acts, err := env.leads.ListLeads(ctx, pid, dto.LeadFilterQuery{})
	require.NoError(t, err)
	assert.Len(t, acts, 1)
	history, err := env.contacts.ListActivities(ctx, pid, false)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	require.NoError(t, env.leads.DeleteLead(ctx, pid, l.ID))
	opps, err := env.leads.ListOpportunities(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, opps)
	history, err = env.contacts.ListActivities(ctx, pid, false)
	require.NoError(t, err)
	assert.Empty(t, history)
}
