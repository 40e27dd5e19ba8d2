package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), config.DBConfig{Path: filepath.Join(t.TempDir(), "bcs_test.db")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var testNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func seedPartner(t *testing.T, repos repository.Repositories, email string) *entity.Partner {
	t.Helper()
	p := &entity.Partner{Name: "Socio", Company: "Acme", Email: email, Status: entity.PartnerActive, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repos.Partners.Create(context.Background(), p))
	return p
}

func seedUser(t *testing.T, repos repository.Repositories, username, email, role string) *entity.User {
	t.Helper()
	ctx := context.Background()
	r, err := repos.Roles.GetByName(ctx, role)
	require.NoError(t, err)
	require.NotNil(t, r)
	u := &entity.User{Username: username, Email: email, PasswordHash: "x", RoleID: r.ID, IsActive: true, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repos.Users.Create(ctx, u))
	return u
}

func TestMigrate_SiembraRolesYEsIdempotente(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db), "aplicar dos veces no debe fallar")

	roles, err := NewRoleRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "admin", roles[0].Name)
	assert.Equal(t, "Administrador del sistema", roles[0].Description)
	assert.Equal(t, "partner", roles[1].Name)
	assert.Equal(t, "cliente", roles[2].Name)
}

func TestUserRepo_DuplicadoYBusquedaPorIdentificador(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	u := seedUser(t, repos, "ana", "ana@x.com", entity.RoleCliente)
	assert.NotZero(t, u.ID)

	dup := &entity.User{Username: "ana", PasswordHash: "y", RoleID: u.RoleID, CreatedAt: testNow, UpdatedAt: testNow}
	err := repos.Users.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	// email vacío se guarda como NULL: varios usuarios sin email conviven
	seedUser(t, repos, "sinmail1", "", entity.RoleCliente)
	seedUser(t, repos, "sinmail2", "", entity.RoleCliente)

	byEmail, err := repos.Users.FindActiveByIdentifier(ctx, "ana@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "ana", byEmail.Username)
	assert.Equal(t, entity.RoleCliente, byEmail.RoleName)
	assert.Equal(t, testNow, byEmail.CreatedAt.UTC())

	require.NoError(t, repos.Users.SetActive(ctx, u.ID, false))
	inactive, err := repos.Users.FindActiveByIdentifier(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, inactive, "un usuario inactivo no autentica")

	taken, err := repos.Users.UsernameTaken(ctx, "ana", u.ID)
	require.NoError(t, err)
	assert.False(t, taken, "el propio registro se excluye")

	st, err := repos.Users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Active)
	assert.Equal(t, 3, st.ByRole[entity.RoleCliente])
	assert.Equal(t, 0, st.ByRole[entity.RoleAdmin])
}

func TestUserRepo_DeleteInexistente(t *testing.T) {
	db := newTestDB(t)
	err := NewUserRepository(db).Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRepo_FiltrosDeVista(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	p := seedPartner(t, repos, "p@x.com")

	mk := func(name, company, industry string) *entity.Contact {
		c := &entity.Contact{PartnerID: p.ID, Name: name, Company: company, Industry: industry, Status: entity.ContactActive, CreatedAt: testNow}
		require.NoError(t, repos.Contacts.Create(ctx, c))
		return c
	}
	juan := mk("Juan Pérez", "Ferretería 100%", "Retail")
	mk("Ana Gómez", "Clínica Sur", "Salud")
	val := mk("Luis Díaz", "Agro SA", "Retail")
	require.NoError(t, repos.Contacts.MarkValidated(ctx, val.ID, testNow))

	all, err := repos.Contacts.ListByPartner(ctx, p.ID, entity.ContactFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	retail, err := repos.Contacts.ListByPartner(ctx, p.ID, entity.ContactFilter{Industry: "Retail"})
	require.NoError(t, err)
	assert.Len(t, retail, 2)

	validated, err := repos.Contacts.ListByPartner(ctx, p.ID, entity.ContactFilter{Validation: "validated"})
	require.NoError(t, err)
	require.Len(t, validated, 1)
	assert.Equal(t, val.ID, validated[0].ID)
	require.NotNil(t, validated[0].ValidationDate)

	// el % se busca literal, no como comodín
	pct, err := repos.Contacts.ListByPartner(ctx, p.ID, entity.ContactFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, pct, 1)
	assert.Equal(t, juan.ID, pct[0].ID)

	mail := &entity.Contact{PartnerID: p.ID, Name: "Marta Ruiz", Email: "compras@hotelandino.co", Status: entity.ContactActive, CreatedAt: testNow}
	require.NoError(t, repos.Contacts.Create(ctx, mail))
	byEmail, err := repos.Contacts.ListByPartner(ctx, p.ID, entity.ContactFilter{Search: "hotelandino"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, mail.ID, byEmail[0].ID)
}

func TestContactRepo_MarkConvertedSoloSiValidado(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	p := seedPartner(t, repos, "p@x.com")
	u := seedUser(t, repos, "cli", "", entity.RoleCliente)

	c := &entity.Contact{PartnerID: p.ID, Name: "Sin validar", Status: entity.ContactActive, CreatedAt: testNow}
	require.NoError(t, repos.Contacts.Create(ctx, c))

	err := repos.Contacts.MarkConverted(ctx, c.ID, u.ID, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repos.Contacts.MarkValidated(ctx, c.ID, testNow))
	require.NoError(t, repos.Contacts.MarkConverted(ctx, c.ID, u.ID, testNow))

	got, err := repos.Contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ContactConverted, got.State())
	assert.Equal(t, u.ID, *got.ConvertedUserID)

	n, err := repos.Contacts.ClearConversion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err = repos.Contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ContactValidated, got.State())
	assert.Nil(t, got.ConvertedUserID)
	assert.Nil(t, got.ConversionDate)
}

func TestContactRepo_PartnerInexistenteEsNotFound(t *testing.T) {
	db := newTestDB(t)
	c := &entity.Contact{PartnerID: 404, Name: "X", Status: entity.ContactActive, CreatedAt: testNow}
	err := NewContactRepository(db).Create(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepo_DeleteEnCascada(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	p := seedPartner(t, repos, "p@x.com")

	l := &entity.Lead{PartnerID: &p.ID, CompanyName: "Acme", ContactName: "Eva", Status: entity.LeadQualified, CreatedAt: testNow}
	require.NoError(t, repos.Leads.Create(ctx, l))
	o := &entity.Opportunity{LeadID: l.ID, PartnerID: p.ID, Name: "Acme BCS", EstimatedUsers: 10,
		PricePerUser: decimal.NewFromInt(20), TotalValue: decimal.NewFromInt(2400), Probability: 50,
		Stage: entity.StageDemo, Status: entity.OpportunityOpen, CreatedAt: testNow}
	require.NoError(t, repos.Opportunities.Create(ctx, o))
	a := &entity.Activity{PartnerID: p.ID, LeadID: &l.ID, OpportunityID: &o.ID, Type: entity.ActivityOpportunityCreated,
		Subject: "x", ActivityDate: testNow, Completed: true, CreatedAt: testNow}
	require.NoError(t, repos.Activities.Create(ctx, a))

	gotOpp, err := repos.Opportunities.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2400).Equal(gotOpp.TotalValue))
	assert.Equal(t, "Acme", gotOpp.CompanyName)

	require.NoError(t, repos.Leads.Delete(ctx, l.ID))

	gone, err := repos.Opportunities.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	act, err := repos.Activities.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, act)
}

func TestUserAppRepo_RecordAccessIncrementa(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	u := seedUser(t, repos, "cli", "", entity.RoleCliente)
	other := seedUser(t, repos, "otro", "", entity.RoleCliente)

	app := &entity.UserApp{UserID: u.ID, Name: "CRM", URL: "https://crm.example.com", Icon: entity.DefaultAppIcon,
		Status: entity.SubBCSActive, CreatedAt: testNow}
	require.NoError(t, repos.Apps.Create(ctx, app))

	for i := 0; i < 3; i++ {
		ok, err := repos.Apps.RecordAccess(ctx, app.ID, u.ID, testNow.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := repos.Apps.RecordAccess(ctx, app.ID, other.ID, testNow)
	require.NoError(t, err)
	assert.False(t, ok, "la app no pertenece a otro usuario")

	got, err := repos.Apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AccessCount)
	require.NotNil(t, got.LastAccessed)
	assert.Equal(t, testNow.Add(2*time.Minute), got.LastAccessed.UTC())

	st, err := repos.Apps.StatsForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalApps)
	assert.Equal(t, 3, st.TotalAccesses)
	assert.Equal(t, "CRM", st.MostUsedApp)
	assert.Equal(t, "CRM", st.LastAccessed)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewTxRunner(db).Run(ctx, func(r repository.Repositories) error {
		seedPartner(t, r, "tx@x.com")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := NewPartnerRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnalyticsRepo_CommissionOverview(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	p := seedPartner(t, repos, "p@x.com")

	mk := func(client string, monthly int64, start time.Time, status string) {
		c := &entity.Commission{PartnerID: p.ID, ClientName: client, MonthlyValue: decimal.NewFromInt(monthly),
			Rate: entity.DefaultCommissionRate, Amount: decimal.NewFromInt(monthly).Mul(entity.DefaultCommissionRate),
			StartDate: start, Status: status, CreatedAt: testNow}
		require.NoError(t, repos.Commissions.Create(ctx, c))
	}
	mk("Acme", 1000, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), entity.CommissionActive)
	mk("Beta", 400, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), entity.CommissionActive)
	mk("Gamma", 200, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), entity.CommissionInactive)

	ov, err := NewAnalyticsRepository(db).CommissionOverview(ctx, p.ID, testNow, 12, 10)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(700).Equal(ov.MRR), ov.MRR.String())
	assert.True(t, decimal.NewFromInt(500).Equal(ov.YearMonthly), ov.YearMonthly.String())
	assert.Equal(t, 2, ov.ActiveClients)
	require.Len(t, ov.Trend, 3)
	assert.Equal(t, "2025-12", ov.Trend[0].Month)
	require.Len(t, ov.TopClients, 2)
	assert.Equal(t, "Acme", ov.TopClients[0].ClientName)
}
