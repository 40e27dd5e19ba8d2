package usecase_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/sqlite"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/jhoicas/bcs-blackbox/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repos    repository.Repositories
	hasher   *password.Hasher
	tx       *sqlite.TxRunner
	users    *usecase.UserUseCase
	partners *usecase.PartnerUseCase
	subs     *usecase.SubBCSUseCase
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(context.Background(), config.DBConfig{Path: filepath.Join(t.TempDir(), "uc.db")})
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := password.NewHasher(password.SchemeSHA256)
	require.NoError(t, err)
	repos := sqlite.NewRepositories(db)
	tx := sqlite.NewTxRunner(db)
	return &testEnv{
		repos:    repos,
		hasher:   hasher,
		tx:       tx,
		users:    usecase.NewUserUseCase(repos.Users, repos.Roles, tx, hasher, nil),
		partners: usecase.NewPartnerUseCase(repos.Partners, repos.Registrations, tx, hasher, nil),
		subs:     usecase.NewSubBCSUseCase(repos, nil),
	}
}

func boolPtr(b bool) *bool { return &b }

func TestUserUseCase_CrearDuplicadoYProtegido(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "admin123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.True(t, u.IsActive)

	_, err = env.users.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "otra123", Role: entity.RoleCliente})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = env.users.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "123456", Role: entity.RoleCliente})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.ErrorIs(t, env.users.Delete(ctx, u.ID), domain.ErrProtectedRecord)
	assert.ErrorIs(t, env.users.SetActive(ctx, u.ID, false), domain.ErrProtectedRecord)
	assert.ErrorIs(t, env.users.Delete(ctx, 9999), domain.ErrNotFound)

	still, err := env.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", still.Username)
}

func TestUserUseCase_ActualizarConPasswordYStats(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	a, err := env.users.Create(ctx, dto.CreateUserRequest{Username: "ana", Email: "ana@x.com", Password: "secreto1", Role: entity.RoleCliente})
	require.NoError(t, err)
	_, err = env.users.Create(ctx, dto.CreateUserRequest{Username: "beto", Email: "beto@x.com", Password: "secreto2", Role: entity.RoleCliente, IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = env.users.Update(ctx, a.ID, dto.UpdateUserRequest{Username: "ana", Email: "beto@x.com", Role: entity.RoleCliente})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey, "email de otro usuario")

	upd, err := env.users.Update(ctx, a.ID, dto.UpdateUserRequest{Username: "ana.m", Email: "ana@x.com", Role: entity.RoleCliente, Password: "nueva123"})
	require.NoError(t, err)
	assert.Equal(t, "ana.m", upd.Username)

	stored, err := env.repos.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, password.SHA256Hex("nueva123"), stored.PasswordHash)

	st, err := env.users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, 1, st.Inactive)
	assert.Equal(t, 2, st.ByRole[entity.RoleCliente])

	clients, err := env.users.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestUserUseCase_ActualizarEsAtomicoSiFallaElHash(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	bcryptHasher, err := password.NewHasher(password.SchemeBcrypt)
	require.NoError(t, err)
	users := usecase.NewUserUseCase(env.repos.Users, env.repos.Roles, env.tx, bcryptHasher, nil)

	a, err := users.Create(ctx, dto.CreateUserRequest{Username: "carla", Email: "carla@x.com", Password: "secreto1", Role: entity.RoleCliente})
	require.NoError(t, err)

	// bcrypt rechaza contraseñas de más de 72 bytes
	_, err = users.Update(ctx, a.ID, dto.UpdateUserRequest{
		Username: "carla.r", Email: "carla@x.com", Role: entity.RoleCliente,
		Password: strings.Repeat("x", 80),
	})
	require.Error(t, err)

	stored, err := env.repos.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "carla", stored.Username)
	assert.True(t, bcryptHasher.Verify(stored.PasswordHash, "secreto1"))
}

func TestPartnerUseCase_CrearConCuentaYEliminar(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	p, err := env.partners.Create(ctx, dto.CreatePartnerRequest{
		Name: "María", Company: "Soluciones SAS", Email: "maria@sol.co", Username: "maria", Password: "clave123",
	})
	require.NoError(t, err)
	assert.True(t, p.HasAccount)
	assert.Equal(t, "maria", p.Username)

	_, err = env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "Otro", Company: "X", Email: "maria@sol.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	// username ocupado: no queda partner a medias
	_, err = env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "Otro", Company: "X", Email: "otro@x.co", Username: "maria", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	list, err := env.partners.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	active, err := env.partners.IsActive(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, env.partners.SetStatus(ctx, p.ID, entity.PartnerInactive))
	account, err := env.repos.Users.GetByID(ctx, *p.UserID)
	require.NoError(t, err)
	assert.False(t, account.IsActive)

	require.NoError(t, env.partners.Delete(ctx, p.ID))
	gone, err := env.repos.Users.GetByID(ctx, *p.UserID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.ErrorIs(t, env.partners.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestPartnerUseCase_CuentaPorDefectoConEmailYActualizacion(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	p, err := env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "Luis", Company: "LT", Email: "luis@lt.co"})
	require.NoError(t, err)
	assert.False(t, p.HasAccount)

	withAcc, err := env.partners.CreateAccount(ctx, p.ID, dto.CreateAccountRequest{Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "luis@lt.co", withAcc.Username)

	_, err = env.partners.CreateAccount(ctx, p.ID, dto.CreateAccountRequest{Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	upd, err := env.partners.Update(ctx, p.ID, dto.UpdatePartnerRequest{
		Name: "Luis T", Company: "LT", Email: "luis@nuevo.co", Username: "luis",
	})
	require.NoError(t, err)
	assert.Equal(t, "luis", upd.Username)
	account, err := env.repos.Users.GetByID(ctx, *upd.UserID)
	require.NoError(t, err)
	assert.Equal(t, "luis@nuevo.co", account.Email)
	assert.Equal(t, entity.RolePartner, account.RoleName)
}

func TestPartnerUseCase_AprobarYRechazarSolicitudes(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	reg, err := env.partners.Register(ctx, dto.PartnerRegistrationRequest{PartnerName: "Nova", ContactEmail: "hola@nova.co", Region: "Antioquia"})
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationPending, reg.Status)

	p, err := env.partners.ApproveRegistration(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nova", p.Company, "sin empresa se usa el nombre")

	_, err = env.partners.ApproveRegistration(ctx, reg.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	other, err := env.partners.Register(ctx, dto.PartnerRegistrationRequest{PartnerName: "Beta", ContactEmail: "b@beta.co"})
	require.NoError(t, err)
	require.NoError(t, env.partners.RejectRegistration(ctx, other.ID))

	approved, err := env.partners.ListRegistrations(ctx, entity.RegistrationApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.NotNil(t, approved[0].PartnerID)
	assert.Equal(t, p.ID, *approved[0].PartnerID)
}

func TestSubBCSUseCase_AsignacionPorPartnerYAccesos(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	p, err := env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "P", Company: "P", Email: "p@p.co"})
	require.NoError(t, err)
	other, err := env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "O", Company: "O", Email: "o@o.co"})
	require.NoError(t, err)

	role, err := env.repos.Roles.GetByName(ctx, entity.RoleCliente)
	require.NoError(t, err)
	client := &entity.User{Username: "cli", PasswordHash: "x", RoleID: role.ID, IsActive: true, CreatedByPartnerID: &p.ID}
	require.NoError(t, env.repos.Users.Create(ctx, client))

	req := dto.AssignAppRequest{UserID: client.ID, Name: "Inventario", URL: "https://inv.bcs.co"}

	_, err = env.subs.AssignApp(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: other.ID}, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := req
	bad.URL = "ftp://inv.bcs.co"
	_, err = env.subs.AssignApp(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: p.ID}, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	app, err := env.subs.AssignApp(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: p.ID}, req)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAppIcon, app.Icon)

	require.NoError(t, env.subs.RecordAccess(ctx, client.ID, app.ID))
	require.NoError(t, env.subs.RecordAccess(ctx, client.ID, app.ID))
	assert.ErrorIs(t, env.subs.RecordAccess(ctx, client.ID+100, app.ID), domain.ErrNotFound)

	mine, err := env.subs.ListUserApps(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].AccessCount)

	assert.ErrorIs(t, env.subs.DeleteApp(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: other.ID}, app.ID), domain.ErrNotFound)
	require.NoError(t, env.subs.SetAppStatus(ctx, usecase.Actor{Role: entity.RoleAdmin}, app.ID, entity.SubBCSInactive))
	mine, err = env.subs.ListUserApps(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSubBCSUseCase_PartnerSubBCSRequiereDatosDelAdmin(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	admin := usecase.Actor{Role: entity.RoleAdmin}

	p, err := env.partners.Create(ctx, dto.CreatePartnerRequest{Name: "P", Company: "P", Email: "p@p.co"})
	require.NoError(t, err)

	_, err = env.subs.CreatePartnerSubBCS(ctx, admin, dto.PartnerSubBCSRequest{BCSName: "Demo", BCSType: "ERP", Description: "demo"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.subs.CreatePartnerSubBCS(ctx, admin, dto.PartnerSubBCSRequest{PartnerID: p.ID, BCSName: "Demo", BCSType: "ERP"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	s, err := env.subs.CreatePartnerSubBCS(ctx, admin, dto.PartnerSubBCSRequest{PartnerID: p.ID, BCSName: "Demo", BCSType: "ERP", Description: "demo"})
	require.NoError(t, err)
	assert.Equal(t, entity.SubBCSDevelopment, s.Status)

	own, err := env.subs.ListPartnerSubBCS(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: p.ID})
	require.NoError(t, err)
	assert.Len(t, own, 1)
	assert.ErrorIs(t, env.subs.DeletePartnerSubBCS(ctx, usecase.Actor{Role: entity.RolePartner, PartnerID: p.ID + 1}, s.ID), domain.ErrNotFound)
}
