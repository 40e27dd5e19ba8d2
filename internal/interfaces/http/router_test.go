package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/bcs-blackbox/internal/application/analytics"
	"github.com/jhoicas/bcs-blackbox/internal/application/auth"
	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/landing"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/excel"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/pdf"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/bcs-blackbox/internal/interfaces/http"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/jhoicas/bcs-blackbox/pkg/password"
)

// newServer arma la API completa sobre un SQLite temporal con la cuenta admin sembrada.
func newServer(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DBConfig{Path: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := password.NewHasher(password.SchemeSHA256)
	require.NoError(t, err)
	repos := sqlite.NewRepositories(db)
	tx := sqlite.NewTxRunner(db)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, hasher, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}, nil)
	_, err = authUC.EnsureAdmin(ctx, auth.AdminSeed{Password: "admin123", Email: "admin@bcs.com"})
	require.NoError(t, err)

	partnerUC := usecase.NewPartnerUseCase(repos.Partners, repos.Registrations, tx, hasher, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(sqlite.NewAnalyticsRepository(db), repos)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(repos.Users, repos.Roles, tx, hasher, nil),
		PartnerUC:   partnerUC,
		SubBCSUC:    usecase.NewSubBCSUseCase(repos, nil),
		ContactUC:   crm.NewContactUseCase(repos.Contacts, repos.Activities, tx, hasher, nil),
		LeadUC:      crm.NewLeadUseCase(repos, tx, nil),
		LandingUC:   landing.NewUseCase(repos.Leads, partnerUC, nil),
		DashboardUC: dashboardUC,
		ExportUC:    appanalytics.NewExportUseCase(repos, dashboardUC, excel.NewExporter(), pdf.NewStatementGenerator("BCS Blackbox")),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, identifier, pass string) dto.LoginResponse {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: identifier, Password: pass})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestLogin_AdminSembrado(t *testing.T) {
	app := newServer(t)

	out := login(t, app, "admin", "admin123")
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "INVALID_CREDENTIALS")

	// usuario inexistente: misma respuesta que contraseña incorrecta
	status2, body2 := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "nadie", Password: "wrong"})
	assert.Equal(t, status, status2)
	assert.JSONEq(t, string(body), string(body2))

	status, body = call(t, app, http.MethodGet, "/api/auth/me", out.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[dto.SessionResponse](t, body)
	assert.Equal(t, "admin", me.Username)
}

func TestAdmin_UsuarioAdminProtegidoYDuplicados(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "admin", "admin123")

	status, body := call(t, app, http.MethodDelete, "/api/admin/users/"+itoa(admin.User.ID), admin.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "PROTECTED_RECORD")

	newUser := dto.CreateUserRequest{Username: "maria", Email: "maria@bcs.com", Password: "secreto1", Role: entity.RoleCliente}
	status, _ = call(t, app, http.MethodPost, "/api/admin/users", admin.Token, newUser)
	require.Equal(t, http.StatusCreated, status)

	status, body = call(t, app, http.MethodPost, "/api/admin/users", admin.Token, newUser)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "DUPLICATE")

	status, body = call(t, app, http.MethodPost, "/api/admin/users", admin.Token, dto.CreateUserRequest{Username: "x", Role: "root"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "VALIDATION")

	status, body = call(t, app, http.MethodGet, "/api/admin/users/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[dto.UserStatsResponse](t, body).Total)

	client := login(t, app, "maria", "secreto1")
	status, _ = call(t, app, http.MethodGet, "/api/admin/users", client.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestPartner_ConversionDeContactoPorHTTP(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "admin", "admin123")

	status, body := call(t, app, http.MethodPost, "/api/admin/partners", admin.Token, dto.CreatePartnerRequest{
		Name: "Socio", Company: "Acme", Email: "socio@acme.co", Username: "socio", Password: "socio123",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.True(t, decode[dto.PartnerResponse](t, body).HasAccount)

	partner := login(t, app, "socio", "socio123")
	require.NotNil(t, partner.User.PartnerID)

	status, body = call(t, app, http.MethodPost, "/api/partner/contacts", partner.Token, dto.ContactRequest{Name: "Juan Pérez", Email: "juan@cliente.co"})
	require.Equal(t, http.StatusCreated, status, string(body))
	contact := decode[dto.ContactResponse](t, body)
	convertPath := "/api/partner/contacts/" + itoa(contact.ID) + "/convert"
	convert := dto.ConvertContactRequest{Username: "jperez", Password: "cliente1", ConfirmPassword: "cliente1"}

	status, _ = call(t, app, http.MethodPost, convertPath, partner.Token, convert)
	assert.Equal(t, http.StatusBadRequest, status, "un contacto sin validar no se convierte")

	status, body = call(t, app, http.MethodPost, "/api/partner/activities", partner.Token, dto.ActivityRequest{
		ContactID: &contact.ID, Type: entity.ActivityValidation, Subject: "Llamada de validación",
		Completed: true, ValidationSuccess: true,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.True(t, decode[dto.ActivityResponse](t, body).ContactValidated)

	status, body = call(t, app, http.MethodGet, "/api/partner/contacts/"+itoa(contact.ID)+"/username-suggestion", partner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "juan", decode[dto.UsernameSuggestionResponse](t, body).Username, "con email se sugiere la parte local")

	status, body = call(t, app, http.MethodPost, convertPath, partner.Token, convert)
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, entity.RoleCliente, decode[dto.UserResponse](t, body).Role)

	status, body = call(t, app, http.MethodPost, convertPath, partner.Token, convert)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "ALREADY_CONVERTED")

	// el cliente convertido entra y ve su panel
	client := login(t, app, "jperez", "cliente1")
	status, _ = call(t, app, http.MethodGet, "/api/client/dashboard", client.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	// partner desactivado: el token sigue siendo válido pero el acceso se corta
	status, _ = call(t, app, http.MethodPatch, "/api/admin/partners/"+itoa(*partner.User.PartnerID)+"/status", admin.Token, dto.StatusRequest{Status: entity.PartnerInactive})
	require.Equal(t, http.StatusOK, status)
	status, body = call(t, app, http.MethodGet, "/api/partner/contacts", partner.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "PARTNER_INACTIVE")
}

func TestClient_AccesoAAppCuentaCadaApertura(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "admin", "admin123")

	status, body := call(t, app, http.MethodPost, "/api/admin/users", admin.Token, dto.CreateUserRequest{
		Username: "cliente", Password: "cliente1", Role: entity.RoleCliente,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	userID := decode[dto.UserResponse](t, body).ID

	status, body = call(t, app, http.MethodPost, "/api/admin/apps", admin.Token, dto.AssignAppRequest{
		UserID: userID, Name: "Inventario", URL: "https://inventario.bcs.com",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	appID := decode[dto.AppResponse](t, body).ID

	client := login(t, app, "cliente", "cliente1")
	for i := 0; i < 2; i++ {
		status, _ = call(t, app, http.MethodPost, "/api/client/apps/"+itoa(appID)+"/access", client.Token, nil)
		require.Equal(t, http.StatusOK, status)
	}

	status, body = call(t, app, http.MethodGet, "/api/client/apps", client.Token, nil)
	require.Equal(t, http.StatusOK, status)
	apps := decode[[]dto.AppResponse](t, body)
	require.Len(t, apps, 1)
	assert.Equal(t, 2, apps[0].AccessCount)
	assert.NotNil(t, apps[0].LastAccessed)

	status, _ = call(t, app, http.MethodPost, "/api/client/apps/9999/access", client.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPublic_LeadDeLandingVisibleParaAdmin(t *testing.T) {
	app := newServer(t)

	status, body := call(t, app, http.MethodPost, "/api/public/leads", "", dto.LandingLeadRequest{Name: "Ana", Email: "ana@empresa.co", Sector: "Salud"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodPost, "/api/public/leads", "", dto.LandingLeadRequest{Name: "Sin email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email", decode[dto.ErrorResponse](t, body).Field)

	admin := login(t, app, "admin", "admin123")
	status, body = call(t, app, http.MethodGet, "/api/admin/landing-leads", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	leads := decode[[]dto.LeadResponse](t, body)
	require.Len(t, leads, 1)
	assert.Equal(t, "Ana", leads[0].ContactName)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
