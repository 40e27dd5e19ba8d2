package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/bcs-blackbox/internal/application/analytics"
	"github.com/jhoicas/bcs-blackbox/internal/application/auth"
	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/landing"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	PartnerUC   *usecase.PartnerUseCase
	SubBCSUC    *usecase.SubBCSUseCase
	ContactUC   *crm.ContactUseCase
	LeadUC      *crm.LeadUseCase
	LandingUC   *landing.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	ExportUC    *appanalytics.ExportUseCase
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	subHandler := NewSubBCSHandler(deps.SubBCSUC)
	contactHandler := NewContactHandler(deps.ContactUC)
	crmHandler := NewCRMHandler(deps.LeadUC)
	publicHandler := NewPublicHandler(deps.LandingUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ExportUC)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Landing (público)
	public := api.Group("/public")
	public.Post("/leads", publicHandler.SubmitLead)
	public.Post("/partner-registrations", publicHandler.RegisterPartner)

	// Admin
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	admin.Get("/dashboard", dashboardHandler.Admin)

	users := admin.Group("/users")
	users.Get("/stats", userHandler.Stats)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/active", userHandler.SetActive)
	users.Delete("/:id", userHandler.Delete)

	partners := admin.Group("/partners")
	partners.Get("/stats", partnerHandler.Stats)
	partners.Get("/", partnerHandler.List)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/:id", partnerHandler.Get)
	partners.Put("/:id", partnerHandler.Update)
	partners.Patch("/:id/status", partnerHandler.SetStatus)
	partners.Post("/:id/account", partnerHandler.CreateAccount)
	partners.Delete("/:id", partnerHandler.Delete)

	registerAppRoutes(admin.Group("/apps"), subHandler)
	registerPartnerSubBCSRoutes(admin.Group("/partner-sub-bcs"), subHandler)

	registrations := admin.Group("/registrations")
	registrations.Get("/", partnerHandler.ListRegistrations)
	registrations.Post("/:id/approve", partnerHandler.ApproveRegistration)
	registrations.Post("/:id/reject", partnerHandler.RejectRegistration)

	admin.Get("/landing-leads", crmHandler.ListLandingLeads)

	// Partner
	partner := api.Group("/partner",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RolePartner),
		RequireActivePartner(deps.PartnerUC, log),
	)
	partner.Get("/dashboard", dashboardHandler.Partner)
	partner.Get("/crm/dashboard", dashboardHandler.CRM)

	contacts := partner.Group("/contacts")
	contacts.Get("/export", dashboardHandler.ExportContacts)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.Get)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Patch("/:id/status", contactHandler.SetStatus)
	contacts.Delete("/:id", contactHandler.Delete)
	contacts.Get("/:id/username-suggestion", contactHandler.SuggestUsername)
	contacts.Post("/:id/convert", contactHandler.Convert)

	activities := partner.Group("/activities")
	activities.Get("/", contactHandler.ListActivities)
	activities.Post("/", contactHandler.CreateActivity)
	activities.Patch("/:id/completed", contactHandler.SetActivityCompleted)
	activities.Delete("/:id", contactHandler.DeleteActivity)

	clientSub := partner.Group("/client-sub-bcs")
	clientSub.Get("/", subHandler.ListClientSubBCS)
	clientSub.Post("/", subHandler.CreateClientSubBCS)
	clientSub.Patch("/:id/status", subHandler.SetClientSubBCSStatus)
	clientSub.Delete("/:id", subHandler.DeleteClientSubBCS)

	registerAppRoutes(partner.Group("/apps"), subHandler)
	registerPartnerSubBCSRoutes(partner.Group("/partner-sub-bcs"), subHandler)

	leads := partner.Group("/leads")
	leads.Get("/export", dashboardHandler.ExportLeads)
	leads.Get("/", crmHandler.ListLeads)
	leads.Post("/", crmHandler.CreateLead)
	leads.Get("/:id", crmHandler.GetLead)
	leads.Put("/:id", crmHandler.UpdateLead)
	leads.Patch("/:id/status", crmHandler.UpdateLeadStatus)
	leads.Delete("/:id", crmHandler.DeleteLead)

	opportunities := partner.Group("/opportunities")
	opportunities.Get("/", crmHandler.ListOpportunities)
	opportunities.Post("/", crmHandler.CreateOpportunity)
	opportunities.Get("/:id", crmHandler.GetOpportunity)
	opportunities.Put("/:id", crmHandler.UpdateOpportunity)
	opportunities.Delete("/:id", crmHandler.DeleteOpportunity)

	commissions := partner.Group("/commissions")
	commissions.Get("/dashboard", dashboardHandler.Commissions)
	commissions.Get("/statement.pdf", dashboardHandler.CommissionStatement)
	commissions.Get("/", crmHandler.ListCommissions)
	commissions.Post("/", crmHandler.CreateCommission)
	commissions.Patch("/:id/status", crmHandler.SetCommissionStatus)

	// Cliente
	client := api.Group("/client", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleCliente))
	client.Get("/dashboard", dashboardHandler.Client)
	client.Get("/apps", subHandler.MyApps)
	client.Post("/apps/:id/access", subHandler.RecordAccess)
}

func registerAppRoutes(g fiber.Router, h *SubBCSHandler) {
	g.Get("/", h.ListApps)
	g.Post("/", h.AssignApp)
	g.Patch("/:id/status", h.SetAppStatus)
	g.Delete("/:id", h.DeleteApp)
}

func registerPartnerSubBCSRoutes(g fiber.Router, h *SubBCSHandler) {
	g.Get("/", h.ListPartnerSubBCS)
	g.Post("/", h.CreatePartnerSubBCS)
	g.Patch("/:id/status", h.SetPartnerSubBCSStatus)
	g.Delete("/:id", h.DeletePartnerSubBCS)
}
