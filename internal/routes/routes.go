package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	domainAppointment "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	domainCatalog "github.com/BruksfildServices01/barbershop-api/internal/domain/catalog"
	domainPayment "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	domainUser "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/handlers"
	"github.com/BruksfildServices01/barbershop-api/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-api/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barbershop-api/internal/usecase/catalog"
	ucPayment "github.com/BruksfildServices01/barbershop-api/internal/usecase/payment"
	ucUser "github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
)

// Dependencies are the adapters the HTTP surface is built from.
// Optional ones (Cache, Gateway, Webhook, Photos, Metrics) may be nil.
type Dependencies struct {
	Log      *zap.Logger
	Location *time.Location

	Appointments domainAppointment.Repository
	Payments     domainPayment.Repository
	Users        domainUser.Repository
	Catalog      domainCatalog.Repository
	Cache        domainCatalog.Cache
	AuditLogs    handlers.AuditLister

	Tokens      auth.TokenIssuer
	Hasher      auth.PasswordHasher
	EmailDomain ucUser.EmailDomainCheck
	Transitions domainAppointment.TransitionTable

	Gateway  domainPayment.Gateway
	Webhook  domainPayment.WebhookParser
	Checkout ucPayment.CheckoutConfig

	Photos      ucUser.ObjectStore
	EncodePhoto ucUser.ImageEncoder

	Metrics      *middleware.Metrics
	HealthChecks map[string]handlers.Pinger
	CORSOrigins  []string
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	// ======================================================
	// USE CASES
	// ======================================================
	register := ucUser.NewRegisterUser(d.Users, d.Hasher, d.EmailDomain)
	login := ucUser.NewLogin(d.Users, d.Hasher, d.Tokens)
	getProfile := ucUser.NewGetProfile(d.Users)
	updateProfile := ucUser.NewUpdateProfile(d.Users)
	updatePhoto := ucUser.NewUpdatePhoto(d.Users, d.Photos, d.EncodePhoto)
	manageUsers := ucUser.NewManageUsers(d.Users, d.Hasher, d.EmailDomain)
	listBarbers := ucUser.NewListBarbers(d.Users)

	services := ucCatalog.NewServices(d.Catalog, d.Cache)

	createAppointment := ucAppointment.NewCreateAppointment(d.Appointments, d.Location)
	listMyAppointments := ucAppointment.NewListMyAppointments(d.Appointments)
	listAllAppointments := ucAppointment.NewListAllAppointments(d.Appointments, d.Location)
	getAppointment := ucAppointment.NewGetAppointment(d.Appointments)
	updateStatus := ucAppointment.NewUpdateAppointmentStatus(d.Appointments, d.Transitions)
	deleteAppointment := ucAppointment.NewDeleteAppointment(d.Appointments)

	createPayment := ucPayment.NewCreatePayment(d.Payments)
	listPayments := ucPayment.NewListPayments(d.Payments, d.Location)
	salesTotal := ucPayment.NewSalesTotal(d.Payments, d.Location)
	recordGateway := ucPayment.NewRecordGatewayPayment(d.Payments)
	checkout := ucPayment.NewCheckout(d.Payments, d.Gateway, recordGateway, d.Checkout)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(register, login, d.Log)
	meHandler := handlers.NewMeHandler(getProfile, updateProfile, updatePhoto, d.Log)
	serviceHandler := handlers.NewServiceHandler(services, d.Log)
	barberHandler := handlers.NewBarberHandler(listBarbers, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointment,
		listMyAppointments,
		listAllAppointments,
		getAppointment,
		updateStatus,
		deleteAppointment,
		d.Log,
	)
	paymentHandler := handlers.NewPaymentHandler(
		createPayment,
		listPayments,
		salesTotal,
		checkout,
		d.Webhook,
		d.Log,
	)
	userHandler := handlers.NewUserHandler(manageUsers, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Location, d.Log)
	healthHandler := handlers.NewHealthHandler(d.HealthChecks, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", middleware.Handler(nil))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/health", healthHandler.Health)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.POST("/payments/webhook/stripe", paymentHandler.StripeWebhook)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)
			secured.PUT("/me/photo", meHandler.UpdatePhoto)

			secured.GET("/barbers", barberHandler.List)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/mine", appointmentHandler.ListMine)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.POST("/payments", paymentHandler.Create)
			secured.GET("/payments/me", paymentHandler.Mine)
			secured.POST("/payments/checkout/appointment/:id", paymentHandler.CheckoutAppointment)
			secured.POST("/payments/checkout/direct", paymentHandler.CheckoutDirect)
			secured.POST("/payments/checkout/confirm", paymentHandler.ConfirmCheckout)

			// ------------------------------
			// BACK OFFICE
			// ------------------------------
			admin := secured.Group("/admin")
			{
				admin.GET("/appointments", appointmentHandler.ListAll)

				admin.GET("/payments", paymentHandler.All)
				admin.GET("/payments/recent", paymentHandler.Recent)
				admin.GET("/sales/today", paymentHandler.SalesToday)

				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
