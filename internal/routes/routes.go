package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	"github.com/BruksfildServices01/store-scheduler/internal/cache"
	"github.com/BruksfildServices01/store-scheduler/internal/config"
	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/store-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/store-scheduler/internal/middleware"
	"github.com/BruksfildServices01/store-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/store-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/store-scheduler/internal/usecase/availability"
)

// Infra holds the long-lived collaborators owned by main.
type Infra struct {
	Audit    *audit.Dispatcher
	Notifier notify.Notifier
	Booked   cache.BookedCache
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	if infra.Booked == nil {
		infra.Booked = cache.Nop{}
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)

	settings := ucAppointment.Settings{
		DefaultTimezone: cfg.DefaultTimezone,
		Policy:          domain.Policy{Strict: cfg.StrictAdmission},
	}

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Create: ucAppointment.NewCreateAppointment(
			appointmentRepo, infra.Audit, infra.Notifier, infra.Booked, settings,
		),
		UpdateStatus: ucAppointment.NewUpdateStatus(
			appointmentRepo, infra.Audit, infra.Notifier, infra.Booked, settings,
		),
		ListForUser:  ucAppointment.NewListForUser(appointmentRepo),
		ListForStore: ucAppointment.NewListForStore(appointmentRepo),
		ListBooked:   ucAppointment.NewListBooked(appointmentRepo, infra.Booked, settings),
	}

	setAvailabilityUC := ucAvailability.NewSetWeeklyAvailability(availabilityRepo, infra.Audit)
	getAvailabilityUC := ucAvailability.NewGetWeeklyAvailability(availabilityRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	storeHandler := handlers.NewStoreHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, settings)
	availabilityHandler := handlers.NewAvailabilityHandler(setAvailabilityUC, getAvailabilityUC)

	limiter := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET(
			"/appointments/store/:storeId/booked",
			limiter.Handler(),
			appointmentHandler.ListBooked,
		)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/users/me", meHandler.GetMe)

			secured.GET("/stores", storeHandler.List)
			secured.GET("/stores/search", storeHandler.Search)
			secured.GET("/stores/:id", storeHandler.Get)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/my-appointments", appointmentHandler.ListMine)

			secured.GET("/availability/store/:storeId", availabilityHandler.Get)

			// ------------------------------
			// STORE OWNER
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireStoreOwner())
			{
				owner.POST("/stores", storeHandler.Create)
				owner.PUT("/stores/:id", storeHandler.Update)
				owner.DELETE("/stores/:id", storeHandler.Delete)
				owner.GET("/stores/:id/audit-logs", auditLogsHandler.List)

				owner.GET("/appointments/store/:storeId", appointmentHandler.ListForStore)
				owner.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

				owner.POST("/availability", availabilityHandler.Set)
			}
		}
	}
}
