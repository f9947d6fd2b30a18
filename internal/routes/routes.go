package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/audit"
	"github.com/jazyl/booking-service/internal/config"
	"github.com/jazyl/booking-service/internal/handlers"
	infraRepo "github.com/jazyl/booking-service/internal/infra/repository"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/notify"
	"github.com/jazyl/booking-service/internal/schedule"
	"github.com/jazyl/booking-service/internal/tenant"
	"github.com/jazyl/booking-service/internal/uploads"
	ucBooking "github.com/jazyl/booking-service/internal/usecase/booking"

	"github.com/jazyl/booking-service/internal/models"
)

var rolesOwner = []string{models.RoleOwner}

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Registry *tenant.Registry
	Notifier *notify.Dispatcher
	Uploader *uploads.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	db := deps.DB
	cfg := deps.Config

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	scheduleStore := schedule.NewStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	slotsUC := ucBooking.NewGetAvailableSlots(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		deps.Notifier,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, auditDispatcher)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		deps.Notifier,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)
	noShowUC := ucBooking.NewMarkNoShow(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	myBookingsUC := ucBooking.NewListMyBookings(bookingRepo)
	byTokenUC := ucBooking.NewGetByCancellationToken(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, deps.Registry, cfg)
	meHandler := handlers.NewMeHandler(db, deps.Registry)
	tenantHandler := handlers.NewTenantHandler(deps.Registry, deps.Uploader)
	masterHandler := handlers.NewMasterHandler(db, scheduleStore, deps.Uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, deps.Registry)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		slotsUC,
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		completeBookingUC,
		noShowUC,
		listBookingsUC,
		myBookingsUC,
		byTokenUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC — tenant resolution
		// ------------------------------
		api.GET("/tenants/subdomain/:subdomain", tenantHandler.ResolveSubdomain)

		// ------------------------------
		// PUBLIC — token flows (no tenant header)
		// ------------------------------
		api.POST("/bookings/:id/confirm", bookingHandler.Confirm)
		api.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		api.GET("/bookings/:id", bookingHandler.GetByToken)

		// ------------------------------
		// PUBLIC — tenant-scoped storefront
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.TenantResolver(deps.Registry))
		{
			public.GET("/masters", masterHandler.ListPublic)
			public.GET("/masters/:id", masterHandler.GetPublic)
			public.GET("/services", serviceHandler.ListPublic)
			public.GET("/availability/slots", bookingHandler.AvailableSlots)
			public.POST("/bookings", bookingHandler.Create)
			// Not under /bookings: a static segment there would clash with
			// the :id token routes in gin's router.
			public.GET("/my-bookings", bookingHandler.MyBookings)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", meHandler.GetMe)

			admin.GET("/tenant", tenantHandler.Get)
			admin.PUT("/tenant", tenantHandler.Update)
			admin.POST("/tenant/logo", middleware.RequireRole(rolesOwner...), tenantHandler.UploadLogo)

			admin.GET("/masters", masterHandler.List)
			admin.POST("/masters", middleware.RequireRole(rolesOwner...), masterHandler.Create)
			admin.PUT("/masters/:id", masterHandler.Update)
			admin.DELETE("/masters/:id", middleware.RequireRole(rolesOwner...), masterHandler.Deactivate)
			admin.POST("/masters/:id/photo", masterHandler.UploadPhoto)

			admin.GET("/masters/:id/schedule", masterHandler.GetSchedule)
			admin.PUT("/masters/:id/schedule", masterHandler.PutSchedule)
			admin.GET("/masters/:id/blocks", masterHandler.ListBlocks)
			admin.POST("/masters/:id/blocks", masterHandler.CreateBlock)
			admin.DELETE("/masters/:id/blocks/:blockId", masterHandler.DeleteBlock)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", middleware.RequireRole(rolesOwner...), serviceHandler.Create)
			admin.PUT("/services/:id", middleware.RequireRole(rolesOwner...), serviceHandler.Update)
			admin.DELETE("/services/:id", middleware.RequireRole(rolesOwner...), serviceHandler.Deactivate)

			admin.GET("/clients", clientHandler.List)

			admin.GET("/bookings", bookingHandler.ListStaff)
			admin.POST("/bookings/:id/complete", bookingHandler.Complete)
			admin.POST("/bookings/:id/no-show", bookingHandler.NoShow)

			admin.GET("/dashboard/today", dashboardHandler.Today)

			admin.GET("/audit-logs", middleware.RequireRole(rolesOwner...), auditLogsHandler.List)
		}
	}
}
