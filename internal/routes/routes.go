package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rentnest-server/internal/analytics"
	"rentnest-server/internal/config"
	"rentnest-server/internal/handlers"
	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/observability"
	"rentnest-server/internal/views"
)

// Deps bundles the collaborators the handlers need. Everything is
// injected here so tests can stand up the router with fakes.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      zerolog.Logger
	Notifier notify.Notifier
	Email    notify.EmailSender
	WhatsApp notify.WhatsAppSender
	Views    *views.Recorder
	Registry *prometheus.Registry
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, d Deps) {
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg)
	userHandler := handlers.NewUserHandler(d.DB)
	propertyHandler := handlers.NewPropertyHandler(d.DB, d.Views)
	favoriteHandler := handlers.NewFavoriteHandler(d.DB)
	enquiryHandler := handlers.NewEnquiryHandler(d.DB, d.Notifier)
	bookingHandler := handlers.NewBookingHandler(d.DB, d.Notifier, d.Email, d.WhatsApp, d.Log)
	reviewHandler := handlers.NewReviewHandler(d.DB)
	appointmentHandler := handlers.NewAppointmentHandler(d.DB, d.Notifier, d.Log)
	analyticsHandler := handlers.NewAnalyticsHandler(d.DB, analytics.NewAggregator(d.DB, d.Log), d.Log)
	chatHandler := handlers.NewChatHandler(d.DB, d.Notifier)
	supportHandler := handlers.NewSupportHandler(d.DB, d.Notifier)
	faqHandler := handlers.NewFAQHandler(d.DB)
	expertHandler := handlers.NewExpertHandler(d.DB)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	public.Use(middleware.RateLimitMiddleware(d.Cfg.RateLimitPerSecond, d.Cfg.RateLimitBurst))
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Browsing is public; the detail route resolves a bearer token when
		// present so view dedup can tell identified viewers apart.
		public.GET("/properties", propertyHandler.SearchProperties)
		public.GET("/properties/:id", middleware.OptionalAuthMiddleware(d.Cfg), propertyHandler.GetProperty)
		public.GET("/properties/:id/reviews", reviewHandler.GetPropertyReviews)
		public.GET("/faqs", faqHandler.ListFAQs)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(d.Cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Listing management (owner side)
		propertyRoutes := private.Group("/properties")
		{
			propertyRoutes.POST("", middleware.CapabilityMiddleware(models.CapListProperty), propertyHandler.CreateProperty)
			propertyRoutes.GET("/mine", middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleAdmin), propertyHandler.GetMyProperties)
			propertyRoutes.PUT("/:id", propertyHandler.UpdateProperty)         // ownership checked in handler
			propertyRoutes.PATCH("/:id/archive", propertyHandler.ArchiveProperty)
			propertyRoutes.PATCH("/:id/restore", propertyHandler.RestoreProperty)
		}

		// Favorites
		favoriteRoutes := private.Group("/favorites")
		{
			favoriteRoutes.POST("/:id", favoriteHandler.AddFavorite)
			favoriteRoutes.DELETE("/:id", favoriteHandler.RemoveFavorite)
			favoriteRoutes.GET("", favoriteHandler.GetMyFavorites)
		}

		// Enquiries
		enquiryRoutes := private.Group("/enquiries")
		{
			enquiryRoutes.POST("", enquiryHandler.CreateEnquiry)
			enquiryRoutes.GET("", enquiryHandler.GetMyEnquiries)
			enquiryRoutes.POST("/:id/replies", enquiryHandler.ReplyToEnquiry)
			enquiryRoutes.PATCH("/:id/close", enquiryHandler.CloseEnquiry)
		}

		// Bookings
		bookingRoutes := private.Group("/bookings")
		{
			bookingRoutes.POST("", middleware.CapabilityMiddleware(models.CapBookProperty), bookingHandler.CreateBooking)
			bookingRoutes.GET("", bookingHandler.GetMyBookings)
			bookingRoutes.PATCH("/:id/status", bookingHandler.UpdateBookingStatus)
		}

		// Reviews
		reviewRoutes := private.Group("/reviews")
		{
			reviewRoutes.POST("", middleware.CapabilityMiddleware(models.CapReviewProperty), reviewHandler.CreateReview)
			reviewRoutes.PUT("/:id", reviewHandler.UpdateReview)
			reviewRoutes.DELETE("/:id", reviewHandler.DeleteReview)
			reviewRoutes.PATCH("/:id/hide", middleware.RoleAuthMiddleware(models.RoleAdmin), reviewHandler.HideReview)
		}

		// Appointments (property visits and expert consultations)
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}

		// Owner analytics
		analyticsRoutes := private.Group("/analytics")
		analyticsRoutes.Use(middleware.CapabilityMiddleware(models.CapViewAnalytics))
		{
			analyticsRoutes.GET("/properties/:id", analyticsHandler.GetPropertyStats)
			analyticsRoutes.GET("/portfolio", analyticsHandler.GetPortfolioStats)
		}

		// Experts and consultations
		expertRoutes := private.Group("/experts")
		{
			expertRoutes.GET("", expertHandler.ListExperts)
			expertRoutes.GET("/:id", expertHandler.GetExpert)
			expertRoutes.PUT("/profile", middleware.CapabilityMiddleware(models.CapOfferConsultation), expertHandler.UpsertProfile)
		}

		// Chat
		chatRoutes := private.Group("/chat")
		{
			chatRoutes.POST("/send", chatHandler.SendMessage)
			chatRoutes.GET("/conversations", chatHandler.GetConversations)
			chatRoutes.GET("/with/:userId", chatHandler.GetConversation)
			chatRoutes.PATCH("/:messageId/read", chatHandler.MarkMessageAsRead)
		}

		// Support tickets
		ticketRoutes := private.Group("/tickets")
		{
			ticketRoutes.POST("", supportHandler.CreateTicket)
			ticketRoutes.GET("", supportHandler.GetMyTickets)
			ticketRoutes.POST("/:id/messages", supportHandler.AddTicketMessage)
			ticketRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleAdmin), supportHandler.UpdateTicketStatus)
		}

		// Admin user management and moderation
		adminRoutes := private.Group("/users")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("", userHandler.GetUsers)
			adminRoutes.GET("/:id", userHandler.GetUserByID)
			adminRoutes.PATCH("/:id/deactivate", userHandler.DeactivateUser)
			adminRoutes.PATCH("/:id/reactivate", userHandler.ReactivateUser)
		}

		// FAQ management
		faqAdmin := private.Group("/faqs")
		faqAdmin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			faqAdmin.POST("", faqHandler.CreateFAQ)
			faqAdmin.PUT("/:id", faqHandler.UpdateFAQ)
			faqAdmin.DELETE("/:id", faqHandler.DeleteFAQ)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	if d.Registry != nil {
		router.GET("/metrics", gin.WrapH(observability.MetricsHandler(d.Registry)))
	}
}
