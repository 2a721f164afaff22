package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/dmssspace/na-predele--crm-sub000/internal/auth"
	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
	"github.com/dmssspace/na-predele--crm-sub000/internal/blog"
	"github.com/dmssspace/na-predele--crm-sub000/internal/booking"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"
	"github.com/dmssspace/na-predele--crm-sub000/internal/config"
	"github.com/dmssspace/na-predele--crm-sub000/internal/customer"
	"github.com/dmssspace/na-predele--crm-sub000/internal/email"
	"github.com/dmssspace/na-predele--crm-sub000/internal/media"
	"github.com/dmssspace/na-predele--crm-sub000/internal/schedule"
	"github.com/dmssspace/na-predele--crm-sub000/internal/ticket"
	"github.com/dmssspace/na-predele--crm-sub000/internal/trainer"
	"github.com/dmssspace/na-predele--crm-sub000/internal/user"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, c *cache.Cache, emailService *email.Service, uploader media.Uploader) *Server {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	availabilityHandler := availability.NewHandler(db, c)
	scheduleHandler := schedule.NewHandler(db, c, cfg.ScheduleHorizonDays)
	ticketHandler := ticket.NewHandler(db)
	customerHandler := customer.NewHandler(db)
	trainerHandler := trainer.NewHandler(db)
	blogHandler := blog.NewHandler(db)

	bookingService := booking.NewService(
		booking.NewRepository(db),
		schedule.NewRepository(db),
		customer.NewRepository(db),
		ticket.NewService(ticket.NewRepository(db)),
		emailService,
	)
	bookingHandler := booking.NewHandler(bookingService, c)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	public := router.Group("/")
	public.Use(auth.OptionalAuth(cfg.JWTSecret))
	{
		public.POST("/auth/login", userHandler.Login)
		public.POST("/auth/refresh", userHandler.RefreshToken)
		public.GET("/posts", blogHandler.List)
		public.GET("/posts/:postID", blogHandler.Get)
	}

	staff := router.Group("/")
	staff.Use(authMiddleware, auth.RequireStaff())
	{
		staff.GET("/auth/me", userHandler.GetMe)

		staff.GET("/schedule", scheduleHandler.GetSchedule)
		staff.GET("/schedule/availability", availabilityHandler.List)
		staff.GET("/schedule/availability/disabled", availabilityHandler.Disabled)

		staff.POST("/schedule/events/once", bookingHandler.BookOnce)
		staff.POST("/schedule/sessions/:id/book", bookingHandler.BookSession)
		staff.GET("/schedule/sessions/:id/bookings", bookingHandler.ListBySession)
		staff.POST("/schedule/bookings/:id/visit", bookingHandler.RecordVisit)
		staff.POST("/schedule/bookings/:id/cancel", bookingHandler.Cancel)
		staff.GET("/visits", bookingHandler.ListVisits)

		staff.POST("/tickets", ticketHandler.Issue)
		staff.POST("/tickets/:ticketID/cancel", ticketHandler.Cancel)

		staff.POST("/customers", customerHandler.Create)
		staff.GET("/customers", customerHandler.List)
		staff.GET("/customers/:customerID", customerHandler.Get)
		staff.PUT("/customers/:customerID", customerHandler.Update)
		staff.GET("/customers/:customerID/tickets", ticketHandler.ListByCustomer)

		staff.GET("/trainers", trainerHandler.List)

		if uploader != nil {
			mediaHandler := media.NewHandler(uploader)
			staff.POST("/media", mediaHandler.Upload)
			// Wildcard: cloudinary public ID включает папку ("napredele/abc").
			staff.DELETE("/media/*publicID", mediaHandler.Delete)
		}
	}

	admin := router.Group("/")
	admin.Use(authMiddleware, auth.RequireAdmin())
	{
		admin.POST("/auth/register", userHandler.Register)

		admin.PUT("/schedule/availability", availabilityHandler.Upsert)
		admin.POST("/schedule/events", scheduleHandler.CreateRecurringEvent)

		admin.POST("/trainers", trainerHandler.Create)
		admin.POST("/trainers/:trainerID/deactivate", trainerHandler.Deactivate)

		admin.POST("/posts", blogHandler.Create)
		admin.PUT("/posts/:postID", blogHandler.Update)
		admin.DELETE("/posts/:postID", blogHandler.Delete)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// Router exposes the underlying engine for tests and custom http.Server
// setups.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
