package server

import (
	"net/http"

	"backend/internal/config"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	log    *zap.Logger
	reqLog *logrus.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    log,
		reqLog: logrus.New(),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	signer := token.NewSigner(s.cfg.AccessTokenSecret, s.cfg.RefreshTokenHashSecret, s.cfg.AccessTTL())

	// Repositories
	userRepo := repository.NewUserRepository(s.db, s.log)
	sessionRepo := repository.NewSessionRepository(s.db, s.log)
	badanPublikRepo := repository.NewBadanPublikRepository(s.db, s.log)
	assignmentRepo := repository.NewAssignmentRepository(s.db, s.log)
	reportRepo := repository.NewReportRepository(s.db, s.log)
	emailLogRepo := repository.NewEmailLogRepository(s.db, s.log)
	questionRepo := repository.NewQuestionRepository(s.db, s.log)
	resetRepo := repository.NewResetRepository(s.db, s.log)

	// Services
	authService := service.NewAuthService(userRepo, sessionRepo, signer, s.cfg, s.log)
	userService := service.NewUserService(userRepo, s.log)
	accessService := service.NewAccessService(assignmentRepo)
	questionService := service.NewQuestionService(questionRepo, s.log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, s.cfg, s.log)
	userHandler := handler.NewUserHandler(userService, s.log)
	badanPublikHandler := handler.NewBadanPublikHandler(badanPublikRepo, accessService, s.log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentRepo, badanPublikRepo, s.log)
	reportHandler := handler.NewReportHandler(reportRepo, questionRepo, accessService, s.log)
	emailLogHandler := handler.NewEmailLogHandler(emailLogRepo, accessService, s.log)
	questionHandler := handler.NewQuestionHandler(questionService, s.log)
	resetHandler := handler.NewResetHandler(resetRepo, questionService, s.log)

	requireAuth := middleware.RequireAuth(signer, sessionRepo, s.cfg.SessionTTL(), s.log)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	s.router.Use(middleware.RequestLogger(signer, s.reqLog))

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth endpoints. Refresh and logout authenticate via the refresh
	// cookie itself, not the (possibly expired) access token.
	auth := s.router.Group("/auth")
	{
		auth.POST("/login",
			middleware.LoginRateLimiter(s.cfg.Auth.LoginRateLimit.PerMinute, s.cfg.Auth.LoginRateLimit.Burst),
			authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/csrf", authHandler.CSRF)
	}

	api := s.router.Group("/")
	api.Use(requireAuth, middleware.RequireCSRF())
	{
		api.GET("/badan-publik", badanPublikHandler.List)
		api.GET("/badan-publik/:id", badanPublikHandler.Get)
		api.POST("/badan-publik", requireAdmin, badanPublikHandler.Create)
		api.PUT("/badan-publik/:id", badanPublikHandler.Update)
		api.DELETE("/badan-publik/:id", requireAdmin, badanPublikHandler.Delete)

		api.GET("/badan-publik/:id/emails", emailLogHandler.ListByBadanPublik)
		api.POST("/emails", emailLogHandler.Record)

		api.GET("/assignments/me", assignmentHandler.ListMine)
		api.GET("/assignments", requireAdmin, assignmentHandler.ListAll)
		api.GET("/assignments/history/all", requireAdmin, assignmentHandler.History)
		api.POST("/assignments", requireAdmin, assignmentHandler.Assign)

		api.GET("/reports/me", reportHandler.ListMine)
		api.GET("/reports/:id", reportHandler.Get)
		api.POST("/reports", reportHandler.Create)
		api.GET("/reports", requireAdmin, reportHandler.ListAll)

		api.GET("/questions", questionHandler.List)
		api.POST("/questions", requireAdmin, questionHandler.Create)
		api.DELETE("/questions/:id", requireAdmin, questionHandler.Delete)
		api.POST("/questions/reset", requireAdmin, questionHandler.Reset)

		api.POST("/reset", requireAdmin, resetHandler.Reset)

		api.POST("/users", requireAdmin, userHandler.CreateUser)
		api.GET("/users", requireAdmin, userHandler.ListUsers)
	}
}

func (s *Server) Run(addr string) error {
	s.log.Info("Server starting", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
