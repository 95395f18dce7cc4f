package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge/config"
	"github.com/quizforge/quizforge/database"
	_ "github.com/quizforge/quizforge/docs" // Swagger docs - auto-generated
	adminctrl "github.com/quizforge/quizforge/internal/controller/admin"
	userctrl "github.com/quizforge/quizforge/internal/controller/user"
	"github.com/quizforge/quizforge/internal/logger"
	"github.com/quizforge/quizforge/internal/repository"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/internal/taskstore"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizForge API
// @version 1.0
// @description Quiz catalog, question selection and AI-assisted answer grading.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,    // Provides *gorm.DB
			database.NewRedisClient, // Provides *redis.Client
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewReportedIssueRepository,
			repository.NewCategoryRepository,
			repository.NewTagRepository,
		),

		// Services Layer
		fx.Provide(
			taskstore.NewRedisStore,
			service.NewCatalogService,
			service.NewQuestionSelectionService,
			service.NewGeminiGrader,
			service.NewGradingService,
			service.NewIssueService,
			service.NewAdminTestService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewQuizController,
			userctrl.NewGradingController,
			userctrl.NewIssueController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route Gin's request log through zerolog so all output shares one format.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *userctrl.QuizController,
	gradingCtrl *userctrl.GradingController,
	issueCtrl *userctrl.IssueController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/tests", quizCtrl.ListTests)
		api.GET("/questions", quizCtrl.GetQuestions)

		api.POST("/answers/check", gradingCtrl.CheckAnswer)
		api.GET("/answers/check/:task_id", gradingCtrl.GetGradingResult)

		api.POST("/issues", issueCtrl.ReportIssue)
	}

	admin := router.Group("/api/v1/admin")
	{
		admin.POST("/tests", adminCtrl.CreateTest)
		admin.GET("/issues", adminCtrl.ListIssues)
		admin.PATCH("/issues/:issue_id/status", adminCtrl.UpdateIssueStatus)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
