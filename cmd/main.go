package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokkas/config"
	"github.com/lshigami/Quokkas/database"
	_ "github.com/lshigami/Quokkas/docs" // Swagger docs - auto-generated
	"github.com/lshigami/Quokkas/internal/controller"
	"github.com/lshigami/Quokkas/internal/extract"
	"github.com/lshigami/Quokkas/internal/logger"
	"github.com/lshigami/Quokkas/internal/model"
	"github.com/lshigami/Quokkas/internal/repository"
	"github.com/lshigami/Quokkas/internal/service"
	"github.com/lshigami/Quokkas/internal/session"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Document Quiz API
// @version 1.0
// @description Turn uploaded documents (PDF, spreadsheet, image) into AI-generated quizzes, take them, and review scored results.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewSessionManager,
		),

		// Extraction Pipeline
		fx.Provide(
			extract.NewContentExtractor,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuizGenerationService,
			service.NewQuizService,
			service.NewSessionService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewQuizController,
			controller.NewSessionController,
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

func NewSessionManager() *session.Manager {
	return session.NewManager(session.DefaultAdvanceDelay)
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *controller.QuizController,
	sessionCtrl *controller.SessionController,
) {
	api := router.Group("/api/v1")
	{
		quizzes := api.Group("/quizzes")
		quizzes.POST("", quizCtrl.GenerateQuiz)
		quizzes.GET("", quizCtrl.GetAllQuizzes)
		quizzes.GET("/:quiz_id", quizCtrl.GetQuizDetails)
		quizzes.DELETE("/:quiz_id", quizCtrl.DeleteQuiz)
		quizzes.GET("/:quiz_id/attempts", quizCtrl.GetQuizAttempts)
		quizzes.POST("/:quiz_id/sessions", sessionCtrl.StartSession)

		sessions := api.Group("/sessions")
		sessions.GET("/:session_id", sessionCtrl.GetSessionState)
		sessions.POST("/:session_id/answers", sessionCtrl.SubmitAnswer)
		sessions.POST("/:session_id/next", sessionCtrl.GoNext)
		sessions.POST("/:session_id/previous", sessionCtrl.GoPrevious)
		sessions.POST("/:session_id/finish", sessionCtrl.Finish)
		sessions.GET("/:session_id/review", sessionCtrl.Review)
		sessions.DELETE("/:session_id", sessionCtrl.ExitSession)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Document Quiz API server starting on port %s", cfg.Server.Port)
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
	err := db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
