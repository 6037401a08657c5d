package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hmngo/Coursea/config"
	"github.com/hmngo/Coursea/database"
	adminctrl "github.com/hmngo/Coursea/internal/controller/admin"
	userctrl "github.com/hmngo/Coursea/internal/controller/user"
	"github.com/hmngo/Coursea/internal/logger"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/hmngo/Coursea/internal/repository"
	"github.com/hmngo/Coursea/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Coursea LMS API
// @version 1.0
// @description Course enrollment, test attempt recording and certificate workflow API.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewCourseRepository,
			repository.NewTestRepository,
			repository.NewEnrollmentRepository,
			repository.NewTestAttemptRepository,
		),

		fx.Provide(
			service.NewScoringService,
			service.NewCourseService,
			service.NewTestService,
			service.NewEnrollmentService,
			service.NewCertificateService,
			service.NewSubmissionService,
		),

		fx.Provide(
			adminctrl.NewCourseController,
			adminctrl.NewCertificateController,
			userctrl.NewAttemptController,
			userctrl.NewEnrollmentController,
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
	r := gin.New()

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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	courseAdminCtrl *adminctrl.CourseController,
	certAdminCtrl *adminctrl.CertificateController,
	attemptCtrl *userctrl.AttemptController,
	enrollmentCtrl *userctrl.EnrollmentController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/courses", courseAdminCtrl.CreateCourse)
		adminAPIGroup.POST("/courses/:course_id/tests", courseAdminCtrl.CreateTest)

		certGroup := adminAPIGroup.Group("/certificates")
		certGroup.GET("/requests", certAdminCtrl.GetCertificateRequests)
		certGroup.POST("/:enrollment_id/approve", certAdminCtrl.ApproveCertificate)
		certGroup.POST("/:enrollment_id/reject", certAdminCtrl.RejectCertificate)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/courses", enrollmentCtrl.GetAllCourses)
		userAPIGroup.GET("/courses/:course_id", enrollmentCtrl.GetCourse)
		userAPIGroup.GET("/courses/:course_id/tests", enrollmentCtrl.GetCourseTests)

		userAPIGroup.POST("/enrollments", enrollmentCtrl.Enroll)
		userAPIGroup.GET("/users/:user_id/enrollments", enrollmentCtrl.GetUserEnrollments)
		userAPIGroup.POST("/enrollments/:enrollment_id/certificate/request", enrollmentCtrl.RequestCertificate)
		userAPIGroup.GET("/certificates/approved", enrollmentCtrl.GetApprovedCertificates)

		userAPIGroup.GET("/tests/:test_id", attemptCtrl.GetTestDetails)
		userAPIGroup.POST("/tests/:test_id/attempts", attemptCtrl.SubmitTestAttempt)
		userAPIGroup.GET("/tests/:test_id/retake", attemptCtrl.GetRetakeStatus)
		userAPIGroup.GET("/test-attempts/:attempt_id", attemptCtrl.GetTestAttempt)
		userAPIGroup.GET("/users/:user_id/test-attempts", attemptCtrl.GetUserTestAttempts)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Coursea API server starting on port %s", cfg.Server.Port)
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
		&model.Course{},
		&model.Test{},
		&model.Question{},
		&model.Enrollment{},
		&model.TestAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}
