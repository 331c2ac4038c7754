package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/config"
	"github.com/lshigami/edugress/database"
	_ "github.com/lshigami/edugress/docs" // Swagger docs
	"github.com/lshigami/edugress/internal/controller"
	adminctrl "github.com/lshigami/edugress/internal/controller/admin"
	userctrl "github.com/lshigami/edugress/internal/controller/user"
	"github.com/lshigami/edugress/internal/logger"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/lshigami/edugress/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Edugress Development API
// @version 1.0
// @description Local backend for the edugress terminal client: tests with per-question grading, results and the coin store.
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	app := fx.New(
		fx.Supply(cfg),

		// Core
		fx.Provide(
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewUserTestRepository,
			repository.NewAnswerRepository,
			repository.NewStoreRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewScoreConverterService,
			service.NewGeminiLLMService,
			service.NewGradingService,
			service.NewTestService,
			service.NewAdminTestService,
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewStoreService,
			service.NewSeedService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewUserTestController,
			userctrl.NewStoreController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	app.Run()
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

// Controllers groups everything registerRoutes mounts.
type Controllers struct {
	fx.In

	Auth      service.AuthService
	AuthCtrl  *userctrl.AuthController
	TestCtrl  *userctrl.UserTestController
	StoreCtrl *userctrl.StoreController
	AdminCtrl *adminctrl.AdminTestController
}

func registerRoutes(router *gin.Engine, c Controllers) {
	router.POST("/login/", c.AuthCtrl.Login)

	api := router.Group("/", controller.RequireUser(c.Auth))
	api.GET("/user/", c.AuthCtrl.Me)

	tests := api.Group("/courses/tests")
	{
		tests.GET("/", c.TestCtrl.GetAllTests)
		tests.POST("/start/", c.TestCtrl.StartTest)
		tests.GET("/user/answer/", c.TestCtrl.GetQuestions)
		tests.PATCH("/answer/", c.TestCtrl.SubmitAnswer)
		tests.POST("/end/", c.TestCtrl.EndTest)
		tests.GET("/results/:id/", c.TestCtrl.GetResult)
		tests.PATCH("/answer/:id/score", controller.RequireGrader(), c.AdminCtrl.OverrideScore)
	}

	store := api.Group("/store")
	{
		store.GET("/", c.StoreCtrl.ListProducts)
		store.GET("/cart/", c.StoreCtrl.GetCart)
		store.PUT("/cart/", c.StoreCtrl.UpdateCart)
		store.POST("/checkout/", c.StoreCtrl.Checkout)
		store.GET("/purchases/", c.StoreCtrl.ListPurchases)
	}

	admin := api.Group("/admin", controller.RequireGrader())
	{
		admin.POST("/tests", c.AdminCtrl.CreateTest)
		admin.GET("/tests/:id", c.AdminCtrl.GetTest)
		admin.POST("/store/products", c.AdminCtrl.CreateStoreProduct)
	}
}

// RegisterRoutesAndStartServer mounts the API and ties the HTTP server to
// the fx lifecycle.
func RegisterRoutesAndStartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, c Controllers) {
	registerRoutes(router, c)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Edugress dev server starting on port %s", cfg.Server.Port)
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
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.UserTest{},
		&model.QuestionAnswer{},
		&model.StoreProduct{},
		&model.CartItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedDB(seed service.SeedService) error {
	if err := seed.Seed(); err != nil {
		log.Error().Err(err).Msg("Seeding demo data failed")
		return err
	}
	return nil
}
