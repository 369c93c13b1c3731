package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"cropgenesis/cmd/fx/auth_fx"
	"cropgenesis/cmd/fx/config_fx"
	"cropgenesis/cmd/fx/controllers_fx"
	"cropgenesis/cmd/fx/cropplan_fx"
	"cropgenesis/cmd/fx/db_fx"
	"cropgenesis/cmd/fx/diagnosis_fx"
	"cropgenesis/cmd/fx/gemini_fx"
	"cropgenesis/cmd/fx/history_fx"
	"cropgenesis/cmd/fx/tts_fx"
	"cropgenesis/cmd/fx/upload_fx"
	"cropgenesis/internal/api/controllers"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/middleware"
	"cropgenesis/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		upload_fx.Module,
		gemini_fx.Module,
		tts_fx.Module,

		auth_fx.Module,
		cropplan_fx.Module,
		diagnosis_fx.Module,
		history_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on port %s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	authController *controllers.AuthController,
	planController *controllers.CropPlanController,
	diagnosisController *controllers.DiagnosisController,
	historyController *controllers.HistoryController,
) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterRoutes(r, authController, planController, diagnosisController, historyController)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	planController *controllers.CropPlanController,
	diagnosisController *controllers.DiagnosisController,
	historyController *controllers.HistoryController) {

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)

	profileGroup := r.Group("/api/auth", middleware.JWTAuthMiddleware())
	profileGroup.GET("/profile", authController.GetProfile)
	profileGroup.PUT("/profile", authController.UpdateProfile)
	profileGroup.PUT("/password", authController.ChangePassword)

	planGroup := r.Group("/api/cropplan", middleware.JWTAuthMiddleware())
	planGroup.GET("/status", planController.Status)
	planGroup.GET("/stats/summary", planController.Stats)
	planGroup.POST("/generate", planController.Generate)
	planGroup.POST("/followup", planController.FollowUp)
	planGroup.GET("", planController.List)
	planGroup.GET("/:id", planController.GetByID)
	planGroup.DELETE("/:id", planController.Delete)

	diagnosisGroup := r.Group("/api/diagnosis", middleware.JWTAuthMiddleware())
	diagnosisGroup.GET("/stats/summary", diagnosisController.Stats)
	diagnosisGroup.GET("/diseases/list", diagnosisController.Diseases)
	diagnosisGroup.POST("/upload", diagnosisController.Upload)
	diagnosisGroup.POST("/followup", diagnosisController.FollowUp)
	diagnosisGroup.GET("", diagnosisController.List)
	diagnosisGroup.GET("/:id", diagnosisController.GetByID)
	diagnosisGroup.DELETE("/:id", diagnosisController.Delete)

	historyGroup := r.Group("/api/history", middleware.JWTAuthMiddleware())
	historyGroup.GET("/get", historyController.List)
	historyGroup.GET("/stats", historyController.Stats)
	historyGroup.GET("/similar/:type/:id", historyController.Similar)
	historyGroup.DELETE("/clear", historyController.Clear)
	historyGroup.DELETE("/delete/:type/:id", historyController.Delete)
}
