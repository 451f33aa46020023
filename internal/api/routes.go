package api

import (
	"net/http"

	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/metrics"
	"fitsync/training-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Exercises service.ExerciseService
	Workouts  service.WorkoutPlanService
	Diets     service.DietPlanService
	Programs  service.ProgramService
}

// NewRouter builds the gin engine with the global middleware chain and all routes.
func NewRouter(cfg config.Config, services Services, log *logger.Logger) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	router.Use(CorrelationMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RequestLogger(log))

	SetupRoutes(router, cfg.JWT, services, log)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Correlation-ID")
	c.ExposeHeaders = []string{"X-Correlation-ID"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func SetupRoutes(
	router *gin.Engine,
	jwtCfg config.JWTConfig,
	services Services,
	log *logger.Logger,
) {
	exerciseHandler := NewExerciseHandler(services.Exercises, log)
	workoutHandler := NewWorkoutHandler(services.Workouts, log)
	dietHandler := NewDietHandler(services.Diets, log)
	programHandler := NewProgramHandler(services.Programs, log)

	authMiddleware := AuthMiddleware(jwtCfg)
	writers := RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "training-service",
			"timestamp": now(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	protected := router.Group("/api")
	protected.Use(authMiddleware)
	{
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", writers, exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", writers, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", writers, exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/media", writers, exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetMediaURL)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", writers, workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", writers, workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", writers, workoutHandler.DeleteWorkout)
		}

		dietGroup := protected.Group("/diets")
		{
			dietGroup.POST("", writers, dietHandler.CreateDiet)
			dietGroup.GET("", dietHandler.ListDiets)
			dietGroup.GET("/:id", dietHandler.GetDiet)
			dietGroup.PUT("/:id", writers, dietHandler.UpdateDiet)
			dietGroup.DELETE("/:id", writers, dietHandler.DeleteDiet)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", writers, programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id/status", writers, programHandler.UpdateProgramStatus)
			programGroup.POST("/:id/complete", writers, programHandler.CompleteProgram)
		}

		protected.GET("/clients/:client_id/programs/active", programHandler.GetActivePrograms)
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	})
}
