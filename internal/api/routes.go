package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers into the gin engine.
func SetupRoutes(
	router *gin.Engine,
	userHandler *UserHandler,
	planHandler *PlanHandler,
	workoutHandler *WorkoutHandler,
	exerciseHandler *ExerciseHandler,
	userPlanHandler *UserPlanHandler,
	planWorkoutHandler *PlanWorkoutHandler,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/quantity", userHandler.CountUsers)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.GET("/:id/plans_sold", userHandler.GetSoldPlans)
		users.GET("/:id/purchased_plans", userHandler.GetPurchasedPlans)
	}

	plans := router.Group("/plans")
	{
		plans.POST("", planHandler.CreatePlan)
		plans.GET("/quantity", planHandler.CountPlans)
		plans.GET("", planHandler.ListPlans)
		plans.GET("/:id", planHandler.GetPlan)
		plans.PUT("/:id", planHandler.UpdatePlan)
		plans.DELETE("/:id", planHandler.DeletePlan)
	}

	workouts := router.Group("/workouts")
	{
		workouts.POST("", workoutHandler.CreateWorkout)
		workouts.GET("/quantity", workoutHandler.CountWorkouts)
		workouts.GET("", workoutHandler.ListWorkouts)
		workouts.GET("/:id", workoutHandler.GetWorkout)
		workouts.PUT("/:id", workoutHandler.UpdateWorkout)
		workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
	}

	exercises := router.Group("/exercises")
	{
		exercises.POST("", exerciseHandler.CreateExercise)
		exercises.GET("/quantity", exerciseHandler.CountExercises)
		exercises.GET("", exerciseHandler.ListExercises)
		exercises.GET("/:id", exerciseHandler.GetExercise)
		exercises.PUT("/:id", exerciseHandler.UpdateExercise)
		exercises.DELETE("/:id", exerciseHandler.DeleteExercise)
		exercises.POST("/:id/tutorial_upload", exerciseHandler.GetTutorialUploadURL)
		exercises.GET("/:id/tutorial_download", exerciseHandler.GetTutorialDownloadURL)
	}

	userPlans := router.Group("/user_plans")
	{
		userPlans.POST("", userPlanHandler.CreateUserPlan)
		userPlans.GET("/quantity", userPlanHandler.CountUserPlans)
		userPlans.GET("", userPlanHandler.ListUserPlans)
		userPlans.GET("/:id", userPlanHandler.GetUserPlan)
		userPlans.PATCH("/:id/purchase", userPlanHandler.PurchaseUserPlan)
		userPlans.DELETE("/:id", userPlanHandler.DeleteUserPlan)
	}

	planWorkouts := router.Group("/plan_workouts")
	{
		planWorkouts.POST("", planWorkoutHandler.CreatePlanWorkout)
		planWorkouts.GET("/quantity", planWorkoutHandler.CountPlanWorkouts)
		planWorkouts.GET("", planWorkoutHandler.ListPlanWorkouts)
		planWorkouts.GET("/:id", planWorkoutHandler.GetPlanWorkout)
		planWorkouts.DELETE("/:id", planWorkoutHandler.DeletePlanWorkout)
	}
}
