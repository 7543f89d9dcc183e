package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func FeedbackRoutes(server *gin.Engine, feedbacks *controllers.FeedbackController, requireAuth gin.HandlerFunc) {
	group := server.Group("/feedbacks")
	group.Use(requireAuth)
	{
		group.GET("", feedbacks.GetFeedbacks)
		group.GET("/:id", feedbacks.GetFeedback)
		group.POST("", feedbacks.CreateFeedback)
		group.PUT("/:id", feedbacks.UpdateFeedback)
		group.DELETE("/:id", feedbacks.DeleteFeedback)
	}
}
