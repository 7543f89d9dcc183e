package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func DashboardRoutes(server *gin.Engine, dashboard *controllers.DashboardController, requireAuth, requireAdmin gin.HandlerFunc) {
	group := server.Group("/dashboard")
	group.Use(requireAuth, requireAdmin)
	{
		group.GET("/overview", dashboard.GetOverview)
	}
}
