package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController, requireAuth gin.HandlerFunc) {
	group := server.Group("/orders")
	group.Use(requireAuth)
	{
		group.POST("", orders.CreateOrder)
		group.GET("", orders.GetOrders)
		group.GET("/:id", orders.GetOrder)
		group.GET("/user/:userId", orders.GetOrdersByUser)
		group.PUT("/:id", orders.UpdateOrder)
		group.DELETE("/:id", orders.DeleteOrder)
	}
}
