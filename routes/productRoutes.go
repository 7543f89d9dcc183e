package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController, requireAuth, requireAdmin gin.HandlerFunc) {
	group := server.Group("/products")
	group.Use(requireAuth)
	{
		group.GET("", products.GetProducts)
		group.GET("/:id", products.GetProduct)

		admin := group.Group("")
		admin.Use(requireAdmin)
		{
			admin.POST("", products.CreateProduct)
			admin.PUT("/:id", products.UpdateProduct)
			admin.DELETE("/:id", products.DeleteProduct)
		}
	}
}
