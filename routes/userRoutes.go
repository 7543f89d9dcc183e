package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, users *controllers.UserController, requireAuth gin.HandlerFunc) {
	authorized := server.Group("/")
	authorized.Use(requireAuth)
	{
		authorized.GET("/users", users.GetUsers)
		authorized.GET("/users/:id", users.GetUser)
		authorized.POST("/update/:id", users.UpdateUser)
		authorized.DELETE("/users/:id", users.DeleteUser)
	}
}
