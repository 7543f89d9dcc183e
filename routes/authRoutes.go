package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController, limiter, requireAuth gin.HandlerFunc) {
	server.POST("/register", limiter, auth.Register)
	server.POST("/login", limiter, auth.Login)
	server.POST("/logout", requireAuth, auth.Logout)
}
