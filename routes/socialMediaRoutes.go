package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func SocialMediaRoutes(server *gin.Engine, socialMedia *controllers.SocialMediaController, requireAuth, requireAdmin gin.HandlerFunc) {
	group := server.Group("/social-media")
	group.Use(requireAuth)
	{
		group.GET("", socialMedia.GetSocialMedia)
		group.GET("/:id", socialMedia.GetSocialMediaByID)

		admin := group.Group("")
		admin.Use(requireAdmin)
		{
			admin.POST("", socialMedia.CreateSocialMedia)
			admin.PUT("/:id", socialMedia.UpdateSocialMedia)
			admin.DELETE("/:id", socialMedia.DeleteSocialMedia)
		}
	}
}
