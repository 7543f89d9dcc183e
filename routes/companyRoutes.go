package routes

import (
	"github.com/Voxodinson/webass-api/controllers"
	"github.com/gin-gonic/gin"
)

func CompanyRoutes(server *gin.Engine, companies *controllers.CompanyController, requireAuth, requireAdmin gin.HandlerFunc) {
	group := server.Group("/companies")
	group.Use(requireAuth)
	{
		group.GET("", companies.GetCompanies)
		group.GET("/:id", companies.GetCompany)

		admin := group.Group("")
		admin.Use(requireAdmin)
		{
			admin.POST("", companies.CreateCompany)
			admin.PUT("/:id", companies.UpdateCompany)
			admin.DELETE("/:id", companies.DeleteCompany)
		}
	}
}
