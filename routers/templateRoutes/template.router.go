package templateRoutes

import (
	templateControllers "certportal/controllers/templateController"
	"certportal/middleware"
	"certportal/models"
	templateValidators "certportal/validators/templateValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupTemplateRoutes(app *fiber.App) {
	templateGroup := app.Group("/template")

	templateGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent, models.RoleAdmin), templateControllers.ListTemplates)
	templateGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), templateValidators.CreateTemplate(), templateControllers.CreateTemplate)
	templateGroup.Put("/update", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), templateValidators.UpdateTemplate(), templateControllers.UpdateTemplate)
}
