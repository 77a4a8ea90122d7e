package requestRoutes

import (
	requestControllers "certportal/controllers/requestController"
	"certportal/middleware"
	"certportal/models"
	requestValidators "certportal/validators/requestValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupRequestRoutes(app *fiber.App) {
	requestGroup := app.Group("/request")

	requestGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), requestValidators.CreateRequest(), requestControllers.CreateRequest)
	requestGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent, models.RoleAdmin), requestControllers.ListRequests)
	requestGroup.Patch("/status", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), requestValidators.UpdateStatus(), requestControllers.UpdateRequestStatus)
	requestGroup.Post("/offer-letter/:requestId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), requestControllers.UploadOfferLetter)
	requestGroup.Get("/certificate/:requestId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), requestControllers.GenerateCertificate)
}
