package authRoutes

import (
	authControllers "certportal/controllers/authController"
	authValidators "certportal/validators/authValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/forgot/password", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Put("/reset/password/:token", authValidators.ResetPassword(), authControllers.ResetPassword)
}
