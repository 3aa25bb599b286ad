package authRoutes

import (
	authController "educonnect/controllers/auth"
	authValidator "educonnect/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Patch("/verify/email", authValidator.VerifyEmail(), authController.VerifyEmail)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
}
