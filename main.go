package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"educonnect/config"
	"educonnect/database"
	adminRoutes "educonnect/routers/adminRoutes"
	authRoutes "educonnect/routers/authRoutes"
	courseRoutes "educonnect/routers/courseRoutes"
	sessionRoutes "educonnect/routers/sessionRoutes"
	"educonnect/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTutorCourseRoutes(app)
	sessionRoutes.SetupSessionRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeSessionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
