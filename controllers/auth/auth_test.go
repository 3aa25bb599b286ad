package authController

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"educonnect/config"
	"educonnect/database"
	"educonnect/models"
	authValidator "educonnect/validators/auth"
)

func setupLoginApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// In-memory sqlite is per-connection, keep a single one.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: bcrypt.MinCost}

	app := fiber.New()
	app.Post("/login", authValidator.Login(), Login)
	return app
}

func createTestUser(t *testing.T, email string, verified bool) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:            "Test Student",
		Email:           email,
		Password:        string(hash),
		Role:            models.RoleStudent,
		IsEmailVerified: verified,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
}

func postLogin(t *testing.T, app *fiber.App, email string) int {
	body := `{"email":"` + email + `","password":"secret123"}`
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestLogin_RejectsUnverifiedEmail(t *testing.T) {
	app := setupLoginApp(t)
	createTestUser(t, "unverified@example.com", false)

	if got := postLogin(t, app, "unverified@example.com"); got != fiber.StatusForbidden {
		t.Fatalf("expected %d for unverified email, got %d", fiber.StatusForbidden, got)
	}
}

func TestLogin_AllowsVerifiedEmail(t *testing.T) {
	app := setupLoginApp(t)
	createTestUser(t, "verified@example.com", true)

	if got := postLogin(t, app, "verified@example.com"); got != fiber.StatusOK {
		t.Fatalf("expected %d for verified email, got %d", fiber.StatusOK, got)
	}
}
