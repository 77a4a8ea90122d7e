package authController_test

import (
	"bytes"
	"certportal/config"
	"certportal/database"
	"certportal/models"
	authRoutes "certportal/routers/authRoutes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:     "test-secret",
		SaltRound:  4,
		AppBaseURL: "http://localhost:3000",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CertificateRequest{}, &models.Template{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func registrationPayload() map[string]string {
	return map[string]string{
		"name":             "Student A",
		"email":            "student.a@college.edu",
		"password":         "password123",
		"department":       "CSE",
		"universityRollNo": "2100001",
		"collegeRollNo":    "C2100001",
	}
}

func TestRegisterCreatesStudent(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "student.a@college.edu").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "2100001", user.Username) // username is the university roll number
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterRoleCannotBeClientSupplied(t *testing.T) {
	app := setupApp(t)

	payload := registrationPayload()
	payload["role"] = models.RoleAdmin

	resp := doJSON(t, app, "POST", "/auth/register", payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "student.a@college.edu").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestRegisterConflictOnDuplicateRollNo(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload := registrationPayload()
	payload["email"] = "someone.else@college.edu"
	payload["collegeRollNo"] = "C2100099"

	resp = doJSON(t, app, "POST", "/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterConflictOnDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload := registrationPayload()
	payload["universityRollNo"] = "2100099"
	payload["collegeRollNo"] = "C2100099"

	resp = doJSON(t, app, "POST", "/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", map[string]string{
		"name": "X",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginIssuesToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/auth/login", map[string]string{
		"username": "2100001",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.NotEmpty(t, envelope.Data.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/auth/login", map[string]string{
		"username": "2100001",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/login", map[string]string{
		"username": "0000000",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/auth/forgot/password", map[string]string{
		"email": "student.a@college.edu",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "student.a@college.edu").First(&user).Error)
	assert.NotEmpty(t, user.ForgotPasswordToken)
	require.NotNil(t, user.ForgotPasswordTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *user.ForgotPasswordTokenExpiry, time.Minute)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/forgot/password", map[string]string{
		"email": "nobody@college.edu",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func seedResetToken(t *testing.T, email, token string, expiry time.Time) {
	t.Helper()

	hashed := sha256.Sum256([]byte(token))
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"forgot_password_token":        hex.EncodeToString(hashed[:]),
			"forgot_password_token_expiry": expiry,
		}).Error)
}

func TestResetPasswordWithValidToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	seedResetToken(t, "student.a@college.edu", "raw-reset-token", time.Now().Add(10*time.Minute))

	resp = doJSON(t, app, "PUT", "/auth/reset/password/raw-reset-token", map[string]string{
		"password": "newpassword456",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "student.a@college.edu").First(&user).Error)
	assert.Empty(t, user.ForgotPasswordToken)
	assert.Nil(t, user.ForgotPasswordTokenExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword456")))
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", registrationPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	seedResetToken(t, "student.a@college.edu", "raw-reset-token", time.Now().Add(-time.Minute))

	resp = doJSON(t, app, "PUT", "/auth/reset/password/raw-reset-token", map[string]string{
		"password": "newpassword456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "PUT", "/auth/reset/password/not-a-token", map[string]string{
		"password": "newpassword456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
