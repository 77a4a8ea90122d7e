package authController

import (
	"certportal/config"
	"certportal/database"
	"certportal/middleware"
	"certportal/models"
	"certportal/utils"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		Department       string `json:"department"`
		UniversityRollNo string `json:"universityRollNo"`
		CollegeRollNo    string `json:"collegeRollNo"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// The university roll number doubles as the login username
	username := reqData.UniversityRollNo

	// Check unique fields before insert
	if err := db.Where("email = ? OR username = ?", reqData.Email, username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User with this email or university roll number already exists!", nil)
	}
	if err := db.Where("college_roll_no = ?", reqData.CollegeRollNo).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User with this college roll number already exists!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:             reqData.Name,
		Username:         username,
		Email:            reqData.Email,
		Password:         string(hashedPassword),
		Department:       reqData.Department,
		UniversityRollNo: reqData.UniversityRollNo,
		CollegeRollNo:    reqData.CollegeRollNo,
		Role:             models.RoleStudent, // admins are provisioned out of band
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	var result *gorm.DB

	// Retrieve user by email or username
	if reqData.Email != "" {
		result = database.Database.Db.Where("email = ?", reqData.Email).First(&user)
	} else {
		result = database.Database.Db.Where("username = ?", reqData.Username).First(&user)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Department, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func ForgotPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Email doesn't exist.", nil)
	}

	// Random token goes to the user, its sha256 hash goes to the database
	tokenBytes := make([]byte, 20)
	if _, err := rand.Read(tokenBytes); err != nil {
		log.Printf("Error generating reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	resetToken := hex.EncodeToString(tokenBytes)

	hashed := sha256.Sum256([]byte(resetToken))
	expiry := time.Now().Add(10 * time.Minute)

	user.ForgotPasswordToken = hex.EncodeToString(hashed[:])
	user.ForgotPasswordTokenExpiry = &expiry

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	resetURL := config.AppConfig.AppBaseURL + "/forgot-password/" + resetToken
	utils.SendPasswordResetEmail(user.Email, user.Name, resetURL)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset link sent to your email.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")

	reqData := new(struct {
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	hashed := sha256.Sum256([]byte(token))
	hashedToken := hex.EncodeToString(hashed[:])

	db := database.Database.Db

	var user models.User
	err := db.Where("forgot_password_token = ? AND forgot_password_token_expiry > ?", hashedToken, time.Now()).First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Token is invalid or has expired.", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	user.ForgotPasswordToken = ""
	user.ForgotPasswordTokenExpiry = nil

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error resetting password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successful.", nil)
}
