package requestValidator

import (
	"certportal/middleware"
	"certportal/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CreateRequest validator middleware
func CreateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TrainingType   string `json:"trainingType"`
			CompanyName    string `json:"companyName"`
			CompanyAddress string `json:"companyAddress"`
			CompanyEmail   string `json:"companyEmail"`
			CompanyContact string `json:"companyContact"`
			MentorEmail    string `json:"mentorEmail"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.TrainingType) == "" {
			errors["trainingType"] = "Training type is required!"
		}
		if strings.TrimSpace(reqData.CompanyName) == "" {
			errors["companyName"] = "Company name is required!"
		}
		if strings.TrimSpace(reqData.CompanyAddress) == "" {
			errors["companyAddress"] = "Company address is required!"
		}
		if strings.TrimSpace(reqData.CompanyContact) == "" {
			errors["companyContact"] = "Company contact is required!"
		}
		if reqData.CompanyEmail != "" && !isValidEmail(reqData.CompanyEmail) {
			errors["companyEmail"] = "Invalid company email!"
		}
		if reqData.MentorEmail != "" && !isValidEmail(reqData.MentorEmail) {
			errors["mentorEmail"] = "Invalid mentor email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint   `json:"requestId"`
			Status    string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["requestId"] = "Request ID is required!"
		}
		// Pending is never a valid transition target
		if reqData.Status != models.StatusApproved && reqData.Status != models.StatusRejected {
			errors["status"] = "Status must be Approved or Rejected!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
