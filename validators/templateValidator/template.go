package templateValidator

import (
	"certportal/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateTemplate validator middleware
func CreateTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			TemplateID string `json:"templateId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if strings.TrimSpace(reqData.TemplateID) == "" {
			errors["templateId"] = "Template ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateTemplate validator middleware
func UpdateTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID         uint   `json:"id"`
			Name       string `json:"name"`
			TemplateID string `json:"templateId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ID == 0 {
			errors["id"] = "Template ID is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if strings.TrimSpace(reqData.TemplateID) == "" {
			errors["templateId"] = "Template ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
