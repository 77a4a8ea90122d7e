package templateController

import (
	"certportal/database"
	"certportal/middleware"
	"certportal/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListTemplates returns the templates visible for a department. An explicit
// ?department= filter wins; an admin with no filter defaults to their own
// department; anyone else gets the full catalog.
func ListTemplates(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	department := c.Query("department")
	if department == "" && user.Role == models.RoleAdmin {
		department = user.Department
	}

	db := database.Database.Db

	var templates []models.Template
	if err := db.Order("name asc").Find(&templates).Error; err != nil {
		log.Printf("Error fetching templates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	if department != "" {
		filtered := make([]models.Template, 0, len(templates))
		for _, t := range templates {
			if t.AppliesTo(department) {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", templates)
}

// CreateTemplate registers a new document template, bound to the creating
// admin's own department.
func CreateTemplate(c *fiber.Ctx) error {
	admin, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name       string `json:"name"`
		TemplateID string `json:"templateId"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	newTemplate := models.Template{
		Name:        reqData.Name,
		TemplateID:  reqData.TemplateID,
		Departments: datatypes.NewJSONSlice([]string{admin.Department}),
	}

	if err := database.Database.Db.Create(&newTemplate).Error; err != nil {
		log.Printf("Error creating template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", newTemplate)
}

// UpdateTemplate edits a template's name and external id. The department set
// is never changed, and admins may only edit templates their department owns.
func UpdateTemplate(c *fiber.Ctx) error {
	admin, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		TemplateID string `json:"templateId"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var template models.Template
	if err := db.Where("id = ?", reqData.ID).First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
		}
		log.Printf("Error fetching template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	// Strict membership: the "All" sentinel widens visibility, not edit rights
	owns := false
	for _, d := range template.Departments {
		if d == admin.Department {
			owns = true
			break
		}
	}
	if !owns {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit templates for your own department!", nil)
	}

	template.Name = reqData.Name
	template.TemplateID = reqData.TemplateID

	if err := db.Save(&template).Error; err != nil {
		log.Printf("Error updating template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully!", template)
}
