package requestController

import (
	"certportal/config"
	"certportal/database"
	"certportal/middleware"
	"certportal/models"
	"certportal/utils"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestWithStudent is the listing row shape: the request plus the owning
// student's display fields.
type RequestWithStudent struct {
	models.CertificateRequest
	StudentName       string `json:"studentName"`
	StudentRollNo     string `json:"studentRollNo"`
	StudentDepartment string `json:"studentDepartment"`
}

// CreateRequest submits a new certificate request for the logged-in student.
// The student id is always taken from the session, never from the client.
func CreateRequest(c *fiber.Ctx) error {
	student, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		TrainingType   string `json:"trainingType"`
		CompanyName    string `json:"companyName"`
		CompanyAddress string `json:"companyAddress"`
		CompanyEmail   string `json:"companyEmail"`
		CompanyContact string `json:"companyContact"`
		MentorName     string `json:"mentorName"`
		MentorEmail    string `json:"mentorEmail"`
		MentorContact  string `json:"mentorContact"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	newRequest := models.CertificateRequest{
		StudentID:      student.ID,
		TrainingType:   reqData.TrainingType,
		CompanyName:    reqData.CompanyName,
		CompanyAddress: reqData.CompanyAddress,
		CompanyEmail:   reqData.CompanyEmail,
		CompanyContact: reqData.CompanyContact,
		MentorName:     reqData.MentorName,
		MentorEmail:    reqData.MentorEmail,
		MentorContact:  reqData.MentorContact,
		Status:         models.StatusPending,
	}

	if err := database.Database.Db.Create(&newRequest).Error; err != nil {
		log.Printf("Error saving certificate request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", newRequest)
}

// ListRequests returns requests scoped by the caller's role: students see their
// own requests, admins see requests owned by students of their department.
// Both listings are newest first.
func ListRequests(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var requests []models.CertificateRequest
	var err error

	if user.Role == models.RoleAdmin {
		// Scope by the owning student's department, computed server-side.
		// Requests whose owner falls outside the department are filtered out
		// by the join, not reported as errors.
		err = db.
			Joins("JOIN users ON users.id = certificate_requests.student_id").
			Where("users.department = ?", user.Department).
			Order("certificate_requests.created_at desc").
			Preload("Student").
			Find(&requests).Error
	} else {
		err = db.
			Where("student_id = ?", user.ID).
			Order("created_at desc").
			Preload("Student").
			Find(&requests).Error
	}

	if err != nil {
		log.Printf("Error fetching certificate requests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	result := make([]RequestWithStudent, len(requests))
	for i, req := range requests {
		result[i] = RequestWithStudent{
			CertificateRequest: req,
			StudentName:        req.Student.Name,
			StudentRollNo:      req.Student.UniversityRollNo,
			StudentDepartment:  req.Student.Department,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate requests fetched successfully!", result)
}

// UpdateRequestStatus resolves a pending request to Approved or Rejected.
// Pending -> {Approved, Rejected} is one-shot; already-resolved requests are
// not re-transitioned. The owning student must belong to the admin's department.
func UpdateRequestStatus(c *fiber.Ctx) error {
	admin, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		RequestID uint   `json:"requestId"`
		Status    string `json:"status"`
		Remarks   string `json:"remarks"`
		RefNo     string `json:"refNo"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Preload("Student").Where("id = ?", reqData.RequestID).First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
		}
		log.Printf("Error fetching certificate request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	if request.Student.Department != admin.Department {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only review requests from your own department!", nil)
	}

	if request.Status != models.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been resolved!", nil)
	}

	request.Status = reqData.Status
	if reqData.Remarks != "" {
		request.Remarks = reqData.Remarks
	}
	if reqData.RefNo != "" {
		request.RefNo = reqData.RefNo
	}
	if reqData.Status == models.StatusApproved {
		now := time.Now()
		request.ApprovedDate = &now
	}

	if err := db.Save(&request).Error; err != nil {
		log.Printf("Error updating certificate request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	if request.Status == models.StatusApproved {
		utils.SendRequestApprovedEmail(request.Student.Email, request.Student.Name, request.TrainingType, request.CompanyName)
	} else {
		utils.SendRequestRejectedEmail(request.Student.Email, request.Student.Name, request.CompanyName, request.Remarks)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request updated successfully!", request)
}

// UploadOfferLetter attaches the confirmation/offer letter to an approved
// request. Only the owning student may upload, and only once.
func UploadOfferLetter(c *fiber.Ctx) error {
	student, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID, err := c.ParamsInt("requestId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Where("id = ?", requestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.StudentID != student.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if request.Status != models.StatusApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Request has not been approved!", nil)
	}

	if request.OfferLetterUrl != "" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Offer letter has already been uploaded!", nil)
	}

	filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed!", nil)
	}

	request.OfferLetterUrl = utils.GetFileURL(filename)
	if err := db.Save(&request).Error; err != nil {
		log.Printf("Error saving offer letter URL: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", fiber.Map{
		"url": request.OfferLetterUrl,
	})
}

// GenerateCertificate renders the certificate for an approved request owned by
// the logged-in student and streams back the PDF.
func GenerateCertificate(c *fiber.Ctx) error {
	student, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID, err := c.ParamsInt("requestId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Where("id = ?", requestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found or access denied!", nil)
	}

	// Ownership failure reads the same as a missing record
	if request.StudentID != student.ID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found or access denied!", nil)
	}

	if request.Status != models.StatusApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This request has not been approved!", nil)
	}

	approvedDate := ""
	if request.ApprovedDate != nil {
		approvedDate = request.ApprovedDate.Format("02 Jan 2006")
	}

	fields := utils.CertificateFields{
		"name":             student.Name,
		"universityrollno": student.UniversityRollNo,
		"collegerollno":    student.CollegeRollNo,
		"department":       strings.ToUpper(student.Department),
		"companyname":      request.CompanyName,
		"companyaddress":   request.CompanyAddress,
		"companyemail":     request.CompanyEmail,
		"companycontact":   request.CompanyContact,
		"mentorname":       request.MentorName,
		"approveddate":     approvedDate,
		"trainingtype":     request.TrainingType,
		"refno":            request.RefNo,
	}

	pdfBytes, err := utils.RenderCertificate(fields)
	if err != nil {
		log.Printf("Certificate generation failed for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to generate certificate!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-certificate.pdf"`, student.UniversityRollNo))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}
