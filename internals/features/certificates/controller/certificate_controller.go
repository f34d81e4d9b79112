package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/certificates/model"
	"learnify_backend/internals/features/certificates/service"
	helper "learnify_backend/internals/helpers"
)

type CertificateController struct {
	DB           *gorm.DB
	Certificates *service.CertificateService
}

func NewCertificateController(db *gorm.DB, certificates *service.CertificateService) *CertificateController {
	return &CertificateController{DB: db, Certificates: certificates}
}

// GET /api/u/certificates
func (ctrl *CertificateController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var certs []model.Certificate
	err = ctrl.DB.Where("certificate_user_id = ?", userID).
		Order("certificate_issued_at DESC").
		Find(&certs).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch certificates")
	}
	return helper.Success(c, "OK", fiber.Map{"certificates": certs})
}

// GET /api/u/certificates/:id
// Owner-only: the id alone is not proof of ownership.
func (ctrl *CertificateController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	certID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid certificate id")
	}

	var cert model.Certificate
	err = ctrl.DB.Where("certificate_id = ? AND certificate_user_id = ?", certID, userID).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Certificate not found")
		}
		log.Println("[ERROR] get certificate:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch certificate")
	}
	return helper.Success(c, "OK", cert)
}

// GET /api/public/certificates/verify?code=XXXX
// Public trust endpoint: shows issuance facts only, never user identifiers.
func (ctrl *CertificateController) Verify(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing verification code")
	}

	cert, err := ctrl.Certificates.VerifyByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Success(c, "OK", fiber.Map{"valid": false})
		}
		log.Println("[ERROR] verify certificate:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify certificate")
	}

	return helper.Success(c, "OK", fiber.Map{
		"valid": true,
		"certificate": fiber.Map{
			"certificate_number": cert.CertificateNumber,
			"certificate_user":   cert.CertificateUserName,
			"certificate_course": cert.CertificateCourseName,
			"certificate_issuer": cert.CertificateInstructorName,
			"certificate_issued": cert.CertificateIssuedAt,
		},
	})
}
