package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	enrollService "learnify_backend/internals/features/enrollments/service"
	"learnify_backend/internals/features/payments/model"
	"learnify_backend/internals/services/email"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseFree      = errors.New("course is free, enroll directly")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

type PaymentService struct {
	DB          *gorm.DB
	Enrollments *enrollService.EnrollmentService
	Mailer      email.Mailer
}

func NewPaymentService(db *gorm.DB, enrollments *enrollService.EnrollmentService, mailer email.Mailer) *PaymentService {
	return &PaymentService{DB: db, Enrollments: enrollments, Mailer: mailer}
}

// CreateCheckout opens a Snap transaction for a paid course and records the
// pending payment keyed by order id.
func (s *PaymentService) CreateCheckout(userID, userName, userEmail string, courseID uuid.UUID) (*model.Payment, string, string, error) {
	var course courseModel.Course
	err := s.DB.Where("course_id = ? AND course_is_published = ?", courseID, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrCourseNotFound
		}
		return nil, "", "", err
	}
	if !course.CourseIsPaid || course.CoursePrice <= 0 {
		return nil, "", "", ErrCourseFree
	}

	var existing int64
	err = s.DB.Table("enrollments").
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		Count(&existing).Error
	if err != nil {
		return nil, "", "", err
	}
	if existing > 0 {
		return nil, "", "", ErrAlreadyEnrolled
	}

	orderID := fmt.Sprintf("COURSE-%d", time.Now().UnixNano())
	payment := model.Payment{
		PaymentUserID:    userID,
		PaymentCourseID:  courseID,
		PaymentUserName:  userName,
		PaymentUserEmail: userEmail,
		PaymentAmount:    course.CoursePrice,
		PaymentCurrency:  course.CourseCurrency,
		PaymentStatus:    model.PaymentStatusPending,
		PaymentOrderID:   &orderID,
		PaymentGateway:   "midtrans",
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, "", "", err
	}

	token, redirectURL, err := GenerateSnapToken(orderID, int64(math.Ceil(course.CoursePrice)), userName, userEmail)
	if err != nil {
		log.Printf("[ERROR] snap token for order %s failed: %v", orderID, err)
		return nil, "", "", err
	}
	return &payment, token, redirectURL, nil
}

// HandleMidtransNotification processes a gateway status webhook. Settlement
// is idempotent: a redelivered notification for a completed payment changes
// nothing.
func (s *PaymentService) HandleMidtransNotification(body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		return fmt.Errorf("invalid notification payload")
	}

	var payment model.Payment
	if err := s.DB.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		return fmt.Errorf("payment with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		if payment.PaymentStatus == model.PaymentStatusCompleted {
			log.Printf("[INFO] order %s already settled", orderID)
			return nil
		}
		return s.settle(&payment)
	case "expire":
		return s.updateStatus(&payment, model.PaymentStatusExpired)
	case "cancel", "deny":
		return s.updateStatus(&payment, model.PaymentStatusCanceled)
	default:
		log.Printf("[INFO] midtrans status %q for order %s not processed", status, orderID)
		return nil
	}
}

func (s *PaymentService) settle(payment *model.Payment) error {
	now := time.Now()
	err := s.DB.Model(&model.Payment{}).
		Where("payment_id = ?", payment.PaymentID).
		Updates(map[string]interface{}{
			"payment_status":       model.PaymentStatusCompleted,
			"payment_completed_at": now,
		}).Error
	if err != nil {
		return err
	}

	var course courseModel.Course
	if err := s.DB.Where("course_id = ?", payment.PaymentCourseID).First(&course).Error; err != nil {
		return err
	}

	name := payment.PaymentUserName
	if name == "" {
		name = "User"
	}
	enr, created, err := s.Enrollments.EnrollFromPlan(payment.PaymentUserID, name, payment.PaymentUserEmail, payment.PaymentCourseID, nil)
	if err != nil {
		return err
	}
	if !created {
		log.Printf("[INFO] settlement for order %s, enrollment %s already existed", derefOr(payment.PaymentOrderID, "?"), enr.EnrollmentID)
		return nil
	}

	if payment.PaymentUserEmail != "" {
		if err := s.Mailer.SendEnrollmentEmail(payment.PaymentUserEmail, name, course.CourseTitle, course.CourseSlug); err != nil {
			log.Printf("[WARN] enrollment email to %s failed: %v", payment.PaymentUserEmail, err)
		}
		if err := s.Mailer.SendPaymentReceiptEmail(payment.PaymentUserEmail, name, course.CourseTitle, payment.PaymentAmount, payment.PaymentCurrency, derefOr(payment.PaymentOrderID, "")); err != nil {
			log.Printf("[WARN] receipt email to %s failed: %v", payment.PaymentUserEmail, err)
		}
	}
	return nil
}

func (s *PaymentService) updateStatus(payment *model.Payment, status string) error {
	return s.DB.Model(&model.Payment{}).
		Where("payment_id = ?", payment.PaymentID).
		Update("payment_status", status).Error
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
