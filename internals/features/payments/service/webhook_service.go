package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	enrollService "learnify_backend/internals/features/enrollments/service"
	"learnify_backend/internals/features/payments/model"
	"learnify_backend/internals/services/email"
)

// Membership-provider event kinds. Adding a kind means adding a case to
// HandleMembershipEvent; the default branch only catches genuinely unknown
// tags from the provider.
type EventType string

const (
	EventPlanPurchased EventType = "plan.purchased"
	EventPlanCancelled EventType = "plan.cancelled"
	EventPlanUpdated   EventType = "plan.updated"
)

type MemberInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type EventData struct {
	MemberID         string            `json:"memberId"`
	PlanID           string            `json:"planId"`
	PlanConnectionID string            `json:"planConnectionId"`
	Email            string            `json:"email"`
	Status           string            `json:"status"`
	Member           *MemberInfo       `json:"member"`
	Metadata         map[string]string `json:"metadata"`
}

type MembershipEvent struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

type WebhookService struct {
	DB          *gorm.DB
	Enrollments *enrollService.EnrollmentService
	Mailer      email.Mailer
}

func NewWebhookService(db *gorm.DB, enrollments *enrollService.EnrollmentService, mailer email.Mailer) *WebhookService {
	return &WebhookService{DB: db, Enrollments: enrollments, Mailer: mailer}
}

// HandleMembershipEvent dispatches a provider event. A nil return means the
// event is acknowledged (including unactionable ones, which are logged and
// dropped so the provider stops redelivering); a non-nil return asks the
// provider to retry.
func (s *WebhookService) HandleMembershipEvent(ev MembershipEvent) error {
	switch ev.Type {
	case EventPlanPurchased:
		return s.handlePlanPurchased(ev.Data)
	case EventPlanCancelled:
		return s.Enrollments.MarkPlanCancelled(ev.Data.MemberID, ev.Data.PlanConnectionID)
	case EventPlanUpdated:
		log.Printf("[INFO] plan updated member=%s conn=%s status=%s", ev.Data.MemberID, ev.Data.PlanConnectionID, ev.Data.Status)
		return nil
	default:
		log.Printf("[WARN] unhandled membership event type %q", ev.Type)
		return nil
	}
}

func (s *WebhookService) handlePlanPurchased(data EventData) error {
	if data.MemberID == "" {
		log.Printf("[ERROR] plan purchase without memberId, dropped")
		return nil
	}
	rawCourseID, ok := data.Metadata["courseId"]
	if !ok || rawCourseID == "" {
		log.Printf("[ERROR] plan purchase without courseId metadata, member=%s, dropped", data.MemberID)
		return nil
	}
	courseID, err := uuid.Parse(rawCourseID)
	if err != nil {
		log.Printf("[ERROR] plan purchase with bad courseId %q, member=%s, dropped", rawCourseID, data.MemberID)
		return nil
	}

	var course courseModel.Course
	if err := s.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		log.Printf("[ERROR] plan purchase for unknown course %s, member=%s, dropped", courseID, data.MemberID)
		return nil
	}

	name := "User"
	mail := data.Email
	if data.Member != nil {
		if data.Member.Name != "" {
			name = data.Member.Name
		}
		if data.Member.Email != "" {
			mail = data.Member.Email
		}
	}

	planConn := data.PlanConnectionID
	enr, created, err := s.Enrollments.EnrollFromPlan(data.MemberID, name, mail, courseID, &planConn)
	if err != nil {
		return err
	}
	if !created {
		// webhook redelivery: no second payment row, no second counter bump
		log.Printf("[INFO] plan purchase redelivered, enrollment %s already exists", enr.EnrollmentID)
		return nil
	}

	now := time.Now()
	payment := model.Payment{
		PaymentUserID:           data.MemberID,
		PaymentCourseID:         courseID,
		PaymentAmount:           course.CoursePrice,
		PaymentCurrency:         course.CourseCurrency,
		PaymentStatus:           model.PaymentStatusCompleted,
		PaymentPlanID:           strPtr(data.PlanID),
		PaymentPlanConnectionID: strPtr(data.PlanConnectionID),
		PaymentGateway:          "membership",
		PaymentCompletedAt:      &now,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return err
	}

	if mail != "" {
		if err := s.Mailer.SendEnrollmentEmail(mail, name, course.CourseTitle, course.CourseSlug); err != nil {
			log.Printf("[WARN] enrollment email to %s failed: %v", mail, err)
		}
		if err := s.Mailer.SendPaymentReceiptEmail(mail, name, course.CourseTitle, course.CoursePrice, course.CourseCurrency, data.PlanConnectionID); err != nil {
			log.Printf("[WARN] receipt email to %s failed: %v", mail, err)
		}
	}

	log.Printf("[INFO] plan purchase processed member=%s course=%s conn=%s", data.MemberID, courseID, data.PlanConnectionID)
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
