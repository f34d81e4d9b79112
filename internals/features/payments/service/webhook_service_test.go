package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	certModel "learnify_backend/internals/features/certificates/model"
	courseModel "learnify_backend/internals/features/courses/model"
	enrollModel "learnify_backend/internals/features/enrollments/model"
	enrollService "learnify_backend/internals/features/enrollments/service"
	"learnify_backend/internals/features/payments/model"
	"learnify_backend/internals/services/email"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&courseModel.Course{},
		&courseModel.Lesson{},
		&enrollModel.Enrollment{},
		&enrollModel.LessonProgress{},
		&certModel.Certificate{},
		&model.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPaidCourse(t *testing.T, db *gorm.DB) courseModel.Course {
	t.Helper()
	course := courseModel.Course{
		CourseTitle:       "Kubernetes in Production",
		CourseSlug:        "kubernetes-in-production",
		CourseIsPublished: true,
		CourseIsPaid:      true,
		CoursePrice:       49,
		CourseCurrency:    "USD",
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func newWebhookService(db *gorm.DB) (*WebhookService, *email.ConsoleMailer) {
	mailer := email.NewConsoleMailer()
	enrollments := enrollService.NewEnrollmentService(db, mailer)
	return NewWebhookService(db, enrollments, mailer), mailer
}

func purchaseEvent(courseID uuid.UUID) MembershipEvent {
	return MembershipEvent{
		Type: EventPlanPurchased,
		Data: EventData{
			MemberID:         "mem_1",
			PlanID:           "pln_basic",
			PlanConnectionID: "con_abc",
			Member:           &MemberInfo{Email: "ana@example.com", Name: "Ana"},
			Metadata:         map[string]string{"courseId": courseID.String()},
		},
	}
}

func TestPlanPurchased(t *testing.T) {
	db := newTestDB(t)
	course := seedPaidCourse(t, db)
	svc, mailer := newWebhookService(db)

	if err := svc.HandleMembershipEvent(purchaseEvent(course.CourseID)); err != nil {
		t.Fatal(err)
	}

	var enr enrollModel.Enrollment
	err := db.First(&enr, "enrollment_user_id = ? AND enrollment_course_id = ?", "mem_1", course.CourseID).Error
	if err != nil {
		t.Fatalf("enrollment missing: %v", err)
	}
	if enr.EnrollmentPlanConnectionID == nil || *enr.EnrollmentPlanConnectionID != "con_abc" {
		t.Fatal("plan connection id not stored on enrollment")
	}

	var payment model.Payment
	if err := db.First(&payment, "payment_user_id = ?", "mem_1").Error; err != nil {
		t.Fatalf("payment missing: %v", err)
	}
	if payment.PaymentStatus != model.PaymentStatusCompleted {
		t.Fatalf("payment status = %s, want COMPLETED", payment.PaymentStatus)
	}
	if payment.PaymentAmount != 49 {
		t.Fatalf("payment amount = %v, want 49", payment.PaymentAmount)
	}

	// enrollment confirmation + receipt
	if mailer.SentCount() != 2 {
		t.Fatalf("sent %d mails, want 2", mailer.SentCount())
	}
}

func TestPlanPurchasedRedelivery(t *testing.T) {
	db := newTestDB(t)
	course := seedPaidCourse(t, db)
	svc, mailer := newWebhookService(db)

	ev := purchaseEvent(course.CourseID)
	if err := svc.HandleMembershipEvent(ev); err != nil {
		t.Fatal(err)
	}
	if err := svc.HandleMembershipEvent(ev); err != nil {
		t.Fatal(err)
	}

	var payments, enrollments int64
	db.Model(&model.Payment{}).Count(&payments)
	db.Model(&enrollModel.Enrollment{}).Count(&enrollments)
	if payments != 1 || enrollments != 1 {
		t.Fatalf("payments=%d enrollments=%d, want 1 and 1", payments, enrollments)
	}

	var got courseModel.Course
	db.First(&got, "course_id = ?", course.CourseID)
	if got.CourseStudentsCount != 1 {
		t.Fatalf("students count = %d, want 1", got.CourseStudentsCount)
	}
	if mailer.SentCount() != 2 {
		t.Fatalf("sent %d mails, want 2 (no resend on redelivery)", mailer.SentCount())
	}
}

func TestPlanPurchasedMissingMetadata(t *testing.T) {
	db := newTestDB(t)
	seedPaidCourse(t, db)
	svc, _ := newWebhookService(db)

	ev := MembershipEvent{
		Type: EventPlanPurchased,
		Data: EventData{MemberID: "mem_1", PlanConnectionID: "con_abc"},
	}
	// unactionable events are acknowledged so the provider stops redelivering
	if err := svc.HandleMembershipEvent(ev); err != nil {
		t.Fatalf("got %v, want nil", err)
	}

	var count int64
	db.Model(&enrollModel.Enrollment{}).Count(&count)
	if count != 0 {
		t.Fatalf("enrollments = %d, want 0", count)
	}
}

func TestPlanPurchasedUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWebhookService(db)

	if err := svc.HandleMembershipEvent(purchaseEvent(uuid.New())); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestUnknownEventTypeAcknowledged(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newWebhookService(db)

	ev := MembershipEvent{Type: "plan.paused", Data: EventData{MemberID: "mem_1"}}
	if err := svc.HandleMembershipEvent(ev); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestValidWebhookSignature(t *testing.T) {
	body := []byte(`{"type":"plan.purchased"}`)
	// hex HMAC-SHA256 of the body under "topsecret"
	const good = "67f866dac10644eed287943cbc9bef43873a930102a73915be19060184c05462"

	cases := []struct {
		name      string
		secret    string
		signature string
		want      bool
	}{
		{"valid", "topsecret", good, true},
		{"wrong secret", "othersecret", good, false},
		{"tampered signature", "topsecret", "deadbeef" + good[8:], false},
		{"missing signature", "topsecret", "", false},
		{"not hex", "topsecret", "zz" + good[2:], false},
		{"no secret configured skips check", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidWebhookSignature(tc.secret, body, tc.signature); got != tc.want {
				t.Fatalf("ValidWebhookSignature = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlanCancelled(t *testing.T) {
	db := newTestDB(t)
	course := seedPaidCourse(t, db)
	svc, _ := newWebhookService(db)

	if err := svc.HandleMembershipEvent(purchaseEvent(course.CourseID)); err != nil {
		t.Fatal(err)
	}
	ev := MembershipEvent{
		Type: EventPlanCancelled,
		Data: EventData{MemberID: "mem_1", PlanConnectionID: "con_abc"},
	}
	if err := svc.HandleMembershipEvent(ev); err != nil {
		t.Fatal(err)
	}

	var enr enrollModel.Enrollment
	db.First(&enr, "enrollment_user_id = ?", "mem_1")
	if enr.EnrollmentAccessRevokedAt == nil {
		t.Fatal("access_revoked_at not set after cancellation")
	}
}
