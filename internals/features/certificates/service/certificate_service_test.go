package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnify_backend/internals/features/certificates/model"
	courseModel "learnify_backend/internals/features/courses/model"
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
	if err := db.AutoMigrate(&courseModel.Course{}, &model.Certificate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, hasCertificate bool) courseModel.Course {
	t.Helper()
	course := courseModel.Course{
		CourseTitle:          "Distributed Systems",
		CourseSlug:           "distributed-systems",
		CourseInstructorName: "Prof. Chen",
		CourseIsPublished:    true,
		CourseHasCertificate: hasCertificate,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func TestIssueIfEligibleIdempotent(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, true)
	mailer := email.NewConsoleMailer()
	svc := NewCertificateService(db, mailer)

	first, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("no certificate issued")
	}
	second, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if second.CertificateID != first.CertificateID {
		t.Fatal("second issuance returned a different certificate")
	}

	var count int64
	db.Model(&model.Certificate{}).Count(&count)
	if count != 1 {
		t.Fatalf("certificate rows = %d, want 1", count)
	}
	if mailer.SentCount() != 1 {
		t.Fatalf("sent %d mails, want 1", mailer.SentCount())
	}
}

func TestIssueIfEligibleNoEntitlement(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, false)
	svc := NewCertificateService(db, email.NewConsoleMailer())

	cert, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if cert != nil {
		t.Fatal("certificate issued for a course without one")
	}
}

func TestIssueIfEligibleUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCertificateService(db, email.NewConsoleMailer())

	if _, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", uuid.New()); err != ErrCourseNotFound {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCertificateSnapshotsCourseNames(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, true)
	svc := NewCertificateService(db, email.NewConsoleMailer())

	cert, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if cert.CertificateCourseName != "Distributed Systems" || cert.CertificateInstructorName != "Prof. Chen" {
		t.Fatalf("snapshot mismatch: %q / %q", cert.CertificateCourseName, cert.CertificateInstructorName)
	}
}

func TestVerifyByCode(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, true)
	svc := NewCertificateService(db, email.NewConsoleMailer())

	cert, err := svc.IssueIfEligible("mem_1", "Ana", "ana@example.com", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}

	// codes are hand-typed: case and whitespace slop must still verify
	got, err := svc.VerifyByCode("  " + strings.ToLower(cert.CertificateVerificationCode) + " ")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.CertificateID != cert.CertificateID {
		t.Fatal("verify returned a different certificate")
	}

	if _, err := svc.VerifyByCode("NOSUCHCODE234567"); err == nil {
		t.Fatal("unknown code verified")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := GenerateVerificationCode()
		if len(code) != 16 {
			t.Fatalf("code %q length = %d, want 16", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(verificationCharset, r) {
				t.Fatalf("code %q contains %q outside the charset", code, r)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code %q in 50 draws", code)
		}
		seen[code] = true
	}
}

func TestGenerateCertificateNumber(t *testing.T) {
	courseID := uuid.New()
	num := GenerateCertificateNumber(courseID, "mem_1abcdef")
	if !strings.HasPrefix(num, "LEARN-") {
		t.Fatalf("number %q missing prefix", num)
	}
	if num != strings.ToUpper(num) {
		t.Fatalf("number %q not uppercase", num)
	}
}
