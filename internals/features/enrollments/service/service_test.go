package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	certModel "learnify_backend/internals/features/certificates/model"
	certService "learnify_backend/internals/features/certificates/service"
	courseModel "learnify_backend/internals/features/courses/model"
	"learnify_backend/internals/features/enrollments/model"
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
		&courseModel.Category{},
		&courseModel.Course{},
		&courseModel.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&certModel.Certificate{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, lessons int, hasCertificate bool) (courseModel.Course, []courseModel.Lesson) {
	t.Helper()
	course := courseModel.Course{
		CourseTitle:          "Go From Scratch",
		CourseSlug:           "go-from-scratch-" + uuid.NewString()[:8],
		CourseIsPublished:    true,
		CourseHasCertificate: hasCertificate,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	out := make([]courseModel.Lesson, 0, lessons)
	for i := 1; i <= lessons; i++ {
		l := courseModel.Lesson{
			LessonCourseID: course.CourseID,
			LessonTitle:    "Lesson",
			LessonOrder:    i,
		}
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("seed lesson %d: %v", i, err)
		}
		out = append(out, l)
	}
	return course, out
}

func newServices(db *gorm.DB) (*EnrollmentService, *ProgressService, *email.ConsoleMailer) {
	mailer := email.NewConsoleMailer()
	enrollments := NewEnrollmentService(db, mailer)
	certificates := certService.NewCertificateService(db, mailer)
	progress := NewProgressService(db, enrollments, certificates)
	return enrollments, progress, mailer
}

func TestEnrollTwiceReturnsConflict(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2, false)
	enrollments, _, _ := newServices(db)

	if _, err := enrollments.Enroll("mem_1", "Ana", "ana@example.com", course.CourseID); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if _, err := enrollments.Enroll("mem_1", "Ana", "ana@example.com", course.CourseID); err != ErrAlreadyEnrolled {
		t.Fatalf("second enroll: got %v, want ErrAlreadyEnrolled", err)
	}

	var got courseModel.Course
	if err := db.First(&got, "course_id = ?", course.CourseID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CourseStudentsCount != 1 {
		t.Fatalf("students count = %d, want 1", got.CourseStudentsCount)
	}
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	db := newTestDB(t)
	course := courseModel.Course{CourseTitle: "Draft", CourseSlug: "draft", CourseIsPublished: false}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}
	enrollments, _, _ := newServices(db)

	if _, err := enrollments.Enroll("mem_1", "Ana", "ana@example.com", course.CourseID); err != ErrCourseNotFound {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}

func TestEnrollSendsEmail(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1, false)
	enrollments, _, mailer := newServices(db)

	if _, err := enrollments.Enroll("mem_1", "Ana", "ana@example.com", course.CourseID); err != nil {
		t.Fatal(err)
	}
	if mailer.SentCount() != 1 {
		t.Fatalf("sent %d mails, want 1", mailer.SentCount())
	}
}

func TestEnrollFromPlanRedelivery(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1, false)
	enrollments, _, _ := newServices(db)

	conn := "con_abc"
	_, created, err := enrollments.EnrollFromPlan("mem_1", "Ana", "ana@example.com", course.CourseID, &conn)
	if err != nil || !created {
		t.Fatalf("first delivery: created=%v err=%v", created, err)
	}
	_, created, err = enrollments.EnrollFromPlan("mem_1", "Ana", "ana@example.com", course.CourseID, &conn)
	if err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if created {
		t.Fatal("redelivery reported created=true")
	}

	var got courseModel.Course
	if err := db.First(&got, "course_id = ?", course.CourseID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CourseStudentsCount != 1 {
		t.Fatalf("students count = %d, want 1", got.CourseStudentsCount)
	}
}

func TestMarkPlanCancelledKeepsProgress(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 2, false)
	enrollments, progress, _ := newServices(db)

	conn := "con_abc"
	if _, _, err := enrollments.EnrollFromPlan("mem_1", "Ana", "ana@example.com", course.CourseID, &conn); err != nil {
		t.Fatal(err)
	}
	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID); err != nil {
		t.Fatal(err)
	}

	if err := enrollments.MarkPlanCancelled("mem_1", conn); err != nil {
		t.Fatal(err)
	}

	var enr model.Enrollment
	if err := db.First(&enr, "enrollment_user_id = ?", "mem_1").Error; err != nil {
		t.Fatal(err)
	}
	if enr.EnrollmentAccessRevokedAt == nil {
		t.Fatal("access_revoked_at not set")
	}
	var progressRows int64
	db.Model(&model.LessonProgress{}).Where("lesson_progress_enrollment_id = ?", enr.EnrollmentID).Count(&progressRows)
	if progressRows != 1 {
		t.Fatalf("progress rows = %d, want 1 (history must survive cancellation)", progressRows)
	}
}

func TestMarkPlanCancelledUnknownEnrollment(t *testing.T) {
	db := newTestDB(t)
	enrollments, _, _ := newServices(db)

	// unknown connection is acknowledged, not retried forever by the provider
	if err := enrollments.MarkPlanCancelled("mem_ghost", "con_ghost"); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 3, false)
	_, progress, _ := newServices(db)

	first, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID)
	if err != nil {
		t.Fatal(err)
	}

	if first.Completed != 1 || second.Completed != 1 {
		t.Fatalf("completed = %d then %d, want 1 and 1", first.Completed, second.Completed)
	}
	if first.Percentage != 33 || second.Percentage != 33 {
		t.Fatalf("percentage = %d then %d, want 33 and 33", first.Percentage, second.Percentage)
	}
}

func TestCompleteLessonProgression(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 3, true)
	_, progress, _ := newServices(db)

	wantPct := []int{33, 67, 100}
	for i, lesson := range lessons {
		res, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lesson.LessonID)
		if err != nil {
			t.Fatalf("lesson %d: %v", i+1, err)
		}
		if res.Percentage != wantPct[i] {
			t.Fatalf("lesson %d: percentage = %d, want %d", i+1, res.Percentage, wantPct[i])
		}
		wantDone := i == len(lessons)-1
		if res.IsCourseCompleted != wantDone {
			t.Fatalf("lesson %d: is_course_completed = %v, want %v", i+1, res.IsCourseCompleted, wantDone)
		}
	}
}

func TestCompletionTimestampSetOnce(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1, false)
	_, progress, _ := newServices(db)

	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID); err != nil {
		t.Fatal(err)
	}
	var enr model.Enrollment
	if err := db.First(&enr, "enrollment_user_id = ?", "mem_1").Error; err != nil {
		t.Fatal(err)
	}
	if enr.EnrollmentCompletedAt == nil {
		t.Fatal("completed_at not set after finishing the course")
	}
	firstCompletedAt := *enr.EnrollmentCompletedAt

	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID); err != nil {
		t.Fatal(err)
	}
	if err := db.First(&enr, "enrollment_user_id = ?", "mem_1").Error; err != nil {
		t.Fatal(err)
	}
	if !enr.EnrollmentCompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("completed_at moved from %v to %v", firstCompletedAt, enr.EnrollmentCompletedAt)
	}
}

func TestCertificateIssuedOnceOnCompletion(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 2, true)
	_, progress, _ := newServices(db)

	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID); err != nil {
		t.Fatal(err)
	}
	res, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[1].LessonID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Certificate == nil {
		t.Fatal("no certificate on course completion")
	}

	// redoing the last lesson must return the same certificate, not a second one
	again, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[1].LessonID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Certificate == nil || again.Certificate.CertificateID != res.Certificate.CertificateID {
		t.Fatal("repeat completion returned a different certificate")
	}

	var count int64
	db.Model(&certModel.Certificate{}).
		Where("certificate_user_id = ? AND certificate_course_id = ?", "mem_1", course.CourseID).
		Count(&count)
	if count != 1 {
		t.Fatalf("certificate rows = %d, want 1", count)
	}
}

func TestNoCertificateWithoutEntitlement(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1, false)
	_, progress, _ := newServices(db)

	res, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCourseCompleted {
		t.Fatal("course should be completed")
	}
	if res.Certificate != nil {
		t.Fatal("certificate issued for a course without one")
	}
	var count int64
	db.Model(&certModel.Certificate{}).Count(&count)
	if count != 0 {
		t.Fatalf("certificate rows = %d, want 0", count)
	}
}

func TestCompleteLessonAutoEnrolls(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 2, false)
	_, progress, mailer := newServices(db)

	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID); err != nil {
		t.Fatal(err)
	}

	var enr model.Enrollment
	err := db.First(&enr, "enrollment_user_id = ? AND enrollment_course_id = ?", "mem_1", course.CourseID).Error
	if err != nil {
		t.Fatalf("enrollment not auto-created: %v", err)
	}

	// the lazy path owns no side effects
	var got courseModel.Course
	db.First(&got, "course_id = ?", course.CourseID)
	if got.CourseStudentsCount != 0 {
		t.Fatalf("students count = %d, want 0 for lazy enrollment", got.CourseStudentsCount)
	}
	if mailer.SentCount() != 0 {
		t.Fatalf("sent %d mails, want 0 for lazy enrollment", mailer.SentCount())
	}
}

func TestCompleteUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	_, progress, _ := newServices(db)

	if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", uuid.New()); err != ErrLessonNotFound {
		t.Fatalf("got %v, want ErrLessonNotFound", err)
	}
}

func TestProgressConsistentAfterLessonRemoval(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 3, false)
	_, progress, _ := newServices(db)

	for _, lesson := range lessons {
		if _, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lesson.LessonID); err != nil {
			t.Fatal(err)
		}
	}

	// an admin trims the course: 3 progress rows now outnumber the 2 lessons
	if err := db.Delete(&courseModel.Lesson{}, "lesson_id = ?", lessons[2].LessonID).Error; err != nil {
		t.Fatal(err)
	}

	_, res, _, err := progress.CourseProgress("mem_1", course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Percentage != 100 {
		t.Fatalf("percentage = %d, want 100", res.Percentage)
	}
	// percentage and completion must never disagree
	if !res.IsCourseCompleted {
		t.Fatal("percentage is 100 but is_course_completed is false")
	}

	again, err := progress.CompleteLesson("mem_1", "Ana", "ana@example.com", lessons[0].LessonID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Percentage != 100 || !again.IsCourseCompleted {
		t.Fatalf("re-complete after removal: percentage=%d is_course_completed=%v, want 100/true",
			again.Percentage, again.IsCourseCompleted)
	}
}

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"zero of zero", 0, 0, 0},
		{"none done", 0, 10, 0},
		{"one third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
		{"all done", 3, 3, 100},
		{"half", 1, 2, 50},
		{"rounds half up but never early 100", 199, 200, 99},
		{"199 of 201", 199, 201, 99},
		{"over-count clamps", 5, 3, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProgressPercentage(tc.completed, tc.total); got != tc.want {
				t.Fatalf("ProgressPercentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}
