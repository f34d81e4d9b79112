package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "learnify_backend/internals/features/courses/model"
	enrollModel "learnify_backend/internals/features/enrollments/model"
	"learnify_backend/internals/features/reviews/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&courseModel.Course{}, &enrollModel.Enrollment{}, &model.Review{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEnrolledCourse(t *testing.T, db *gorm.DB, users ...string) courseModel.Course {
	t.Helper()
	course := courseModel.Course{
		CourseTitle:       "SQL Deep Dive",
		CourseSlug:        "sql-deep-dive",
		CourseIsPublished: true,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}
	for _, u := range users {
		enr := enrollModel.Enrollment{EnrollmentUserID: u, EnrollmentCourseID: course.CourseID}
		if err := db.Create(&enr).Error; err != nil {
			t.Fatal(err)
		}
	}
	return course
}

func TestUpsertRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	course := seedEnrolledCourse(t, db)
	svc := NewReviewService(db)

	if _, _, err := svc.Upsert("mem_outsider", "Eve", "", course.CourseID, 5, "great"); err != ErrNotEnrolled {
		t.Fatalf("got %v, want ErrNotEnrolled", err)
	}
}

func TestUpsertCreateThenReplace(t *testing.T) {
	db := newTestDB(t)
	course := seedEnrolledCourse(t, db, "mem_1")
	svc := NewReviewService(db)

	first, created, err := svc.Upsert("mem_1", "Ana", "", course.CourseID, 5, "excellent")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("first review reported created=false")
	}

	second, created, err := svc.Upsert("mem_1", "Ana", "", course.CourseID, 3, "revised opinion")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("second review reported created=true")
	}
	if second.ReviewID != first.ReviewID {
		t.Fatal("upsert created a second row")
	}
	if second.ReviewRating != 3 || second.ReviewComment != "revised opinion" {
		t.Fatalf("review not replaced: rating=%d comment=%q", second.ReviewRating, second.ReviewComment)
	}

	var count int64
	db.Model(&model.Review{}).Count(&count)
	if count != 1 {
		t.Fatalf("review rows = %d, want 1", count)
	}
}

func TestUpsertRefreshesCourseAggregate(t *testing.T) {
	db := newTestDB(t)
	course := seedEnrolledCourse(t, db, "mem_1", "mem_2")
	svc := NewReviewService(db)

	if _, _, err := svc.Upsert("mem_1", "Ana", "", course.CourseID, 5, ""); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Upsert("mem_2", "Ben", "", course.CourseID, 4, ""); err != nil {
		t.Fatal(err)
	}

	var got courseModel.Course
	if err := db.First(&got, "course_id = ?", course.CourseID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CourseReviewsCount != 2 {
		t.Fatalf("reviews count = %d, want 2", got.CourseReviewsCount)
	}
	if got.CourseRating != 4.5 {
		t.Fatalf("rating = %v, want 4.5", got.CourseRating)
	}

	// replacing a review moves the aggregate, it never double counts
	if _, _, err := svc.Upsert("mem_2", "Ben", "", course.CourseID, 2, ""); err != nil {
		t.Fatal(err)
	}
	if err := db.First(&got, "course_id = ?", course.CourseID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CourseReviewsCount != 2 || got.CourseRating != 3.5 {
		t.Fatalf("after replace: count=%d rating=%v, want 2 and 3.5", got.CourseReviewsCount, got.CourseRating)
	}
}

func TestStatsDistribution(t *testing.T) {
	db := newTestDB(t)
	course := seedEnrolledCourse(t, db, "mem_1", "mem_2", "mem_3")
	svc := NewReviewService(db)

	ratings := map[string]int{"mem_1": 5, "mem_2": 5, "mem_3": 2}
	for user, rating := range ratings {
		if _, _, err := svc.Upsert(user, user, "", course.CourseID, rating, ""); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.Stats(course.CourseID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 3 {
		t.Fatalf("count = %d, want 3", stats.Count)
	}
	if stats.Distribution[5] != 2 || stats.Distribution[2] != 1 || stats.Distribution[1] != 0 {
		t.Fatalf("distribution = %v", stats.Distribution)
	}
	if stats.Average != 4.0 {
		t.Fatalf("average = %v, want 4.0", stats.Average)
	}
}
