package service

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	enrollModel "learnify_backend/internals/features/enrollments/model"
	"learnify_backend/internals/features/reviews/model"
	helper "learnify_backend/internals/helpers"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotEnrolled    = errors.New("not enrolled in this course")
)

type ReviewStats struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"` // star -> count
}

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Upsert writes the user's review for a course, replacing any earlier one,
// then refreshes the course aggregate. Only enrolled users may review.
func (s *ReviewService) Upsert(userID, userName, userAvatar string, courseID uuid.UUID, rating int, comment string) (*model.Review, bool, error) {
	var course courseModel.Course
	err := s.DB.Where("course_id = ? AND course_is_published = ?", courseID, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, err
	}

	var enrolled int64
	err = s.DB.Model(&enrollModel.Enrollment{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		Count(&enrolled).Error
	if err != nil {
		return nil, false, err
	}
	if enrolled == 0 {
		return nil, false, ErrNotEnrolled
	}

	review, created, err := s.write(userID, userName, userAvatar, courseID, rating, comment)
	if err != nil {
		return nil, false, err
	}
	if err := s.refreshCourseAggregate(courseID); err != nil {
		return nil, false, err
	}
	return review, created, nil
}

func (s *ReviewService) write(userID, userName, userAvatar string, courseID uuid.UUID, rating int, comment string) (*model.Review, bool, error) {
	var existing model.Review
	err := s.DB.Where("review_user_id = ? AND review_course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		updateErr := s.DB.Model(&model.Review{}).
			Where("review_id = ?", existing.ReviewID).
			Updates(map[string]interface{}{
				"review_rating":      rating,
				"review_comment":     comment,
				"review_user_name":   userName,
				"review_user_avatar": userAvatar,
			}).Error
		if updateErr != nil {
			return nil, false, updateErr
		}
		existing.ReviewRating = rating
		existing.ReviewComment = comment
		existing.ReviewUserName = userName
		existing.ReviewUserAvatar = userAvatar
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	review := model.Review{
		ReviewUserID:      userID,
		ReviewCourseID:    courseID,
		ReviewUserName:    userName,
		ReviewUserAvatar:  userAvatar,
		ReviewRating:      rating,
		ReviewComment:     comment,
		ReviewIsPublished: true,
	}
	if createErr := s.DB.Create(&review).Error; createErr != nil {
		if helper.IsDuplicateKey(createErr) {
			// lost the insert race against our own double submit: update instead
			return s.write(userID, userName, userAvatar, courseID, rating, comment)
		}
		return nil, false, createErr
	}
	return &review, true, nil
}

// Stats aggregates published reviews for a course.
func (s *ReviewService) Stats(courseID uuid.UUID) (*ReviewStats, error) {
	type row struct {
		Rating int
		N      int64
	}
	var rows []row
	err := s.DB.Model(&model.Review{}).
		Select("review_rating AS rating, COUNT(*) AS n").
		Where("review_course_id = ? AND review_is_published = ?", courseID, true).
		Group("review_rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &ReviewStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int64
	for _, r := range rows {
		stats.Distribution[r.Rating] = r.N
		stats.Count += r.N
		sum += int64(r.Rating) * r.N
	}
	if stats.Count > 0 {
		stats.Average = roundTo1(float64(sum) / float64(stats.Count))
	}
	return stats, nil
}

func (s *ReviewService) refreshCourseAggregate(courseID uuid.UUID) error {
	stats, err := s.Stats(courseID)
	if err != nil {
		return err
	}
	return s.DB.Model(&courseModel.Course{}).
		Where("course_id = ?", courseID).
		Updates(map[string]interface{}{
			"course_rating":        stats.Average,
			"course_reviews_count": stats.Count,
		}).Error
}

func roundTo1(f float64) float64 {
	return math.Round(f*10) / 10
}
