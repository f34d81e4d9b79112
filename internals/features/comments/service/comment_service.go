package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/comments/model"
	courseModel "learnify_backend/internals/features/courses/model"
	enrollModel "learnify_backend/internals/features/enrollments/model"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNotEnrolled    = errors.New("not enrolled in this course")
	ErrParentNotFound = errors.New("parent comment not found")
	ErrParentMismatch = errors.New("parent comment belongs to another lesson or is itself a reply")
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// Create posts a comment (or a reply when parentID is set) on a lesson.
// Only enrolled users may post; replies must target a top-level comment on
// the same lesson so threads stay one level deep.
func (s *CommentService) Create(userID, userName, userAvatar string, lessonID uuid.UUID, content string, parentID *uuid.UUID) (*model.Comment, error) {
	var lesson courseModel.Lesson
	err := s.DB.Where("lesson_id = ?", lessonID).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	var enrolled int64
	err = s.DB.Model(&enrollModel.Enrollment{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, lesson.LessonCourseID).
		Count(&enrolled).Error
	if err != nil {
		return nil, err
	}
	if enrolled == 0 {
		return nil, ErrNotEnrolled
	}

	if parentID != nil {
		var parent model.Comment
		err := s.DB.Where("comment_id = ?", *parentID).First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.CommentLessonID != lessonID || parent.CommentParentID != nil {
			return nil, ErrParentMismatch
		}
	}

	comment := model.Comment{
		CommentLessonID:   lessonID,
		CommentUserID:     userID,
		CommentUserName:   userName,
		CommentUserAvatar: userAvatar,
		CommentContent:    content,
		CommentParentID:   parentID,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByLesson returns top-level comments newest first, each with its
// replies oldest first.
func (s *CommentService) ListByLesson(lessonID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.DB.
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("comment_lesson_id = ? AND comment_parent_id IS NULL", lessonID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
