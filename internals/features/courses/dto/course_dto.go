package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"learnify_backend/internals/features/courses/model"
)

type CreateCourseRequest struct {
	CourseTitle            string     `json:"course_title" validate:"required,min=3"`
	CourseDescription      string     `json:"course_description"`
	CourseShortDescription string     `json:"course_short_description"`
	CourseCategoryID       *uuid.UUID `json:"course_category_id"`

	CourseInstructorID     string `json:"course_instructor_id"`
	CourseInstructorName   string `json:"course_instructor_name" validate:"required"`
	CourseInstructorAvatar string `json:"course_instructor_avatar"`
	CourseInstructorBio    string `json:"course_instructor_bio"`

	CoursePrice         float64  `json:"course_price" validate:"gte=0"`
	CourseOriginalPrice *float64 `json:"course_original_price" validate:"omitempty,gte=0"`
	CourseCurrency      string   `json:"course_currency" validate:"omitempty,len=3"`

	CourseDuration int    `json:"course_duration" validate:"gte=0"`
	CourseLevel    string `json:"course_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`

	CourseTags             datatypes.JSON `json:"course_tags"`
	CourseWhatYouWillLearn datatypes.JSON `json:"course_what_you_will_learn"`
	CourseRequirements     datatypes.JSON `json:"course_requirements"`

	CourseIsPaid          bool   `json:"course_is_paid"`
	CourseIsPopular       bool   `json:"course_is_popular"`
	CourseIsNew           bool   `json:"course_is_new"`
	CourseIsPublished     bool   `json:"course_is_published"`
	CourseHasCertificate  bool   `json:"course_has_certificate"`
	CourseColorScheme     string `json:"course_color_scheme"`
	CoursePreviewVideoURL string `json:"course_preview_video_url"`
}

type UpdateCourseRequest struct {
	CourseTitle            *string    `json:"course_title" validate:"omitempty,min=3"`
	CourseDescription      *string    `json:"course_description"`
	CourseShortDescription *string    `json:"course_short_description"`
	CourseCategoryID       *uuid.UUID `json:"course_category_id"`

	CourseInstructorName   *string `json:"course_instructor_name"`
	CourseInstructorAvatar *string `json:"course_instructor_avatar"`
	CourseInstructorBio    *string `json:"course_instructor_bio"`

	CoursePrice         *float64 `json:"course_price" validate:"omitempty,gte=0"`
	CourseOriginalPrice *float64 `json:"course_original_price" validate:"omitempty,gte=0"`
	CourseCurrency      *string  `json:"course_currency" validate:"omitempty,len=3"`

	CourseDuration *int    `json:"course_duration" validate:"omitempty,gte=0"`
	CourseLevel    *string `json:"course_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`

	CourseTags             datatypes.JSON `json:"course_tags"`
	CourseWhatYouWillLearn datatypes.JSON `json:"course_what_you_will_learn"`
	CourseRequirements     datatypes.JSON `json:"course_requirements"`

	CourseIsPaid          *bool   `json:"course_is_paid"`
	CourseIsPopular       *bool   `json:"course_is_popular"`
	CourseIsNew           *bool   `json:"course_is_new"`
	CourseIsPublished     *bool   `json:"course_is_published"`
	CourseHasCertificate  *bool   `json:"course_has_certificate"`
	CourseColorScheme     *string `json:"course_color_scheme"`
	CoursePreviewVideoURL *string `json:"course_preview_video_url"`
}

type CreateLessonRequest struct {
	LessonTitle       string `json:"lesson_title" validate:"required,min=3"`
	LessonDescription string `json:"lesson_description"`
	LessonVideoURL    string `json:"lesson_video_url"`
	LessonDuration    int    `json:"lesson_duration" validate:"gte=0"`
	LessonOrder       int    `json:"lesson_order" validate:"required,gte=1"`
	LessonIsFree      bool   `json:"lesson_is_free"`
}

type UpdateLessonRequest struct {
	LessonTitle       *string `json:"lesson_title" validate:"omitempty,min=3"`
	LessonDescription *string `json:"lesson_description"`
	LessonVideoURL    *string `json:"lesson_video_url"`
	LessonDuration    *int    `json:"lesson_duration" validate:"omitempty,gte=0"`
	LessonOrder       *int    `json:"lesson_order" validate:"omitempty,gte=1"`
	LessonIsFree      *bool   `json:"lesson_is_free"`
}

// CourseCard is the catalog list shape.
type CourseCard struct {
	CourseID               uuid.UUID `json:"course_id"`
	CourseTitle            string    `json:"course_title"`
	CourseSlug             string    `json:"course_slug"`
	CourseShortDescription string    `json:"course_short_description"`
	CourseThumbnailURL     string    `json:"course_thumbnail_url"`
	CategoryName           string    `json:"category_name,omitempty"`
	CategorySlug           string    `json:"category_slug,omitempty"`
	InstructorName         string    `json:"instructor_name"`
	InstructorAvatar       string    `json:"instructor_avatar"`
	Price                  float64   `json:"price"`
	OriginalPrice          *float64  `json:"original_price"`
	Currency               string    `json:"currency"`
	Rating                 float64   `json:"rating"`
	ReviewsCount           int       `json:"reviews_count"`
	StudentsCount          int       `json:"students_count"`
	Duration               int       `json:"duration"`
	Level                  string    `json:"level"`
	IsPaid                 bool      `json:"is_paid"`
	HasCertificate         bool      `json:"has_certificate"`
	ColorScheme            string    `json:"color_scheme"`
	CreatedAt              time.Time `json:"created_at"`
}

func ToCourseCard(m model.Course) CourseCard {
	card := CourseCard{
		CourseID:               m.CourseID,
		CourseTitle:            m.CourseTitle,
		CourseSlug:             m.CourseSlug,
		CourseShortDescription: m.CourseShortDescription,
		CourseThumbnailURL:     m.CourseThumbnailURL,
		InstructorName:         m.CourseInstructorName,
		InstructorAvatar:       m.CourseInstructorAvatar,
		Price:                  m.CoursePrice,
		OriginalPrice:          m.CourseOriginalPrice,
		Currency:               m.CourseCurrency,
		Rating:                 m.CourseRating,
		ReviewsCount:           m.CourseReviewsCount,
		StudentsCount:          m.CourseStudentsCount,
		Duration:               m.CourseDuration,
		Level:                  m.CourseLevel,
		IsPaid:                 m.CourseIsPaid,
		HasCertificate:         m.CourseHasCertificate,
		ColorScheme:            m.CourseColorScheme,
		CreatedAt:              m.CreatedAt,
	}
	if m.Category != nil {
		card.CategoryName = m.Category.CategoryName
		card.CategorySlug = m.Category.CategorySlug
	}
	return card
}
