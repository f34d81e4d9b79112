package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

type Course struct {
	CourseID               uuid.UUID  `json:"course_id" gorm:"column:course_id;type:uuid;primaryKey"`
	CourseTitle            string     `json:"course_title" gorm:"column:course_title;not null"`
	CourseSlug             string     `json:"course_slug" gorm:"column:course_slug;uniqueIndex;not null"`
	CourseDescription      string     `json:"course_description" gorm:"column:course_description;type:text"`
	CourseShortDescription string     `json:"course_short_description" gorm:"column:course_short_description"`
	CourseThumbnailURL     string     `json:"course_thumbnail_url" gorm:"column:course_thumbnail_url"`
	CoursePreviewVideoURL  string     `json:"course_preview_video_url" gorm:"column:course_preview_video_url"`
	CourseCategoryID       *uuid.UUID `json:"course_category_id" gorm:"column:course_category_id;type:uuid;index"`

	CourseInstructorID     string `json:"course_instructor_id" gorm:"column:course_instructor_id"`
	CourseInstructorName   string `json:"course_instructor_name" gorm:"column:course_instructor_name"`
	CourseInstructorAvatar string `json:"course_instructor_avatar" gorm:"column:course_instructor_avatar"`
	CourseInstructorBio    string `json:"course_instructor_bio" gorm:"column:course_instructor_bio;type:text"`

	CoursePrice         float64  `json:"course_price" gorm:"column:course_price;not null;default:0"`
	CourseOriginalPrice *float64 `json:"course_original_price" gorm:"column:course_original_price"`
	CourseCurrency      string   `json:"course_currency" gorm:"column:course_currency;not null;default:USD"`

	CourseDuration int    `json:"course_duration" gorm:"column:course_duration;not null;default:0"` // minutes
	CourseLevel    string `json:"course_level" gorm:"column:course_level;not null;default:BEGINNER"`

	CourseTags             datatypes.JSON `json:"course_tags" gorm:"column:course_tags"`
	CourseWhatYouWillLearn datatypes.JSON `json:"course_what_you_will_learn" gorm:"column:course_what_you_will_learn"`
	CourseRequirements     datatypes.JSON `json:"course_requirements" gorm:"column:course_requirements"`

	CourseIsPaid         bool `json:"course_is_paid" gorm:"column:course_is_paid;not null;default:false"`
	CourseIsPopular      bool `json:"course_is_popular" gorm:"column:course_is_popular;not null;default:false"`
	CourseIsNew          bool `json:"course_is_new" gorm:"column:course_is_new;not null;default:false"`
	CourseIsPublished    bool `json:"course_is_published" gorm:"column:course_is_published;not null;default:false"`
	CourseHasCertificate bool `json:"course_has_certificate" gorm:"column:course_has_certificate;not null;default:false"`

	// aggregate counters maintained by review/enrollment side effects
	CourseRating        float64 `json:"course_rating" gorm:"column:course_rating;not null;default:0"`
	CourseReviewsCount  int     `json:"course_reviews_count" gorm:"column:course_reviews_count;not null;default:0"`
	CourseStudentsCount int     `json:"course_students_count" gorm:"column:course_students_count;not null;default:0"`

	CourseColorScheme string `json:"course_color_scheme" gorm:"column:course_color_scheme"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CourseCategoryID;references:CategoryID"`
	Lessons  []Lesson  `json:"lessons,omitempty" gorm:"foreignKey:LessonCourseID;references:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

func (m *Course) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
