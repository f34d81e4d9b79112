package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is an upsert target: the last review per (user, course) replaces the
// prior rating/comment.
type Review struct {
	ReviewID          uuid.UUID `json:"review_id" gorm:"column:review_id;type:uuid;primaryKey"`
	ReviewUserID      string    `json:"review_user_id" gorm:"column:review_user_id;not null;uniqueIndex:uq_reviews_user_course"`
	ReviewCourseID    uuid.UUID `json:"review_course_id" gorm:"column:review_course_id;type:uuid;not null;uniqueIndex:uq_reviews_user_course"`
	ReviewUserName    string    `json:"review_user_name" gorm:"column:review_user_name"`
	ReviewUserAvatar  string    `json:"review_user_avatar" gorm:"column:review_user_avatar"`
	ReviewRating      int       `json:"review_rating" gorm:"column:review_rating;not null"` // 1..5
	ReviewComment     string    `json:"review_comment" gorm:"column:review_comment;type:text"`
	ReviewIsPublished bool      `json:"review_is_published" gorm:"column:review_is_published;not null;default:true"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (m *Review) BeforeCreate(tx *gorm.DB) error {
	if m.ReviewID == uuid.Nil {
		m.ReviewID = uuid.New()
	}
	return nil
}
