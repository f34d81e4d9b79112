package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
)

type Wishlist struct {
	WishlistID       uuid.UUID `json:"wishlist_id" gorm:"column:wishlist_id;type:uuid;primaryKey"`
	WishlistUserID   string    `json:"wishlist_user_id" gorm:"column:wishlist_user_id;not null;uniqueIndex:uq_wishlists_user_course"`
	WishlistCourseID uuid.UUID `json:"wishlist_course_id" gorm:"column:wishlist_course_id;type:uuid;not null;uniqueIndex:uq_wishlists_user_course"`
	WishlistAddedAt  time.Time `json:"wishlist_added_at" gorm:"column:wishlist_added_at;not null"`

	Course *courseModel.Course `json:"course,omitempty" gorm:"foreignKey:WishlistCourseID;references:CourseID"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

func (m *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if m.WishlistID == uuid.Nil {
		m.WishlistID = uuid.New()
	}
	if m.WishlistAddedAt.IsZero() {
		m.WishlistAddedAt = time.Now()
	}
	return nil
}
