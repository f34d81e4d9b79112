package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment threads are one level deep: a reply always points at a top-level
// comment, never at another reply.
type Comment struct {
	CommentID         uuid.UUID  `json:"comment_id" gorm:"column:comment_id;type:uuid;primaryKey"`
	CommentLessonID   uuid.UUID  `json:"comment_lesson_id" gorm:"column:comment_lesson_id;type:uuid;not null;index"`
	CommentUserID     string     `json:"comment_user_id" gorm:"column:comment_user_id;not null"`
	CommentUserName   string     `json:"comment_user_name" gorm:"column:comment_user_name"`
	CommentUserAvatar string     `json:"comment_user_avatar" gorm:"column:comment_user_avatar"`
	CommentContent    string     `json:"comment_content" gorm:"column:comment_content;type:text;not null"`
	CommentParentID   *uuid.UUID `json:"comment_parent_id" gorm:"column:comment_parent_id;type:uuid;index"`
	CommentIsEdited   bool       `json:"comment_is_edited" gorm:"column:comment_is_edited;not null;default:false"`
	CreatedAt         time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"column:updated_at"`

	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:CommentParentID;references:CommentID"`
}

func (Comment) TableName() string {
	return "comments"
}

func (m *Comment) BeforeCreate(tx *gorm.DB) error {
	if m.CommentID == uuid.Nil {
		m.CommentID = uuid.New()
	}
	return nil
}
