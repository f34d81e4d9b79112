package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	CategoryID    uuid.UUID `json:"category_id" gorm:"column:category_id;type:uuid;primaryKey"`
	CategoryName  string    `json:"category_name" gorm:"column:category_name;not null"`
	CategorySlug  string    `json:"category_slug" gorm:"column:category_slug;uniqueIndex;not null"`
	CategoryIcon  string    `json:"category_icon" gorm:"column:category_icon"`
	CategoryColor string    `json:"category_color" gorm:"column:category_color"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (m *Category) BeforeCreate(tx *gorm.DB) error {
	if m.CategoryID == uuid.Nil {
		m.CategoryID = uuid.New()
	}
	return nil
}
