package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusExpired   = "EXPIRED"
	PaymentStatusCanceled  = "CANCELED"
	PaymentStatusRefunded  = "REFUNDED"
)

type Payment struct {
	PaymentID       uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;primaryKey"`
	PaymentUserID   string    `json:"payment_user_id" gorm:"column:payment_user_id;not null;index"`
	PaymentCourseID uuid.UUID `json:"payment_course_id" gorm:"column:payment_course_id;type:uuid;not null;index"`

	// identity snapshot taken at checkout so the async gateway notification
	// can enroll without another provider lookup
	PaymentUserName  string `json:"payment_user_name" gorm:"column:payment_user_name"`
	PaymentUserEmail string `json:"payment_user_email" gorm:"column:payment_user_email"`

	PaymentAmount   float64 `json:"payment_amount" gorm:"column:payment_amount;not null"`
	PaymentCurrency string  `json:"payment_currency" gorm:"column:payment_currency;not null;default:USD"`
	PaymentStatus   string  `json:"payment_status" gorm:"column:payment_status;not null;default:PENDING"`

	// membership-provider reconciliation ids (plan purchases)
	PaymentPlanID           *string `json:"payment_plan_id" gorm:"column:payment_plan_id"`
	PaymentPlanConnectionID *string `json:"payment_plan_connection_id" gorm:"column:payment_plan_connection_id;index"`

	// gateway order reference (midtrans checkout)
	PaymentOrderID *string `json:"payment_order_id" gorm:"column:payment_order_id;uniqueIndex"`
	PaymentGateway string  `json:"payment_gateway" gorm:"column:payment_gateway"`

	PaymentCompletedAt *time.Time `json:"payment_completed_at" gorm:"column:payment_completed_at"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
