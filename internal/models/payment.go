package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	PayerUserID *uint `gorm:"index" json:"payer_user_id"`
	Payer       *User `gorm:"foreignKey:PayerUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"payer,omitempty"`

	Amount float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method string    `gorm:"size:20;not null" json:"method"`
	Status string    `gorm:"size:20;not null;default:'paid'" json:"status"`
	PaidAt time.Time `gorm:"type:timestamptz;not null;index" json:"paid_at"`

	CreatedByID *uint `json:"created_by"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Notes *string `gorm:"type:text" json:"notes"`

	// ExternalSessionID is the gateway idempotency key. NULLs do not collide.
	ExternalSessionID *string `gorm:"size:255;uniqueIndex" json:"external_session_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
