package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	BarberID uint `gorm:"not null;index" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	ServiceID uint    `gorm:"not null;index" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ScheduledAt time.Time `gorm:"type:timestamptz;not null;index" json:"scheduled_at"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes       *string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
