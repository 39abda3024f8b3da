package models

import "time"

type Service struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"size:100;not null" json:"name"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMinutes int     `gorm:"not null;default:30" json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
