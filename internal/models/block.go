package models

import "time"

// Block é um período de indisponibilidade declarado pelo barbeiro
// (folga, férias etc). Remoção é sempre soft-delete via Active.
type Block struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Type   string `gorm:"size:20;default:'outro'" json:"type"`
	Reason string `gorm:"size:255" json:"reason"`

	Active bool `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
