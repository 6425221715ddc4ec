package models

import "time"

// Appointment é a reserva de um intervalo [StartTime, EndTime) na agenda
// do barbeiro. Price é snapshot do preço do serviço no momento da reserva.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string  `gorm:"size:20;default:'agendado';index" json:"status"`
	Price  float64 `json:"price"`
	Notes  string  `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
