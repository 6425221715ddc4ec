package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// Expediente: horário de abertura/fechamento e dias de trabalho
	// (lista de weekdays separada por vírgula, 0=domingo).
	OpeningTime string `gorm:"size:5;default:'09:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;default:'18:00'" json:"closing_time"`
	Workdays    string `gorm:"size:20;default:'1,2,3,4,5'" json:"workdays"`

	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
