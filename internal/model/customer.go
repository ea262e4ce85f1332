package model

import "time"

type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"dateCreated"`
	UpdatedAt time.Time      `json:"lastModifiedDate"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Email     string         `json:"email" gorm:"size:200"`
	Phone     string         `json:"phone" gorm:"size:20"`
	Address   string         `json:"address" gorm:"size:500"`
	Images    []ProfileImage `json:"-" gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE;"`
}
