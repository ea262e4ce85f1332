package model

import "time"

type Lead struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time      `json:"dateCreated"`
	UpdatedAt   time.Time      `json:"lastModifiedDate"`
	Name        string         `json:"name" gorm:"size:100;not null"`
	Email       string         `json:"email" gorm:"size:200"`
	Phone       string         `json:"phone" gorm:"size:20"`
	Company     string         `json:"company" gorm:"size:100"`
	Source      string         `json:"source" gorm:"size:50"` // 线索来源，如 Website / Referral
	ContactDate *time.Time     `json:"contactDate"`
	Images      []ProfileImage `json:"-" gorm:"foreignKey:LeadID;references:ID;constraint:OnDelete:CASCADE;"`
}
