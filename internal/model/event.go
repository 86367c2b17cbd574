package model

import "time"

type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	Location    string     `gorm:"type:varchar(300);not null;default:''" json:"location"`
	ImageURL    string     `gorm:"type:varchar(1024);not null;default:''" json:"image_url"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	IsVisible   bool       `gorm:"not null" json:"is_visible"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Event) TableName() string { return "events" }
