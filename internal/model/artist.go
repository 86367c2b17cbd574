package model

import "time"

type Artist struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	Slug         string      `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Bio          string      `gorm:"type:text;not null;default:''" json:"bio"`
	Specialty    string      `gorm:"type:varchar(200);not null;default:''" json:"specialty"`
	Exhibitions  StringSlice `gorm:"type:jsonb" json:"exhibitions"`
	ProfileImage string      `gorm:"type:varchar(1024);not null;default:''" json:"profile_image"`
	Featured     bool        `gorm:"not null;default:false" json:"featured"`
	IsVisible    bool        `gorm:"not null" json:"is_visible"`
	IsHidden     bool        `gorm:"not null;default:false" json:"is_hidden"`
	AutoApprove  bool        `gorm:"not null;default:false" json:"auto_approve"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Artist) TableName() string { return "artists" }

// Public reports whether the artist appears on the public gallery.
func (a *Artist) Public() bool {
	return a.IsVisible && !a.IsHidden
}
