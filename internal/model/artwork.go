package model

import "time"

type ArtworkStatus string

const (
	ArtworkPending  ArtworkStatus = "pending"
	ArtworkApproved ArtworkStatus = "approved"
	ArtworkRejected ArtworkStatus = "rejected"
)

func (s ArtworkStatus) Valid() bool {
	switch s {
	case ArtworkPending, ArtworkApproved, ArtworkRejected:
		return true
	}
	return false
}

type Artwork struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	ArtistID           uint          `gorm:"not null;index" json:"artist_id"`
	Title              string        `gorm:"type:varchar(200);not null" json:"title"`
	Description        string        `gorm:"type:text;not null;default:''" json:"description"`
	Medium             string        `gorm:"type:varchar(200);not null;default:''" json:"medium"`
	Year               string        `gorm:"type:varchar(16);not null;default:''" json:"year"`
	ImageURL           string        `gorm:"type:varchar(1024);not null;default:''" json:"image_url"`
	Status             ArtworkStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ReviewNote         string        `gorm:"type:text;not null;default:''" json:"review_note,omitempty"`
	IsVisible          bool          `gorm:"not null" json:"is_visible"`
	ArtistDisplayOrder int           `gorm:"not null;default:0" json:"artist_display_order"`
	GlobalDisplayOrder int           `gorm:"not null;default:0" json:"global_display_order"`
	CreatedAt          time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Artist *Artist `gorm:"foreignKey:ArtistID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"artist,omitempty"`
}

func (Artwork) TableName() string { return "artworks" }
