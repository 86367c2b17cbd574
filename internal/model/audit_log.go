package model

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action       string    `gorm:"type:varchar(64);not null" json:"action"`
	ResourceType string    `gorm:"type:varchar(64);not null" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(64);not null;default:''" json:"resource_id"`
	Detail       string    `gorm:"type:text;not null;default:''" json:"detail,omitempty"`
	IPAddress    string    `gorm:"type:varchar(64);not null;default:''" json:"ip_address"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
