package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records one mutating operation: who did what to which
// resource. Changes is a JSON document keyed by field name.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Action     string    `gorm:"size:50;not null;index" json:"action"`
	Resource   string    `gorm:"size:50;not null;index" json:"resource"`
	ResourceID string    `gorm:"size:100" json:"resource_id,omitempty"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail  string    `gorm:"size:255;not null" json:"user_email"`
	Changes    string    `gorm:"type:jsonb" json:"changes,omitempty"`
	IPAddress  string    `gorm:"size:50" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
