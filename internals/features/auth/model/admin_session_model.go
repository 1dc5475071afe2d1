package model

import "time"

// AdminSessionModel backs the session cookie when a relational store is configured.
type AdminSessionModel struct {
	AdminSessionKey       string    `gorm:"column:admin_session_key;type:varchar(64);primaryKey" json:"admin_session_key"`
	AdminSessionData      []byte    `gorm:"column:admin_session_data;not null" json:"-"`
	AdminSessionExpiresAt time.Time `gorm:"column:admin_session_expires_at;index" json:"admin_session_expires_at"`
	AdminSessionCreatedAt time.Time `gorm:"column:admin_session_created_at;autoCreateTime" json:"admin_session_created_at"`
	AdminSessionUpdatedAt time.Time `gorm:"column:admin_session_updated_at;autoUpdateTime" json:"admin_session_updated_at"`
}

func (AdminSessionModel) TableName() string {
	return "admin_sessions"
}
