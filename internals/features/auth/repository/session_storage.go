// file: internals/features/auth/repository/session_storage.go
package repository

import (
	"errors"
	"time"

	"worknest_backend/internals/features/auth/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sessions without an expiry are kept this long.
const defaultSessionTTL = 24 * time.Hour

// GormSessionStorage implements fiber.Storage on the admin_sessions table.
type GormSessionStorage struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewGormSessionStorage(db *gorm.DB) (*GormSessionStorage, error) {
	if err := db.AutoMigrate(&model.AdminSessionModel{}); err != nil {
		return nil, err
	}
	return &GormSessionStorage{DB: db, Now: time.Now}, nil
}

// Get returns nil, nil for a missing or expired key.
func (s *GormSessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var row model.AdminSessionModel
	err := s.DB.
		Where("admin_session_key = ? AND admin_session_expires_at > ?", key, s.Now()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.AdminSessionData, nil
}

func (s *GormSessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		exp = defaultSessionTTL
	}
	row := model.AdminSessionModel{
		AdminSessionKey:       key,
		AdminSessionData:      val,
		AdminSessionExpiresAt: s.Now().Add(exp),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"admin_session_data", "admin_session_expires_at", "admin_session_updated_at"}),
	}).Create(&row).Error
}

func (s *GormSessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.DB.Where("admin_session_key = ?", key).Delete(&model.AdminSessionModel{}).Error
}

func (s *GormSessionStorage) Reset() error {
	return s.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.AdminSessionModel{}).Error
}

// Close leaves the pool alone; it belongs to the store.
func (s *GormSessionStorage) Close() error { return nil }

// DeleteExpired removes up to limit expired rows and reports how many went.
func (s *GormSessionStorage) DeleteExpired(limit int) (int64, error) {
	var keys []string
	if err := s.DB.Model(&model.AdminSessionModel{}).
		Where("admin_session_expires_at <= ?", s.Now()).
		Limit(limit).
		Pluck("admin_session_key", &keys).Error; err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	res := s.DB.Where("admin_session_key IN ?", keys).Delete(&model.AdminSessionModel{})
	return res.RowsAffected, res.Error
}
