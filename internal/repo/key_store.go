package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"coldwatch/internal/models"
)

type KeyStore struct{ db *gorm.DB }

func NewKeyStore(db *gorm.DB) *KeyStore { return &KeyStore{db: db} }

// FindActiveKey returns the tenant's current ingest key: the most recently
// created row with status=active. Returns (nil, nil) when none exists; the
// caller maps that to 401.
func (s *KeyStore) FindActiveKey(ctx context.Context, tenantID string) (*models.IngestKey, error) {
	var k models.IngestKey
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, models.KeyStatusActive).
		Order("created_at DESC").
		First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *KeyStore) Create(ctx context.Context, k *models.IngestKey) error {
	return s.db.WithContext(ctx).Create(k).Error
}

// RevokeAll marks every active key of the tenant revoked.
func (s *KeyStore) RevokeAll(ctx context.Context, tenantID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.IngestKey{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.KeyStatusActive).
		Update("status", models.KeyStatusRevoked)
	return res.RowsAffected, res.Error
}
