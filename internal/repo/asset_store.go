package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"coldwatch/internal/models"
)

type AssetStore struct{ db *gorm.DB }

func NewAssetStore(db *gorm.DB) *AssetStore { return &AssetStore{db: db} }

// FindAsset looks an asset up by its public uuid. Not-found is reported as
// (nil, nil): the ingest flow degrades to fallback bounds instead of failing.
func (s *AssetStore) FindAsset(ctx context.Context, uuid string) (*models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssetStore) Create(ctx context.Context, a *models.Asset) error {
	return s.db.WithContext(ctx).Create(a).Error
}
