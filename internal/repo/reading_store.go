package repo

import (
	"context"

	"gorm.io/gorm"

	"coldwatch/internal/models"
)

type ReadingStore struct{ db *gorm.DB }

func NewReadingStore(db *gorm.DB) *ReadingStore { return &ReadingStore{db: db} }

// InsertReading persists one reading. The row is immutable afterwards; its
// status is the evaluator's verdict at insert time and is never recomputed.
func (s *ReadingStore) InsertReading(ctx context.Context, r *models.TemperatureReading) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// ListFilter narrows ListRecent. Zero values mean "no filter".
type ListFilter struct {
	TenantID string
	SiteID   string
	Status   string
	Limit    int
}

// ListRecent returns readings newest-first for the back-office surface.
func (s *ReadingStore) ListRecent(ctx context.Context, f ListFilter) ([]models.TemperatureReading, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.db.WithContext(ctx).Order("recorded_at DESC").Limit(limit)
	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.SiteID != "" {
		q = q.Where("site_id = ?", f.SiteID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var rows []models.TemperatureReading
	err := q.Find(&rows).Error
	return rows, err
}
