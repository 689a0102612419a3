package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coldwatch/internal/models"
)

type ActionStore struct{ db *gorm.DB }

func NewActionStore(db *gorm.DB) *ActionStore { return &ActionStore{db: db} }

// UpsertActions inserts the given breach actions in a single statement.
// Conflicts on (reading_id, action_type) are dropped at the store level, so
// concurrent redelivery of the same breach cannot create duplicates. This
// must stay a DB-side upsert, not a read-then-write check.
func (s *ActionStore) UpsertActions(ctx context.Context, rows []models.BreachAction) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reading_id"}, {Name: "action_type"}},
		DoNothing: true,
	}).Create(&rows).Error
}

// ListPending returns queued actions oldest-due first, for the escalation
// workers that consume the queue.
func (s *ActionStore) ListPending(ctx context.Context, tenantID string, limit int) ([]models.BreachAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.db.WithContext(ctx).
		Where("status = ?", models.ActionStatusPending).
		Order("due_at ASC").Limit(limit)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	var rows []models.BreachAction
	err := q.Find(&rows).Error
	return rows, err
}

// CountForReading reports how many actions exist for one reading.
func (s *ActionStore) CountForReading(ctx context.Context, readingID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.BreachAction{}).
		Where("reading_id = ?", readingID).Count(&n).Error
	return n, err
}
