package keys

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"coldwatch/internal/models"
	"coldwatch/internal/repo"
)

// Service issues and revokes tenant ingest keys. The secret is stored raw:
// HMAC verification needs the original bytes server-side, so unlike a
// password there is nothing to hash.
type Service struct{ Store *repo.KeyStore }

func New(store *repo.KeyStore) *Service { return &Service{Store: store} }

// Issue mints a new active key for the tenant and returns it including the
// secret. The secret is shown once; older active keys stay valid until
// revoked, but lookups prefer the newest.
func (s *Service) Issue(ctx context.Context, tenantID string) (*models.IngestKey, error) {
	var raw [32]byte
	_, _ = rand.Read(raw[:])
	k := &models.IngestKey{
		TenantID:  tenantID,
		KeyID:     hex.EncodeToString(raw[:6]), // short id
		Secret:    hex.EncodeToString(raw[:]),
		Status:    models.KeyStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// RevokeAll revokes every active key of the tenant.
func (s *Service) RevokeAll(ctx context.Context, tenantID string) (int64, error) {
	return s.Store.RevokeAll(ctx, tenantID)
}
