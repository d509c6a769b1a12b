package storage

import (
	"context"

	"go.uber.org/zap"
)

// MirrorStore saves to primary and then copies to mirror. Only the primary
// write can fail the call; mirror failures are logged.
type MirrorStore struct {
	primary ImageStore
	mirror  ImageStore
	logger  *zap.Logger
}

func NewMirrorStore(primary, mirror ImageStore, logger *zap.Logger) *MirrorStore {
	return &MirrorStore{primary: primary, mirror: mirror, logger: logger}
}

func (m *MirrorStore) Save(ctx context.Context, key string, data []byte, contentType string) error {
	if err := m.primary.Save(ctx, key, data, contentType); err != nil {
		return err
	}

	if err := m.mirror.Save(ctx, key, data, contentType); err != nil {
		m.logger.Warn("image mirror failed", zap.String("key", key), zap.Error(err))
	}

	return nil
}
