package repository

import (
	"context"

	"tk-labels/internal/domain/entity"
)

// BlockConfigRepository persists block settings keyed by block placement id.
type BlockConfigRepository interface {
	// Get returns nil, nil when the block has never been configured.
	Get(ctx context.Context, blockID string) (*entity.BlockConfig, error)
	Save(ctx context.Context, blockID string, cfg entity.BlockConfig) error
}
