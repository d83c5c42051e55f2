package repository

import (
	"context"

	"tk-labels/internal/domain/entity"
)

// NodeRepository loads content nodes together with their fields and term references.
type NodeRepository interface {
	// Get returns nil, nil when the node does not exist.
	Get(ctx context.Context, id int64) (*entity.Node, error)
}
