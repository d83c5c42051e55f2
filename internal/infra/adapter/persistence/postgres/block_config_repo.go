package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/repository"
)

// BlockConfigRepo stores block settings as JSON, one row per block id.
type BlockConfigRepo struct{ db querier }

// NewBlockConfigRepo returns a BlockConfigRepository backed by db.
func NewBlockConfigRepo(db querier) repository.BlockConfigRepository {
	return &BlockConfigRepo{db: db}
}

func (repo *BlockConfigRepo) Get(ctx context.Context, blockID string) (*entity.BlockConfig, error) {
	const query = `
SELECT settings
FROM block_configs
WHERE block_id = $1
LIMIT 1`
	var settings []byte
	err := repo.db.QueryRowContext(ctx, query, blockID).Scan(&settings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	// Settings saved before a key existed keep that key's default.
	cfg := entity.DefaultBlockConfig()
	if err := json.Unmarshal(settings, &cfg); err != nil {
		return nil, fmt.Errorf("Get: unmarshal settings: %w", err)
	}
	return &cfg, nil
}

func (repo *BlockConfigRepo) Save(ctx context.Context, blockID string, cfg entity.BlockConfig) error {
	settings, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("Save: marshal settings: %w", err)
	}

	const query = `
INSERT INTO block_configs (block_id, settings, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (block_id) DO UPDATE
SET settings = EXCLUDED.settings, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.ExecContext(ctx, query, blockID, settings); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}
