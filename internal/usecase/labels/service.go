package labels

import (
	"context"
	"fmt"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/observability/metrics"
	"tk-labels/internal/repository"
)

// DefaultBlockID identifies the block placement when only one is configured.
const DefaultBlockID = "tk_labels"

// Service wires the fetcher to node and configuration storage.
type Service struct {
	Nodes   repository.NodeRepository
	Configs repository.BlockConfigRepository
	Fetcher *LabelFetcher
	BlockID string
}

// NewService creates a Service for the given block placement.
// An empty blockID selects DefaultBlockID.
func NewService(nodes repository.NodeRepository, configs repository.BlockConfigRepository, fetcher *LabelFetcher, blockID string) *Service {
	if blockID == "" {
		blockID = DefaultBlockID
	}
	return &Service{Nodes: nodes, Configs: configs, Fetcher: fetcher, BlockID: blockID}
}

// Load copies the persisted configuration into the fetcher. A block that was never configured
// keeps the fetcher's current configuration.
func (s *Service) Load(ctx context.Context) error {
	cfg, err := s.Configs.Get(ctx, s.BlockID)
	if err != nil {
		return fmt.Errorf("load block config: %w", err)
	}
	if cfg != nil {
		s.Fetcher.ApplyConfig(*cfg)
	}
	return nil
}

// RenderNode renders the block for a stored node. Unknown nodes render nothing. The returned
// error is reserved for invalid ids and storage failures; hub failures travel in Result.Err.
func (s *Service) RenderNode(ctx context.Context, nodeID int64) (Result, error) {
	if nodeID <= 0 {
		return emptyResult(nil), entity.ErrInvalidNodeID
	}

	node, err := s.Nodes.Get(ctx, nodeID)
	if err != nil {
		return emptyResult(nil), fmt.Errorf("get node: %w", err)
	}

	res := s.Fetcher.Build(ctx, node)
	switch {
	case !res.OK():
		metrics.RecordBlockRender("failed", 0)
	case len(res.Descriptors) == 0:
		metrics.RecordBlockRender("empty", 0)
	default:
		metrics.RecordBlockRender("rendered", len(res.Descriptors))
	}
	return res, nil
}

// Form returns the admin form for the current configuration.
func (s *Service) Form() Form {
	return BlockForm(s.Fetcher.Config())
}

// Submit applies submitted form values, persists the result and makes it live.
func (s *Service) Submit(ctx context.Context, values FormValues) (entity.BlockConfig, error) {
	cfg := SubmitForm(s.Fetcher.Config(), values)
	if err := s.Configs.Save(ctx, s.BlockID, cfg); err != nil {
		metrics.RecordConfigUpdate(false)
		return entity.BlockConfig{}, fmt.Errorf("save block config: %w", err)
	}
	s.Fetcher.ApplyConfig(cfg)
	metrics.RecordConfigUpdate(true)
	return cfg, nil
}
