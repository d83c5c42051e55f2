package labels

import (
	"context"
	"sync"

	"tk-labels/internal/domain/entity"
)

// NoticeSource retrieves the notices of a hub project.
type NoticeSource interface {
	// ProjectNotices issues a GET against requestURL and decodes its "notice" list.
	ProjectNotices(ctx context.Context, requestURL string) ([]entity.Notice, error)
}

// Result is the outcome of a render. Descriptors is never nil; on failure it is empty and Err
// says why, so callers decide whether to log or ignore.
type Result struct {
	Descriptors []entity.RenderDescriptor
	Err         error
}

// OK reports whether the render completed without a fetch failure.
func (r Result) OK() bool {
	return r.Err == nil
}

func emptyResult(err error) Result {
	return Result{Descriptors: []entity.RenderDescriptor{}, Err: err}
}

// RequestURL joins the base URL and project id without encoding or slash normalization.
func RequestURL(baseURL, projectID string) string {
	return baseURL + "/projects/" + projectID
}

// ResolveProjectID returns the first value of the node's project id field.
// A nil node, a missing field and a blank field all yield ok == false.
func ResolveProjectID(node *entity.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	if !node.HasField(entity.ProjectIDField) || node.FieldIsEmpty(entity.ProjectIDField) {
		return "", false
	}
	// Stored field lists drop blank deltas, so the first non-blank item is the first value.
	for _, item := range node.Field(entity.ProjectIDField) {
		if item.Value != "" {
			return item.Value, true
		}
	}
	return "", false
}

// LabelFetcher renders the labels block for content nodes.
//
// The configuration is read on every render and replaced by admin submissions; both paths may
// run concurrently in a server, so access goes through a lock.
type LabelFetcher struct {
	source NoticeSource

	mu  sync.RWMutex
	cfg entity.BlockConfig
}

// NewLabelFetcher creates a fetcher that reads notices from source.
func NewLabelFetcher(source NoticeSource, cfg entity.BlockConfig) *LabelFetcher {
	return &LabelFetcher{source: source, cfg: cfg}
}

// Configure replaces the stored base URL. The value is not validated.
func (f *LabelFetcher) Configure(baseURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.APIBaseURL = baseURL
}

// ApplyConfig replaces the whole configuration.
func (f *LabelFetcher) ApplyConfig(cfg entity.BlockConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
}

// Config returns a copy of the current configuration.
func (f *LabelFetcher) Config() entity.BlockConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// FetchLabels requests {baseURL}/projects/{projectID} and renders one descriptor per notice.
// Any failure yields an empty result carrying the error.
func (f *LabelFetcher) FetchLabels(ctx context.Context, baseURL, projectID string) Result {
	if baseURL == "" || projectID == "" {
		return emptyResult(ErrMissingInput)
	}
	if f.source == nil {
		return emptyResult(ErrNoSource)
	}

	notices, err := f.source.ProjectNotices(ctx, RequestURL(baseURL, projectID))
	if err != nil {
		return emptyResult(err)
	}
	return Result{Descriptors: Render(notices, f.Config().EscapeMarkup)}
}

// Build renders the block for node. Nodes without a project id render nothing and are not a
// failure.
func (f *LabelFetcher) Build(ctx context.Context, node *entity.Node) Result {
	projectID, ok := ResolveProjectID(node)
	if !ok {
		return emptyResult(nil)
	}
	return f.FetchLabels(ctx, f.Config().APIBaseURL, projectID)
}

// EntityHasTerm reports whether node references a taxonomy term whose external URI equals the
// configured URI. Negate inverts both the match and the no-match outcome.
func (f *LabelFetcher) EntityHasTerm(node *entity.Node) bool {
	cfg := f.Config()
	if node == nil {
		return cfg.Negate
	}
	for _, ref := range node.ReferencedEntities() {
		if ref == nil || ref.EntityTypeID() != entity.EntityTypeTerm {
			continue
		}
		if ref.FieldIsEmpty(entity.ExternalURIField) {
			continue
		}
		if firstURI(ref.Field(entity.ExternalURIField)) == cfg.URI {
			return !cfg.Negate
		}
	}
	return cfg.Negate
}

func firstURI(items []entity.FieldItem) string {
	for _, item := range items {
		if item.URI != "" || item.Value != "" {
			return item.URI
		}
	}
	return ""
}
