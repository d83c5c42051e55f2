// Package labels implements the traditional knowledge labels block: it resolves the hub project
// of a content node, fetches the project's notices and renders them as image markup.
package labels

import "errors"

// Sentinel errors for label use case operations.
var (
	// ErrMissingInput indicates FetchLabels was called without a base URL or project id.
	ErrMissingInput = errors.New("base url and project id are required")

	// ErrNoSource indicates the fetcher was built without a notice source.
	ErrNoSource = errors.New("no notice source configured")
)
