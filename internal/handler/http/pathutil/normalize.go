package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/nodes/[^/]+/tk-labels$`), Template: "/nodes/:id/tk-labels"},
	{Pattern: regexp.MustCompile(`^/nodes/[^/]+$`), Template: "/nodes/:id"},
}

// NormalizePath replaces ids in dynamic paths with placeholders so metric label cardinality
// stays bounded.
//
//	NormalizePath("/nodes/42/tk-labels")      // "/nodes/:id/tk-labels"
//	NormalizePath("/blocks/tk-labels/config") // unchanged
//	NormalizePath("/health?verbose=1")        // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
