// Package pathutil parses ids from request paths and normalizes paths for metric labels.
package pathutil

import (
	"strconv"
	"strings"

	"tk-labels/internal/domain/entity"
)

// ParseID parses a positive int64 path segment. Failures are *entity.ValidationError on
// field "id".
//
// Example:
//
//	id, err := ParseID(r.PathValue("id"))
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &entity.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}
