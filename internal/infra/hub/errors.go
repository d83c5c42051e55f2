// Package hub is the outbound client of the Local Contexts hub API.
package hub

import "errors"

// Sentinel errors returned by Client. Callers match them with errors.Is.
var (
	// ErrInvalidURL indicates the request URL is malformed or not http(s).
	ErrInvalidURL = errors.New("invalid hub URL or unsupported scheme")

	// ErrPrivateIP indicates the hub host resolves to a private address while that is denied.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected hub response status")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("hub response body too large")

	// ErrTimeout indicates the request did not finish within the configured timeout.
	ErrTimeout = errors.New("hub request timeout")

	// ErrInvalidJSON indicates the body is not valid JSON.
	ErrInvalidJSON = errors.New("hub response is not valid JSON")

	// ErrMissingNotice indicates valid JSON without a "notice" array.
	ErrMissingNotice = errors.New("hub response has no notice list")

	errRateLimitWait = errors.New("hub rate limit wait")
)
