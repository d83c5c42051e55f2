// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// directiveOrder fixes the output order of Build.
var directiveOrder = []string{
	"default-src",
	"img-src",
	"frame-ancestors",
	"base-uri",
	"object-src",
}

// Builder assembles a policy directive by directive.
//
//	policy := NewBuilder().
//	    DefaultSrc("'none'").
//	    ImgSrc("https:").
//	    Build()
//	// "default-src 'none'; img-src https:"
//
// A Builder is not safe for concurrent use.
type Builder struct {
	directives map[string][]string
}

// NewBuilder returns an empty policy.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

func (b *Builder) set(directive string, sources []string) *Builder {
	b.directives[directive] = append([]string(nil), sources...)
	return b
}

// DefaultSrc sets the fallback for unspecified fetch directives.
func (b *Builder) DefaultSrc(sources ...string) *Builder { return b.set("default-src", sources) }

// ImgSrc sets the allowed image sources.
func (b *Builder) ImgSrc(sources ...string) *Builder { return b.set("img-src", sources) }

// FrameAncestors sets which pages may embed the response.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.set("frame-ancestors", sources)
}

// BaseURI restricts the document base URL.
func (b *Builder) BaseURI(sources ...string) *Builder { return b.set("base-uri", sources) }

// ObjectSrc sets the allowed plugin sources.
func (b *Builder) ObjectSrc(sources ...string) *Builder { return b.set("object-src", sources) }

// Build renders the policy. Directives without sources are omitted.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.directives))
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy belongs in.
func (b *Builder) HeaderName() string {
	return "Content-Security-Policy"
}

// FragmentPolicy is the policy for rendered label fragments: images from any https origin, and
// nothing else.
func FragmentPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		ImgSrc("https:", "data:").
		BaseURI("'none'").
		ObjectSrc("'none'")
}

// StrictPolicy is the policy for JSON responses.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'")
}
