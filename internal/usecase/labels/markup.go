package labels

import (
	"html"

	"tk-labels/internal/domain/entity"
)

// RenderMarkup renders a notice as the block's image tag.
// Unless escape is set, the hub values are embedded exactly as received.
func RenderMarkup(n entity.Notice, escape bool) string {
	title, src := n.DefaultText, n.ImgURL
	if escape {
		title, src = html.EscapeString(title), html.EscapeString(src)
	}
	return `<img class="tk-labels" title="` + title + `" src="` + src + `">`
}

// Render maps notices to descriptors, preserving hub order.
func Render(notices []entity.Notice, escape bool) []entity.RenderDescriptor {
	out := make([]entity.RenderDescriptor, 0, len(notices))
	for _, n := range notices {
		out = append(out, entity.RenderDescriptor{Markup: RenderMarkup(n, escape)})
	}
	return out
}
