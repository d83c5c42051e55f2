// Package block serves the TK Labels block: rendering for a node and the admin configuration form.
package block

import "tk-labels/internal/domain/entity"

// LabelDTO is one rendered label in a JSON render response.
type LabelDTO struct {
	Markup string `json:"markup"`
}

// RenderDTO is the JSON body of GET /nodes/{id}/tk-labels?format=json.
type RenderDTO struct {
	Labels []LabelDTO `json:"labels"`
	Count  int        `json:"count"`
}

// ConfigDTO is the block configuration returned after a submit.
type ConfigDTO struct {
	APIBaseURL   string `json:"api_base_url"`
	URI          string `json:"uri,omitempty"`
	Negate       bool   `json:"negate"`
	EscapeMarkup bool   `json:"escape_markup"`
}

func toRenderDTO(descriptors []entity.RenderDescriptor) RenderDTO {
	out := RenderDTO{Labels: make([]LabelDTO, 0, len(descriptors))}
	for _, d := range descriptors {
		out.Labels = append(out.Labels, LabelDTO{Markup: d.Markup})
	}
	out.Count = len(out.Labels)
	return out
}

func toConfigDTO(cfg entity.BlockConfig) ConfigDTO {
	return ConfigDTO{
		APIBaseURL:   cfg.APIBaseURL,
		URI:          cfg.URI,
		Negate:       cfg.Negate,
		EscapeMarkup: cfg.EscapeMarkup,
	}
}
