package labels

import "tk-labels/internal/domain/entity"

// Form field names accepted by SubmitForm.
const (
	FieldAPIBaseURL = "api_base_url"
)

// FormField describes one input of the block's admin form.
type FormField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	DefaultValue string `json:"default_value"`
}

// Form is the admin configuration form of the block.
type Form struct {
	Fields []FormField `json:"fields"`
}

// FormValues holds submitted form input keyed by field name.
type FormValues map[string]string

// Lookup returns the submitted value and whether the key was present at all.
func (v FormValues) Lookup(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	val, ok := v[key]
	return val, ok
}

// BlockForm builds the admin form prefilled with the stored configuration.
func BlockForm(cfg entity.BlockConfig) Form {
	return Form{
		Fields: []FormField{
			{
				Name:         FieldAPIBaseURL,
				Type:         "textfield",
				Title:        "API Base URL",
				DefaultValue: cfg.APIBaseURL,
			},
		},
	}
}

// SubmitForm writes submitted values onto cfg verbatim. Keys that were not submitted leave the
// stored value untouched.
func SubmitForm(cfg entity.BlockConfig, values FormValues) entity.BlockConfig {
	if v, ok := values.Lookup(FieldAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	return cfg
}
