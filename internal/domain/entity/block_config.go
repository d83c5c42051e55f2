package entity

// DefaultAPIBaseURL is the Local Contexts hub endpoint used until an admin changes it.
const DefaultAPIBaseURL = "https://localcontextshub.org/api/v1"

// BlockConfig is the admin-editable configuration of one block placement.
type BlockConfig struct {
	// APIBaseURL is prefixed verbatim to "/projects/{id}".
	APIBaseURL string `json:"api_base_url" yaml:"api_base_url"`

	// URI is the external term URI matched by the term predicate.
	URI string `json:"uri,omitempty" yaml:"uri"`

	// Negate inverts both outcomes of the term predicate.
	Negate bool `json:"negate,omitempty" yaml:"negate"`

	// EscapeMarkup HTML-escapes notice text and image URLs before embedding them.
	// Off by default so rendered markup matches the hub payload byte for byte.
	EscapeMarkup bool `json:"escape_markup,omitempty" yaml:"escape_markup"`
}

// DefaultBlockConfig returns the configuration of a freshly placed block.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{APIBaseURL: DefaultAPIBaseURL}
}
