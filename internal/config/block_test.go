package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tk-labels/internal/domain/entity"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "block.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBlockSeed(t *testing.T) {
	path := writeSeed(t, `
block:
  id: tk_labels
  api_base_url: https://hub.example.org/api/v2
  uri: https://example.org/terms/7
  negate: true
`)

	file, err := LoadBlockSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "tk_labels", file.Block.ID)
	assert.Equal(t, "https://hub.example.org/api/v2", file.Block.APIBaseURL)
	assert.Equal(t, "https://example.org/terms/7", file.Block.URI)
	assert.True(t, file.Block.Negate)
	assert.False(t, file.Block.EscapeMarkup)
}

func TestLoadBlockSeed_DefaultsMissingKeys(t *testing.T) {
	path := writeSeed(t, "block:\n  id: sidebar\n")

	file, err := LoadBlockSeed(path)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAPIBaseURL, file.Block.APIBaseURL)
}

func TestLoadBlockSeed_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		validation bool
	}{
		{name: "malformed yaml", content: "block: [unclosed"},
		{name: "empty base url", content: "block:\n  api_base_url: \"\"\n", validation: true},
		{name: "unsupported scheme", content: "block:\n  api_base_url: ftp://hub.example.org\n", validation: true},
		{name: "missing host", content: "block:\n  api_base_url: https://\n", validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBlockSeed(writeSeed(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.validation, errors.Is(err, entity.ErrValidationFailed))
			if tt.validation {
				var validationErr *entity.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "api_base_url", validationErr.Field)
			}
		})
	}
}

func TestLoadBlockSeed_MissingFile(t *testing.T) {
	_, err := LoadBlockSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadBlockSeedFromEnv(t *testing.T) {
	t.Setenv(BlockConfigFileEnv, "")
	file, err := LoadBlockSeedFromEnv()
	require.NoError(t, err)
	assert.Nil(t, file)

	t.Setenv(BlockConfigFileEnv, writeSeed(t, "block:\n  api_base_url: http://localhost:9000/api\n"))
	file, err = LoadBlockSeedFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api", file.Block.APIBaseURL)
}
