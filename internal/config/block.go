// Package config loads the optional YAML seed for the block placement.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"tk-labels/internal/domain/entity"
	envconfig "tk-labels/pkg/config"
)

// BlockConfigFileEnv names the environment variable that points at the seed file.
const BlockConfigFileEnv = "BLOCK_CONFIG_FILE"

// BlockFile is the document layout of the seed file.
//
//	block:
//	  id: tk_labels
//	  api_base_url: https://localcontextshub.org/api/v1
//	  uri: https://example.org/terms/1
//	  negate: false
type BlockFile struct {
	Block struct {
		ID                 string `yaml:"id"`
		entity.BlockConfig `yaml:",inline"`
	} `yaml:"block"`
}

// LoadBlockSeed reads the seed file at path. Keys missing from the file keep the values of
// entity.DefaultBlockConfig.
// The path is expected to come from a trusted source (environment or CLI flag).
func LoadBlockSeed(path string) (*BlockFile, error) {
	// #nosec G304 -- path is provided by the operator, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block config file: %w", err)
	}

	var file BlockFile
	file.Block.BlockConfig = entity.DefaultBlockConfig()
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse block config: %w", err)
	}

	if err := validateBlockFile(&file); err != nil {
		return nil, fmt.Errorf("block config validation failed: %w", err)
	}
	return &file, nil
}

// LoadBlockSeedFromEnv loads the seed named by BLOCK_CONFIG_FILE.
// It returns nil, nil when the variable is unset.
func LoadBlockSeedFromEnv() (*BlockFile, error) {
	path := envconfig.GetEnvString(BlockConfigFileEnv, "")
	if path == "" {
		return nil, nil
	}
	return LoadBlockSeed(path)
}

func validateBlockFile(file *BlockFile) error {
	invalid := func(msg string) error {
		return &entity.ValidationError{Field: "api_base_url", Message: msg}
	}

	if file.Block.APIBaseURL == "" {
		return invalid("is required")
	}

	u, err := url.Parse(file.Block.APIBaseURL)
	if err != nil {
		return invalid(fmt.Sprintf("is not a valid URL: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid(fmt.Sprintf("must use http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		return invalid("must include a host")
	}
	return nil
}
