package registry

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/ratelimit/bucket"
)

// FileConfig is the on-disk description of every data source limiter.
type FileConfig struct {
	// Sources maps a data source name to its rate limit policy.
	Sources map[string]SourceConfig `yaml:"sources"`
}

// SourceConfig defines the rate limit policy of a single data source.
type SourceConfig struct {
	// Capacity is the maximum number of tokens (burst size).
	Capacity int `yaml:"capacity"`

	// RefillRate is the number of tokens added per second.
	RefillRate int `yaml:"refill_rate"`

	// Enabled turns the limiter off when explicitly false. Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty"`

	// WaitTimeout bounds a single acquire, e.g. "30s". Defaults to 30s.
	WaitTimeout string `yaml:"wait_timeout,omitempty"`
}

// LoadConfigFromFile loads source policies from a YAML file.
func LoadConfigFromFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", errors.ErrInvalidConfiguration, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a YAML document of source policies.
func ParseConfig(data []byte) (*FileConfig, error) {
	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", errors.ErrInvalidConfiguration, err)
	}
	if config.Sources == nil {
		config.Sources = make(map[string]SourceConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every source policy.
func (c *FileConfig) Validate() error {
	for _, source := range c.SourceNames() {
		if source == "" {
			return errors.NewValidationError("registry", "source", source, "cannot be empty")
		}
		src := c.Sources[source]
		cfg, err := src.BucketConfig()
		if err != nil {
			return fmt.Errorf("source %q: %w", source, err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("source %q: %w", source, err)
		}
	}
	return nil
}

// SourceNames returns the configured source names in sorted order.
func (c *FileConfig) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BucketConfig converts the policy into a limiter configuration,
// filling unset fields from bucket.DefaultConfig.
func (s SourceConfig) BucketConfig() (bucket.Config, error) {
	config := bucket.DefaultConfig()
	config.Clock = nil // supplied by the registry
	config.Capacity = s.Capacity
	config.RefillRate = s.RefillRate

	if s.Enabled != nil {
		config.Enabled = *s.Enabled
	}

	if s.WaitTimeout != "" {
		timeout, err := time.ParseDuration(s.WaitTimeout)
		if err != nil {
			return bucket.Config{}, errors.NewValidationError("registry", "wait_timeout", s.WaitTimeout, "not a duration").
				WithHint("use a Go duration such as 500ms or 30s")
		}
		config.WaitTimeout = timeout
	}

	return config, nil
}
