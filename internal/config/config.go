// Package config loads gocam-tool settings from TOML. An embedded default
// is always applied first; a user file only overrides the keys it sets.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// EnvConfigPath names the environment variable consulted when no explicit
// config path is given.
const EnvConfigPath = "GOCAM_TOOL_CONFIG"

//go:embed default.toml
var defaultTOML []byte

type Config struct {
	Analysis Analysis `toml:"analysis"`
	Server   Server   `toml:"server"`
	Log      Log      `toml:"log"`
	Output   Output   `toml:"output"`
}

// Analysis controls which ontology terms the detector and aggregator
// treat specially.
type Analysis struct {
	CausalRelations        []string            `toml:"causal_relations"`
	RootMolecularFunctions []string            `toml:"root_molecular_functions"`
	PlaceholderEnablers    []string            `toml:"placeholder_enablers"`
	EnablerPrefixes        map[string][]string `toml:"enabler_prefixes"`
}

type Server struct {
	Addr              string `toml:"addr"`
	CORSAllowedOrigin string `toml:"cors_allowed_origin"`
	CacheSize         int    `toml:"cache_size"`
	RequestTimeout    string `toml:"request_timeout"`
	MaxBodyBytes      int64  `toml:"max_body_bytes"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Output struct {
	Format string `toml:"format"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := parse(defaultTOML, &Config{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// Load reads path on top of the defaults. An empty path falls back to
// $GOCAM_TOOL_CONFIG, and to the defaults alone when that is unset.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if _, err := parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	return parse(data, Default())
}

func parse(data []byte, cfg *Config) (*Config, error) {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if _, err := c.Server.Timeout(); err != nil {
		return err
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size: must not be negative")
	}
	return nil
}

// Timeout parses RequestTimeout. An empty value disables the timeout.
func (s Server) Timeout() (time.Duration, error) {
	if s.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.request_timeout: %w", err)
	}
	return d, nil
}

// IsCausalRelation reports whether a relation is in the causal allow-list.
// Entries may name the relation by id or by label.
func (a Analysis) IsCausalRelation(id, label string) bool {
	for _, r := range a.CausalRelations {
		if (id != "" && r == id) || (label != "" && r == label) {
			return true
		}
	}
	return false
}

// IsRootMolecularFunction reports whether termID is an unrefined MF term.
// A missing term is treated as unrefined.
func (a Analysis) IsRootMolecularFunction(termID string) bool {
	if termID == "" {
		return true
	}
	for _, r := range a.RootMolecularFunctions {
		if r == termID {
			return true
		}
	}
	return false
}

// IsPlaceholderEnabler reports whether enablerID is a generic stand-in,
// such as "protein", rather than a specific entity.
func (a Analysis) IsPlaceholderEnabler(enablerID string) bool {
	for _, p := range a.PlaceholderEnablers {
		if p == enablerID {
			return true
		}
	}
	return false
}

// EnablerKindOf matches an enabler id against the configured prefixes.
// Placeholders are checked first, so a generic CHEBI protein term is not
// counted as a chemical.
// Kinds are tried in a fixed order so overlapping prefixes resolve the same
// way on every run.
func (a Analysis) EnablerKindOf(enablerID string) models.EnablerKind {
	if enablerID == "" {
		return models.EnablerNone
	}
	if a.IsPlaceholderEnabler(enablerID) {
		return models.EnablerPlaceholder
	}
	kinds := []models.EnablerKind{
		models.EnablerGene,
		models.EnablerChemical,
		models.EnablerComplex,
		models.EnablerModifiedProtein,
	}
	for _, kind := range kinds {
		for _, prefix := range a.EnablerPrefixes[string(kind)] {
			if strings.HasPrefix(enablerID, prefix) {
				return kind
			}
		}
	}
	return models.EnablerUnknown
}
