// Package config handles loading and parsing of paramkit configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/paramkit/internal/derrors"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".paramkit.yml",
	".paramkit.yaml",
	".paramkit.toml",
	".paramkit.json",
}

// defaults is loaded under every config file
var defaults = []byte(`
log_level: warn
show_choices: false
`)

// Config represents a paramkit configuration
type Config struct {
	LogLevel    string                   `koanf:"log_level" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Log level of the host"`
	ShowChoices bool                     `koanf:"show_choices" json:"show_choices,omitempty" jsonschema:"description=List the valid values when a choice is rejected"`
	Senders     map[string]SenderConfig  `koanf:"senders" json:"senders,omitempty" jsonschema:"description=Senders commands can be run as. The console is always available."`
	Commands    map[string]CommandConfig `koanf:"commands" json:"commands,omitempty" jsonschema:"description=Commands keyed by name"`
}

// SenderConfig describes a sender of the host
type SenderConfig struct {
	Permissions []string `koanf:"permissions" json:"permissions,omitempty" jsonschema:"description=Granted permissions. prefix.* and * are wildcards."`
	Player      bool     `koanf:"player" json:"player,omitempty" jsonschema:"description=Whether the sender is a player"`
	World       string   `koanf:"world" json:"world,omitempty" jsonschema:"description=World the player is in"`
}

// Sender validators accepted by CommandConfig.Sender
const (
	SenderAny    = "any"
	SenderPlayer = "player"
)

// CommandConfig declares a command
type CommandConfig struct {
	Description string        `koanf:"description" json:"description,omitempty" jsonschema:"description=Help text"`
	Sender      string        `koanf:"sender" json:"sender,omitempty" jsonschema:"enum=any,enum=player,description=Who may run the command,default=any"`
	Permission  string        `koanf:"permission" json:"permission,omitempty" jsonschema:"description=Permission needed to run the command"`
	Params      []ParamConfig `koanf:"params" json:"params,omitempty" jsonschema:"description=Parameters in order"`
	Reply       string        `koanf:"reply" json:"reply,omitempty" jsonschema:"description=Go template rendered on success with the parsed parameters"`
}

// ParamTypes lists the values accepted by ParamConfig.Type
var ParamTypes = []string{
	"string", "int", "int64", "uint", "float", "bigint", "decimal", "bool",
	"uuid", "url", "datetime", "duration", "remaining", "choice",
	"player", "players", "world", "literal", "any_of",
}

// ParamConfig declares one parameter of a command
type ParamConfig struct {
	Name       string        `koanf:"name" json:"name" jsonschema:"minLength=1,description=Field name used in usage and replies"`
	Type       string        `koanf:"type" json:"type" jsonschema:"enum=string,enum=int,enum=int64,enum=uint,enum=float,enum=bigint,enum=decimal,enum=bool,enum=uuid,enum=url,enum=datetime,enum=duration,enum=remaining,enum=choice,enum=player,enum=players,enum=world,enum=literal,enum=any_of"`
	Optional   bool          `koanf:"optional" json:"optional,omitempty" jsonschema:"description=Leave the field empty instead of failing"`
	Repeated   bool          `koanf:"repeated" json:"repeated,omitempty" jsonschema:"description=Accept the parameter any number of times"`
	Flag       bool          `koanf:"flag" json:"flag,omitempty" jsonschema:"description=Parse as a flag (-x or --name) anywhere on the line"`
	Permission string        `koanf:"permission" json:"permission,omitempty" jsonschema:"description=Permission needed to use this parameter"`
	Choices    []string      `koanf:"choices" json:"choices,omitempty" jsonschema:"description=Accepted values of a choice"`
	ShowAll    bool          `koanf:"show_choices" json:"show_choices,omitempty" jsonschema:"description=List the choices when a value is rejected"`
	Value      string        `koanf:"value" json:"value,omitempty" jsonschema:"description=Keyword matched by a literal"`
	OrSelf     bool          `koanf:"or_self" json:"or_self,omitempty" jsonschema:"description=Use the sender when no player is given"`
	AnyOf      []ParamConfig `koanf:"any_of" json:"any_of,omitempty" jsonschema:"description=Alternatives tried in order"`
}

// SortedCommandNames returns the command names in order
func (c *Config) SortedCommandNames() []string {
	names := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cachedConfig stores a parsed config with the file state it was read from
type cachedConfig struct {
	config  *Config
	modTime time.Time
	size    int64
}

// Loader handles loading and parsing configuration files
type Loader struct {
	cache map[string]*cachedConfig
}

// New creates a new config loader
func New() *Loader {
	return &Loader{cache: make(map[string]*cachedConfig)}
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a configuration file. Parsed files are cached until
// their modification time or size changes.
func (l *Loader) Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read config", err)
	}

	if cached, ok := l.cache[path]; ok {
		if !info.ModTime().After(cached.modTime) && info.Size() == cached.size {
			return cached.config, nil
		}
		delete(l.cache, path)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	k, err := withDefaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	l.cache[path] = &cachedConfig{config: cfg, modTime: info.ModTime(), size: info.Size()}
	return cfg, nil
}

// LoadBytes parses content in the format implied by name's extension
func LoadBytes(name string, content []byte) (*Config, error) {
	parser, err := parserFor(name)
	if err != nil {
		return nil, derrors.NewConfigurationError(name, "failed to load config", err)
	}

	k, err := withDefaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, derrors.NewConfigurationError(name, "failed to load config", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, derrors.NewConfigurationError(name, "failed to unmarshal config", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	k, err := withDefaults()
	if err != nil {
		return &Config{LogLevel: "warn"}
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return &Config{LogLevel: "warn"}
	}
	return cfg
}

func withDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		Senders:  make(map[string]SenderConfig),
		Commands: make(map[string]CommandConfig),
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	for name, cmd := range cfg.Commands {
		if cmd.Sender == "" {
			cmd.Sender = SenderAny
			cfg.Commands[name] = cmd
		}
	}
	return cfg, nil
}

// FindConfigFile returns the nearest config file from startDir up to the
// root, or "" when there is none
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve loads explicit when set, otherwise the nearest config file above
// dir. With neither it returns the defaults and an empty path.
func (l *Loader) Resolve(explicit, dir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfigFile(dir)
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := l.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
