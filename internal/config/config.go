// Package config handles fabricdocs configuration: defaults, an optional
// config file, FABRICDOCS_ environment variables and command flags, merged
// through viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cameronsjo/fabricdocs/internal/fabric"
	"github.com/cameronsjo/fabricdocs/internal/webex"
)

// Configuration keys.
const (
	KeyInputDir         = "input_dir"
	KeyOutputDir        = "output_dir"
	KeyInclude          = "include"
	KeyExclude          = "exclude"
	KeyLogLevel         = "log_level"
	KeySiteURL          = "site.site_url"
	KeyRepoURL          = "site.repo_url"
	KeyEditURI          = "site.edit_uri"
	KeyWebexToken       = "webex.token"
	KeyWebexRoomID      = "webex.room_id"
	KeyWebexSecretsFile = "webex.secrets_file"
	KeyWebexBaseURL     = "webex.base_url"
)

// Defaults.
const (
	DefaultOutputDir    = "docs"
	DefaultLogLevel     = "info"
	DefaultWebexBaseURL = webex.DefaultBaseURL
	EnvPrefix           = "FABRICDOCS"
	FileName            = "fabricdocs"
)

// DefaultInclude selects YAML documents.
var DefaultInclude = fabric.DefaultInclude

// Config holds the fabricdocs configuration.
type Config struct {
	// InputDir is the directory holding the fabric YAML documents.
	InputDir string `mapstructure:"input_dir"`

	// OutputDir receives mkdocs.yml and the docs/ tree.
	OutputDir string `mapstructure:"output_dir"`

	// Include and Exclude are file name patterns applied to InputDir.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`

	LogLevel string `mapstructure:"log_level"`

	Site  Site  `mapstructure:"site"`
	Webex Webex `mapstructure:"webex"`
}

// Site overrides the mkdocs.yml URLs. Empty fields keep the built-in values.
type Site struct {
	SiteURL string `mapstructure:"site_url"`
	RepoURL string `mapstructure:"repo_url"`
	EditURI string `mapstructure:"edit_uri"`
}

// Webex configures artifact delivery.
type Webex struct {
	Token       string `mapstructure:"token"`
	RoomID      string `mapstructure:"room_id"`
	SecretsFile string `mapstructure:"secrets_file"`
	BaseURL     string `mapstructure:"base_url"`
}

// NewViper returns a viper instance with defaults and environment binding
// applied. Each command run gets its own instance.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyInclude, DefaultInclude)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyWebexBaseURL, DefaultWebexBaseURL)

	// Registered so AutomaticEnv can resolve keys without a default
	for _, key := range []string{
		KeyInputDir, KeySiteURL, KeyRepoURL, KeyEditURI,
		KeyWebexToken, KeyWebexRoomID, KeyWebexSecretsFile,
	} {
		v.SetDefault(key, "")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadFile loads the config file into v. An explicit path must exist;
// without one, fabricdocs.yaml in the working directory is optional.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// Load unmarshals the merged settings of v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultInclude
	}
	if cfg.Webex.BaseURL == "" {
		cfg.Webex.BaseURL = DefaultWebexBaseURL
	}

	return cfg, nil
}

// DocsDir returns the directory the markdown pages are written to.
func (c *Config) DocsDir() string {
	return filepath.Join(c.OutputDir, "docs")
}

// ManifestPath returns the path of the generated mkdocs.yml.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.OutputDir, "mkdocs.yml")
}
