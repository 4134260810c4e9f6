// internal/config/config.go
//
// This package handles configuration and the .pathway directory structure.
// Every directory pathway runs from gets a .pathway/ folder holding the
// config file and the log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PathwayDir is the name of the directory we create in each project
	PathwayDir = ".pathway"

	defaultAdvisingLabel = "Schedule 1:1 Advising"
	defaultTokenEnv      = "PATHWAY_TELEGRAM_TOKEN"
	defaultLogLevel      = "info"
)

const defaultProjectConfigYAML = `# pathway configuration
version: 1

# Optional questionnaire override. Leave empty to use the built-in content.
# Relative paths resolve against the directory pathway runs from.
content: ""

# Shown on the result screen next to the advising action.
advising:
  label: Schedule 1:1 Advising
  # url: https://calendar.example.edu/advising

telegram:
  # Environment variable holding the bot token for "pathway bot".
  token_env: PATHWAY_TELEGRAM_TOKEN

log:
  # debug, info, warn, or error
  level: info
`

// AdvisingConfig describes the advising hand-off shown on the result screen.
type AdvisingConfig struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url,omitempty"`
}

// TelegramConfig configures the chat front end.
type TelegramConfig struct {
	TokenEnv string `yaml:"token_env"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ProjectConfig models .pathway/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Content  string         `yaml:"content,omitempty"`
	Advising AdvisingConfig `yaml:"advising"`
	Telegram TelegramConfig `yaml:"telegram"`
	Log      LogConfig      `yaml:"log"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory where the user ran `pathway` from
	ProjectDir string

	// PathwayProjectDir is ProjectDir/.pathway
	PathwayProjectDir string

	Project ProjectConfig
}

// InitPathwayDir creates the .pathway directory structure and writes the
// default config file if none exists.
//
// Structure created:
// .pathway/
// ├── config.yaml
// └── logs/
func InitPathwayDir(projectDir string) error {
	pathwayDir := filepath.Join(projectDir, PathwayDir)
	if err := os.MkdirAll(filepath.Join(pathwayDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure pathway dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(pathwayDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		PathwayProjectDir: filepath.Join(projectDir, PathwayDir),
		Project:           defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.PathwayProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.PathwayProjectDir, "config.yaml")
}

// ContentPath returns the resolved override content file, or "" for the
// built-in questionnaire.
func (c *Config) ContentPath() string {
	return c.Project.Content
}

// AdvisingLabel returns the text for the advising action.
func (c *Config) AdvisingLabel() string {
	return c.Project.Advising.Label
}

// AdvisingURL returns the optional advising link.
func (c *Config) AdvisingURL() string {
	return c.Project.Advising.URL
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	return c.Project.Log.Level
}

// TelegramToken reads the bot token from the configured environment variable.
func (c *Config) TelegramToken() (string, error) {
	name := c.Project.Telegram.TokenEnv
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", fmt.Errorf("config: %s environment variable is not set", name)
	}
	return token, nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{Version: 1}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Advising.Label) == "" {
		pc.Advising.Label = defaultAdvisingLabel
	}
	if strings.TrimSpace(pc.Telegram.TokenEnv) == "" {
		pc.Telegram.TokenEnv = defaultTokenEnv
	}
	if strings.TrimSpace(pc.Log.Level) == "" {
		pc.Log.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Content = resolvePath(base, pc.Content)
	pc.Advising.Label = strings.TrimSpace(pc.Advising.Label)
	pc.Advising.URL = strings.TrimSpace(pc.Advising.URL)
	pc.Telegram.TokenEnv = strings.TrimSpace(pc.Telegram.TokenEnv)
	pc.Log.Level = strings.ToLower(strings.TrimSpace(pc.Log.Level))
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Advising.URL != "" {
		u, err := url.Parse(pc.Advising.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("advising.url must be an absolute URL")
		}
	}
	switch pc.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
