package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"emojiusage/pkg/errors"
)

// Config holds all configuration options for the emoji usage aggregator
type Config struct {
	// Slack API settings
	Slack SlackConfig `yaml:"slack" json:"slack"`

	// Rate limiting and retry configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Aggregation window settings
	Aggregation AggregationConfig `yaml:"aggregation" json:"aggregation"`

	// Emoji working-set filters
	Emoji EmojiConfig `yaml:"emoji" json:"emoji"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SlackConfig holds Slack-specific configuration
type SlackConfig struct {
	Token      string        `yaml:"token" json:"token"`
	APITimeout time.Duration `yaml:"api_timeout" json:"api_timeout"`
}

func (s *SlackConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Token      string `yaml:"token"`
		APITimeout string `yaml:"api_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Token != "" {
		s.Token = raw.Token
	}
	if raw.APITimeout != "" {
		d, err := parseDuration(raw.APITimeout)
		if err != nil {
			return fmt.Errorf("invalid api_timeout: %w", err)
		}
		s.APITimeout = d
	}
	return nil
}

func (s SlackConfig) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"token":       s.Token,
		"api_timeout": s.APITimeout.String(),
	}, nil
}

// parseDuration accepts either a Go duration string or bare seconds
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a duration", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// RateLimitConfig holds pacing and 429-retry configuration.
// MinInterval is the minimum wall-clock gap between any two outbound
// API calls; MaxRetry bounds retries after throttling responses.
type RateLimitConfig struct {
	MinInterval time.Duration `yaml:"min_interval" json:"min_interval"`
	MaxRetry    int           `yaml:"max_retry" json:"max_retry"`
	BackoffBase time.Duration `yaml:"backoff_base" json:"backoff_base"`
}

// UnmarshalYAML accepts durations either as Go duration strings ("5s")
// or as bare seconds, matching the .env contract
func (r *RateLimitConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		MinInterval string `yaml:"min_interval"`
		MaxRetry    *int   `yaml:"max_retry"`
		BackoffBase string `yaml:"backoff_base"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.MinInterval != "" {
		d, err := parseDuration(raw.MinInterval)
		if err != nil {
			return fmt.Errorf("invalid min_interval: %w", err)
		}
		r.MinInterval = d
	}
	if raw.MaxRetry != nil {
		r.MaxRetry = *raw.MaxRetry
	}
	if raw.BackoffBase != "" {
		d, err := parseDuration(raw.BackoffBase)
		if err != nil {
			return fmt.Errorf("invalid backoff_base: %w", err)
		}
		r.BackoffBase = d
	}
	return nil
}

func (r RateLimitConfig) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"min_interval": r.MinInterval.String(),
		"max_retry":    r.MaxRetry,
		"backoff_base": r.BackoffBase.String(),
	}, nil
}

// AggregationConfig holds the scan window settings
type AggregationConfig struct {
	Months           int  `yaml:"months" json:"months"`
	IncludeReactions bool `yaml:"include_reactions" json:"include_reactions"`
}

// EmojiConfig holds the working-set filter flags.
// The Only* and No* flags are mutually exclusive in pairs; Validate
// rejects contradictory combinations before any network call is made.
type EmojiConfig struct {
	OnlyStandard bool `yaml:"only_standard" json:"only_standard"`
	OnlyCustom   bool `yaml:"only_custom" json:"only_custom"`
	NoStandard   bool `yaml:"no_standard" json:"no_standard"`
	NoCustom     bool `yaml:"no_custom" json:"no_custom"`
	MaxEmojis    int  `yaml:"max_emojis" json:"max_emojis"`
}

// OutputConfig holds CSV output settings
type OutputConfig struct {
	Path   string `yaml:"path" json:"path"`
	Backup bool   `yaml:"backup" json:"backup"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
// The 5s interval keeps the run at 12 calls/minute, safely under the
// Slack search quota of roughly 20 calls/minute.
func DefaultConfig() *Config {
	return &Config{
		Slack: SlackConfig{
			APITimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			MinInterval: 5 * time.Second,
			MaxRetry:    3,
			BackoffBase: time.Second,
		},
		Aggregation: AggregationConfig{
			Months:           12,
			IncludeReactions: false,
		},
		Emoji: EmojiConfig{
			MaxEmojis: 0, // 0 means no limit
		},
		Output: OutputConfig{
			Path:   "emoji_usage.csv",
			Backup: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then .env file,
// then config file, then environment variables, then command line flags.
func Load(configFile string, flags map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	// A missing .env file is not an error
	_ = godotenv.Load()

	if err := cfg.LoadFromFile(configFile); err != nil {
		return nil, err
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	cfg.MergeCommandLineFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// The variable names match the original tool's .env contract.
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("SLACK_TOKEN"); token != "" {
		c.Slack.Token = token
	}

	if interval := os.Getenv("MIN_INTERVAL_SEC"); interval != "" {
		val, err := strconv.ParseFloat(interval, 64)
		if err != nil {
			return &errors.Error{
				Type:    errors.ErrorTypeConfig,
				Message: fmt.Sprintf("invalid MIN_INTERVAL_SEC: %q", interval),
			}
		}
		c.RateLimit.MinInterval = time.Duration(val * float64(time.Second))
	}

	if retries := os.Getenv("MAX_RETRY"); retries != "" {
		val, err := strconv.Atoi(retries)
		if err != nil {
			return &errors.Error{
				Type:    errors.ErrorTypeConfig,
				Message: fmt.Sprintf("invalid MAX_RETRY: %q", retries),
			}
		}
		c.RateLimit.MaxRetry = val
	}

	if months := os.Getenv("MONTHS"); months != "" {
		val, err := strconv.Atoi(months)
		if err != nil {
			return &errors.Error{
				Type:    errors.ErrorTypeConfig,
				Message: fmt.Sprintf("invalid MONTHS: %q", months),
			}
		}
		c.Aggregation.Months = val
	}

	if output := os.Getenv("OUTPUT_PATH"); output != "" {
		c.Output.Path = output
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = strings.ToLower(logLevel)
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".emojiusage.yaml",
		".emojiusage.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "emojiusage", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "emojiusage", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".emojiusage.yaml"),
		filepath.Join(os.Getenv("HOME"), ".emojiusage.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if flags == nil {
		return
	}

	if token, ok := flags["token"].(string); ok && token != "" {
		c.Slack.Token = token
	}
	if interval, ok := flags["min-interval-sec"].(float64); ok && interval > 0 {
		c.RateLimit.MinInterval = time.Duration(interval * float64(time.Second))
	}
	if retries, ok := flags["max-retry"].(int); ok {
		c.RateLimit.MaxRetry = retries
	}
	if months, ok := flags["months"].(int); ok && months > 0 {
		c.Aggregation.Months = months
	}
	if reactions, ok := flags["include-reactions"].(bool); ok {
		c.Aggregation.IncludeReactions = reactions
	}
	if onlyStandard, ok := flags["only-standard"].(bool); ok && onlyStandard {
		c.Emoji.OnlyStandard = true
	}
	if onlyCustom, ok := flags["only-custom"].(bool); ok && onlyCustom {
		c.Emoji.OnlyCustom = true
	}
	if noStandard, ok := flags["no-standard"].(bool); ok && noStandard {
		c.Emoji.NoStandard = true
	}
	if noCustom, ok := flags["no-custom"].(bool); ok && noCustom {
		c.Emoji.NoCustom = true
	}
	if maxEmojis, ok := flags["max-emojis"].(int); ok && maxEmojis > 0 {
		c.Emoji.MaxEmojis = maxEmojis
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Output.Path = output
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Validate checks if the configuration is valid. All violations are
// reported as config errors and no network call happens before this runs.
func (c *Config) Validate() error {
	fail := func(msg string) error {
		return &errors.Error{Type: errors.ErrorTypeConfig, Message: msg}
	}

	if c.Emoji.OnlyStandard && c.Emoji.OnlyCustom {
		return fail("only-standard and only-custom cannot both be set")
	}
	if c.Emoji.NoStandard && c.Emoji.NoCustom {
		return fail("no-standard and no-custom cannot both be set")
	}
	if c.Emoji.OnlyStandard && (c.Emoji.NoStandard || c.Emoji.NoCustom) {
		return fail("only-standard cannot be combined with exclusion flags")
	}
	if c.Emoji.OnlyCustom && (c.Emoji.NoStandard || c.Emoji.NoCustom) {
		return fail("only-custom cannot be combined with exclusion flags")
	}
	if !c.IncludeStandard() && !c.IncludeCustom() {
		return fail("the requested filters exclude every emoji")
	}
	if c.Emoji.MaxEmojis < 0 {
		return fail("max emojis cannot be negative")
	}

	if c.RateLimit.MinInterval <= 0 {
		return fail("min interval must be positive")
	}
	if c.RateLimit.MaxRetry < 0 {
		return fail("max retry cannot be negative")
	}
	if c.RateLimit.BackoffBase <= 0 {
		return fail("backoff base must be positive")
	}
	if c.Aggregation.Months < 1 {
		return fail("months must be at least 1")
	}
	if c.Slack.APITimeout <= 0 {
		return fail("api timeout must be positive")
	}
	if c.Output.Path == "" {
		return fail("output path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fail(fmt.Sprintf("invalid log level %q", c.Logging.Level))
	}

	return nil
}

// IncludeStandard reports whether standard emoji are part of the working set
func (c *Config) IncludeStandard() bool {
	if c.Emoji.OnlyCustom {
		return false
	}
	return !c.Emoji.NoStandard
}

// IncludeCustom reports whether custom emoji are part of the working set
func (c *Config) IncludeCustom() bool {
	if c.Emoji.OnlyStandard {
		return false
	}
	return !c.Emoji.NoCustom
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
