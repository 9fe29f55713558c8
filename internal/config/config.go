// Package config loads quizforge settings from defaults, an optional YAML
// file, an optional .env file and the process environment, in that order of
// increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvDifyAPIKey           = "DIFY_API_KEY"
	EnvDifyAPIURL           = "DIFY_API_URL"
	EnvDifyUser             = "DIFY_USER"
	EnvUpstreamTimeout      = "QUIZFORGE_UPSTREAM_TIMEOUT"
	EnvAddr                 = "QUIZFORGE_ADDR"
	EnvDefaultSkill         = "QUIZFORGE_DEFAULT_SKILL"
	EnvMarkdownDescriptions = "QUIZFORGE_MARKDOWN_DESCRIPTIONS"
)

// DefaultEnvFile is read when Load is called without explicit env files. It
// is optional.
const DefaultEnvFile = ".env"

// Config is the complete quizforge configuration.
type Config struct {
	Dify   Dify   `yaml:"dify"`
	Server Server `yaml:"server"`
	Parser Parser `yaml:"parser"`
}

// Dify holds the upstream workflow credentials. An empty APIKey is valid at
// load time; generation requests then fail as not configured.
type Dify struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	User    string        `yaml:"user"`
	Timeout time.Duration `yaml:"timeout"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr string `yaml:"addr"`
}

// Parser holds the defaults applied when parsing generator payloads.
type Parser struct {
	DefaultSkill         string `yaml:"default_skill"`
	MarkdownDescriptions bool   `yaml:"markdown_descriptions"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dify: Dify{
			BaseURL: "https://api.dify.ai/v1",
			User:    "quizforge",
			Timeout: 120 * time.Second,
		},
		Server: Server{Addr: ":8080"},
		Parser: Parser{DefaultSkill: "General"},
	}
}

// Configured reports whether upstream credentials are present.
func (d Dify) Configured() bool {
	return strings.TrimSpace(d.APIKey) != ""
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. envFiles are dotenv files whose values apply below the real
// environment; without any, DefaultEnvFile is used when it exists.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := parseYAML(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// parseYAML decodes a single YAML document over cfg, rejecting unknown keys.
func parseYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		files = []string{DefaultEnvFile}
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("read env files: %w", err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDifyAPIKey); ok {
		cfg.Dify.APIKey = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDifyAPIURL); ok && strings.TrimSpace(v) != "" {
		cfg.Dify.BaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if v, ok := lookup(EnvDifyUser); ok && strings.TrimSpace(v) != "" {
		cfg.Dify.User = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvUpstreamTimeout); ok && strings.TrimSpace(v) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUpstreamTimeout, err)
		}
		cfg.Dify.Timeout = timeout
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDefaultSkill); ok && strings.TrimSpace(v) != "" {
		cfg.Parser.DefaultSkill = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMarkdownDescriptions); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMarkdownDescriptions, err)
		}
		cfg.Parser.MarkdownDescriptions = enabled
	}
	return nil
}
