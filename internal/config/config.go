package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/XJIeI5/computor/internal/logger"
	"github.com/XJIeI5/computor/internal/parser"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Parser   ParserConfig   `yaml:"parser"`
}

type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JwtSecret  string `yaml:"jwt_secret"`
	TokenTTL   int    `yaml:"token_ttl"` // hours
	BcryptCost int    `yaml:"bcrypt_cost"`
}

type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	Output     string `yaml:"output"` // stderr, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

type ParserConfig struct {
	IdentifierCase string `yaml:"identifier_case"` // preserve, lower, upper
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "http://localhost",
			Port:         8080,
			ReadTimeout:  10,
			WriteTimeout: 10,
		},
		Database: DatabaseConfig{Path: "store.db"},
		Auth: AuthConfig{
			JwtSecret:  "computor",
			TokenTTL:   30 * 24,
			BcryptCost: 14,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Parser: ParserConfig{IdentifierCase: "preserve"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is empty")
	}
	if c.Auth.JwtSecret == "" {
		return fmt.Errorf("auth.jwt_secret is empty")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost %d is not in [%d, %d]", c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.Log.Output {
	case "", "stderr":
	case "file", "both":
		if c.Log.FilePath == "" {
			return fmt.Errorf("log.file_path is required for log.output %q", c.Log.Output)
		}
	default:
		return fmt.Errorf("log.output %q is not one of stderr, file, both", c.Log.Output)
	}
	if _, err := c.Parser.Case(); err != nil {
		return fmt.Errorf("parser.identifier_case: %w", err)
	}
	return nil
}

func (p ParserConfig) Case() (parser.Case, error) {
	return parser.ParseCase(p.IdentifierCase)
}

// Options converts the parser section into parser options.
func (p ParserConfig) Options() []parser.Option {
	c, err := p.Case()
	if err != nil {
		return nil
	}
	return []parser.Option{parser.WithIdentifierCase(c)}
}

func (a AuthConfig) TTL() time.Duration {
	return time.Duration(a.TokenTTL) * time.Hour
}

func (l LogConfig) Logger() *logger.Config {
	return &logger.Config{
		Level:      l.Level,
		Format:     l.Format,
		Output:     l.Output,
		FilePath:   l.FilePath,
		MaxSize:    l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAge,
	}
}
