package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "inkwell"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultAIModel    = "gemini-2.0-flash"
	defaultAIEndpoint = "https://generativelanguage.googleapis.com"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment-variable overrides for secrets.
type AppConfig struct {
	Port           int            `yaml:"port"`
	DSN            string         `yaml:"dsn"` // MySQL DSN; overrides Database when set
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	Env            string         `yaml:"env"` // "development" | "production"
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Auth           AuthConfig     `yaml:"auth"`
	AI             AIConfig       `yaml:"ai"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type AuthConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
}

type AIConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

// Load reads the YAML config file, applies defaults, then environment
// overrides. A missing file is not an error; defaults plus env are used.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Password == "" {
		c.Database.Password = defaultDBPassword
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.RedisURL == "" {
		c.RedisURL = defaultRedisURL
	}
	if c.AI.Model == "" {
		c.AI.Model = defaultAIModel
	}
	if c.AI.Endpoint == "" {
		c.AI.Endpoint = defaultAIEndpoint
	}
	if c.DSN == "" {
		c.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
	}
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("INKWELL_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("INKWELL_DSN")); v != "" {
		c.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("INKWELL_REDIS_URL")); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("INKWELL_ENV")); v != "" {
		c.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_SECRET")); v != "" {
		c.Auth.AccessSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_SECRET")); v != "" {
		c.Auth.RefreshSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		c.AI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_MODEL")); v != "" {
		c.AI.Model = v
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}
