// Package config loads service configuration from YAML with env overrides.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName       = "advisor"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8080
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "careerpath"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 25
	defaultDBMaxIdleConns    = 5
	defaultRedisAddress      = "localhost:6379"
	defaultHistoryTTLHours   = 24
	defaultMaxMessages       = 3
	defaultRetrievalK        = 2
	defaultMaxContentLength  = 1500
	defaultMaxComments       = 3
	defaultWorkerCount       = 4
	defaultQueueSize         = 256
	defaultLogLevel          = "info"
	defaultEmbedderURL       = "http://embedder:8090"
	defaultToxicityURL       = "http://toxicity-ml:8091"
	defaultZeroShotURL       = "http://relevance-ml:8092"
	defaultGeneratorURL      = "http://generator:8093"
	defaultGeneratorTimeout  = 60 * time.Second
	defaultConnMaxLifetimeHr = 1
)

// Config holds all configuration for the advisor service.
type Config struct {
	Service      ServiceConfig      `yaml:"service"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Models       ModelsConfig       `yaml:"models"`
	Retrieval    RetrievalConfig    `yaml:"retrieval"`
	Conversation ConversationConfig `yaml:"conversation"`
	Moderation   ModerationConfig   `yaml:"moderation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"ADVISOR_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"    yaml:"debug"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// RedisConfig holds Redis configuration for conversation history.
type RedisConfig struct {
	Address    string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	HistoryTTL time.Duration `yaml:"history_ttl"`
}

// ModelsConfig holds the base URLs of the ML sidecars and the generator.
type ModelsConfig struct {
	EmbedderURL      string        `env:"EMBEDDER_URL"     yaml:"embedder_url"`
	ToxicityURL      string        `env:"TOXICITY_ML_URL"  yaml:"toxicity_url"`
	ZeroShotURL      string        `env:"RELEVANCE_ML_URL" yaml:"zero_shot_url"`
	GeneratorURL     string        `env:"GENERATOR_URL"    yaml:"generator_url"`
	GeneratorTimeout time.Duration `yaml:"generator_timeout"`
}

// RetrievalConfig holds hybrid retrieval settings. Defaults are small on
// purpose: the downstream generator has a tight context-window budget.
type RetrievalConfig struct {
	K                int `yaml:"k"`
	MaxContentLength int `yaml:"max_content_length"`
	MaxComments      int `yaml:"max_comments"`
}

// ConversationConfig holds chat history bounding settings.
type ConversationConfig struct {
	MaxMessages int `yaml:"max_messages"`
}

// ModerationConfig holds background moderation settings.
type ModerationConfig struct {
	Workers   int `env:"MODERATION_WORKERS" yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" yaml:"level"`
	Output string `yaml:"output"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	setModelsDefaults(&cfg.Models)
	setRetrievalDefaults(&cfg.Retrieval)
	if cfg.Conversation.MaxMessages == 0 {
		cfg.Conversation.MaxMessages = defaultMaxMessages
	}
	setModerationDefaults(&cfg.Moderation)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultConnMaxLifetimeHr * time.Hour
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
	if r.HistoryTTL == 0 {
		r.HistoryTTL = defaultHistoryTTLHours * time.Hour
	}
}

func setModelsDefaults(m *ModelsConfig) {
	if m.EmbedderURL == "" {
		m.EmbedderURL = defaultEmbedderURL
	}
	if m.ToxicityURL == "" {
		m.ToxicityURL = defaultToxicityURL
	}
	if m.ZeroShotURL == "" {
		m.ZeroShotURL = defaultZeroShotURL
	}
	if m.GeneratorURL == "" {
		m.GeneratorURL = defaultGeneratorURL
	}
	if m.GeneratorTimeout == 0 {
		m.GeneratorTimeout = defaultGeneratorTimeout
	}
}

func setRetrievalDefaults(r *RetrievalConfig) {
	if r.K == 0 {
		r.K = defaultRetrievalK
	}
	if r.MaxContentLength == 0 {
		r.MaxContentLength = defaultMaxContentLength
	}
	if r.MaxComments == 0 {
		r.MaxComments = defaultMaxComments
	}
}

func setModerationDefaults(m *ModerationConfig) {
	if m.Workers == 0 {
		m.Workers = defaultWorkerCount
	}
	if m.QueueSize == 0 {
		m.QueueSize = defaultQueueSize
	}
}
