package config

import (
	"time"

	"github.com/google/uuid"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig             `yaml:"server"`
	Database DatabaseConfig           `yaml:"database"`
	Redis    RedisConfig              `yaml:"redis"`
	Cache    CacheConfig              `yaml:"cache"`
	Codec    CodecConfig              `yaml:"codec"`
	Engine   EngineConfig             `yaml:"engine"`
	API      APIConfig                `yaml:"api"`
	Log      LogConfig                `yaml:"log"`
	Projects map[string]ProjectConfig `yaml:"projects"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"    env:"DATABASE_CONNECT_TIMEOUT"    env-default:"5s"`

	// StatementTimeout is applied server-side to every session; 0 disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// RedisConfig holds the fast cache connection settings.
type RedisConfig struct {
	Addr         string        `yaml:"addr"          env:"REDIS_ADDR"          env-default:"localhost:6379"`
	Password     string        `yaml:"password"      env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db"            env:"REDIS_DB"            env-default:"0"`
	DialTimeout  time.Duration `yaml:"dial_timeout"  env:"REDIS_DIAL_TIMEOUT"  env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"REDIS_READ_TIMEOUT"  env-default:"1s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT" env-default:"1s"`
	PoolSize     int           `yaml:"pool_size"     env:"REDIS_POOL_SIZE"     env-default:"20"`
}

// CacheConfig holds cache entry settings.
type CacheConfig struct {
	StateTTL  time.Duration `yaml:"state_ttl"  env:"CACHE_STATE_TTL"  env-default:"24h"`
	KeyPrefix string        `yaml:"key_prefix" env:"CACHE_KEY_PREFIX" env-default:"pathgraph"`
}

// CodecConfig holds the journal encryption key.
type CodecConfig struct {
	// JournalKey is a hex-encoded 32-byte key.
	JournalKey string `yaml:"journal_key" env:"CODEC_JOURNAL_KEY" env-required:"true"`
	KeyID      string `yaml:"key_id"      env:"CODEC_KEY_ID"      env-default:"journal-v1"`

	// Key is decoded from JournalKey during validation.
	Key []byte `yaml:"-" env:"-"`
}

// EngineConfig holds traversal engine settings.
type EngineConfig struct {
	DefaultProject         string        `yaml:"default_project"          env:"ENGINE_DEFAULT_PROJECT"          env-default:"default"`
	DefaultPath            string        `yaml:"default_path"             env:"ENGINE_DEFAULT_PATH"             env-default:"explorer"`
	UnknownConditionPolicy string        `yaml:"unknown_condition_policy" env:"ENGINE_UNKNOWN_CONDITION_POLICY" env-default:"allow"`
	OperationTimeout       time.Duration `yaml:"operation_timeout"        env:"ENGINE_OPERATION_TIMEOUT"        env-default:"5s"`
	LeaderboardMax         int           `yaml:"leaderboard_max"          env:"ENGINE_LEADERBOARD_MAX"          env-default:"50"`
}

// APIConfig holds settings for the service-to-service HTTP API.
type APIConfig struct {
	// Key is a shared secret presented by the bot layer in X-Api-Key.
	// An empty key disables the check (local development).
	Key string `yaml:"key" env:"API_KEY"`

	// TokenSecret signs service bearer tokens (HS256). Empty disables tokens.
	TokenSecret string        `yaml:"token_secret" env:"API_TOKEN_SECRET"`
	TokenIssuer string        `yaml:"token_issuer" env:"API_TOKEN_ISSUER" env-default:"pathgraph"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"API_TOKEN_TTL"    env-default:"720h"`

	TraverseRatePerMin int `yaml:"traverse_rate_per_min" env:"API_TRAVERSE_RATE_PER_MIN" env-default:"120"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ProjectConfig describes one graph instance. Projects are configured in the
// YAML file only.
type ProjectConfig struct {
	IDRaw     string           `yaml:"id"`
	Name      string           `yaml:"name"`
	RootNodes map[string]int64 `yaml:"root_nodes"`

	// ID is parsed from IDRaw during validation.
	ID uuid.UUID `yaml:"-"`
}
