package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets), security settings
// - default: Values common across all environments (engine tuning, timeouts, paths)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Engine  EngineConfig
	Journal JournalConfig
	Archive ArchiveConfig
	DB      DBConfig
	Kafka   KafkaConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type EngineConfig struct {
	CellSizeMeters    float64       `envconfig:"ENGINE_CELL_SIZE_METERS" default:"1000"`
	MaxRadiusMeters   float64       `envconfig:"ENGINE_MAX_RADIUS_METERS" default:"50000"`
	DefaultMaxResults int           `envconfig:"ENGINE_DEFAULT_MAX_RESULTS" default:"50"`
	MaxWindow         time.Duration `envconfig:"ENGINE_MAX_WINDOW" default:"24h"`
	ExpiryInterval    time.Duration `envconfig:"ENGINE_EXPIRY_INTERVAL" default:"1s"`
	ExpiryLockWait    time.Duration `envconfig:"ENGINE_EXPIRY_LOCK_WAIT" default:"50ms"`
	Retention         time.Duration `envconfig:"ENGINE_RETENTION" default:"24h"`
	StoreShards       int           `envconfig:"ENGINE_STORE_SHARDS" default:"64"`
}

type JournalConfig struct {
	Enabled bool   `envconfig:"JOURNAL_ENABLED" default:"true"`
	Dir     string `envconfig:"JOURNAL_DIR" default:"./data/journal"`
}

// Archive drivers
const (
	ArchiveDriverSQLite   = "sqlite"
	ArchiveDriverPostgres = "postgres"
	ArchiveDriverNone     = "none"
)

type ArchiveConfig struct {
	Driver     string `envconfig:"ARCHIVE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"ARCHIVE_SQLITE_PATH" default:"./data/archive.db"`
	Buffer     int    `envconfig:"ARCHIVE_BUFFER" default:"1024"`
}

// DBConfig is only read when ARCHIVE_DRIVER=postgres.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"lastbite"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"listing-events"`
	Buffer  int      `envconfig:"KAFKA_BUFFER" default:"1024"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Archive.Driver {
	case ArchiveDriverSQLite, ArchiveDriverPostgres, ArchiveDriverNone:
	default:
		return fmt.Errorf("unknown ARCHIVE_DRIVER %q", c.Archive.Driver)
	}
	if c.Engine.CellSizeMeters <= 0 {
		return fmt.Errorf("ENGINE_CELL_SIZE_METERS must be positive, got %v", c.Engine.CellSizeMeters)
	}
	if c.Engine.ExpiryInterval <= 0 {
		return fmt.Errorf("ENGINE_EXPIRY_INTERVAL must be positive, got %v", c.Engine.ExpiryInterval)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Engine: EngineConfig{
			CellSizeMeters:    1000,
			MaxRadiusMeters:   50000,
			DefaultMaxResults: 50,
			MaxWindow:         24 * time.Hour,
			ExpiryInterval:    10 * time.Millisecond,
			ExpiryLockWait:    5 * time.Millisecond,
			Retention:         0,
			StoreShards:       8,
		},
		Journal: JournalConfig{
			Enabled: false,
		},
		Archive: ArchiveConfig{
			Driver: ArchiveDriverNone,
			Buffer: 16,
		},
		Kafka: KafkaConfig{
			Topic:  "listing-events",
			Buffer: 16,
		},
	}
}
