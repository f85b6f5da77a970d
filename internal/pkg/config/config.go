package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Outbox    OutboxConfig
	Realtime  RealtimeConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type DBConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"postgres"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

// Redis is optional. Without an address the hub stays process-local.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Channel  string `envconfig:"REDIS_CHANNEL" default:"placement:events"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type OutboxConfig struct {
	PollInterval   time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"1s"`
	BatchSize      int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	BackoffInitial time.Duration `envconfig:"OUTBOX_BACKOFF_INITIAL" default:"200ms"`
	BackoffMax     time.Duration `envconfig:"OUTBOX_BACKOFF_MAX" default:"30s"`
}

type RealtimeConfig struct {
	AuthTimeout  time.Duration `envconfig:"REALTIME_AUTH_TIMEOUT" default:"10s"`
	SendQueue    int           `envconfig:"REALTIME_SEND_QUEUE" default:"64"`
	MaxDrops     int           `envconfig:"REALTIME_MAX_DROPS" default:"256"`
	WriteTimeout time.Duration `envconfig:"REALTIME_WRITE_TIMEOUT" default:"10s"`
	PingInterval time.Duration `envconfig:"REALTIME_PING_INTERVAL" default:"30s"`
	ConnectRate  float64       `envconfig:"REALTIME_CONNECT_RATE" default:"5"`
	ConnectBurst int           `envconfig:"REALTIME_CONNECT_BURST" default:"10"`
}

// Tracing is opt-in; an empty endpoint disables the exporter.
type TelemetryConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"campus-placement"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *DBConfig) UsesMemory() bool {
	return c.Driver == StoreDriverMemory
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if !cfg.DB.UsesMemory() && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required for the %q store driver", cfg.DB.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Driver:   StoreDriverPostgres,
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			Channel: "placement:test",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Outbox: OutboxConfig{
			PollInterval:   20 * time.Millisecond,
			BatchSize:      50,
			BackoffInitial: 5 * time.Millisecond,
			BackoffMax:     50 * time.Millisecond,
		},
		Realtime: RealtimeConfig{
			AuthTimeout:  time.Second,
			SendQueue:    16,
			MaxDrops:     32,
			WriteTimeout: time.Second,
			PingInterval: 30 * time.Second,
			ConnectRate:  100,
			ConnectBurst: 100,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "campus-placement-test",
		},
	}
}
