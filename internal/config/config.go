package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	State         StateConfig         `mapstructure:"state"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Invite        InviteConfig        `mapstructure:"invite"`
	PasswordReset PasswordResetConfig `mapstructure:"password_reset"`
	Email         EmailConfig         `mapstructure:"email"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Admin         AdminConfig         `mapstructure:"admin"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Log           LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
	MaxUploadBytes          int64         `mapstructure:"max_upload_bytes"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host                 string        `mapstructure:"host"`
	Port                 int           `mapstructure:"port"`
	DB                   string        `mapstructure:"db"`
	User                 string        `mapstructure:"user"`
	Password             string        `mapstructure:"password"`
	SSLMode              string        `mapstructure:"sslmode"`
	MaxIdleConns         int           `mapstructure:"max_idle_conns"`
	MaxOpenConns         int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime      time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectRetries       int           `mapstructure:"connect_retries"`
	ConnectRetryInterval time.Duration `mapstructure:"connect_retry_interval"`
	AutoMigrate          bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type StateConfig struct {
	Backend string `mapstructure:"backend"` // "redis" | "memory"
}

type JWTConfig struct {
	SigningKey      string        `mapstructure:"signing_key"`
	Issuer          string        `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type InviteConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CodePrefix      string        `mapstructure:"code_prefix"`
	MaxCodeAttempts int           `mapstructure:"max_code_attempts"`
	SetupURL        string        `mapstructure:"setup_url"`
}

type PasswordResetConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	ResetURL string        `mapstructure:"reset_url"`
}

type EmailConfig struct {
	Backend     string     `mapstructure:"backend"` // "smtp" | "log"
	GalleryName string     `mapstructure:"gallery_name"`
	SMTP        SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	FromEmail     string `mapstructure:"from_email"`
	FromName      string `mapstructure:"from_name"`
	UseSTARTTLS   bool   `mapstructure:"use_starttls"`
	SkipTLSVerify bool   `mapstructure:"skip_tls_verify"`
}

type StorageConfig struct {
	Backend string     `mapstructure:"backend"` // "disk" | "s3"
	Disk    DiskConfig `mapstructure:"disk"`
	S3      S3Config   `mapstructure:"s3"`
}

type DiskConfig struct {
	Root    string `mapstructure:"root"`
	BaseURL string `mapstructure:"base_url"`
}

type S3Config struct {
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
}

// AdminConfig seeds the first super admin so the admin API is reachable on a fresh database.
type AdminConfig struct {
	BootstrapEmail    string `mapstructure:"bootstrap_email"`
	BootstrapName     string `mapstructure:"bootstrap_name"`
	BootstrapPassword string `mapstructure:"bootstrap_password"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.graceful_shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.postgres.max_idle_conns", 5)
	v.SetDefault("database.postgres.max_open_conns", 20)
	v.SetDefault("database.postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("database.postgres.connect_retries", 5)
	v.SetDefault("database.postgres.connect_retry_interval", 2*time.Second)

	v.SetDefault("state.backend", "memory")

	v.SetDefault("jwt.issuer", "gallery-adminhub")
	v.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)

	v.SetDefault("invite.ttl", 7*24*time.Hour)
	v.SetDefault("invite.code_prefix", "ART-")
	v.SetDefault("invite.max_code_attempts", 5)

	v.SetDefault("password_reset.ttl", time.Hour)

	v.SetDefault("email.backend", "log")
	v.SetDefault("email.gallery_name", "The Gallery")

	v.SetDefault("storage.backend", "disk")
	v.SetDefault("storage.disk.root", "./uploads")
	v.SetDefault("storage.disk.base_url", "/uploads")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads config.yaml, overlays environment variables, and returns Config.
// A .env file next to the binary is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	// Environment variable override: DATABASE_POSTGRES_HOST -> database.postgres.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
