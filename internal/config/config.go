package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	User     string
	Pass     string
	Insecure bool
}

type SecurityConfig struct {
	JWTSecret      string
	SessionTTL     time.Duration
	ResetTokenTTL  time.Duration
	BcryptCost     int
	MinPasswordLen int
}

// LifecycleConfig carries account-lifecycle knobs that do not belong to
// any single transport or storage concern.
type LifecycleConfig struct {
	// TeamEmail receives new-registration, new-application and contact
	// relay notifications.
	TeamEmail string
	// PublicBaseURL is used to build the reset-password and creator-space
	// links embedded in outgoing mail.
	PublicBaseURL string
	// DeleteProducts controls whether deleting an account cascades to
	// products listed under the account's email. Off by default: orphaned
	// products stay visible.
	DeleteProducts bool
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	SMTP             SMTPConfig
	Security         SecurityConfig
	Lifecycle        LifecycleConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("ATELIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("security.jwtsecret is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucket", "atelier-uploads")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("smtp.port", 587)

	v.SetDefault("security.sessionttl", "1h")
	v.SetDefault("security.resettokenttl", "1h")
	v.SetDefault("security.bcryptcost", 10)
	v.SetDefault("security.minpasswordlen", 6)

	v.SetDefault("lifecycle.teamemail", "equipe@atelier.local")
	v.SetDefault("lifecycle.publicbaseurl", "http://localhost:3000")
	v.SetDefault("lifecycle.deleteproducts", false)
}

// bindEnvKeys registers every config key with viper explicitly.
// AutomaticEnv alone only resolves keys viper already knows about (a
// default or a config-file entry), so keys without defaults — the
// secrets and connection strings — would never see their ATELIER_*
// variables without this.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"environment",
		"http.host", "http.port", "http.readtimeout", "http.writetimeout", "http.idletimeout",
		"postgres.dsn", "postgres.maxopen", "postgres.maxidle", "postgres.connmaxlifetime",
		"redis.addr", "redis.password", "redis.db",
		"storage.endpoint", "storage.accesskey", "storage.secretkey",
		"storage.bucket", "storage.usessl", "storage.region",
		"smtp.host", "smtp.port", "smtp.from", "smtp.user", "smtp.pass", "smtp.insecure",
		"security.jwtsecret", "security.sessionttl", "security.resettokenttl",
		"security.bcryptcost", "security.minpasswordlen",
		"lifecycle.teamemail", "lifecycle.publicbaseurl", "lifecycle.deleteproducts",
		"allowcorsorigins",
	}
	for _, key := range keys {
		// Only errors on an empty key; the replacer derives the
		// ATELIER_* variable name.
		_ = v.BindEnv(key)
	}
}
