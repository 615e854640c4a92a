package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is applied by envconfig on top of the explicit tags below.
	EnvPrefix = "VOGELPARK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VOGELPARK_DB_DSN"
	EnvDBHost = "VOGELPARK_DB_HOST"
	EnvDBUser = "VOGELPARK_DB_USER"
	EnvDBName = "VOGELPARK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VOGELPARK_APP_ENV" required:"true"`
	Port         string `envconfig:"VOGELPARK_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"VOGELPARK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VOGELPARK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VOGELPARK_DB_DSN"`
	Driver string `envconfig:"VOGELPARK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VOGELPARK_DB_HOST"`
	LegacyPort     int    `envconfig:"VOGELPARK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VOGELPARK_DB_USER"`
	LegacyPassword string `envconfig:"VOGELPARK_DB_PASSWORD"`
	LegacyName     string `envconfig:"VOGELPARK_DB_NAME"`
	LegacySSLMode  string `envconfig:"VOGELPARK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VOGELPARK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VOGELPARK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VOGELPARK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VOGELPARK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets sqlite. The DSN is
// then a file path or ":memory:".
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"VOGELPARK_REDIS_URL"`
	Address      string        `envconfig:"VOGELPARK_REDIS_ADDR"`
	Password     string        `envconfig:"VOGELPARK_REDIS_PASSWORD"`
	DB           int           `envconfig:"VOGELPARK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VOGELPARK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VOGELPARK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VOGELPARK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VOGELPARK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VOGELPARK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VOGELPARK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VOGELPARK_JWT_ISSUER" default:"vogelpark"`
	ExpirationMinutes int    `envconfig:"VOGELPARK_JWT_EXPIRATION_MINUTES" default:"120"`
}

// SessionTTL returns how long a login session stays live in Redis. It tracks
// the access token lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VOGELPARK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VOGELPARK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VOGELPARK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VOGELPARK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VOGELPARK_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VOGELPARK_CORS_ORIGINS" default:"http://localhost:5173"`
}

type RateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"VOGELPARK_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginLimit     int           `envconfig:"VOGELPARK_RATE_LIMIT_LOGIN_LIMIT" default:"10"`
	RegisterWindow time.Duration `envconfig:"VOGELPARK_RATE_LIMIT_REGISTER_WINDOW" default:"1h"`
	RegisterLimit  int           `envconfig:"VOGELPARK_RATE_LIMIT_REGISTER_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VOGELPARK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
