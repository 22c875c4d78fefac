package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Uploads       UploadsConfig
	Email         EmailConfig
	OpenAI        OpenAIConfig
	PDF           PDFConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SAFETYHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"SAFETYHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SAFETYHUB_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SAFETYHUB_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SAFETYHUB_LOG_WARN_STACK" default:"false"`
	// PublicURL is the externally reachable origin of this API, used to build
	// signing and upload links.
	PublicURL string `envconfig:"SAFETYHUB_PUBLIC_URL" default:"http://localhost:8080"`
	// FrontendURL is where the gateway redirects browsers (login page, home).
	FrontendURL  string   `envconfig:"SAFETYHUB_FRONTEND_URL" default:"http://localhost:3000"`
	CORSOrigins  []string `envconfig:"SAFETYHUB_CORS_ORIGINS" default:"http://localhost:3000"`
	SecureCookie bool     `envconfig:"SAFETYHUB_SECURE_COOKIES" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SAFETYHUB_DB_DSN"`
	Driver string `envconfig:"SAFETYHUB_DB_DRIVER" default:"postgres"`
	// SQLitePath is used when FeatureFlags.UseSQLite is on.
	SQLitePath string `envconfig:"SAFETYHUB_SQLITE_PATH" default:"safetyhub.db"`

	LegacyHost     string `envconfig:"SAFETYHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"SAFETYHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SAFETYHUB_DB_USER"`
	LegacyPassword string `envconfig:"SAFETYHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"SAFETYHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"SAFETYHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SAFETYHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SAFETYHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SAFETYHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SAFETYHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SAFETYHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SAFETYHUB_REDIS_ADDR"`
	Password     string        `envconfig:"SAFETYHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"SAFETYHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SAFETYHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SAFETYHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SAFETYHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SAFETYHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SAFETYHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret     string `envconfig:"SAFETYHUB_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"SAFETYHUB_SESSION_ISSUER" default:"safetyhub"`
	TTLMinutes int    `envconfig:"SAFETYHUB_SESSION_TTL_MINUTES" default:"10080"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SAFETYHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SAFETYHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SAFETYHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SAFETYHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SAFETYHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SAFETYHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SAFETYHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SAFETYHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	PublicWindow    time.Duration `envconfig:"SAFETYHUB_PUBLIC_RATE_LIMIT_WINDOW" default:"1m"`
	PublicIPLimit   int           `envconfig:"SAFETYHUB_PUBLIC_RATE_LIMIT_IP_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SAFETYHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SAFETYHUB_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SAFETYHUB_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SAFETYHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SAFETYHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"SAFETYHUB_GCS_BUCKET_NAME"`
	// PublicBaseURL overrides https://storage.googleapis.com/<bucket> when a CDN fronts the bucket.
	PublicBaseURL string `envconfig:"SAFETYHUB_GCS_PUBLIC_BASE_URL"`
}

// Configured reports whether object storage can be used.
func (g GCSConfig) Configured() bool {
	return strings.TrimSpace(g.BucketName) != ""
}

type UploadsConfig struct {
	MaxUploadMB     int `envconfig:"SAFETYHUB_MAX_UPLOAD_MB" default:"25"`
	ContractorMaxMB int `envconfig:"SAFETYHUB_CONTRACTOR_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes returns the general multipart ceiling.
func (u UploadsConfig) MaxUploadBytes() int64 {
	return megabytes(u.MaxUploadMB, 25)
}

// ContractorMaxBytes returns the ceiling for unauthenticated contractor uploads.
func (u UploadsConfig) ContractorMaxBytes() int64 {
	return megabytes(u.ContractorMaxMB, 10)
}

func megabytes(value, fallback int) int64 {
	if value <= 0 {
		value = fallback
	}
	return int64(value) << 20
}

type EmailConfig struct {
	SendgridAPIKey string `envconfig:"SAFETYHUB_SENDGRID_API_KEY"`
	FromEmail      string `envconfig:"SAFETYHUB_SENDGRID_FROM_EMAIL"`
	FromName       string `envconfig:"SAFETYHUB_SENDGRID_FROM_NAME" default:"SafetyHub"`
	BaseURL        string `envconfig:"SAFETYHUB_SENDGRID_BASE_URL" default:"https://api.sendgrid.com"`
}

// Configured reports whether transactional email can be sent.
func (e EmailConfig) Configured() bool {
	return strings.TrimSpace(e.SendgridAPIKey) != "" && strings.TrimSpace(e.FromEmail) != ""
}

type OpenAIConfig struct {
	APIKey  string `envconfig:"SAFETYHUB_OPENAI_API_KEY"`
	Model   string `envconfig:"SAFETYHUB_OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string `envconfig:"SAFETYHUB_OPENAI_BASE_URL"`
}

// Configured reports whether the LLM completion API can be called.
func (o OpenAIConfig) Configured() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

type PDFConfig struct {
	BrowserPath   string        `envconfig:"SAFETYHUB_PDF_BROWSER_PATH"`
	RenderTimeout time.Duration `envconfig:"SAFETYHUB_PDF_RENDER_TIMEOUT" default:"60s"`
	// PrintBaseURL is the origin the browser navigates to; defaults to the local listener.
	PrintBaseURL string `envconfig:"SAFETYHUB_PDF_PRINT_BASE_URL"`
}

// Configured reports whether a headless browser is available.
func (p PDFConfig) Configured() bool {
	return strings.TrimSpace(p.BrowserPath) != ""
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
