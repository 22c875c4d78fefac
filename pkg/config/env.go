package config

const (
	EnvPrefix = "SAFETYHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "SAFETYHUB_APP_ENV"
	EnvPort          = "SAFETYHUB_APP_PORT"
	EnvDBDSN         = "SAFETYHUB_DB_DSN"
	EnvDBHost        = "SAFETYHUB_DB_HOST"
	EnvDBUser        = "SAFETYHUB_DB_USER"
	EnvDBName        = "SAFETYHUB_DB_NAME"
	EnvRedisURL      = "SAFETYHUB_REDIS_URL"
	EnvSessionSecret = "SAFETYHUB_SESSION_SECRET"
	EnvUseSQLite     = "SAFETYHUB_USE_SQLITE"
	EnvGCSBucket     = "SAFETYHUB_GCS_BUCKET_NAME"
	EnvPDFTimeout    = "SAFETYHUB_PDF_RENDER_TIMEOUT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
