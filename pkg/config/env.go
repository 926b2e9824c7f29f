package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names.
const EnvPrefix = "RESTORDER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "RESTORDER_APP_ENV"
	EnvPort       = "RESTORDER_APP_PORT"
	EnvDBDSN      = "RESTORDER_DB_DSN"
	EnvDBHost     = "RESTORDER_DB_HOST"
	EnvDBUser     = "RESTORDER_DB_USER"
	EnvDBName     = "RESTORDER_DB_NAME"
	EnvRedisURL   = "RESTORDER_REDIS_URL"
	EnvJWTSecret  = "RESTORDER_JWT_SECRET"
	EnvJWTIssuer  = "RESTORDER_JWT_ISSUER"
	EnvJWTExpMins = "RESTORDER_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
