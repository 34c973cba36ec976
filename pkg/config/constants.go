package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:storefront.db?_foreign_keys=on"
)

const (
	EnvAppEnv      = "STOREFRONT_APP_ENV"
	EnvPort        = "STOREFRONT_APP_PORT"
	EnvDBDSN       = "STOREFRONT_DB_DSN"
	EnvDBHost      = "STOREFRONT_DB_HOST"
	EnvDBUser      = "STOREFRONT_DB_USER"
	EnvDBName      = "STOREFRONT_DB_NAME"
	EnvRedisURL    = "STOREFRONT_REDIS_URL"
	EnvJWTSecret   = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer   = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins  = "STOREFRONT_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvLocale      = "STOREFRONT_LOCALE_FALLBACK"
	EnvSMTPHost    = "STOREFRONT_SMTP_HOST"
	EnvSessionTTL  = "STOREFRONT_SESSION_TTL"
	EnvLogLevel    = "STOREFRONT_LOG_LEVEL"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"
)

var splitDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
