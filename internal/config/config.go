package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus" // logrus reports configuration errors and halts execution
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are resolved once at startup;
// there is no runtime reconfiguration.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // database username
	DBPass       string        // database password (optional)
	DBHost       string        // database host address
	DBPort       string        // database port number
	DBName       string        // database name
	DBTimeout    time.Duration // per-operation storage timeout
	AutoMigrate  bool          // create missing tables on startup
	JWTSecret    string        // secret used to sign JWTs
	AccessTTLMin int           // access token time‑to‑live in minutes
	BcryptCost   int           // bcrypt cost for password hashing
	EventsOn     bool          // publish domain events to RabbitMQ
	AuditEnabled bool          // run the RabbitMQ audit consumer in-process
	AuditLogDir  string        // directory the audit consumer writes to
}

// LoadDotEnv preloads variables from a .env file when one exists.  Values
// already present in the environment win.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("config: could not read .env file")
	}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		DBTimeout:    envDur("DB_TIMEOUT", 5*time.Second),
		AutoMigrate:  envBool("DB_AUTO_MIGRATE", false),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		EventsOn:     envBool("EVENTS_ENABLED", true),
		AuditEnabled: envBool("AUDIT_CONSUMER_ENABLED", false),
		AuditLogDir:  envStr("AUDIT_LOG_DIR", "logs"),
	}
}

// LoadDatabase reads only the database settings.  Used by tools that do not
// serve HTTP.
func LoadDatabase() Config {
	return Config{
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		DBTimeout:  envDur("DB_TIMEOUT", 5*time.Second),
		BcryptCost: envInt("BCRYPT_COST", 12),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		logrus.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
