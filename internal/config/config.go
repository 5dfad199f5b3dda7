package config

import (
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // For env lookups with defaults
)

// Config holds the application configuration
type Config struct {
	AppPort       string   // Application port
	DBDriver      string   // postgres, mysql or sqlite
	DBUser        string   // Database user
	DBPassword    string   // Database password
	DBHost        string   // Database host
	DBPort        string   // Database port
	DBName        string   // Database name
	SQLitePath    string   // SQLite file when DBDriver is sqlite
	JWTSecret     string   // JWT secret key
	RedisAddr     string   // Redis server address
	RedisPass     string   // Redis password
	RedisDB       int      // Redis database number
	StorageDriver string   // redis, file or memory
	StateDir      string   // Directory for the file storage driver
	StateKey      string   // Key holding the record list
	CORSOrigins   []string // Allowed CORS origins
	LogLevel      string   // logrus level name
	LogFormat     string   // text or json
	IsProd        bool     // Is production environment
}

// Defaults applied when a variable is unset
var defaults = map[string]any{
	"APP_PORT":       "5000",
	"DB_DRIVER":      "postgres",
	"DB_HOST":        "localhost",
	"DB_PORT":        "5432",
	"DB_NAME":        "sentinel",
	"SQLITE_PATH":    "sentinel.db",
	"REDIS_ADDR":     "localhost:6379",
	"REDIS_DB":       0,
	"STORAGE_DRIVER": "redis",
	"STATE_DIR":      ".sentinel",
	"STATE_KEY":      "sentinel:transactions",
	"CORS_ORIGINS":   "*",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "text",
	"IS_PROD":        false,
}

// LoadConfig loads configuration from a .env file (if present) and the environment
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:       v.GetString("APP_PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBName:        v.GetString("DB_NAME"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPass:     v.GetString("REDIS_PASS"),
		RedisDB:       v.GetInt("REDIS_DB"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		StateDir:      v.GetString("STATE_DIR"),
		StateKey:      v.GetString("STATE_KEY"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     strings.ToLower(v.GetString("LOG_FORMAT")),
		IsProd:        v.GetBool("IS_PROD"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
