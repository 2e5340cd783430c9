package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at process start
// and never mutated afterwards. Collaborators receive it at construction
// time instead of reading the environment themselves.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// NeoTable is the warehouse table holding close-approach rows. The
	// upstream dataset exists in a couple of schema variants; the variant
	// is a configuration difference, not a behavioral one.
	NeoTable string

	DataSource string // "postgres" or "demo"
	DemoSeed   int64

	WindowDays      int
	CacheTTLMinutes int

	DefaultMaxDistanceMkm float64
	DefaultTopN           int

	ServerPort    int
	CSVOutputPath string
	LogLevel      string
}

// Load reads the .env file (if any) and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "neo"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "neo123"),
		PostgresDB:       getEnv("POSTGRES_DB", "nasa_neo"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		NeoTable: getEnv("NEO_TABLE", "asteroids"),

		DataSource: getEnv("DATA_SOURCE", "postgres"),
		DemoSeed:   int64(getEnvInt("DEMO_SEED", 42)),

		WindowDays:      getEnvInt("WINDOW_DAYS", 7),
		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 60),

		DefaultMaxDistanceMkm: getEnvFloat("DEFAULT_MAX_DISTANCE_MKM", 10.0),
		DefaultTopN:           getEnvInt("DEFAULT_TOP_N", 10),

		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/asteroids.csv"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
