// Package config reads application configuration from the environment,
// consulting a .env file first when one is present.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration for both binaries.
type Config struct {
	// Listing manager
	DataDir          string   // key-value snapshot directory
	RegionShapefiles []string // district boundary layers (WGS-84)
	CSVExportPath    string

	// Optional Oracle archive; disabled unless a username is set.
	DBHost     string
	DBPort     string
	DBService  string
	DBUsername string
	DBPassword string
	DBWallet   string

	// Marketplace server
	ServerAddr    string
	MongoURI      string
	MongoDatabase string

	Debug bool
}

// Load reads configuration from environment variables or falls back to
// defaults. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir:          getEnv("LANDMARKET_DATA_DIR", "data"),
		RegionShapefiles: splitList(getEnv("REGION_SHAPEFILES", filepath.Join("data", "districts", "DISTRICT_BOUNDARY.shp"))),
		CSVExportPath:    getEnv("CSV_EXPORT_PATH", filepath.Join("data", "listings.csv")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "1521"),
		DBService:  getEnv("DB_SERVICE", "XE"),
		DBUsername: getEnv("DB_USERNAME", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBWallet:   getEnv("DB_WALLET_LOCATION", ""),

		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "landmarket"),

		Debug: getEnvBool("DEBUG", false),
	}
}

// ArchiveEnabled reports whether Oracle archive credentials are configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBUsername != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
