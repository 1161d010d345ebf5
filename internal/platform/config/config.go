package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort       string
	AdminPassword string

	// StorageDriver selects the backing store: "memory" or "postgres".
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	MaxUploadMB        int
	MaxSubmissionFiles int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "0000"),
		StorageDriver:      getEnv("STORAGE_DRIVER", "memory"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "filedrop_db"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 50),
		MaxSubmissionFiles: getEnvAsInt("MAX_SUBMISSION_FILES", 10),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

// MaxUploadBytes is the per-file size cap enforced by the upload handlers.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
