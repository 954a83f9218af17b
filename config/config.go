package config

import (
	"os"
	"strings"
)

// Config carries everything the process reads from the environment. It is
// built once in main and passed down explicitly; nothing reads ambient state
// after startup.
type Config struct {
	Port     string
	MongoURI string
	DBName   string
	Timezone string

	JWTSecret  string
	AlertEmail string

	SMTPFrom string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string

	CORSOrigins []string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "8000"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getenv("DB_NAME", "restopos"),
		Timezone:       getenv("TZ_NAME", "Asia/Kolkata"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		AlertEmail:     getenv("ALERT_EMAIL", ""),
		SMTPFrom:       getenv("SMTP_FROM", "alerts@restopos.local"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "restopos"),
	}
	origins := getenv("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}
