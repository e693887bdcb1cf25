package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DataDir         string
	PublicDir       string
	AllowedOrigins  []string
	AllowedIPs      []string
	MySQLDSN        string
	RedisURL        string
	NewsAPIKey      string
	GoogleMapsKey   string
	EventbriteToken string
	RecaptchaSecret string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// splitList parses a comma separated env value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	// Same behavior as the old dotenv setup: a missing .env is fine.
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "10000"),
		DataDir:         getenv("DATA_DIR", "data"),
		PublicDir:       getenv("PUBLIC_DIR", "public"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
		AllowedIPs:      splitList(os.Getenv("ALLOWED_IPS")),
		MySQLDSN:        os.Getenv("MYSQL_DSN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		NewsAPIKey:      os.Getenv("NEWS_API_KEY"),
		GoogleMapsKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		EventbriteToken: os.Getenv("EVENTBRITE_TOKEN"),
		RecaptchaSecret: os.Getenv("RECAPTCHA_SECRET_KEY"),
	}
}
