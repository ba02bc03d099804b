package infra

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerName     string
	ServerPort     string
	Environment    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBDatabase     string
	DBSSLMode      string
	DBDriver       string
	RedisUrl       string
	GoogleMapsKey  string
	ViabilidadeURL string
	ArquivosURL    string
	NominatimURL   string
	ViaCEPURL      string
	BrasilAPIURL   string
	NominatimAgent string
	KafkaBroker    string
	KafkaTopic     string
	DefaultLat     string
	DefaultLon     string
	DefaultZoom    string
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			panic("Error loading env file")
		}
	}

	return Config{
		ServerName:     os.Getenv("SERVER_NAME"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		Environment:    os.Getenv("ENVIRONMENT"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBDatabase:     os.Getenv("DB_DATABASE"),
		DBSSLMode:      os.Getenv("DB_SSL_MODE"),
		DBDriver:       os.Getenv("DB_DRIVER"),
		RedisUrl:       os.Getenv("REDIS_URL"),
		GoogleMapsKey:  os.Getenv("GOOGLE_MAPS_KEY"),
		ViabilidadeURL: os.Getenv("VIABILIDADE_API_URL"),
		ArquivosURL:    os.Getenv("ARQUIVOS_API_URL"),
		NominatimURL:   envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		ViaCEPURL:      envOr("VIACEP_URL", "https://viacep.com.br"),
		BrasilAPIURL:   envOr("BRASILAPI_URL", "https://brasilapi.com.br"),
		NominatimAgent: envOr("NOMINATIM_USER_AGENT", "viabilidade-api"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     os.Getenv("KAFKA_TOPIC"),
		DefaultLat:     envOr("DEFAULT_LAT", "-22.919"),
		DefaultLon:     envOr("DEFAULT_LON", "-42.818"),
		DefaultZoom:    envOr("DEFAULT_ZOOM", "12"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
