package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string
	AppEnv     string
	AppAuthKey string
	AppEncKey  string
	CSRFKey    string
	JWTSecret  string
	APIBaseURL string
	APITimeout time.Duration
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "addressbook"),
		DBPort:     getEnv("DB_PORT", "3306"),
		Port:       getEnv("APP_PORT", ":8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),
		CSRFKey:    os.Getenv("CSRF_KEY"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
		APITimeout: 10 * time.Second,
	}

	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Warning: invalid API_TIMEOUT %q, using %s", raw, env.APITimeout)
		} else {
			env.APITimeout = d
		}
	}

	if env.APIBaseURL == "" {
		env.APIBaseURL = "http://localhost" + env.Port + "/api"
	}

	return env
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
