package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	PostgresURL    string
	JWTKey         string
	AllowedOrigins []string
	Debug          bool
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Port:  "9090",
		Debug: os.Getenv("DEBUG") == "true",
	}

	if port, exists := os.LookupEnv("PORT"); exists {
		cfg.Port = port
	}

	postgresURL, exists := os.LookupEnv("POSTGRES_URL")
	if !exists {
		return Config{}, fmt.Errorf("missing POSTGRES_URL")
	}
	cfg.PostgresURL = postgresURL

	jwtKey, exists := os.LookupEnv("JWT_KEY")
	if !exists {
		return Config{}, fmt.Errorf("missing JWT_KEY")
	}
	cfg.JWTKey = jwtKey

	origins, exists := os.LookupEnv("ALLOWED_ORIGINS")
	if !exists {
		return Config{}, fmt.Errorf("missing ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")

	return cfg, nil
}
