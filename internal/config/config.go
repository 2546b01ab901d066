package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string
	WorldPath    string
	ImageDir     string
}

// LoadConfig loads the configuration from a .env file, if present, and
// the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	worldPath := os.Getenv("STORYWALK_WORLD")
	if worldPath == "" {
		worldPath = "world.yaml"
	}

	imageDir := os.Getenv("STORYWALK_IMAGES")
	if imageDir == "" {
		imageDir = "room_images"
	}

	return &Config{
		GeminiAPIKey: apiKey,
		WorldPath:    worldPath,
		ImageDir:     imageDir,
	}, nil
}
