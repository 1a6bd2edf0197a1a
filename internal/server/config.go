package server

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/piwi3910/RackPlanner/internal/project"
)

// Config holds the layout server settings.
type Config struct {
	Addr       string
	LayoutsDir string
	Catalog    string // empty = built-in catalog
}

// LoadConfig reads the server settings from the environment, loading an
// optional .env file from the working directory first.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Addr:       getEnv("RACKPLANNER_ADDR", ":5000"),
		LayoutsDir: getEnv("RACKPLANNER_LAYOUTS_DIR", project.DefaultLayoutsDir()),
		Catalog:    os.Getenv("RACKPLANNER_CATALOG"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
