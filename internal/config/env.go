package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local before ${VAR} expansion. godotenv
// never overrides variables already present in the process environment, so
// the shell always wins over the files.
func loadEnvFiles() error {
	loaded := false
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		loaded = true
	}
	if !loaded {
		return fmt.Errorf("no .env file found")
	}
	return nil
}
