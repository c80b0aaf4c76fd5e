package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env if present and returns the required variables,
// erroring on the first one that is missing or empty.
func LoadEnv(requiredVars []string) (map[string]string, error) {
	_ = godotenv.Load()

	envVars := make(map[string]string)

	for _, key := range requiredVars {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", key)
		}
		envVars[key] = value
	}

	return envVars, nil
}
