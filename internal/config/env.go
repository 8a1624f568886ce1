// Package config provides shared configuration utilities.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads a .env file from the working directory if one exists.
// A missing file is not an error; a file that fails to parse is.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
