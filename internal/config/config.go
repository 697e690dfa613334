// Package config provides Viper-backed configuration helpers.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/teamsync/pkg/errors"
)

// TokenEnvVar is the environment variable holding the GitHub API token.
const TokenEnvVar = "GITHUB_TOKEN"

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Token returns the GitHub API token, optionally loading it from a
// dotenv-style credentials file first. The token is required: unauthenticated
// requests cannot see team membership at all.
func Token(credentialsFile string) (string, error) {
	if credentialsFile != "" {
		if err := godotenv.Load(credentialsFile); err != nil {
			return "", errors.NewIOError("read", credentialsFile, err)
		}
	}

	token := GetString(TokenEnvVar)
	if token == "" {
		return "", errors.ErrTokenRequired
	}
	return token, nil
}
