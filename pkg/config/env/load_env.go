package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file into the process
// environment. ENV_PATH overrides defaultPath when set. A missing file is
// an error only for local development; deployed environments are expected
// to carry real environment variables instead.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load .env file", "path", envPath, "error", err)
			return err
		}
		slog.Debug("No .env file loaded, relying on process environment", "path", envPath)
	}

	return nil
}
