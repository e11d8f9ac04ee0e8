package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultCORSOrigins covers the webview and the dev server of the front-end
const DefaultCORSOrigins = "tauri://localhost,http://tauri.localhost,http://localhost:1420,http://localhost:5173"

// Config holds the backend configuration
type Config struct {
	Host         string
	Port         int
	Debug        bool
	LogLevel     string
	LogFile      string
	LibraryPath  string
	SettingsPath string
	CORSOrigins  []string
	GinMode      string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) *Config {
	// A missing .env file is not an error
	_ = godotenv.Load(envFiles...)

	return &Config{
		Host:         getEnv("AUDIODESK_HOST", "127.0.0.1"),
		Port:         getEnvInt("AUDIODESK_PORT", 1430),
		Debug:        getEnvBool("AUDIODESK_DEBUG", false),
		LogLevel:     strings.ToLower(getEnv("AUDIODESK_LOG_LEVEL", "info")),
		LogFile:      getEnv("AUDIODESK_LOG_FILE", ""),
		LibraryPath:  getEnv("AUDIODESK_LIBRARY", defaultLibraryPath()),
		SettingsPath: getEnv("AUDIODESK_SETTINGS", defaultSettingsPath()),
		CORSOrigins:  splitOrigins(getEnv("CORS_ORIGINS", DefaultCORSOrigins)),
		GinMode:      getEnv("GIN_MODE", "release"),
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func defaultLibraryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if can't get home dir
		return filepath.Join(".", "music")
	}
	return filepath.Join(homeDir, "Music")
}

func defaultSettingsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".audiodesk-settings.json"
	}
	return filepath.Join(homeDir, ".audiodesk-settings.json")
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
