package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "http://localhost:3000/api"
	defaultLogLevel   = "info"
)

// Config agrupa la configuración necesaria para correr el cliente.
type Config struct {
	APIBaseURL string
	TokenFile  string
	LogLevel   string
	// APITimeout en cero significa "usar el default del transporte".
	APITimeout time.Duration
}

// loadDotEnv se puede reemplazar en tests.
var loadDotEnv = func() error {
	return godotenv.Load()
}

// Load lee variables de entorno (y un .env si existe) y valida lo mínimo indispensable.
func Load() (Config, error) {
	// El .env es opcional: si no existe seguimos con el entorno del proceso.
	_ = loadDotEnv()

	baseURL := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	// Normalizamos por si alguien manda "http://host/api/"
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return Config{}, fmt.Errorf("invalid API_BASE_URL: %q", baseURL)
	}

	tokenFile := strings.TrimSpace(os.Getenv("BACKOFFICE_TOKEN_FILE"))
	if tokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		tokenFile = filepath.Join(dir, "backoffice", "token.json")
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	var timeout time.Duration
	if raw := strings.TrimSpace(os.Getenv("API_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("invalid API_TIMEOUT: %q", raw)
		}
		timeout = parsed
	}

	return Config{
		APIBaseURL: baseURL,
		TokenFile:  tokenFile,
		LogLevel:   logLevel,
		APITimeout: timeout,
	}, nil
}
