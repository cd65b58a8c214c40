// Package config resolves runtime settings from dotenv files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"k8s.io/client-go/util/homedir"
)

const (
	AppName     = "configlint-ai"
	DefaultPort = "8080"
)

type Config struct {
	Provider string
	Model    string
	Addr     string
	// LogLevel is empty unless LOG_LEVEL is set; commands pick their own default.
	LogLevel string
}

// DotenvFiles returns the dotenv files consulted by Load, in priority order.
func DotenvFiles() []string {
	files := []string{".env"}
	if home := homedir.HomeDir(); home != "" {
		files = append(files, filepath.Join(home, ".config", AppName, ".env"))
	}
	return files
}

// Load reads the default dotenv files and then the environment.
// Variables already set in the environment are never overwritten.
func Load() (*Config, error) {
	if err := LoadDotenv(DotenvFiles()...); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

// LoadDotenv loads every file that exists. Earlier files win.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func FromEnv() *Config {
	return &Config{
		Provider: strings.TrimSpace(os.Getenv("LLM_PROVIDER")),
		Model:    strings.TrimSpace(os.Getenv("LLM_MODEL")),
		Addr:     listenAddr(os.Getenv("PORT")),
		LogLevel: strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}
}

// listenAddr accepts "8080", ":8080" or "host:8080".
func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	switch {
	case port == "":
		return ":" + DefaultPort
	case strings.Contains(port, ":"):
		return port
	default:
		return ":" + port
	}
}
