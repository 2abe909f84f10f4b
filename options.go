package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding loaded options.
const (
	EnvBaseURL  = "CONSOLE_BASE_URL"
	EnvStore    = "CONSOLE_STORE"
	EnvStoreURL = "CONSOLE_STORE_URL"
	EnvTimeout  = "CONSOLE_TIMEOUT"
)

// LoadEnv loads .env style files into the environment without overriding
// variables already set; missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %v: %w", file, err)
		}
	}
	return nil
}

// LoadOptions reads options from the YAML (or JSON) document at URL, applies
// environment overrides and defaults. An empty URL yields options built from the
// environment only.
func LoadOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	ret, err := DecodeOptions(ctx, URL)
	if err != nil {
		return nil, err
	}
	ret.Init()
	return ret, nil
}

// DecodeOptions is LoadOptions without defaults: fields neither the document
// nor the environment set stay zero.
func DecodeOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	ret := &ClientOptions{}
	if URL != "" {
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to download options %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("failed to decode options %v: %w", URL, err)
		}
	}
	if err := ret.ApplyEnv(); err != nil {
		return nil, err
	}
	return ret, nil
}

// ApplyEnv overrides options with CONSOLE_* environment variables.
func (c *ClientOptions) ApplyEnv() error {
	if value := os.Getenv(EnvBaseURL); value != "" {
		c.BaseURL = value
	}
	if value := os.Getenv(EnvStore); value != "" {
		c.Store.Type = value
	}
	if value := os.Getenv(EnvStoreURL); value != "" {
		c.Store.URL = value
	}
	if value := os.Getenv(EnvTimeout); value != "" {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v: %w", EnvTimeout, err)
		}
		c.TimeoutSeconds = seconds
	}
	return nil
}
