// Package config loads the runtime configuration from the environment.
// main loads .env first, so a local dotenv file works the same as real
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	NotionToken      string
	NotionDatabaseId string

	// OpenAIKey empty means the LLM interpreter is disabled and the
	// heuristic parser is used instead.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseUrl string

	DBPath string
	Addr   string
}

const (
	defaultModel  = "gpt-4o-mini"
	defaultDBPath = "./nexus.db"
	defaultAddr   = ":8080"
)

func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{
		NotionToken:      k.String("notion_token"),
		NotionDatabaseId: k.String("notion_database_id"),
		OpenAIKey:        k.String("openai_api_key"),
		OpenAIModel:      k.String("openai_model"),
		OpenAIBaseUrl:    k.String("openai_base_url"),
		DBPath:           k.String("nexus_db_path"),
		Addr:             k.String("nexus_addr"),
	}

	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultModel
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	if cfg.NotionToken == "" {
		return nil, fmt.Errorf("NOTION_TOKEN not found: set it in .env or the environment")
	}
	if cfg.NotionDatabaseId == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_ID not found: set it in .env or the environment")
	}

	return cfg, nil
}

// LLMEnabled reports whether the LLM interpreter can be constructed.
func (c *Config) LLMEnabled() bool {
	return c.OpenAIKey != ""
}
