// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the sync daemon needs.
type Config struct {
	// DiscordToken authenticates the gateway session.
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	// StoragePath is the JSON datastore file.
	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	// GuildIDs limits syncing to specific guilds; empty means every joined guild.
	GuildIDs []string `env:"GUILD_IDS"`
	// EnforceOptionOrder makes the definition comparison order-sensitive, so a
	// reordered option list counts as a change worth pushing.
	EnforceOptionOrder bool `env:"ENFORCE_OPTION_ORDER" envDefault:"false"`
	// SyncInterval re-syncs all guilds periodically; 0 disables the loop.
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"0"`
	// SyncWorkers bounds how many guilds sync concurrently.
	SyncWorkers int `env:"SYNC_WORKERS" envDefault:"4"`
}

// New loads the configuration. A missing .env file is not an error.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
