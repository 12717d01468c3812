package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries everything the bot reads from the environment. The
// github block is optional: without it the remote mirror is disabled
// and the bot runs on local files only
type Config struct {
	DiscordToken      string
	ApplicationID     string
	GuildID           string
	AnnounceChannelID string

	GithubToken  string
	GithubRepo   string // "owner/name"
	GithubUser   string
	GithubBranch string

	DataDir string
}

// Load reads the configuration from a .env file if present and the
// process environment otherwise. It fails on missing Discord
// credentials, the bot cannot start without them
func Load() (Config, error) {

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using the process environment")
	}

	cfg := Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		ApplicationID:     os.Getenv("APPLICATION_ID"),
		GuildID:           os.Getenv("GUILD_ID"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),
		GithubToken:       os.Getenv("GITHUB_TOKEN"),
		GithubRepo:        os.Getenv("GITHUB_REPO"),
		GithubUser:        os.Getenv("GITHUB_USER"),
		GithubBranch:      os.Getenv("GITHUB_BRANCH"),
		DataDir:           os.Getenv("DATA_DIR"),
	}
	if cfg.GithubBranch == "" {
		cfg.GithubBranch = "main"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	for name, value := range map[string]string{
		"DISCORD_TOKEN":       cfg.DiscordToken,
		"APPLICATION_ID":      cfg.ApplicationID,
		"GUILD_ID":            cfg.GuildID,
		"ANNOUNCE_CHANNEL_ID": cfg.AnnounceChannelID,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("missing required environment variable %s", name)
		}
	}
	return cfg, nil
}
