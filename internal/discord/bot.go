// Package discord connects the command engine to Discord: it holds the
// gateway session and keeps each guild's registered commands in step with the
// local registry.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/PantheraRed/slashsync/internal/config"
	"github.com/PantheraRed/slashsync/internal/storage"
	"github.com/PantheraRed/slashsync/pkg/retrylimit"
)

// Bot is the sync daemon's Discord side.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	limiter *retrylimit.Limiter
}

// NewBot wires a bot from config and storage.
func NewBot(cfg *config.Config, store *storage.Storage) *Bot {
	return &Bot{
		cfg:     cfg,
		storage: store,
		// Discord allows bursts well above this, but creeping up from a
		// conservative floor avoids tripping the global limit during a
		// full-guild sweep.
		limiter: retrylimit.NewLimiter(5, 1, 20),
	}
}

// Run opens the gateway session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.consumeRefreshEvents(ctx)
	if b.cfg.SyncInterval > 0 {
		go b.runScheduledSync(ctx)
	}

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Closing session...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] Logged in as %s, syncing %d guild(s)...", r.User.Username, len(b.guildIDs()))
	if err := b.SyncAllGuilds(context.Background()); err != nil {
		log.Println("[ERR] Initial sync failed:", err)
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if len(b.cfg.GuildIDs) > 0 && !contains(b.cfg.GuildIDs, g.ID) {
		return
	}
	if err := b.SyncGuild(context.Background(), g.ID); err != nil {
		log.Printf("[ERR] [%s] Sync on guild create failed: %v", g.ID, err)
	}
}

// guildIDs returns the guilds to sync: the configured list, or every guild
// the session has joined.
func (b *Bot) guildIDs() []string {
	if len(b.cfg.GuildIDs) > 0 {
		return b.cfg.GuildIDs
	}
	var ids []string
	for _, g := range b.dg.State.Guilds {
		ids = append(ids, g.ID)
	}
	return ids
}

// appID returns the bot's application ID, fetching from Discord if not cached
// in State.
func (b *Bot) appID() (string, error) {
	if b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

// isRateLimited classifies push-back responses for the retry layer.
func isRateLimited(err error) bool {
	var rl *discordgo.RateLimitError
	return errors.As(err, &rl)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
