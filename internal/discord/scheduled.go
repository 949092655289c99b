package discord

import (
	"context"
	"log"
	"time"
)

// runScheduledSync re-syncs all guilds on the configured interval until ctx
// is done.
func (b *Bot) runScheduledSync(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Println("[INFO] Scheduled sync starting...")
			if err := b.SyncAllGuilds(ctx); err != nil {
				log.Println("[ERR] Scheduled sync failed:", err)
			}
		}
	}
}
