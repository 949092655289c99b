package discord

import (
	"context"
	"log"
	"strings"
)

// RefreshEvent asks the bot to re-sync commands. Target is empty or "all" for
// a full guild sync, otherwise a single command name.
type RefreshEvent struct {
	GuildID string
	Target  string
}

var refreshBus = make(chan RefreshEvent, 16)

// PublishRefresh queues a refresh request. Drops the event instead of
// blocking when the bus is full.
func PublishRefresh(evt RefreshEvent) {
	select {
	case refreshBus <- evt:
	default:
		log.Println("[WARN] Refresh bus full, dropping event for guild", evt.GuildID)
	}
}

func (b *Bot) consumeRefreshEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-refreshBus:
			b.handleRefresh(ctx, evt)
		}
	}
}

func (b *Bot) handleRefresh(ctx context.Context, evt RefreshEvent) {
	switch {
	case evt.Target == "" || strings.EqualFold(evt.Target, "all"):
		if err := b.SyncGuild(ctx, evt.GuildID); err != nil {
			log.Printf("[ERR] [%s] Refresh sync failed: %v", evt.GuildID, err)
		}
	default:
		b.refreshSingle(ctx, evt.GuildID, evt.Target)
	}
}
