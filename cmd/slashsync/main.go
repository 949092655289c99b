// cmd/slashsync/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/PantheraRed/slashsync/internal/command"
	"github.com/PantheraRed/slashsync/internal/config"
	"github.com/PantheraRed/slashsync/internal/discord"
	"github.com/PantheraRed/slashsync/internal/storage"
	"github.com/PantheraRed/slashsync/pkg/cmd"
)

func main() {
	log.Println("[INFO] Starting slashsync daemon...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	registerBuiltins()

	bot := discord.NewBot(cfg, store)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] slashsync exited cleanly")
}

// registerBuiltins populates the default registry. Real deployments replace
// this with their own command set.
func registerBuiltins() {
	cmd.DefaultRegistry.Register(cmd.Def{Raw: &command.RawCommand{
		Name:        "ping",
		Description: "Check that the bot is alive",
	}})
	cmd.DefaultRegistry.Register(cmd.Apply(
		cmd.Def{Raw: &command.RawCommand{
			Name:        "sync-history",
			Description: "Show recent command sync actions for this guild",
		}},
		cmd.WithRestrictedPermission(),
	))
}
