package discord

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PantheraRed/slashsync/internal/command"
	"github.com/PantheraRed/slashsync/internal/storage"
	"github.com/PantheraRed/slashsync/pkg/cmd"
	"github.com/PantheraRed/slashsync/pkg/retrylimit"
	"github.com/PantheraRed/slashsync/pkg/util"
)

const apiAttempts = 5

type actionKind string

const (
	actionCreate actionKind = "create"
	actionEdit   actionKind = "edit"
	actionDelete actionKind = "delete"
)

// syncAction is one planned API call.
type syncAction struct {
	kind     actionKind
	name     string
	remoteID string              // set for edit and delete
	desired  *command.RawCommand // nil for delete
}

// SyncAllGuilds syncs every target guild over a bounded worker pool.
func (b *Bot) SyncAllGuilds(ctx context.Context) error {
	return util.Parallel(ctx, b.guildIDs(), b.cfg.SyncWorkers, b.SyncGuild)
}

// SyncGuild brings a guild's registered commands in line with the local
// registry: obsolete ones are deleted, missing ones created, and commands
// whose remote definition is no longer equivalent to the desired one edited.
func (b *Bot) SyncGuild(ctx context.Context, guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	blacklisted, err := b.storage.IsGuildBlacklisted(guildID)
	if err != nil {
		return err
	}
	if blacklisted {
		return b.removeAllCommands(ctx, appID, guildID)
	}

	remote, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to fetch commands for guild %s: %w", guildID, err)
	}

	desired, err := b.desiredDefinitions(guildID)
	if err != nil {
		return err
	}

	plan, err := planSync(remote, desired, b.cfg.EnforceOptionOrder)
	if err != nil {
		return fmt.Errorf("failed to plan sync for guild %s: %w", guildID, err)
	}
	if len(plan) == 0 {
		log.Printf("[INFO] [%s] Commands already in sync", guildID)
		return nil
	}

	log.Printf("[INFO] [%s] Applying %d command change(s)...", guildID, len(plan))
	return b.applyPlan(ctx, appID, guildID, plan)
}

// desiredDefinitions collects definitions from the registry, minus the names
// the guild has disabled.
func (b *Bot) desiredDefinitions(guildID string) ([]*command.RawCommand, error) {
	disabledList, err := b.storage.GetDisabledCommands(guildID)
	if err != nil {
		return nil, err
	}
	disabled := make(map[string]bool, len(disabledList))
	for _, name := range disabledList {
		disabled[name] = true
	}

	var defs []*command.RawCommand
	for _, c := range cmd.DefaultRegistry.GetAll() {
		if disabled[c.Name()] {
			continue
		}
		if def := c.Definition(); def != nil {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// planSync decides which API calls a guild needs. Remote commands are
// canonicalized and compared against the desired definitions by the engine;
// only non-equivalent pairs produce an edit. Deletes come last, sorted by
// name for determinism.
func planSync(remote []*discordgo.ApplicationCommand, desired []*command.RawCommand, enforceOrder bool) ([]syncAction, error) {
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, rc := range remote {
		remoteByName[rc.Name] = rc
	}

	var plan []syncAction
	desiredNames := make(map[string]bool, len(desired))
	for _, def := range desired {
		desiredNames[def.Name] = true

		rc, exists := remoteByName[def.Name]
		if !exists {
			plan = append(plan, syncAction{kind: actionCreate, name: def.Name, desired: def})
			continue
		}

		existing, err := command.New(remoteToRaw(rc), true)
		if err != nil {
			return nil, fmt.Errorf("remote command %q: %w", rc.Name, err)
		}
		eq, err := existing.Equals(def, enforceOrder)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", def.Name, err)
		}
		if !eq {
			plan = append(plan, syncAction{kind: actionEdit, name: def.Name, remoteID: rc.ID, desired: def})
		}
	}

	var deletes []syncAction
	for name, rc := range remoteByName {
		if !desiredNames[name] {
			deletes = append(deletes, syncAction{kind: actionDelete, name: name, remoteID: rc.ID})
		}
	}
	sort.Slice(deletes, func(i, j int) bool { return deletes[i].name < deletes[j].name })

	return append(plan, deletes...), nil
}

// applyPlan executes planned actions through the rate limiter, recording each
// outcome in storage.
func (b *Bot) applyPlan(ctx context.Context, appID, guildID string, plan []syncAction) error {
	for _, act := range plan {
		err := retrylimit.WithRetry(ctx, b.limiter, apiAttempts, isRateLimited, func() error {
			return b.execute(appID, guildID, act)
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to %s %s: %v", guildID, act.kind, act.name, err)
			return err
		}
		log.Printf("[DONE] [%s] %s: %s", guildID, act.kind, act.name)
		if err := b.storage.AppendSyncRecord(guildID, storage.SyncRecord{
			Action:   string(act.kind),
			Command:  act.name,
			Datetime: time.Now(),
		}); err != nil {
			log.Printf("[WARN] [%s] Failed to record sync action: %v", guildID, err)
		}
	}
	return nil
}

func (b *Bot) execute(appID, guildID string, act syncAction) error {
	switch act.kind {
	case actionCreate:
		wire, err := definitionToWire(act.desired)
		if err != nil {
			return &retrylimit.Fatal{Err: err}
		}
		_, err = b.dg.ApplicationCommandCreate(appID, guildID, wire)
		return err
	case actionEdit:
		wire, err := definitionToWire(act.desired)
		if err != nil {
			return &retrylimit.Fatal{Err: err}
		}
		_, err = b.dg.ApplicationCommandEdit(appID, guildID, act.remoteID, wire)
		return err
	case actionDelete:
		return b.dg.ApplicationCommandDelete(appID, guildID, act.remoteID)
	}
	return &retrylimit.Fatal{Err: fmt.Errorf("unknown sync action %q", act.kind)}
}

// removeAllCommands strips every registered command from a guild.
func (b *Bot) removeAllCommands(ctx context.Context, appID, guildID string) error {
	log.Printf("[INFO] [%s] Guild is blacklisted, removing all commands", guildID)
	remote, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to fetch commands for guild %s: %w", guildID, err)
	}

	var plan []syncAction
	for _, rc := range remote {
		plan = append(plan, syncAction{kind: actionDelete, name: rc.Name, remoteID: rc.ID})
	}
	return b.applyPlan(ctx, appID, guildID, plan)
}

// refreshSingle re-pushes one command by name, regardless of verdicts.
func (b *Bot) refreshSingle(ctx context.Context, guildID, target string) {
	appID, err := b.appID()
	if err != nil {
		log.Printf("[ERR] [%s] Failed to resolve app ID: %v", guildID, err)
		return
	}
	for _, c := range cmd.DefaultRegistry.GetAll() {
		if !strings.EqualFold(c.Name(), target) {
			continue
		}
		act := syncAction{kind: actionCreate, name: c.Name(), desired: c.Definition()}
		if err := b.applyPlan(ctx, appID, guildID, []syncAction{act}); err != nil {
			log.Printf("[ERR] [%s] Refresh of %s failed: %v", guildID, target, err)
		}
		return
	}
	log.Printf("[WARN] [%s] No command found for refresh target: %s", guildID, target)
}
