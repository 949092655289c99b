package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/PantheraRed/slashsync/internal/command"
)

// remoteToRaw converts a server-returned command into the engine's raw shape.
// Wire codes stay numeric; command.New resolves them.
func remoteToRaw(rc *discordgo.ApplicationCommand) *command.RawCommand {
	typ := int(rc.Type)
	if typ == 0 {
		typ = int(discordgo.ChatApplicationCommand)
	}
	return &command.RawCommand{
		ID:                    rc.ID,
		ApplicationID:         rc.ApplicationID,
		GuildID:               rc.GuildID,
		Type:                  command.TypeCode(typ),
		Name:                  rc.Name,
		Description:           rc.Description,
		Options:               remoteOptionsToRaw(rc.Options),
		DefaultPermissionWire: rc.DefaultPermission,
	}
}

func remoteOptionsToRaw(opts []*discordgo.ApplicationCommandOption) []*command.RawOption {
	if opts == nil {
		return nil
	}
	out := make([]*command.RawOption, len(opts))
	for i, o := range opts {
		raw := &command.RawOption{
			Type:        command.TypeCode(int(o.Type)),
			Name:        o.Name,
			Description: o.Description,
			Options:     remoteOptionsToRaw(o.Options),
		}
		// discordgo flattens required into a plain bool, so absence is not
		// recoverable. Discord never sets it on subcommands and groups; keep
		// those absent so they compare equal to locally omitted flags.
		if o.Type != discordgo.ApplicationCommandOptionSubCommand &&
			o.Type != discordgo.ApplicationCommandOptionSubCommandGroup {
			req := o.Required
			raw.Required = &req
		}
		if o.Choices != nil {
			raw.Choices = make([]command.Choice, len(o.Choices))
			for j, ch := range o.Choices {
				raw.Choices[j] = command.Choice{Name: ch.Name, Value: ch.Value}
			}
		}
		out[i] = raw
	}
	return out
}

// definitionToWire converts a desired definition into the discordgo struct
// used for create and edit calls. The definition is canonicalized first, so
// type aliases and defaults are resolved before they hit the wire.
func definitionToWire(raw *command.RawCommand) (*discordgo.ApplicationCommand, error) {
	c, err := command.New(raw, false)
	if err != nil {
		return nil, err
	}
	dp := c.DefaultPermission
	return &discordgo.ApplicationCommand{
		Type:              discordgo.ApplicationCommandType(c.Type),
		Name:              c.Name,
		Description:       c.Description,
		Options:           optionsToWire(c.Options),
		DefaultPermission: &dp,
	}, nil
}

func optionsToWire(opts []*command.Option) []*discordgo.ApplicationCommandOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]*discordgo.ApplicationCommandOption, len(opts))
	for i, o := range opts {
		wire := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(o.Type),
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required != nil && *o.Required,
			Options:     optionsToWire(o.Options),
		}
		if o.Choices != nil {
			wire.Choices = make([]*discordgo.ApplicationCommandOptionChoice, len(o.Choices))
			for j, ch := range o.Choices {
				wire.Choices[j] = &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value}
			}
		}
		out[i] = wire
	}
	return out
}
