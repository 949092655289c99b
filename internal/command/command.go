package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Choice is a predefined value for a STRING, INTEGER or NUMBER option.
// Value is a string or a number, as on the wire.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Option is a command option in canonical form: type resolved to its tag,
// defaults applied. Required is nil only for SUB_COMMAND / SUB_COMMAND_GROUP
// options whose source omitted it; everywhere else an absent flag has already
// been resolved to false.
type Option struct {
	Type        OptionType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Required    *bool      `json:"required,omitempty"`
	Choices     []Choice   `json:"choices,omitempty"`
	Options     []*Option  `json:"options,omitempty"`
}

// RawOption is an option as authored locally or received from the API before
// normalization. Type may be a tag name or a wire code.
type RawOption struct {
	Type        TypeRef      `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Required    *bool        `json:"required,omitempty"`
	Choices     []Choice     `json:"choices,omitempty"`
	Options     []*RawOption `json:"options,omitempty"`
}

// RawCommand is a command definition before normalization. The
// default-permission flag is accepted under both spellings; DefaultPermission
// wins when both are present.
type RawCommand struct {
	ID                    string       `json:"id,omitempty"`
	ApplicationID         string       `json:"application_id,omitempty"`
	GuildID               string       `json:"guild_id,omitempty"`
	Type                  TypeRef      `json:"type,omitempty"`
	Name                  string       `json:"name"`
	Description           string       `json:"description,omitempty"`
	Options               []*RawOption `json:"options,omitempty"`
	DefaultPermission     *bool        `json:"defaultPermission,omitempty"`
	DefaultPermissionWire *bool        `json:"default_permission,omitempty"`
}

// Command is an application command in canonical form. GuildID is empty for
// global commands; ID is empty for definitions that have not been registered.
type Command struct {
	ID                string      `json:"id,omitempty"`
	ApplicationID     string      `json:"application_id,omitempty"`
	GuildID           string      `json:"guild_id,omitempty"`
	Type              CommandType `json:"type"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Options           []*Option   `json:"options"`
	DefaultPermission bool        `json:"default_permission"`
}

// New builds the canonical form of raw. fromServer marks input received from
// the API rather than authored locally; it is threaded through option
// normalization unchanged. raw is not mutated. An omitted type defaults to
// CHAT_INPUT, an omitted default-permission flag to true.
func New(raw *RawCommand, fromServer bool) (*Command, error) {
	typ := ChatInputCommand
	if raw.Type.IsSet() {
		t, err := ResolveCommandType(raw.Type)
		if err != nil {
			return nil, err
		}
		typ = t
	}

	opts := make([]*Option, 0, len(raw.Options))
	for _, ro := range raw.Options {
		o, err := NormalizeOption(ro, fromServer)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", ro.Name, err)
		}
		opts = append(opts, o)
	}

	return &Command{
		ID:                raw.ID,
		ApplicationID:     raw.ApplicationID,
		GuildID:           raw.GuildID,
		Type:              typ,
		Name:              raw.Name,
		Description:       raw.Description,
		Options:           opts,
		DefaultPermission: raw.effectiveDefaultPermission(),
	}, nil
}

// effectiveDefaultPermission checks both spellings and falls back to true.
func (r *RawCommand) effectiveDefaultPermission() bool {
	if r.DefaultPermission != nil {
		return *r.DefaultPermission
	}
	if r.DefaultPermissionWire != nil {
		return *r.DefaultPermissionWire
	}
	return true
}

// CreatedAt derives the creation time embedded in the command's snowflake ID.
func (c *Command) CreatedAt() (time.Time, error) {
	if c.ID == "" {
		return time.Time{}, fmt.Errorf("command %q has no ID", c.Name)
	}
	ts, err := discordgo.SnowflakeTimestamp(c.ID)
	if err != nil {
		return time.Time{}, fmt.Errorf("command %q: bad snowflake: %w", c.Name, err)
	}
	return ts, nil
}
