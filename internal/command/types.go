// Package command models Discord application commands in canonical form and
// decides whether a locally authored definition and a remote one describe the
// same logical command.
package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// CommandType identifies the kind of application command by its wire code.
type CommandType int

const (
	ChatInputCommand CommandType = 1
	UserCommand      CommandType = 2
	MessageCommand   CommandType = 3
)

// OptionType identifies the kind of a command option by its wire code.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
	OptionAttachment      OptionType = 11
)

var (
	// ErrInvalidCommandType is returned when a command type field resolves to
	// neither a known tag name nor a known wire code.
	ErrInvalidCommandType = errors.New("invalid application command type")

	// ErrInvalidOptionType is the option-level counterpart of ErrInvalidCommandType.
	ErrInvalidOptionType = errors.New("invalid application command option type")

	// ErrOptionDepth is returned when an option tree exceeds maxOptionDepth.
	// Discord caps nesting at two levels; the guard protects against cyclic or
	// hostile input rather than anything a well-formed command can produce.
	ErrOptionDepth = errors.New("option tree too deep")
)

const maxOptionDepth = 32

// The name↔code tables are populated once at init and never mutated afterwards.
var (
	commandTypeNames = map[CommandType]string{
		ChatInputCommand: "CHAT_INPUT",
		UserCommand:      "USER",
		MessageCommand:   "MESSAGE",
	}
	commandTypeCodes = map[string]CommandType{}

	optionTypeNames = map[OptionType]string{
		OptionSubCommand:      "SUB_COMMAND",
		OptionSubCommandGroup: "SUB_COMMAND_GROUP",
		OptionString:          "STRING",
		OptionInteger:         "INTEGER",
		OptionBoolean:         "BOOLEAN",
		OptionUser:            "USER",
		OptionChannel:         "CHANNEL",
		OptionRole:            "ROLE",
		OptionMentionable:     "MENTIONABLE",
		OptionNumber:          "NUMBER",
		OptionAttachment:      "ATTACHMENT",
	}
	optionTypeCodes = map[string]OptionType{}
)

func init() {
	for code, name := range commandTypeNames {
		commandTypeCodes[name] = code
	}
	for code, name := range optionTypeNames {
		optionTypeCodes[name] = code
	}
}

// String returns the canonical tag name, or the numeric code for unknown values.
func (t CommandType) String() string {
	if name, ok := commandTypeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

func (t OptionType) String() string {
	if name, ok := optionTypeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// TypeRef is a type field as it appears in raw input: either a canonical tag
// name ("STRING") or an integer wire code (3). The zero value means "absent".
type TypeRef struct {
	name   string
	code   int
	byName bool
	set    bool
}

// TypeName references an enum tag by its canonical name.
func TypeName(name string) TypeRef {
	return TypeRef{name: name, byName: true, set: true}
}

// TypeCode references an enum tag by its wire code.
func TypeCode(code int) TypeRef {
	return TypeRef{code: code, set: true}
}

// IsSet reports whether the raw input carried a type at all.
func (r TypeRef) IsSet() bool { return r.set }

// UnmarshalJSON accepts both representations: a JSON string is a tag name, a
// JSON number is a wire code.
func (r *TypeRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = TypeRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = TypeName(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = TypeCode(n)
	return nil
}

// MarshalJSON writes back whichever representation the input carried.
func (r TypeRef) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	if r.byName {
		return json.Marshal(r.name)
	}
	return json.Marshal(r.code)
}

// ResolveCommandType maps a raw type reference to its canonical tag.
func ResolveCommandType(ref TypeRef) (CommandType, error) {
	if !ref.set {
		return 0, fmt.Errorf("%w: missing", ErrInvalidCommandType)
	}
	if ref.byName {
		if t, ok := commandTypeCodes[ref.name]; ok {
			return t, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidCommandType, ref.name)
	}
	if _, ok := commandTypeNames[CommandType(ref.code)]; ok {
		return CommandType(ref.code), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidCommandType, ref.code)
}

// ResolveOptionType maps a raw type reference to its canonical tag.
func ResolveOptionType(ref TypeRef) (OptionType, error) {
	if !ref.set {
		return 0, fmt.Errorf("%w: missing", ErrInvalidOptionType)
	}
	if ref.byName {
		if t, ok := optionTypeCodes[ref.name]; ok {
			return t, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidOptionType, ref.name)
	}
	if _, ok := optionTypeNames[OptionType(ref.code)]; ok {
		return OptionType(ref.code), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidOptionType, ref.code)
}
