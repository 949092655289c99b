package command

import "fmt"

// NormalizeOption converts a raw option into canonical form: the type is
// resolved through the enum tables, required gets its context-dependent
// default, and nested options are normalized recursively preserving order.
// fromServer marks API-sourced input and is passed down unchanged. raw is
// never mutated; choices are leaf data and are copied as-is.
func NormalizeOption(raw *RawOption, fromServer bool) (*Option, error) {
	return normalizeOption(raw, fromServer, 0)
}

func normalizeOption(raw *RawOption, fromServer bool, depth int) (*Option, error) {
	if depth > maxOptionDepth {
		return nil, ErrOptionDepth
	}

	typ, err := ResolveOptionType(raw.Type)
	if err != nil {
		return nil, err
	}

	out := &Option{
		Type:        typ,
		Name:        raw.Name,
		Description: raw.Description,
		Required:    effectiveRequired(typ, raw.Required),
	}

	if raw.Choices != nil {
		out.Choices = make([]Choice, len(raw.Choices))
		copy(out.Choices, raw.Choices)
	}

	if raw.Options != nil {
		out.Options = make([]*Option, 0, len(raw.Options))
		for _, sub := range raw.Options {
			o, err := normalizeOption(sub, fromServer, depth+1)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", sub.Name, err)
			}
			out.Options = append(out.Options, o)
		}
	}

	return out, nil
}

// effectiveRequired resolves the three-state required flag. An explicit value
// passes through untouched. An absent one defaults to false, except on
// subcommands and groups where "required" has no meaning and absence must stay
// distinguishable from an explicit false.
func effectiveRequired(typ OptionType, required *bool) *bool {
	if required != nil {
		v := *required
		return &v
	}
	if typ == OptionSubCommand || typ == OptionSubCommandGroup {
		return nil
	}
	f := false
	return &f
}
