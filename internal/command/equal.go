package command

// Equals reports whether raw describes the same logical command as c. c must
// be canonical (built by New); raw may be in either shape and is normalized on
// the fly. With enforceOrder false, options and choices match by name instead
// of position. The only error conditions are unresolvable type fields; every
// ordinary difference is a false verdict.
//
// Note the deliberate asymmetry carried over from the original behavior: at
// the command level an absent options list and an empty one both count as
// zero, while at the option level a nil choice list and a present-but-empty
// one are distinct.
func (c *Command) Equals(raw *RawCommand, enforceOrder bool) (bool, error) {
	if raw.ID != "" && raw.ID != c.ID {
		return false, nil
	}

	var typ CommandType
	if raw.Type.IsSet() {
		t, err := ResolveCommandType(raw.Type)
		if err != nil {
			return false, err
		}
		typ = t
	}
	if raw.Name != c.Name {
		return false, nil
	}
	if raw.Description != "" && raw.Description != c.Description {
		return false, nil
	}
	if raw.Type.IsSet() && typ != c.Type {
		return false, nil
	}

	if len(raw.Options) != len(c.Options) {
		return false, nil
	}

	if raw.effectiveDefaultPermission() != c.DefaultPermission {
		return false, nil
	}

	if raw.Options != nil {
		return optionsEqual(c.Options, raw.Options, enforceOrder, 0)
	}
	return true, nil
}

// OptionsEqual compares a canonical option list against a raw candidate list
// under the given ordering policy.
func OptionsEqual(existing []*Option, candidate []*RawOption, enforceOrder bool) (bool, error) {
	return optionsEqual(existing, candidate, enforceOrder, 0)
}

func optionsEqual(existing []*Option, candidate []*RawOption, enforceOrder bool, depth int) (bool, error) {
	if depth > maxOptionDepth {
		return false, ErrOptionDepth
	}
	if len(existing) != len(candidate) {
		return false, nil
	}

	if enforceOrder {
		for i, opt := range existing {
			eq, err := optionEquals(opt, candidate[i], enforceOrder, depth)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}

	// Last entry wins on duplicate names; duplicates are not an error at this
	// layer. Only existing options are looked up; together with the length
	// check above this implies a bijection when names are unique.
	byName := make(map[string]*RawOption, len(candidate))
	for _, ro := range candidate {
		byName[ro.Name] = ro
	}
	for _, opt := range existing {
		ro, ok := byName[opt.Name]
		if !ok {
			return false, nil
		}
		eq, err := optionEquals(opt, ro, enforceOrder, depth)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func optionEquals(existing *Option, candidate *RawOption, enforceOrder bool, depth int) (bool, error) {
	typ, err := ResolveOptionType(candidate.Type)
	if err != nil {
		return false, err
	}
	if typ != existing.Type || candidate.Name != existing.Name || candidate.Description != existing.Description {
		return false, nil
	}

	if !boolPtrEqual(effectiveRequired(typ, candidate.Required), existing.Required) {
		return false, nil
	}

	if (existing.Choices == nil) != (candidate.Choices == nil) {
		return false, nil
	}
	if len(existing.Choices) != len(candidate.Choices) {
		return false, nil
	}
	if existing.Choices != nil && !choicesEqual(existing.Choices, candidate.Choices, enforceOrder) {
		return false, nil
	}

	if existing.Options != nil {
		return optionsEqual(existing.Options, candidate.Options, enforceOrder, depth+1)
	}
	return true, nil
}

func choicesEqual(existing, candidate []Choice, enforceOrder bool) bool {
	if enforceOrder {
		for i, ch := range existing {
			if candidate[i].Name != ch.Name || !choiceValueEqual(candidate[i].Value, ch.Value) {
				return false
			}
		}
		return true
	}

	byName := make(map[string]Choice, len(candidate))
	for _, ch := range candidate {
		byName[ch.Name] = ch
	}
	for _, ch := range existing {
		got, ok := byName[ch.Name]
		if !ok || !choiceValueEqual(got.Value, ch.Value) {
			return false
		}
	}
	return true
}

// choiceValueEqual compares choice values across the representations JSON
// decoding and Go literals produce: all numeric kinds collapse to float64.
func choiceValueEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
