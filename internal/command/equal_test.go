package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pingRaw() *RawCommand {
	return &RawCommand{
		Name:        "ping",
		Description: "Pings",
		Type:        TypeName("CHAT_INPUT"),
		Options:     []*RawOption{},
	}
}

func mustCommand(t *testing.T, raw *RawCommand) *Command {
	t.Helper()
	c, err := New(raw, false)
	require.NoError(t, err)
	return c
}

func mustEqual(t *testing.T, c *Command, raw *RawCommand, enforceOrder bool) bool {
	t.Helper()
	eq, err := c.Equals(raw, enforceOrder)
	require.NoError(t, err)
	return eq
}

func TestEqualsReflexive(t *testing.T) {
	raw := &RawCommand{
		Name:        "task",
		Description: "Manage tasks",
		Type:        TypeCode(1),
		Options: []*RawOption{
			{Type: TypeCode(1), Name: "add", Description: "Add a task", Options: []*RawOption{
				{Type: TypeCode(3), Name: "text", Description: "Task text", Required: boolPtr(true)},
			}},
			{Type: TypeCode(1), Name: "list", Description: "List tasks"},
		},
	}
	c := mustCommand(t, raw)
	assert.True(t, mustEqual(t, c, raw, true))
	assert.True(t, mustEqual(t, c, raw, false))
}

func TestEqualsOmittedTypeAndPermission(t *testing.T) {
	c := mustCommand(t, pingRaw())
	// Raw candidate with type and default permission omitted entirely.
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", Description: "Pings"}, false))
}

func TestEqualsIDMismatch(t *testing.T) {
	c := mustCommand(t, &RawCommand{ID: "123", Name: "ping", Description: "Pings"})
	assert.False(t, mustEqual(t, c, &RawCommand{ID: "456", Name: "ping", Description: "Pings"}, false))
	// No candidate ID means the check is skipped.
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", Description: "Pings"}, false))
}

func TestEqualsScalarMismatches(t *testing.T) {
	c := mustCommand(t, pingRaw())

	assert.False(t, mustEqual(t, c, &RawCommand{Name: "pong", Description: "Pings"}, false))
	assert.False(t, mustEqual(t, c, &RawCommand{Name: "ping", Description: "Pongs"}, false))
	assert.False(t, mustEqual(t, c, &RawCommand{Name: "ping", Description: "Pings", Type: TypeName("MESSAGE")}, false))
	// Empty description on the candidate means "unspecified", not a mismatch.
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping"}, false))
}

func TestEqualsInvalidCandidateType(t *testing.T) {
	c := mustCommand(t, pingRaw())
	_, err := c.Equals(&RawCommand{Name: "ping", Type: TypeName("NOPE")}, false)
	assert.ErrorIs(t, err, ErrInvalidCommandType)
}

func TestEqualsDefaultPermissionFallback(t *testing.T) {
	raw := pingRaw()
	raw.DefaultPermissionWire = boolPtr(false)
	c := mustCommand(t, raw)
	require.False(t, c.DefaultPermission)

	// Candidate omits both spellings, so it means true and differs.
	assert.False(t, mustEqual(t, c, &RawCommand{Name: "ping", Description: "Pings"}, false))
	// Either spelling on the candidate can supply the matching false.
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", DefaultPermissionWire: boolPtr(false)}, false))
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", DefaultPermission: boolPtr(false)}, false))
}

func TestEqualsOptionCountShortCircuit(t *testing.T) {
	c := mustCommand(t, &RawCommand{Name: "roll", Options: []*RawOption{
		{Type: TypeCode(4), Name: "sides", Description: "Die sides"},
		{Type: TypeCode(4), Name: "count", Description: "How many"},
	}})
	assert.False(t, mustEqual(t, c, &RawCommand{Name: "roll", Options: []*RawOption{
		{Type: TypeCode(4), Name: "sides", Description: "Die sides"},
	}}, false))
}

// At the command level an absent and an empty options list are the same thing.
func TestEqualsAbsentVersusEmptyOptions(t *testing.T) {
	c := mustCommand(t, pingRaw())
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", Options: nil}, false))
	assert.True(t, mustEqual(t, c, &RawCommand{Name: "ping", Options: []*RawOption{}}, false))
}

func TestOptionsEqualOrderPolicy(t *testing.T) {
	a := &RawOption{Type: TypeCode(3), Name: "a", Description: "A"}
	b := &RawOption{Type: TypeCode(3), Name: "b", Description: "B"}

	existing := make([]*Option, 0, 2)
	for _, ro := range []*RawOption{a, b} {
		o, err := NormalizeOption(ro, false)
		require.NoError(t, err)
		existing = append(existing, o)
	}
	swapped := []*RawOption{b, a}

	eq, err := OptionsEqual(existing, swapped, true)
	require.NoError(t, err)
	assert.False(t, eq, "swapped order must fail under enforceOrder")

	eq, err = OptionsEqual(existing, swapped, false)
	require.NoError(t, err)
	assert.True(t, eq, "swapped order must pass order-insensitively")
}

func TestOptionsEqualMissingName(t *testing.T) {
	o, err := NormalizeOption(&RawOption{Type: TypeCode(3), Name: "a", Description: "A"}, false)
	require.NoError(t, err)

	eq, err := OptionsEqual([]*Option{o}, []*RawOption{{Type: TypeCode(3), Name: "z", Description: "A"}}, false)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestOptionEqualsRequiredSemantics(t *testing.T) {
	sub, err := NormalizeOption(&RawOption{Type: TypeCode(1), Name: "go", Description: "Go"}, false)
	require.NoError(t, err)
	require.Nil(t, sub.Required)

	// Absent required on a subcommand candidate matches the absent canonical one.
	eq, err := OptionsEqual([]*Option{sub}, []*RawOption{{Type: TypeCode(1), Name: "go", Description: "Go"}}, false)
	require.NoError(t, err)
	assert.True(t, eq)

	// Explicit false is a different state than absent.
	eq, err = OptionsEqual([]*Option{sub}, []*RawOption{{Type: TypeCode(1), Name: "go", Description: "Go", Required: boolPtr(false)}}, false)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestChoiceOrderPolicy(t *testing.T) {
	existing, err := NormalizeOption(&RawOption{
		Type: TypeCode(4), Name: "n", Description: "N",
		Choices: []Choice{{Name: "x", Value: 1}, {Name: "y", Value: 2}},
	}, false)
	require.NoError(t, err)

	swapped := &RawOption{
		Type: TypeCode(4), Name: "n", Description: "N",
		Choices: []Choice{{Name: "y", Value: 2}, {Name: "x", Value: 1}},
	}

	eq, err := OptionsEqual([]*Option{existing}, []*RawOption{swapped}, false)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = OptionsEqual([]*Option{existing}, []*RawOption{swapped}, true)
	require.NoError(t, err)
	assert.False(t, eq)
}

// Unlike command options, an absent choice list is not the same as an empty one.
func TestChoicesAbsentVersusEmpty(t *testing.T) {
	existing, err := NormalizeOption(&RawOption{Type: TypeCode(3), Name: "s", Description: "S", Choices: []Choice{}}, false)
	require.NoError(t, err)

	eq, err := OptionsEqual([]*Option{existing}, []*RawOption{{Type: TypeCode(3), Name: "s", Description: "S"}}, false)
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = OptionsEqual([]*Option{existing}, []*RawOption{{Type: TypeCode(3), Name: "s", Description: "S", Choices: []Choice{}}}, false)
	require.NoError(t, err)
	assert.True(t, eq)
}

// Authored int choice values equal their JSON-decoded float64 counterparts.
func TestChoiceValueNumericCoercion(t *testing.T) {
	existing, err := NormalizeOption(&RawOption{
		Type: TypeCode(4), Name: "n", Description: "N",
		Choices: []Choice{{Name: "one", Value: 1}},
	}, false)
	require.NoError(t, err)

	eq, err := OptionsEqual([]*Option{existing}, []*RawOption{{
		Type: TypeCode(4), Name: "n", Description: "N",
		Choices: []Choice{{Name: "one", Value: float64(1)}},
	}}, false)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = OptionsEqual([]*Option{existing}, []*RawOption{{
		Type: TypeCode(4), Name: "n", Description: "N",
		Choices: []Choice{{Name: "one", Value: float64(2)}},
	}}, false)
	require.NoError(t, err)
	assert.False(t, eq)
}

// The ordering policy is threaded into nested subcommand trees.
func TestEqualsNestedOrderPolicy(t *testing.T) {
	c := mustCommand(t, &RawCommand{Name: "admin", Options: []*RawOption{
		{Type: TypeCode(1), Name: "ban", Description: "Ban", Options: []*RawOption{
			{Type: TypeCode(6), Name: "target", Description: "Who", Required: boolPtr(true)},
			{Type: TypeCode(3), Name: "reason", Description: "Why"},
		}},
	}})

	candidate := &RawCommand{Name: "admin", Options: []*RawOption{
		{Type: TypeCode(1), Name: "ban", Description: "Ban", Options: []*RawOption{
			{Type: TypeCode(3), Name: "reason", Description: "Why"},
			{Type: TypeCode(6), Name: "target", Description: "Who", Required: boolPtr(true)},
		}},
	}}

	assert.True(t, mustEqual(t, c, candidate, false))
	assert.False(t, mustEqual(t, c, candidate, true))
}

func TestEqualsInvalidNestedOptionType(t *testing.T) {
	c := mustCommand(t, &RawCommand{Name: "x", Options: []*RawOption{
		{Type: TypeCode(3), Name: "s", Description: "S"},
	}})
	_, err := c.Equals(&RawCommand{Name: "x", Options: []*RawOption{
		{Type: TypeName("WAT"), Name: "s", Description: "S"},
	}}, false)
	assert.ErrorIs(t, err, ErrInvalidOptionType)
}
