package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ConcatenationOrder(t *testing.T) {
	rs, err := Build(Sources{
		Keep:  []string{"K1", "K2"},
		Unset: []string{"U1"},
		Config: []PatternAction{
			{Pattern: "^GITHUB_", Action: Redact},
			{Pattern: "_URL$", Action: Keep},
		},
		Defaults: DefaultPatterns(),
	})
	require.NoError(t, err)

	type row struct {
		id      int
		origin  Origin
		pattern string
		action  Action
	}
	want := []row{
		{1, OriginKeep, "^K1$", Keep},
		{2, OriginKeep, "^K2$", Keep},
		{3, OriginUnset, "^U1$", Unset},
		{4, OriginConfig, "^GITHUB_", Redact},
		{5, OriginConfig, "_URL$", Keep},
		{6, OriginDefault, "SECRETS?$", Redact},
		{7, OriginDefault, "TOKENS?$", Redact},
		{8, OriginDefault, "KEYS?$", Redact},
		{9, OriginDefault, "PASSWORDS?$", Redact},
		{10, OriginDefault, "(_|-)PW$", Redact},
	}

	got := rs.Rules()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.id, got[i].ID, "rule %d id", i)
		assert.Equal(t, w.origin, got[i].Origin, "rule %d origin", i)
		assert.Equal(t, w.pattern, got[i].Pattern.String(), "rule %d pattern", i)
		assert.Equal(t, w.action, got[i].Action, "rule %d action", i)
	}
}

func TestBuild_NilDefaultsDisablesBuiltins(t *testing.T) {
	rs, err := Build(Sources{})
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
	assert.Equal(t, Keep, rs.Resolve("AWS_SECRET_ACCESS_KEY"))
}

func TestBuild_InvalidConfigPattern(t *testing.T) {
	_, err := Build(Sources{
		Config: []PatternAction{
			{Pattern: "^OK$", Action: Keep},
			{Pattern: "(broken", Action: Redact},
		},
		Defaults: DefaultPatterns(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	var ipe *InvalidPatternError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "(broken", ipe.Pattern)
	assert.Equal(t, OriginConfig, ipe.Origin)
	assert.Equal(t, 2, ipe.Index)
	assert.Contains(t, err.Error(), "config rule 2")
}

func TestBuild_InvalidDefaultPattern(t *testing.T) {
	_, err := Build(Sources{Defaults: []string{"SECRET$", "[z-a]"}})
	var ipe *InvalidPatternError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, OriginDefault, ipe.Origin)
}

func TestBuild_KeepAndUnsetSameNameKeepWins(t *testing.T) {
	rs, err := Build(Sources{
		Keep:     []string{"DUAL"},
		Unset:    []string{"DUAL"},
		Defaults: DefaultPatterns(),
	})
	require.NoError(t, err)

	r, ok := rs.Match("DUAL")
	require.True(t, ok)
	assert.Equal(t, OriginKeep, r.Origin)
	assert.Equal(t, Keep, rs.Resolve("DUAL"))
}

func TestBuild_DuplicateFlagsAreNotErrors(t *testing.T) {
	rs, err := Build(Sources{Keep: []string{"A", "A"}, Unset: []string{"B", "B"}})
	require.NoError(t, err)
	assert.Equal(t, 4, rs.Len())
}

func TestDefaultPatterns_ReturnsCopy(t *testing.T) {
	p := DefaultPatterns()
	p[0] = "MUTATED"
	assert.Equal(t, "SECRETS?$", DefaultPatterns()[0])
}
