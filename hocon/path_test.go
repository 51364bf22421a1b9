package hocon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStringCoercesScalars(t *testing.T) {
	cfg := mustParse(t, `a = 42`)
	v, err := cfg.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
}

func TestGetBoolWrongTypeError(t *testing.T) {
	cfg := mustParse(t, `a = 1`)
	_, err := cfg.GetBool("a")
	require.Error(t, err)
	var wt *WrongTypeError
	require.ErrorAs(t, err, &wt)
}

func TestGetMissingError(t *testing.T) {
	cfg := mustParse(t, `a = 1`)
	_, err := cfg.GetInt("nope")
	require.Error(t, err)
	var me *MissingError
	require.ErrorAs(t, err, &me)
}

func TestGetDurationFromLiteral(t *testing.T) {
	cfg := mustParse(t, `timeout = 5s`)
	d, err := cfg.GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestGetDurationDefaultsNumberToMilliseconds(t *testing.T) {
	cfg := mustParse(t, `timeout = 5`)
	d, err := cfg.GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, d)
}

func TestGetTreeNested(t *testing.T) {
	cfg := mustParse(t, `a { b { c = 1 } }`)
	sub, err := cfg.GetTree("a.b")
	require.NoError(t, err)
	v, err := sub.GetInt("c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestGetListCoercesNumericKeyedObject(t *testing.T) {
	cfg := mustParse(t, `a { 1 = y, 0 = x }`)
	lst, err := cfg.GetList("a")
	require.NoError(t, err)
	require.Len(t, lst, 2)
	assert.Equal(t, "x", lst[0].Str)
	assert.Equal(t, "y", lst[1].Str)
}

func TestHasReflectsPresence(t *testing.T) {
	cfg := mustParse(t, `a = 1`)
	assert.True(t, cfg.Has("a"))
	assert.False(t, cfg.Has("b"))
}

func TestWithFallbackPrefersSelf(t *testing.T) {
	primary := mustParse(t, `a = 1`)
	fallback := mustParse(t, `a = 2
b = 3`)
	merged := primary.WithFallback(fallback)
	a, err := merged.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)
	b, err := merged.GetInt("b")
	require.NoError(t, err)
	assert.Equal(t, int64(3), b)
}

func TestFromMappingLiftsPlainMap(t *testing.T) {
	cfg := FromMapping(map[string]any{"a": 1, "b": map[string]any{"c": "x"}})
	a, err := cfg.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)
	c, err := cfg.GetString("b.c")
	require.NoError(t, err)
	assert.Equal(t, "x", c)
}
