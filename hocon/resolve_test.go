package hocon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakenconfig/hocon/hoconparser"
)

func mustParse(t *testing.T, text string) *Config {
	t.Helper()
	cfg, err := ParseString(text, Options{})
	require.NoError(t, err)
	return cfg
}

func TestResolveSimpleSubstitution(t *testing.T) {
	cfg := mustParse(t, `
		a = 1
		b = ${a}
	`)
	v, err := cfg.GetInt("b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestResolveConcatenatesStringPieces(t *testing.T) {
	cfg := mustParse(t, `
		name = world
		greeting = "hello "${name}
	`)
	v, err := cfg.GetString("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
}

func TestResolveObjectMergeAcrossSubstitution(t *testing.T) {
	cfg := mustParse(t, `
		defaults { timeout = 30 }
		service = ${defaults} { name = api }
	`)
	name, err := cfg.GetString("service.name")
	require.NoError(t, err)
	assert.Equal(t, "api", name)
	timeout, err := cfg.GetInt("service.timeout")
	require.NoError(t, err)
	assert.Equal(t, int64(30), timeout)
}

func TestResolveOptionalMissingSubstitutionDeletesKey(t *testing.T) {
	cfg := mustParse(t, `a = ${?missing.path}`)
	assert.False(t, cfg.Has("a"))
}

func TestResolveOptionalMissingSubstitutionRestoresOverride(t *testing.T) {
	cfg := mustParse(t, `
		a = 5
		a = ${?missing.path}
	`)
	v, err := cfg.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestResolveMandatoryMissingSubstitutionIsError(t *testing.T) {
	_, err := ParseString(`a = ${missing.path}`, Options{})
	require.Error(t, err)
}

func TestResolveSubstitutionCycleIsError(t *testing.T) {
	_, err := ParseString(`
		a = ${b}
		b = ${a}
	`, Options{})
	require.Error(t, err)
}

func TestResolveSelfReferenceReadsPriorBinding(t *testing.T) {
	cfg := mustParse(t, `
		a = [1, 2]
		a = ${a} [3]
	`)
	lst, err := cfg.GetList("a")
	require.NoError(t, err)
	require.Len(t, lst, 3)
	assert.Equal(t, int64(1), lst[0].Int)
	assert.Equal(t, int64(3), lst[2].Int)
}

func TestResolvePlusEqualsAppendsToList(t *testing.T) {
	cfg := mustParse(t, `
		a = [1]
		a += 2
	`)
	lst, err := cfg.GetList("a")
	require.NoError(t, err)
	require.Len(t, lst, 2)
	assert.Equal(t, int64(2), lst[1].Int)
}

func TestResolvePlusEqualsOnUnsetKeyCreatesSingletonList(t *testing.T) {
	cfg := mustParse(t, `a += 1`)
	lst, err := cfg.GetList("a")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, int64(1), lst[0].Int)
}

func TestResolveEnvFallbackUsedWhenKeyAbsent(t *testing.T) {
	t.Setenv("HOCON_TEST_VALUE", "from-env")
	cfg := mustParse(t, `a = ${HOCON_TEST_VALUE}`)
	v, err := cfg.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}

func TestResolveUnresolvedOmitDropsKey(t *testing.T) {
	cfg, err := ParseString(`a = ${missing.path}`, Options{Unresolved: UnresolvedOmit})
	require.NoError(t, err)
	assert.False(t, cfg.Has("a"))
}

func TestResolveUnresolvedOmitRestoresOverride(t *testing.T) {
	cfg, err := ParseString(`
		a = 5
		a = ${missing.path}
	`, Options{Unresolved: UnresolvedOmit})
	require.NoError(t, err)
	v, err := cfg.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestResolveUnresolvedNullBindsNull(t *testing.T) {
	cfg, err := ParseString(`a = ${missing.path}`, Options{Unresolved: UnresolvedNull})
	require.NoError(t, err)
	v, err := cfg.GetValue("a")
	require.NoError(t, err)
	assert.Equal(t, hoconparser.KindNull, v.Kind)
}

func TestResolveUnresolvedStrPreservesLiteralSpelling(t *testing.T) {
	cfg, err := ParseString(`a = ${missing.path}`, Options{Unresolved: UnresolvedStr})
	require.NoError(t, err)
	v, err := cfg.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "${missing.path}", v)
}
