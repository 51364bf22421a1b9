package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakenconfig/hocon/hoconparser"
)

func sampleValue() hoconparser.Value {
	inner := hoconparser.NewConfigTree(false)
	inner.Set("enabled", hoconparser.NewBool(true))
	inner.Set("retries", hoconparser.NewInt(3))

	root := hoconparser.NewConfigTree(true)
	root.Set("name", hoconparser.NewString("widget", false))
	root.Set("service", hoconparser.NewTree(inner))
	root.Set("tags", hoconparser.NewList([]hoconparser.Value{
		hoconparser.NewString("a", false),
		hoconparser.NewString("b", false),
	}))
	root.Set("empty", hoconparser.Null())
	return hoconparser.NewTree(root)
}

func TestToJSONPreservesKeyOrder(t *testing.T) {
	out := ToJSON(sampleValue(), "")
	assert.Equal(t, `{"name":"widget","service":{"enabled":true,"retries":3},"tags":["a","b"],"empty":null}`, out)
}

func TestToJSONEmptyContainers(t *testing.T) {
	root := hoconparser.NewConfigTree(true)
	out := ToJSON(hoconparser.NewTree(root), "")
	assert.Equal(t, "{}", out)

	out = ToJSON(hoconparser.NewList(nil), "")
	assert.Equal(t, "[]", out)
}

func TestToHOCONRendersAssignments(t *testing.T) {
	out := ToHOCON(sampleValue())
	assert.Contains(t, out, `"name" = "widget"`)
	assert.Contains(t, out, `"enabled" = true`)
	assert.Contains(t, out, `"retries" = 3`)
}

func TestToHOCONDurationPicksLargestUnit(t *testing.T) {
	root := hoconparser.NewConfigTree(true)
	root.Set("timeout", hoconparser.NewDuration(5*60*1000_000_000))
	out := ToHOCON(hoconparser.NewTree(root))
	assert.Contains(t, out, `"timeout" = 5m`)
}

func TestToYAMLPreservesKeyOrder(t *testing.T) {
	out, err := ToYAML(sampleValue())
	require.NoError(t, err)
	nameIdx := indexOf(out, "name:")
	serviceIdx := indexOf(out, "service:")
	tagsIdx := indexOf(out, "tags:")
	require.True(t, nameIdx >= 0 && serviceIdx >= 0 && tagsIdx >= 0)
	assert.Less(t, nameIdx, serviceIdx)
	assert.Less(t, serviceIdx, tagsIdx)
}

func TestToPropertiesDottedPathsAndListIndices(t *testing.T) {
	out := ToProperties(sampleValue())
	assert.Contains(t, out, "name=widget\n")
	assert.Contains(t, out, "service.enabled=true\n")
	assert.Contains(t, out, "service.retries=3\n")
	assert.Contains(t, out, "tags.0=a\n")
	assert.Contains(t, out, "tags.1=b\n")
	assert.NotContains(t, out, "empty=")
}

func TestToPropertiesEscapesSpecialChars(t *testing.T) {
	root := hoconparser.NewConfigTree(true)
	root.Set("a=b", hoconparser.NewString("x#y!z", false))
	out := ToProperties(hoconparser.NewTree(root))
	assert.Contains(t, out, `a\=b=x\#y\!z`)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
