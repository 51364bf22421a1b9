package hoconparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSetPreservesInsertionOrder(t *testing.T) {
	tr := NewConfigTree(false)
	tr.Set("b", NewInt(2))
	tr.Set("a", NewInt(1))
	tr.Set("b", NewInt(20))
	assert.Equal(t, []string{"b", "a"}, tr.Keys())
	v, ok := tr.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(20), v.Int)
}

func TestTreeRootRecordsHistory(t *testing.T) {
	root := NewConfigTree(true)
	root.Set("a", NewInt(1))
	root.Set("a", NewInt(2))
	assert.Len(t, root.History["a"], 2)
	assert.Equal(t, int64(1), root.History["a"][0].Int)
	assert.Equal(t, int64(2), root.History["a"][1].Int)
}

func TestTreeDeleteRemovesKeyAndOrder(t *testing.T) {
	tr := NewConfigTree(false)
	tr.Set("a", NewInt(1))
	tr.Set("b", NewInt(2))
	tr.Delete("a")
	assert.False(t, tr.Has("a"))
	assert.Equal(t, []string{"b"}, tr.Keys())
}

func TestTreeCloneIsIndependent(t *testing.T) {
	tr := NewConfigTree(false)
	tr.Set("a", NewInt(1))
	clone := tr.Clone()
	clone.Set("a", NewInt(99))
	clone.Set("b", NewInt(2))

	v, _ := tr.Get("a")
	assert.Equal(t, int64(1), v.Int)
	assert.False(t, tr.Has("b"))
}

func TestTreeMergeIntoRecursesNestedObjects(t *testing.T) {
	dst := NewConfigTree(false)
	dstInner := NewConfigTree(false)
	dstInner.Set("timeout", NewInt(30))
	dstInner.Set("retries", NewInt(3))
	dst.Set("service", NewTree(dstInner))

	src := NewConfigTree(false)
	srcInner := NewConfigTree(false)
	srcInner.Set("timeout", NewInt(60))
	src.Set("service", NewTree(srcInner))

	dst.MergeInto(src)

	merged, ok := dst.Get("service")
	require.True(t, ok)
	timeout, _ := merged.Tree.Get("timeout")
	assert.Equal(t, int64(60), timeout.Int)
	retries, _ := merged.Tree.Get("retries")
	assert.Equal(t, int64(3), retries.Int)
}

func TestTreeMergeIntoScalarOverridesObject(t *testing.T) {
	dst := NewConfigTree(false)
	inner := NewConfigTree(false)
	inner.Set("x", NewInt(1))
	dst.Set("a", NewTree(inner))

	src := NewConfigTree(false)
	src.Set("a", NewInt(5))

	dst.MergeInto(src)
	v, _ := dst.Get("a")
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(5), v.Int)
}

func TestTreeMergeIntoAppendsNewKeysInSourceOrder(t *testing.T) {
	dst := NewConfigTree(false)
	dst.Set("a", NewInt(1))

	src := NewConfigTree(false)
	src.Set("c", NewInt(3))
	src.Set("b", NewInt(2))

	dst.MergeInto(src)
	assert.Equal(t, []string{"a", "c", "b"}, dst.Keys())
}

func TestTreeRecordMergeRehomesDeferredParent(t *testing.T) {
	srcRoot := NewConfigTree(true)
	run := &ConcatRun{Tokens: []Token{{Literal: NewInt(1)}}}
	deferred := NewDeferred(run)
	srcRoot.Set("a", deferred)
	run.ParentTree = srcRoot
	run.Key = "a"

	dst := NewConfigTree(false)
	dst.recordMerge("a", deferred)

	assert.Same(t, dst, run.ParentTree)
	assert.Equal(t, "a", run.Key)
}

func TestTreeEqualComparesValuesNotIdentity(t *testing.T) {
	a := NewConfigTree(false)
	a.Set("x", NewInt(1))
	b := NewConfigTree(false)
	b.Set("x", NewInt(1))
	assert.True(t, a.Equal(b))

	b.Set("x", NewInt(2))
	assert.False(t, a.Equal(b))
}

func TestMergeFunctionDoesNotMutateArguments(t *testing.T) {
	a := NewConfigTree(false)
	a.Set("x", NewInt(1))
	b := NewConfigTree(false)
	b.Set("x", NewInt(2))
	b.Set("y", NewInt(3))

	out := Merge(a, b)
	av, _ := a.Get("x")
	assert.Equal(t, int64(1), av.Int)

	ov, _ := out.Get("x")
	assert.Equal(t, int64(2), ov.Int)
	assert.True(t, out.Has("y"))
}

func TestAsMapRoundTripsNestedStructure(t *testing.T) {
	root := NewConfigTree(true)
	inner := NewConfigTree(false)
	inner.Set("enabled", NewBool(true))
	root.Set("service", NewTree(inner))
	root.Set("tags", NewList([]Value{NewString("a", false), NewString("b", false)}))

	out := root.AsMap()
	service, ok := out["service"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, service["enabled"])

	tags, ok := out["tags"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestFromMapLiftsNestedMaps(t *testing.T) {
	tr := FromMap(map[string]any{
		"name": "svc",
		"service": map[string]any{
			"timeout": int64(30),
		},
		"tags": []any{"a", "b"},
	})

	name, ok := tr.Get("name")
	require.True(t, ok)
	assert.Equal(t, "svc", name.Str)

	service, ok := tr.Get("service")
	require.True(t, ok)
	timeout, ok := service.Tree.Get("timeout")
	require.True(t, ok)
	assert.Equal(t, int64(30), timeout.Int)

	tags, ok := tr.Get("tags")
	require.True(t, ok)
	require.Len(t, tags.List, 2)
	assert.Equal(t, "a", tags.List[0].Str)
}
