package hocon

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/krakenconfig/hocon/hoconparser"
)

// Config is the resolved, queryable handle spec.md §6 describes as the
// library's public surface: a root ConfigTree plus the typed accessors
// layered on top of the generic path Lookup (spec.md §4.6).
type Config struct {
	Tree *hoconparser.ConfigTree
}

func wrap(t *hoconparser.ConfigTree) *Config { return &Config{Tree: t} }

func (c *Config) lookup(path string) hoconparser.LookupResult {
	return hoconparser.Lookup(c.Tree, hoconparser.SplitKeyPath(path))
}

// MissingError reports that path has no setting at all.
type MissingError struct{ Path string }

func (e *MissingError) Error() string { return fmt.Sprintf("no configuration setting found for %q", e.Path) }

// WrongTypeError reports that path resolved to a value of an incompatible
// kind for the getter that was called.
type WrongTypeError struct {
	Path     string
	Wanted   string
	Got      string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("%q is not a %s (found %s)", e.Path, e.Wanted, e.Got)
}

// GetValue returns the raw resolved Value at path, whatever kind it is —
// used by callers (like the CLI) that want to re-serialize an arbitrary
// subtree rather than read one typed scalar.
func (c *Config) GetValue(path string) (hoconparser.Value, error) {
	return c.get(path, "value")
}

func (c *Config) Has(path string) bool {
	return c.lookup(path).Status == hoconparser.LookupFound
}

// GetValueOr is GetValue, returning def instead of an error when path is
// missing or traverses through a non-object value (spec.md §6's
// `get(path, default?)`).
func (c *Config) GetValueOr(path string, def hoconparser.Value) hoconparser.Value {
	v, err := c.GetValue(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetString(path string) (string, error) {
	v, err := c.get(path, "string")
	if err != nil {
		return "", err
	}
	switch v.Kind {
	case hoconparser.KindString:
		return v.Str, nil
	case hoconparser.KindInt, hoconparser.KindReal, hoconparser.KindBool, hoconparser.KindDuration:
		return v.String(), nil
	default:
		return "", &WrongTypeError{Path: path, Wanted: "string", Got: v.Kind.String()}
	}
}

// GetStringOr is GetString, returning def instead of an error when path is
// missing or not coercible to a string.
func (c *Config) GetStringOr(path string, def string) string {
	v, err := c.GetString(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetBool(path string) (bool, error) {
	v, err := c.get(path, "boolean")
	if err != nil {
		return false, err
	}
	if v.Kind != hoconparser.KindBool {
		return false, &WrongTypeError{Path: path, Wanted: "boolean", Got: v.Kind.String()}
	}
	return v.Bool, nil
}

// GetBoolOr is GetBool, returning def instead of an error when path is
// missing or not a boolean.
func (c *Config) GetBoolOr(path string, def bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetInt(path string) (int64, error) {
	v, err := c.get(path, "number")
	if err != nil {
		return 0, err
	}
	if !v.IsNumber() {
		return 0, &WrongTypeError{Path: path, Wanted: "number", Got: v.Kind.String()}
	}
	return int64(v.NumberFloat()), nil
}

// GetIntOr is GetInt, returning def instead of an error when path is
// missing or not a number.
func (c *Config) GetIntOr(path string, def int64) int64 {
	v, err := c.GetInt(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetReal(path string) (float64, error) {
	v, err := c.get(path, "number")
	if err != nil {
		return 0, err
	}
	if !v.IsNumber() {
		return 0, &WrongTypeError{Path: path, Wanted: "number", Got: v.Kind.String()}
	}
	return v.NumberFloat(), nil
}

// GetRealOr is GetReal, returning def instead of an error when path is
// missing or not a number.
func (c *Config) GetRealOr(path string, def float64) float64 {
	v, err := c.GetReal(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, err := c.get(path, "duration")
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case hoconparser.KindDuration:
		return v.Duration, nil
	case hoconparser.KindInt:
		return time.Duration(v.Int) * time.Millisecond, nil
	case hoconparser.KindReal:
		return time.Duration(v.Real * float64(time.Millisecond)), nil
	default:
		return 0, &WrongTypeError{Path: path, Wanted: "duration", Got: v.Kind.String()}
	}
}

// GetDurationOr is GetDuration, returning def instead of an error when path
// is missing or not a duration.
func (c *Config) GetDurationOr(path string, def time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetTree(path string) (*Config, error) {
	v, err := c.get(path, "object")
	if err != nil {
		return nil, err
	}
	if v.Kind != hoconparser.KindTree {
		return nil, &WrongTypeError{Path: path, Wanted: "object", Got: v.Kind.String()}
	}
	return wrap(v.Tree), nil
}

// GetTreeOr is GetTree, returning def instead of an error when path is
// missing or not an object.
func (c *Config) GetTreeOr(path string, def *Config) *Config {
	v, err := c.GetTree(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetList(path string) ([]hoconparser.Value, error) {
	v, err := c.get(path, "list")
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case hoconparser.KindList:
		return v.List, nil
	case hoconparser.KindTree:
		if lst, ok := coerceTreeToList(v.Tree); ok {
			return lst, nil
		}
	}
	return nil, &WrongTypeError{Path: path, Wanted: "list", Got: v.Kind.String()}
}

// GetListOr is GetList, returning def instead of an error when path is
// missing or not a list.
func (c *Config) GetListOr(path string, def []hoconparser.Value) []hoconparser.Value {
	v, err := c.GetList(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Config) get(path string, wanted string) (hoconparser.Value, error) {
	res := c.lookup(path)
	switch res.Status {
	case hoconparser.LookupFound:
		return res.Value, nil
	case hoconparser.LookupWrongType:
		return hoconparser.Value{}, &WrongTypeError{Path: path, Wanted: wanted, Got: "non-object ancestor"}
	default:
		return hoconparser.Value{}, &MissingError{Path: path}
	}
}

// coerceTreeToList implements SPEC_FULL.md §9's open-question decision: an
// object whose keys are exactly "0".."n-1" (in any declaration order) is
// accepted wherever a list is expected, the way numerically-indexed HOCON
// objects are produced by merging list-shaped fragments across includes.
func coerceTreeToList(t *hoconparser.ConfigTree) ([]hoconparser.Value, bool) {
	keys := t.Keys()
	indices := make([]int, len(keys))
	for i, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, false
		}
		indices[i] = n
	}
	sort.Ints(indices)
	for i, n := range indices {
		if n != i {
			return nil, false
		}
	}
	out := make([]hoconparser.Value, len(keys))
	for _, k := range keys {
		n, _ := strconv.Atoi(k)
		v, _ := t.Get(k)
		out[n] = v
	}
	return out, true
}

// Pop implements spec.md §6's pop(path, default?): removes path from the
// tree, dotted-path aware, and returns the value that was there. Like Get,
// a missing segment is a MissingError and traversing through a non-object
// ancestor is a WrongTypeError.
func (c *Config) Pop(path string) (hoconparser.Value, error) {
	segs := hoconparser.SplitKeyPath(path)
	if len(segs) == 0 {
		return hoconparser.Value{}, &MissingError{Path: path}
	}
	cur := c.Tree
	for _, seg := range segs[:len(segs)-1] {
		v, ok := cur.Get(seg)
		if !ok {
			return hoconparser.Value{}, &MissingError{Path: path}
		}
		if v.Kind != hoconparser.KindTree {
			return hoconparser.Value{}, &WrongTypeError{Path: path, Wanted: "value", Got: v.Kind.String()}
		}
		cur = v.Tree
	}
	last := segs[len(segs)-1]
	v, ok := cur.Get(last)
	if !ok {
		return hoconparser.Value{}, &MissingError{Path: path}
	}
	cur.Delete(last)
	return v, nil
}

// PopOr is Pop, returning def instead of an error when path is missing or
// traverses through a non-object value.
func (c *Config) PopOr(path string, def hoconparser.Value) hoconparser.Value {
	v, err := c.Pop(path)
	if err != nil {
		return def
	}
	return v
}

// WithFallback implements spec.md §4.6's with_fallback: a new Config
// equal to c, with any path not set in c filled in from other. c's own
// bindings always win (hoconparser.Merge(other, self): self wins).
func (c *Config) WithFallback(other *Config) *Config {
	return wrap(hoconparser.Merge(other.Tree, c.Tree))
}

func (c *Config) AsMap() map[string]any { return c.Tree.AsMap() }
