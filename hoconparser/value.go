package hoconparser

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tags a Value's active field, implementing the data model of
// spec.md §3 as a single tagged union rather than dynamic dispatch over
// several duck-typed classes (spec.md §9 redesign note).
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindDuration
	KindList
	KindTree
	KindDeferred
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "number"
	case KindReal:
		return "number"
	case KindString:
		return "string"
	case KindDuration:
		return "duration"
	case KindList:
		return "list"
	case KindTree:
		return "object"
	case KindDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Value is the single tagged variant every leaf, list element and tree
// child is represented as.
type Value struct {
	Kind Kind

	Bool     bool
	Int      int64
	Real     float64
	Str      string
	Duration time.Duration
	List     []Value
	Tree     *ConfigTree
	Deferred *ConcatRun

	// Quoted records whether a scalar string value originated from a
	// quoted token; used by the HOCON serializer and by concatenation's
	// trailing-whitespace rule (spec.md §4.5).
	Quoted bool
}

func Null() Value                  { return Value{Kind: KindNull} }
func NewBool(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func NewInt(i int64) Value         { return Value{Kind: KindInt, Int: i} }
func NewReal(f float64) Value      { return Value{Kind: KindReal, Real: f} }
func NewDuration(d time.Duration) Value { return Value{Kind: KindDuration, Duration: d} }

func NewString(s string, quoted bool) Value {
	return Value{Kind: KindString, Str: s, Quoted: quoted}
}

func NewList(items []Value) Value { return Value{Kind: KindList, List: items} }
func NewTree(t *ConfigTree) Value  { return Value{Kind: KindTree, Tree: t} }
func NewDeferred(run *ConcatRun) Value { return Value{Kind: KindDeferred, Deferred: run} }

func (v Value) IsNull() bool     { return v.Kind == KindNull }
func (v Value) IsDeferred() bool { return v.Kind == KindDeferred }
func (v Value) IsNumber() bool   { return v.Kind == KindInt || v.Kind == KindReal }

// NumberFloat returns the numeric value as a float64 regardless of whether
// it's stored as Int or Real.
func (v Value) NumberFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Real
}

// String renders a Value for debugging/HOCON-ish display; not used for the
// canonical serializers (those live in package serialize) but reused by
// alecthomas/repr-based debug dumps (SPEC_FULL.md §3).
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindString:
		if v.Quoted {
			return strconv.Quote(v.Str)
		}
		return v.Str
	case KindDuration:
		return FormatDuration(v.Duration)
	case KindList:
		s := "["
		for i, e := range v.List {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case KindTree:
		return v.Tree.String()
	case KindDeferred:
		return fmt.Sprintf("<deferred %d tokens>", len(v.Deferred.Tokens))
	default:
		return "?"
	}
}

// WithoutPos returns a copy of v with the Quoted flag cleared on every
// string, recursing through lists and trees; Deferred values are returned
// unchanged. It mirrors the teacher's Create.WithoutPos/Document.WithoutPos pattern used to make
// test fixtures diffable (sqlparser/dom.go).
func (v Value) WithoutPos() Value {
	switch v.Kind {
	case KindList:
		out := make([]Value, len(v.List))
		for i, e := range v.List {
			out[i] = e.WithoutPos()
		}
		return Value{Kind: KindList, List: out}
	case KindTree:
		return NewTree(v.Tree.WithoutPos())
	case KindString:
		return Value{Kind: KindString, Str: v.Str}
	default:
		return v
	}
}

// Equal performs a deep, position-insensitive comparison. Two values
// compare equal if WithoutPos renderings match structurally.
func (v Value) Equal(other Value) bool {
	a, b := v.WithoutPos(), other.WithoutPos()
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindReal:
		return a.Real == b.Real
	case KindString:
		return a.Str == b.Str
	case KindDuration:
		return a.Duration == b.Duration
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !a.List[i].Equal(b.List[i]) {
				return false
			}
		}
		return true
	case KindTree:
		return a.Tree.Equal(b.Tree)
	default:
		return false
	}
}
