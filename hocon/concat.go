package hocon

import (
	"strings"

	"github.com/krakenconfig/hocon/hoconparser"
)

// transformStatus reports how far transform got reducing a ConcatRun.
type transformStatus int

const (
	transformPending transformStatus = iota
	transformOK
	transformTypeMismatch
)

type category int

const (
	categoryString category = iota
	categoryList
	categoryTree
)

func classify(v hoconparser.Value) category {
	switch v.Kind {
	case hoconparser.KindList:
		return categoryList
	case hoconparser.KindTree:
		return categoryTree
	default:
		return categoryString
	}
}

// transform implements spec.md §4.5's value-concatenation engine: drop
// interstitial nulls, bail if a substitution token remains unresolved,
// otherwise require every remaining token to share one category (tree,
// list, or scalar/string) and reduce them into a single Value.
func transform(run *hoconparser.ConcatRun) (hoconparser.Value, transformStatus) {
	var filtered []hoconparser.Token
	for _, t := range run.Tokens {
		if t.Substitution == nil && t.Literal.Kind == hoconparser.KindNull {
			continue
		}
		filtered = append(filtered, t)
	}
	if len(filtered) == 0 {
		return hoconparser.Null(), transformOK
	}
	for _, t := range filtered {
		if t.Substitution != nil {
			return hoconparser.Value{}, transformPending
		}
	}

	kind := classify(filtered[0].Literal)
	for _, t := range filtered[1:] {
		if classify(t.Literal) != kind {
			return hoconparser.Value{}, transformTypeMismatch
		}
	}

	// A list or object literal built before resolution finished can still
	// hold Deferred values reachable through its elements/keys (spec.md
	// §9's "cyclic parent/key back-pointers" redesign note means nested
	// runs resolve by mutating those slots in place). Merging/concatenating
	// now would bake a stale copy into this run's own result, one that
	// never sees the nested run's eventual write. Wait for the fixpoint
	// loop to settle those first.
	if kind == categoryTree || kind == categoryList {
		for _, t := range filtered {
			if hasUnresolved(t.Literal) {
				return hoconparser.Value{}, transformPending
			}
		}
	}

	switch kind {
	case categoryTree:
		merged := hoconparser.NewConfigTree(false)
		for _, t := range filtered {
			merged.MergeInto(t.Literal.Tree)
		}
		return hoconparser.NewTree(merged), transformOK
	case categoryList:
		var all []hoconparser.Value
		for _, t := range filtered {
			all = append(all, t.Literal.List...)
		}
		return hoconparser.NewList(all), transformOK
	default:
		if len(filtered) == 1 && filtered[0].Literal.Kind != hoconparser.KindString {
			return filtered[0].Literal, transformOK
		}
		return concatStrings(filtered), transformOK
	}
}

// concatStrings joins scalar/string tokens, reproducing the exact
// whitespace recorded after quoted tokens and substitutions in the source
// (unquoted literal tokens record none) and trimming trailing horizontal
// whitespace when the run's final token was unquoted (spec.md §4.5).
func concatStrings(tokens []hoconparser.Token) hoconparser.Value {
	var b strings.Builder
	for i, t := range tokens {
		b.WriteString(renderScalar(t.Literal))
		if i < len(tokens)-1 {
			b.WriteString(t.TrailingWS)
		}
	}
	result := b.String()
	if !tokens[len(tokens)-1].Quoted {
		result = strings.TrimRight(result, " \t")
	}
	return hoconparser.NewString(result, false)
}

// renderScalar renders a literal Value's text for string concatenation: the
// raw content for strings (never re-quoted) and the plain literal spelling
// for everything else.
func renderScalar(v hoconparser.Value) string {
	if v.Kind == hoconparser.KindString {
		return v.Str
	}
	return v.String()
}

// hasUnresolved reports whether v still contains a Deferred value reachable
// through its immediate list elements or tree values (not recursing into
// nested lists/trees beyond one level of each, since a deeper Deferred
// settles its own enclosing list/tree first, which this same check catches
// the next time this run is retried).
func hasUnresolved(v hoconparser.Value) bool {
	switch v.Kind {
	case hoconparser.KindDeferred:
		return true
	case hoconparser.KindList:
		for _, e := range v.List {
			if e.Kind == hoconparser.KindDeferred {
				return true
			}
		}
	case hoconparser.KindTree:
		for _, k := range v.Tree.Keys() {
			e, _ := v.Tree.Get(k)
			if e.Kind == hoconparser.KindDeferred {
				return true
			}
		}
	}
	return false
}
