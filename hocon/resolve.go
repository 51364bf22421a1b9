package hocon

import (
	"fmt"

	"github.com/krakenconfig/hocon/hoconparser"
)

// EnvLookup resolves a substitution path against an external fallback
// source (normally the process environment; package env.go) when nothing
// in the tree itself satisfies it.
type EnvLookup func(path []string) (hoconparser.Value, bool)

type subStatus int

const (
	subFound subStatus = iota
	subMissing
	subWrongType
	subPending
)

func resolveOne(root *hoconparser.ConfigTree, sub *hoconparser.Substitution, env EnvLookup) (hoconparser.Value, subStatus) {
	return resolveOneExcluding(root, sub, env, nil)
}

// resolveOneExcluding is resolveOne, but treats a lookup that bottoms out on
// selfRun itself (the `+=` desugaring's own self-reference, the first time a
// key is ever assigned, before any prior binding exists) as missing rather
// than pending — there is no earlier value to wait for.
func resolveOneExcluding(root *hoconparser.ConfigTree, sub *hoconparser.Substitution, env EnvLookup, selfRun *hoconparser.ConcatRun) (hoconparser.Value, subStatus) {
	if sub.ResolvedOverride != nil {
		return *sub.ResolvedOverride, subFound
	}
	res := hoconparser.Lookup(root, sub.Path)
	switch res.Status {
	case hoconparser.LookupFound:
		if res.Value.Kind == hoconparser.KindDeferred {
			if selfRun != nil && res.Value.Deferred == selfRun {
				break
			}
			return hoconparser.Value{}, subPending
		}
		return res.Value, subFound
	case hoconparser.LookupWrongType:
		return hoconparser.Value{}, subWrongType
	}
	if env != nil {
		if ev, ok := env(sub.Path); ok {
			return ev, subFound
		}
	}
	return hoconparser.Value{}, subMissing
}

// Resolve implements spec.md §4.4 end to end: the self-reference fixup
// pass, the substitution fixpoint loop (driving §4.5's transform at each
// step), and a final defensive sweep that forces away anything still
// Deferred once the loop can make no further progress. mode governs what
// happens to whatever is still unresolved at that point (spec.md §4.4's
// MANDATORY/OMIT/NULL/STR enum); UnresolvedMandatory matches the prior,
// always-error behavior.
func Resolve(root *hoconparser.ConfigTree, env EnvLookup, mode UnresolvedMode) error {
	selfReferenceFixup(root)

	pending := map[*hoconparser.ConcatRun]bool{}
	for _, r := range collectRuns(root) {
		pending[r] = true
	}

	var errs []hoconparser.Error
	for len(pending) > 0 {
		Logger.Debugf("hocon: resolve pass, %d runs pending", len(pending))
		progressed := false
		for run := range pending {
			if done, changed := resolveRun(root, run, env, &errs); done {
				delete(pending, run)
				progressed = progressed || changed
				continue
			} else if changed {
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for run := range pending {
		if mode == UnresolvedMandatory {
			errs = append(errs, reportStuck(root, run, env))
			continue
		}
		settleUnresolvedRun(run, mode)
	}

	forceRemainingDeferredToNull(root)

	if len(errs) > 0 {
		return hoconparser.ParseErrors{Errors: errs}
	}
	return nil
}

// settleUnresolvedRun disposes of a run the fixpoint loop could never
// finish, per the non-MANDATORY modes spec.md §4.4 documents:
//   - OMIT restores the run's prior overridden value if it had one,
//     otherwise removes its key entirely (list slots have no such removal,
//     so they fall back to null, same as NULL).
//   - NULL simply binds null.
//   - STR spells out every remaining substitution token as its literal
//     `${path}`/`${?path}` text and joins the run as a string, the same way
//     transform joins any other run of scalar tokens.
func settleUnresolvedRun(run *hoconparser.ConcatRun, mode UnresolvedMode) {
	switch mode {
	case UnresolvedOmit:
		if run.Overridden != nil {
			run.WriteResult(settledPrior(*run.Overridden))
			return
		}
		if run.ParentTree != nil {
			run.DeleteSlot()
			return
		}
		run.WriteResult(hoconparser.Null())
	case UnresolvedStr:
		run.WriteResult(renderUnresolvedAsString(run))
	default: // UnresolvedNull
		run.WriteResult(hoconparser.Null())
	}
}

// renderUnresolvedAsString implements STR mode: every literal token renders
// as concatStrings already would, and every still-pending substitution
// token renders as its own `${path}`/`${?path}` spelling, so the whole run
// joins into one string the way any other scalar ConcatRun would.
func renderUnresolvedAsString(run *hoconparser.ConcatRun) hoconparser.Value {
	materialized := &hoconparser.ConcatRun{Pos: run.Pos}
	for _, tok := range run.Tokens {
		if tok.Substitution == nil {
			materialized.Tokens = append(materialized.Tokens, tok)
			continue
		}
		materialized.Tokens = append(materialized.Tokens, hoconparser.Token{
			Literal:    hoconparser.NewString(tok.Substitution.String(), false),
			TrailingWS: tok.TrailingWS,
			Pos:        tok.Pos,
		})
	}
	v, status := transform(materialized)
	if status != transformOK {
		return hoconparser.Null()
	}
	return v
}

// resolveRun attempts to fully reduce one ConcatRun. It returns done=true
// once the run is settled (written, deleted or reported as an error) and
// changed=true if this call made any observable progress, so the fixpoint
// loop can detect a stall.
func resolveRun(root *hoconparser.ConfigTree, run *hoconparser.ConcatRun, env EnvLookup, errs *[]hoconparser.Error) (done, changed bool) {
	// The common `k = ${?ref}` shape gets spec.md §4.4 step 3's dedicated
	// restore-or-delete treatment instead of the general concatenation path.
	if len(run.Tokens) == 1 && run.Tokens[0].Substitution != nil {
		sub := run.Tokens[0].Substitution
		v, status := resolveOneExcluding(root, sub, env, run)
		switch status {
		case subFound:
			run.WriteResult(v)
			return true, true
		case subWrongType:
			*errs = append(*errs, hoconparser.Error{
				Kind: hoconparser.WrongTypeError, Pos: sub.Pos,
				Message: fmt.Sprintf("%s traverses through a non-object value", sub),
			})
			return true, true
		case subMissing:
			if sub.Optional {
				if run.Overridden != nil {
					run.WriteResult(settledPrior(*run.Overridden))
				} else {
					run.DeleteSlot()
				}
				return true, true
			}
			return false, false
		default: // subPending
			return false, false
		}
	}

	changed = resolveSubstitutionTokens(root, run, env, errs)
	v, status := transform(run)
	switch status {
	case transformOK:
		run.WriteResult(v)
		return true, true
	case transformTypeMismatch:
		*errs = append(*errs, hoconparser.Error{
			Kind: hoconparser.WrongTypeError, Pos: run.Pos,
			Message: "concatenation mixes incompatible value types",
		})
		return true, true
	default:
		return false, changed
	}
}

// settledPrior reduces an overridden value that is itself an unreduced run
// (every assignment parses into one) so restoring it writes a concrete value.
func settledPrior(prior hoconparser.Value) hoconparser.Value {
	if prior.Kind == hoconparser.KindDeferred {
		if v, ok := resolveSelfReferencingRun(prior.Deferred); ok {
			return v
		}
	}
	return prior
}

// resolveSubstitutionTokens resolves every settleable Substitution token in
// run in place, turning it into a Literal token. Returns whether it made
// any progress this call.
func resolveSubstitutionTokens(root *hoconparser.ConfigTree, run *hoconparser.ConcatRun, env EnvLookup, errs *[]hoconparser.Error) bool {
	changed := false
	for i := range run.Tokens {
		tok := run.Tokens[i]
		if tok.Substitution == nil {
			continue
		}
		sub := tok.Substitution
		v, status := resolveOneExcluding(root, sub, env, run)
		switch status {
		case subFound:
			run.Tokens[i] = hoconparser.Token{Literal: v, Quoted: tok.Quoted, TrailingWS: tok.TrailingWS, Pos: tok.Pos}
			changed = true
		case subWrongType:
			*errs = append(*errs, hoconparser.Error{
				Kind: hoconparser.WrongTypeError, Pos: sub.Pos,
				Message: fmt.Sprintf("%s traverses through a non-object value", sub),
			})
			run.Tokens[i] = hoconparser.Token{Literal: hoconparser.Null(), Pos: tok.Pos}
			changed = true
		case subMissing:
			if sub.Optional {
				run.Tokens[i] = hoconparser.Token{Literal: hoconparser.Null(), Pos: tok.Pos}
				changed = true
			}
			// mandatory and missing: leave as-is; reported if still stuck.
		case subPending:
			// another run still owns this path; try again next pass.
		}
	}
	return changed
}

func reportStuck(root *hoconparser.ConfigTree, run *hoconparser.ConcatRun, env EnvLookup) hoconparser.Error {
	for _, tok := range run.Tokens {
		if tok.Substitution == nil {
			continue
		}
		_, status := resolveOne(root, tok.Substitution, env)
		if status == subPending {
			return hoconparser.Error{
				Kind: hoconparser.CycleError, Pos: run.Pos,
				Message: fmt.Sprintf("substitution cycle involving %s", tok.Substitution),
			}
		}
		return hoconparser.Error{
			Kind: hoconparser.SubstitutionError, Pos: tok.Substitution.Pos,
			Message: fmt.Sprintf("no setting or environment variable found for %s", tok.Substitution),
		}
	}
	return hoconparser.Error{Kind: hoconparser.SubstitutionError, Pos: run.Pos, Message: "unresolved substitution"}
}

func forceRemainingDeferredToNull(root *hoconparser.ConfigTree) {
	for _, k := range root.Keys() {
		v, _ := root.Get(k)
		root.Set(k, forceValue(v))
	}
}

func forceValue(v hoconparser.Value) hoconparser.Value {
	switch v.Kind {
	case hoconparser.KindDeferred:
		return hoconparser.Null()
	case hoconparser.KindTree:
		forceRemainingDeferredToNull(v.Tree)
		return v
	case hoconparser.KindList:
		for i, e := range v.List {
			v.List[i] = forceValue(e)
		}
		return v
	default:
		return v
	}
}

// collectRuns gathers every ConcatRun reachable from root, including ones
// still dangling inside an unresolved run's own token literals (a nested
// object/list value produced by the parser before its enclosing run has
// been spliced into the tree).
func collectRuns(root *hoconparser.ConfigTree) []*hoconparser.ConcatRun {
	seen := map[*hoconparser.ConcatRun]bool{}
	var out []*hoconparser.ConcatRun
	var walk func(v hoconparser.Value)
	walk = func(v hoconparser.Value) {
		switch v.Kind {
		case hoconparser.KindDeferred:
			if seen[v.Deferred] {
				return
			}
			seen[v.Deferred] = true
			out = append(out, v.Deferred)
			for _, tok := range v.Deferred.Tokens {
				if tok.Substitution == nil {
					walk(tok.Literal)
				}
			}
		case hoconparser.KindTree:
			for _, k := range v.Tree.Keys() {
				vv, _ := v.Tree.Get(k)
				walk(vv)
			}
		case hoconparser.KindList:
			for _, e := range v.List {
				walk(e)
			}
		}
	}
	walk(hoconparser.NewTree(root))
	return out
}

// selfReferenceFixup implements spec.md §9's self-reference support: when a
// root key was assigned more than once, a later assignment's reference to
// its own key means "the value that key held immediately before this
// assignment", not the final value (which would just be itself). Each
// entry's resolved value feeds the next entry's patch, so a chain of 3+
// reassignments (x=[1,2]; x=${x}[3,4]; x=${x}[5,6]; ...) sees every
// predecessor's literal value in turn, not just the first.
func selfReferenceFixup(root *hoconparser.ConfigTree) {
	for key, hist := range root.History {
		if len(hist) < 2 {
			continue
		}
		resolved := make([]hoconparser.Value, len(hist))
		for i, entry := range hist {
			if entry.Kind != hoconparser.KindDeferred {
				resolved[i] = entry
				continue
			}
			if i > 0 {
				patchSelfReference(entry.Deferred, key, &resolved[i-1])
			}
			if v, ok := resolveSelfReferencingRun(entry.Deferred); ok {
				resolved[i] = v
			} else {
				resolved[i] = hoconparser.Null()
			}
		}
	}
}

// resolveSelfReferencingRun runs transform over run after materializing any
// token whose Substitution already carries a ResolvedOverride (set by
// patchSelfReference) into a plain Literal token. transform itself only
// ever consults Token.Substitution, never ResolvedOverride, so without this
// step it bails the instant it sees a still-Substitution token even though
// patchSelfReference already resolved it — which is exactly what collapsed
// every entry past the first reassignment to Null before this fix. List
// literals get the same treatment one level down: each element is a run of
// its own, reduced here into a fresh list so transform sees plain values.
func resolveSelfReferencingRun(run *hoconparser.ConcatRun) (hoconparser.Value, bool) {
	materialized := &hoconparser.ConcatRun{Pos: run.Pos}
	for _, tok := range run.Tokens {
		if tok.Substitution != nil && tok.Substitution.ResolvedOverride != nil {
			materialized.Tokens = append(materialized.Tokens, hoconparser.Token{
				Literal:    *tok.Substitution.ResolvedOverride,
				Quoted:     tok.Quoted,
				TrailingWS: tok.TrailingWS,
				Pos:        tok.Pos,
			})
			continue
		}
		if tok.Substitution == nil && tok.Literal.Kind == hoconparser.KindList {
			elems := make([]hoconparser.Value, len(tok.Literal.List))
			for i, e := range tok.Literal.List {
				elems[i] = e
				if e.Kind == hoconparser.KindDeferred {
					if v, ok := resolveSelfReferencingRun(e.Deferred); ok {
						elems[i] = v
					}
				}
			}
			tok.Literal = hoconparser.NewList(elems)
		}
		materialized.Tokens = append(materialized.Tokens, tok)
	}
	v, status := transform(materialized)
	return v, status == transformOK
}

func patchSelfReference(run *hoconparser.ConcatRun, key string, prior *hoconparser.Value) {
	for _, tok := range run.Tokens {
		if tok.Substitution == nil {
			continue
		}
		if len(tok.Substitution.Path) == 1 && tok.Substitution.Path[0] == key {
			tok.Substitution.ResolvedOverride = prior
		}
	}
}
