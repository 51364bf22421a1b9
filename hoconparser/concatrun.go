package hoconparser

// Substitution is a `${path}` or `${?path}` placeholder, recorded with
// enough context for the resolver to report a useful error location
// (spec.md §3).
type Substitution struct {
	Path       []string
	Optional   bool
	TrailingWS string
	Pos        Pos

	// ResolvedOverride, when non-nil, is the value the resolver's
	// self-reference fixup pass has already decided this substitution means
	// (spec.md §9): the key's own previous binding rather than whatever a
	// live tree lookup of Path would otherwise find (which, for a bare
	// self-reference, is always just this same run).
	ResolvedOverride *Value
}

func (s *Substitution) String() string {
	if s.Optional {
		return "${?" + JoinKeyPath(s.Path) + "}"
	}
	return "${" + JoinKeyPath(s.Path) + "}"
}

// Token is one element of a ConcatRun: either a concrete literal Value or
// a pending Substitution.
type Token struct {
	Substitution *Substitution
	Literal      Value
	Quoted       bool
	TrailingWS   string
	Pos          Pos
}

func (tk Token) IsSubstitution() bool { return tk.Substitution != nil }

// ListBox wraps a list's backing slice so a ConcatRun can hold a stable
// reference to "its container" even as sibling elements are appended or
// replaced — the list-side counterpart of a ConfigTree parent pointer.
type ListBox struct {
	Values []Value
}

// ConcatRun is an ordered, not-yet-reduced run of tokens awaiting
// resolution (spec.md §3's ConcatRun/ConcatToken, §9's "Deferred value").
//
// Rather than each ConcatRun/Substitution holding a raw pointer into
// whatever Value slot currently holds it (which a later merge could
// silently move or replace), a run's parent is addressed indirectly by
// (container, key-or-index): ParentTree+Key for an object slot,
// ParentList+Index for a list slot. The resolver always re-reads/re-writes
// through that indirection rather than caching the Value itself, so a run
// stays valid even if its ParentTree is merged with another tree in the
// meantime (spec.md §9 "cyclic parent/key back-pointers" redesign note).
type ConcatRun struct {
	Tokens []Token

	ParentTree *ConfigTree
	Key        string

	ParentList *ListBox
	Index      int

	// Overridden is the value bound to this slot immediately before this
	// run took over (nil if there was none); spec.md §4.4 step 3 restores
	// it when an optional substitution resolves to nothing.
	Overridden *Value

	Pos Pos
}

// WriteResult stores v in the run's own slot in its parent container and,
// when that container is a root tree, as the key's latest History entry.
func (r *ConcatRun) WriteResult(v Value) {
	if r.ParentTree != nil {
		r.ParentTree.setNoHistory(r.Key, v)
		if r.ParentTree.IsRoot {
			hist := r.ParentTree.History[r.Key]
			if len(hist) > 0 {
				hist[len(hist)-1] = v
			} else {
				r.ParentTree.History[r.Key] = []Value{v}
			}
		}
		return
	}
	if r.ParentList != nil && r.Index < len(r.ParentList.Values) {
		r.ParentList.Values[r.Index] = v
	}
}

// DeleteSlot removes the run's key entirely from its parent tree (used
// when an optional substitution resolves to nothing and there was no
// prior override, spec.md §4.4 step 3a). Meaningless for list parents
// (lists never drop elements this way: the spec only documents object-key
// omission).
func (r *ConcatRun) DeleteSlot() {
	if r.ParentTree != nil {
		r.ParentTree.Delete(r.Key)
	}
}
