package hoconparser

import "fmt"

// Options configures one parse invocation; a fresh Parser is built per call
// rather than reusing shared mutable state (spec.md §9 "global parser
// state" redesign note).
type Options struct {
	Loader   Loader
	BaseDir  string
	Warn     func(pos Pos, format string, args ...any)
	MaxDepth int // include-nesting guard; 0 means use the default.
}

const defaultMaxIncludeDepth = 500

// Parser builds a *ConfigTree out of one document's token stream, resolving
// and splicing `include` directives as it goes but leaving every
// substitution as a Deferred value for the resolver (package hocon) to
// settle afterwards.
type Parser struct {
	s      *Scanner
	opts   Options
	depth  int
	errors []Error
}

// ParseDocument scans text into a root *ConfigTree. Any syntax errors are
// returned as a ParseErrors; a non-nil tree is still returned on error so
// callers that want best-effort recovery can inspect what did parse.
func ParseDocument(text string, file FileRef, opts Options) (*ConfigTree, error) {
	return parseAt(text, file, opts, 0)
}

func parseAt(text string, file FileRef, opts Options, depth int) (*ConfigTree, error) {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = defaultMaxIncludeDepth
	}
	if depth > maxDepth {
		return nil, ParseErrors{Errors: []Error{{
			Kind:    IncludeError,
			Pos:     Pos{File: file},
			Message: "include nesting exceeds maximum depth (possible cycle)",
		}}}
	}
	p := &Parser{s: NewScanner(file, text), opts: opts, depth: depth}
	root := p.parseDocument()
	if len(p.errors) > 0 {
		return root, ParseErrors{Errors: p.errors}
	}
	return root, nil
}

func (p *Parser) errorf(pos Pos, format string, args ...any) {
	p.errors = append(p.errors, Error{Kind: SyntaxError, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(tt TokenType, context string) bool {
	got := p.s.NextNonSpaceIgnoreNewline()
	if got != tt {
		p.errorf(p.s.Start(), "%s: expected %s, got %s", context, tt, got)
		return false
	}
	return true
}

// parseDocument implements spec.md §4.1's `document` production. A bare
// top-level list is accommodated by stashing it under the empty-string key;
// the overwhelmingly common case, an object with or without the enclosing
// braces, is returned directly as the root tree.
func (p *Parser) parseDocument() *ConfigTree {
	root := NewConfigTree(true)
	saved := *p.s
	tt := p.s.NextNonSpaceIgnoreNewline()
	switch tt {
	case EOFToken:
		return root
	case LeftSquareToken:
		lst := p.parseListBody()
		root.Set("", lst)
		return root
	case LeftCurlyToken:
		return p.parseObjectBodyInto(root, true)
	default:
		*p.s = saved
		return p.parseObjectBodyInto(root, false)
	}
}

// parseObjectBody parses a nested object value (always brace-delimited: the
// leading '{' has already been consumed by the caller).
func (p *Parser) parseObjectBody() *ConfigTree {
	return p.parseObjectBodyInto(NewConfigTree(false), true)
}

// parseObjectBodyInto implements spec.md §4.1's `inside_object` production:
// a sequence of assignments and includes, separated by commas and/or
// newlines (both optional and interchangeable), terminated by '}' (if
// hadBraces) or EOF (top level only).
func (p *Parser) parseObjectBodyInto(result *ConfigTree, hadBraces bool) *ConfigTree {
	for {
		tt := p.s.NextNonSpaceIgnoreNewline()
		switch tt {
		case RightCurlyToken:
			if !hadBraces {
				p.errorf(p.s.Start(), "unexpected '}'")
			}
			return result
		case EOFToken:
			if hadBraces {
				p.errorf(p.s.Start(), "unexpected end of input, expected '}'")
			}
			return result
		case CommaToken:
			continue
		case IncludeToken:
			p.parseIncludeIntoObject(result)
		case QuotedStringToken, TripleQuotedStringToken, UnquotedStringToken,
			NumberToken, BoolToken, NullToken:
			p.parseAssignment(tt, result)
		default:
			p.errorf(p.s.Start(), "unexpected %s, expected a key or '}'", tt)
			return result
		}
	}
}

// parseKey implements the key half of spec.md §4.1's `assignment`
// production: one or more key-like tokens, joined by single spaces or by
// '.', forming a dotted path (spec.md §4.6).
func (p *Parser) parseKey(first TokenType) []string {
	var raw []byte
	write := func(tt TokenType) {
		switch tt {
		case QuotedStringToken:
			raw = append(raw, '"')
			raw = append(raw, escapeForKeyQuote(unquoteBody(p.s.Token()))...)
			raw = append(raw, '"')
		case TripleQuotedStringToken:
			raw = append(raw, '"')
			raw = append(raw, escapeForKeyQuote(tripleBody(p.s.Token()))...)
			raw = append(raw, '"')
		default:
			raw = append(raw, p.s.Token()...)
		}
	}
	write(first)

loop:
	for {
		saved := *p.s
		tt := p.s.NextToken()
		switch tt {
		case DotToken:
			raw = append(raw, '.')
			continue loop
		case UnquotedStringToken, QuotedStringToken, NumberToken, BoolToken, NullToken:
			write(tt)
			continue loop
		case WhitespaceToken:
			tt2 := p.s.NextToken()
			switch tt2 {
			case UnquotedStringToken, QuotedStringToken, NumberToken, BoolToken, NullToken:
				raw = append(raw, ' ')
				write(tt2)
				continue loop
			}
		}
		*p.s = saved
		break loop
	}
	return SplitKeyPath(string(raw))
}

// parseAssignment implements spec.md §4.1's `assignment` production and,
// jointly, the tree-building side of §4.3: it resolves the dotted path,
// creates intermediate objects, parses the separator and value, desugars
// `+=`, and wires the resulting value (or ConcatRun) into the tree.
func (p *Parser) parseAssignment(firstKeyTok TokenType, result *ConfigTree) {
	path := p.parseKey(firstKeyTok)

	saved := *p.s
	sep := p.s.NextNonSpaceIgnoreNewline()
	switch sep {
	case LeftCurlyToken:
		obj := p.parseObjectBody()
		p.assignPath(result, path, NewTree(obj))
		return
	case EqualsToken, ColonToken:
		run := p.parseConcatRun()
		p.assignPath(result, path, run)
	case PlusEqualsToken:
		run := p.parseConcatRun()
		p.assignPath(result, path, p.desugarPlusEquals(path, run))
	default:
		p.errorf(p.s.Start(), "expected ':', '=', '+=' or '{' after key %q, got %s", JoinKeyPath(path), sep)
		*p.s = saved
	}
}

// parseConcatRun implements spec.md §4.1's `concat_run` production: a
// maximal run of value tokens on one logical line, always returned as a
// Deferred value (even when it holds no substitution at all) so the
// resolver can apply the same concatenation pass uniformly (spec.md §4.5).
func (p *Parser) parseConcatRun() Value {
	var tokens []Token
	for {
		saved := *p.s
		tt := p.s.NextNonSpace()
		switch tt {
		case NewLineToken, CommaToken, RightCurlyToken, RightSquareToken, EOFToken:
			*p.s = saved
			return NewDeferred(&ConcatRun{Tokens: tokens, Pos: runPos(tokens)})
		case SubstitutionToken, OptionalSubstitutionToken:
			tokens = append(tokens, p.substitutionToken(tt))
		case LeftCurlyToken:
			obj := p.parseObjectBody()
			tokens = append(tokens, Token{Literal: NewTree(obj), Pos: p.s.Start()})
		case LeftSquareToken:
			tokens = append(tokens, Token{Literal: p.parseListBody(), Pos: p.s.Start()})
		case QuotedStringToken:
			tokens = append(tokens, Token{
				Literal:    NewString(unquoteBody(p.s.Token()), true),
				Quoted:     true,
				TrailingWS: p.s.TrailingWS(),
				Pos:        p.s.Start(),
			})
		case TripleQuotedStringToken:
			tokens = append(tokens, Token{
				Literal:    NewString(tripleBody(p.s.Token()), true),
				Quoted:     true,
				TrailingWS: p.s.TrailingWS(),
				Pos:        p.s.Start(),
			})
		case NumberToken:
			tokens = append(tokens, Token{Literal: parseNumberLiteral(p.s.Token()), Pos: p.s.Start()})
		case DurationToken:
			tokens = append(tokens, Token{Literal: parseDurationLiteral(p.s.Token()), Pos: p.s.Start()})
		case BoolToken:
			tokens = append(tokens, Token{Literal: NewBool(p.s.Keyword() == "true"), Pos: p.s.Start()})
		case NullToken:
			tokens = append(tokens, Token{Literal: Null(), Pos: p.s.Start()})
		case UnquotedStringToken:
			tokens = append(tokens, Token{Literal: NewString(p.s.Token(), false), Pos: p.s.Start()})
		default:
			p.errorf(p.s.Start(), "unexpected %s in value", tt)
			return NewDeferred(&ConcatRun{Tokens: tokens, Pos: runPos(tokens)})
		}
	}
}

func runPos(tokens []Token) Pos {
	if len(tokens) == 0 {
		return Pos{}
	}
	return tokens[0].Pos
}

func (p *Parser) substitutionToken(tt TokenType) Token {
	raw := p.s.Token()
	optional := tt == OptionalSubstitutionToken
	body := raw[2 : len(raw)-1]
	if optional {
		body = raw[3 : len(raw)-1]
	}
	return Token{
		Substitution: &Substitution{Path: SplitKeyPath(body), Optional: optional, Pos: p.s.Start()},
		TrailingWS:   p.s.TrailingWS(),
		Pos:          p.s.Start(),
	}
}

// parseListBody implements spec.md §4.1's `list`/`list_entry` productions.
func (p *Parser) parseListBody() Value {
	box := &ListBox{}
	for {
		saved := *p.s
		tt := p.s.NextNonSpaceIgnoreNewline()
		switch tt {
		case RightSquareToken:
			return NewList(box.Values)
		case CommaToken:
			continue
		case IncludeToken:
			p.parseIncludeIntoList(box)
			continue
		default:
			*p.s = saved
		}
		entry := p.parseConcatRun()
		idx := len(box.Values)
		box.Values = append(box.Values, entry)
		if entry.Kind == KindDeferred {
			entry.Deferred.ParentList = box
			entry.Deferred.Index = idx
		}
	}
}

// ensureParentTrees walks/creates the chain of intermediate objects named
// by a dotted key's leading segments (spec.md §4.3 step 1).
func (p *Parser) ensureParentTrees(root *ConfigTree, segs []string) *ConfigTree {
	cur := root
	for _, seg := range segs {
		if existing, ok := cur.Get(seg); ok && existing.Kind == KindTree {
			cur = existing.Tree
			continue
		}
		child := NewConfigTree(false)
		cur.Set(seg, NewTree(child))
		cur = child
	}
	return cur
}

// assignPath implements the remainder of spec.md §4.3: merge tree-into-tree
// (step 2), else replace, wiring a Deferred value's parent pointer and
// capturing whatever it overrides (step 3) so the resolver can restore it
// if an optional substitution resolves to nothing.
func (p *Parser) assignPath(root *ConfigTree, path []string, v Value) {
	cur := p.ensureParentTrees(root, path[:len(path)-1])
	lastKey := path[len(path)-1]

	existing, hadExisting := cur.Get(lastKey)
	if hadExisting && existing.Kind == KindTree && v.Kind == KindTree {
		existing.Tree.MergeInto(v.Tree)
		cur.Set(lastKey, NewTree(existing.Tree))
		return
	}

	if v.Kind == KindDeferred {
		v.Deferred.ParentTree = cur
		v.Deferred.Key = lastKey
		if hadExisting {
			ov := existing
			v.Deferred.Overridden = &ov
		}
	}
	cur.Set(lastKey, v)
}

// desugarPlusEquals implements spec.md §4.1's `+=` sugar: `k += v` becomes
// `k = ${?k} [v]`, a concat run whose first token is an optional
// self-reference to the path being assigned and whose second is the
// right-hand side, so a scalar rhs appends one element rather than
// concatenating into the prior list. When rhs is itself already a list
// literal (`k += [a, b]`), it is spliced as a peer token instead of being
// re-wrapped in a singleton list — wrapping it again would nest it
// (`[... , [a, b]]`) instead of letting it concatenate flat with the prior
// list, mirroring original_source/pyhocon/config_parser.py's
// `isinstance(value, list)` branch.
func (p *Parser) desugarPlusEquals(path []string, rhs Value) Value {
	selfRef := Token{Substitution: &Substitution{Path: append([]string(nil), path...), Optional: true}}

	if rhs.Kind == KindDeferred {
		if run := rhs.Deferred; len(run.Tokens) == 1 && run.Tokens[0].Substitution == nil && run.Tokens[0].Literal.Kind == KindList {
			return NewDeferred(&ConcatRun{Tokens: []Token{selfRef, run.Tokens[0]}, Pos: selfRef.Pos})
		}
	}

	box := &ListBox{Values: []Value{rhs}}
	if rhs.Kind == KindDeferred {
		rhs.Deferred.ParentList = box
		rhs.Deferred.Index = 0
	}
	listToken := Token{Literal: NewList(box.Values)}
	return NewDeferred(&ConcatRun{Tokens: []Token{selfRef, listToken}, Pos: selfRef.Pos})
}
