package hoconparser

import "fmt"

// parseIncludeIntoObject implements spec.md §4.2's splice rule for objects:
// each loaded source is parsed independently and merged key-by-key, in
// declared order, at the point the `include` directive appeared.
func (p *Parser) parseIncludeIntoObject(container *ConfigTree) {
	spec := p.parseIncludeSpec()
	sources, err := p.loadInclude(spec)
	if err != nil {
		p.reportIncludeFailure(spec, err)
		return
	}
	for _, src := range sources {
		sub, subErr := parseAt(src.Text, src.File, p.childOptions(src.BaseDir), p.depth+1)
		if subErr != nil {
			p.errors = append(p.errors, flattenParseErrors(subErr)...)
		}
		if sub != nil {
			container.MergeInto(sub)
		}
	}
}

// parseIncludeIntoList implements the list-side splice rule: each loaded
// source's top-level value is expected to itself have been a list (or is
// otherwise appended as a single nested object), extending box in place
// (spec.md §4.2 "list items extend the list").
func (p *Parser) parseIncludeIntoList(box *ListBox) {
	spec := p.parseIncludeSpec()
	sources, err := p.loadInclude(spec)
	if err != nil {
		p.reportIncludeFailure(spec, err)
		return
	}
	for _, src := range sources {
		sub, subErr := parseAt(src.Text, src.File, p.childOptions(src.BaseDir), p.depth+1)
		if subErr != nil {
			p.errors = append(p.errors, flattenParseErrors(subErr)...)
		}
		if sub == nil {
			continue
		}
		if lv, ok := sub.Get(""); ok && lv.Kind == KindList {
			base := len(box.Values)
			box.Values = append(box.Values, lv.List...)
			for i := base; i < len(box.Values); i++ {
				if box.Values[i].Kind == KindDeferred {
					box.Values[i].Deferred.ParentList = box
					box.Values[i].Deferred.Index = i
				}
			}
			continue
		}
		box.Values = append(box.Values, NewTree(sub))
	}
}

func (p *Parser) childOptions(baseDir string) Options {
	opts := p.opts
	opts.BaseDir = baseDir
	return opts
}

func (p *Parser) reportIncludeFailure(spec IncludeSpec, err error) {
	if spec.Required {
		p.errors = append(p.errors, Error{Kind: IncludeError, Pos: spec.Pos, Message: err.Error()})
		return
	}
	if p.opts.Warn != nil {
		p.opts.Warn(spec.Pos, "skipping optional include %q: %v", spec.Target, err)
	}
}

func flattenParseErrors(err error) []Error {
	if pe, ok := err.(ParseErrors); ok {
		return pe.Errors
	}
	return []Error{{Kind: IncludeError, Message: err.Error()}}
}

func (p *Parser) loadInclude(spec IncludeSpec) ([]LoadedSource, error) {
	if p.opts.Loader == nil {
		return nil, fmt.Errorf("no Loader configured for include %q", spec.Target)
	}
	return p.opts.Loader.Load(spec, p.opts.BaseDir)
}

// parseIncludeSpec implements spec.md §4.2's `include`/`include_expr`
// productions. The leading `include` keyword token has already been
// consumed by the caller.
func (p *Parser) parseIncludeSpec() IncludeSpec {
	pos := p.s.Start()
	tt := p.s.NextNonSpaceIgnoreNewline()
	required := false
	if tt == RequiredToken {
		required = true
		if !p.expect(LeftParenToken, "include required(...)") {
			return IncludeSpec{Required: true, Pos: pos}
		}
		tt = p.s.NextNonSpaceIgnoreNewline()
	}
	spec := p.parseIncludeExpr(tt)
	spec.Required = required
	spec.Pos = pos
	if required {
		p.expect(RightParenToken, "include required(...)")
	}
	return spec
}

func (p *Parser) parseIncludeExpr(tt TokenType) IncludeSpec {
	switch tt {
	case UrlToken, FileToken, PackageToken:
		kind := IncludeFile
		switch tt {
		case UrlToken:
			kind = IncludeURL
		case PackageToken:
			kind = IncludePackage
		}
		if !p.expect(LeftParenToken, "include "+tt.String()) {
			return IncludeSpec{Kind: kind}
		}
		strTok := p.s.NextNonSpaceIgnoreNewline()
		target := p.stringTokenValue(strTok)
		p.expect(RightParenToken, "include "+tt.String())
		return IncludeSpec{Kind: kind, Target: target}
	case QuotedStringToken, TripleQuotedStringToken:
		target := p.stringTokenValue(tt)
		return IncludeSpec{Kind: classifyBareInclude(target), Target: target}
	default:
		p.errorf(p.s.Start(), "expected an include target, got %s", tt)
		return IncludeSpec{}
	}
}

func (p *Parser) stringTokenValue(tt TokenType) string {
	switch tt {
	case QuotedStringToken:
		return unquoteBody(p.s.Token())
	case TripleQuotedStringToken:
		return tripleBody(p.s.Token())
	default:
		p.errorf(p.s.Start(), "expected a quoted string, got %s", tt)
		return ""
	}
}
