package hoconparser

import "fmt"

// ErrorKind classifies a failure the way spec.md §7 enumerates the error
// taxonomy: a small closed set of kinds, not a type hierarchy.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	MissingError
	WrongTypeError
	SubstitutionError
	CycleError
	IncludeError
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax"
	case MissingError:
		return "missing"
	case WrongTypeError:
		return "wrong-type"
	case SubstitutionError:
		return "substitution"
	case CycleError:
		return "cycle"
	case IncludeError:
		return "include"
	case IOError:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type the whole parser/resolver reports,
// mirroring the teacher's sqlparser.Error (kind + position + message)
// instead of a type hierarchy per value (spec.md §9 "exception-driven
// control flow" redesign note).
type Error struct {
	Kind    ErrorKind
	Pos     Pos
	Message string
}

func (e Error) Error() string {
	if e.Pos.File == "" && e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Kind, e.Message)
}

// ParseErrors aggregates every Error collected while parsing or resolving
// one document (syntax, substitution and cycle errors alike), the way teacher's SQLCodeParseErrors aggregates sqlparser.Error.
type ParseErrors struct {
	Errors []Error
}

func (p ParseErrors) Error() string {
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d hocon errors:\n", len(p.Errors))
	for _, e := range p.Errors {
		msg += "  " + e.Error() + "\n"
	}
	return msg
}
