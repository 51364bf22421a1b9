package hocon

import (
	"os"
	"strings"

	"github.com/krakenconfig/hocon/hoconparser"
)

// EnvFallback resolves a substitution path against the process environment:
// a case-sensitive exact match on the dotted path joined with '.'
// (SPEC_FULL.md §8, supplementing spec.md §6's "falls back to environment
// variables" with pyhocon's exact-match rule rather than guessing at
// case-folding or '_'-for-'.' substitution).
func EnvFallback(path []string) (hoconparser.Value, bool) {
	name := strings.Join(path, ".")
	if v, ok := os.LookupEnv(name); ok {
		return hoconparser.NewString(v, true), true
	}
	return hoconparser.Value{}, false
}
