package hocon

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/krakenconfig/hocon/hoconparser"
)

// UnresolvedMode selects what Resolve does with a substitution that is
// still unsettled once its fixpoint loop stops making progress (spec.md
// §4.4's resolution-mode enum).
type UnresolvedMode int

const (
	// UnresolvedMandatory is the default: any substitution still unresolved
	// once the fixpoint loop stalls is a hard error.
	UnresolvedMandatory UnresolvedMode = iota
	// UnresolvedOmit drops the key (restoring its prior overridden value, if
	// any) instead of erroring.
	UnresolvedOmit
	// UnresolvedNull binds null in place of the unresolved value.
	UnresolvedNull
	// UnresolvedStr preserves the substitution's own `${path}`/`${?path}`
	// spelling as a literal string.
	UnresolvedStr
)

// Options configures a top-level parse. The zero value is usable: it
// resolves includes relative to the current working directory, falls back
// to the process environment for unresolved substitutions, and requires
// every mandatory substitution to settle.
type Options struct {
	Loader     hoconparser.Loader
	BaseDir    string
	Env        EnvLookup
	MaxDepth   int
	Unresolved UnresolvedMode
}

func (o Options) withDefaults() Options {
	if o.BaseDir == "" {
		o.BaseDir = "."
	}
	if o.Loader == nil {
		o.Loader = NewMultiLoader(o.BaseDir)
	}
	if o.Env == nil {
		o.Env = EnvFallback
	}
	return o
}

// ParseString parses text as a standalone HOCON document, resolves every
// substitution, and returns a queryable Config (spec.md §6's parse_string).
func ParseString(text string, opts Options) (*Config, error) {
	opts = opts.withDefaults()
	correlationID := newCorrelationID()
	log := Logger.WithField("correlation_id", correlationID)
	log.Debug("parsing hocon document")

	root, err := hoconparser.ParseDocument(text, "<string>", hoconparser.Options{
		Loader:   opts.Loader,
		BaseDir:  opts.BaseDir,
		MaxDepth: opts.MaxDepth,
		Warn: func(pos hoconparser.Pos, format string, args ...any) {
			warnIncludeSkipped(logrus.Fields{"correlation_id": correlationID, "pos": pos}, format, args...)
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "hocon: parse error")
	}
	if rerr := Resolve(root, opts.Env, opts.Unresolved); rerr != nil {
		return nil, errors.Wrap(rerr, "hocon: resolve error")
	}
	log.Debug("resolved hocon document")
	return wrap(root), nil
}

// ParseFile reads and parses path, resolving includes relative to its
// containing directory (spec.md §6's parse_file).
func ParseFile(path string, opts Options) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "hocon: reading %s", path)
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	cfg, err := ParseString(string(data), opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseURL fetches and parses a remote document (spec.md §6's parse_URL),
// reusing the same URL loader an `include url(...)` directive would.
func ParseURL(rawURL string, opts Options) (*Config, error) {
	opts = opts.withDefaults()
	loader := NewURLLoader()
	sources, err := loader.Load(hoconparser.IncludeSpec{Kind: hoconparser.IncludeURL, Target: rawURL, Required: true}, opts.BaseDir)
	if err != nil {
		return nil, errors.Wrapf(err, "hocon: fetching %s", rawURL)
	}
	if len(sources) == 0 {
		return nil, errors.Errorf("hocon: %s: empty response", rawURL)
	}
	return ParseString(sources[0].Text, opts)
}

// FromMapping lifts a plain Go map into a Config without going through the
// parser at all (spec.md §6's from_mapping).
func FromMapping(m map[string]any) *Config {
	return wrap(hoconparser.FromMap(m))
}
