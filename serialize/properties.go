package serialize

import (
	"strconv"
	"strings"

	"github.com/krakenconfig/hocon/hoconparser"
)

// ToProperties renders a resolved Value as Java .properties text: dotted
// keys, one assignment per line, `\`-escaped '=', '#', '!' and a trailing
// `\` line continuation for embedded newlines (spec.md §6's properties
// serializer contract). Null-valued keys are omitted entirely — properties
// has no representation for "present but null".
func ToProperties(v hoconparser.Value) string {
	var b strings.Builder
	if v.Kind == hoconparser.KindTree {
		writePropertiesTree(&b, v.Tree, nil)
	} else {
		writePropertiesEntry(&b, nil, v)
	}
	return b.String()
}

func writePropertiesTree(b *strings.Builder, t *hoconparser.ConfigTree, prefix []string) {
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		path := append(append([]string(nil), prefix...), k)
		writePropertiesEntry(b, path, v)
	}
}

func writePropertiesEntry(b *strings.Builder, path []string, v hoconparser.Value) {
	switch v.Kind {
	case hoconparser.KindNull:
		return
	case hoconparser.KindTree:
		writePropertiesTree(b, v.Tree, path)
	case hoconparser.KindList:
		for i, item := range v.List {
			writePropertiesEntry(b, append(append([]string(nil), path...), strconv.Itoa(i)), item)
		}
	default:
		b.WriteString(escapePropertiesKey(strings.Join(path, ".")))
		b.WriteByte('=')
		b.WriteString(escapePropertiesValue(renderPropertiesScalar(v)))
		b.WriteByte('\n')
	}
}

func renderPropertiesScalar(v hoconparser.Value) string {
	switch v.Kind {
	case hoconparser.KindString:
		return v.Str
	case hoconparser.KindDuration:
		return hoconparser.FormatDuration(v.Duration)
	default:
		return v.String()
	}
}

func escapePropertiesKey(s string) string {
	return escapePropertiesValue(s)
}

func escapePropertiesValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '=':
			b.WriteString(`\=`)
		case '#':
			b.WriteString(`\#`)
		case '!':
			b.WriteString(`\!`)
		case ':':
			b.WriteString(`\:`)
		case '\n':
			b.WriteString("\\\n  ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
