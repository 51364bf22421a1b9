package serialize

import (
	"strconv"
	"strings"

	"github.com/krakenconfig/hocon/hoconparser"
)

// ToHOCON re-renders a resolved Value as HOCON text: root braces elided,
// multiline strings rendered as triple-quoted blocks, everything else as
// compact quoted/bare tokens (spec.md §6's HOCON serializer contract).
func ToHOCON(v hoconparser.Value) string {
	var b strings.Builder
	if v.Kind == hoconparser.KindTree {
		writeHOCONTreeBody(&b, v.Tree, 0)
		return b.String()
	}
	writeHOCONValue(&b, v, 0)
	return b.String()
}

func indentHocon(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeHOCONValue(b *strings.Builder, v hoconparser.Value, depth int) {
	switch v.Kind {
	case hoconparser.KindNull:
		b.WriteString("null")
	case hoconparser.KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case hoconparser.KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case hoconparser.KindReal:
		b.WriteString(strconv.FormatFloat(v.Real, 'g', -1, 64))
	case hoconparser.KindDuration:
		b.WriteString(hoconparser.FormatDuration(v.Duration))
	case hoconparser.KindString:
		writeHOCONString(b, v.Str)
	case hoconparser.KindList:
		writeHOCONList(b, v.List, depth)
	case hoconparser.KindTree:
		b.WriteString("{")
		b.WriteByte('\n')
		writeHOCONTreeBody(b, v.Tree, depth+1)
		indentHocon(b, depth)
		b.WriteString("}")
	}
}

func writeHOCONString(b *strings.Builder, s string) {
	if strings.Contains(s, "\n") {
		b.WriteString(`"""`)
		b.WriteString(s)
		b.WriteString(`"""`)
		return
	}
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeHOCONList(b *strings.Builder, items []hoconparser.Value, depth int) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for _, item := range items {
		indentHocon(b, depth+1)
		writeHOCONValue(b, item, depth+1)
		b.WriteString(",\n")
	}
	indentHocon(b, depth)
	b.WriteString("]")
}

func writeHOCONTreeBody(b *strings.Builder, t *hoconparser.ConfigTree, depth int) {
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		indentHocon(b, depth)
		writeHOCONString(b, k)
		b.WriteString(" = ")
		writeHOCONValue(b, v, depth)
		b.WriteByte('\n')
	}
}
