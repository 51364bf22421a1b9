package serialize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/krakenconfig/hocon/hoconparser"
)

// ToJSON renders a resolved Value as RFC 8259 JSON (spec.md §6's JSON
// serializer contract). Object key order follows the tree's insertion
// order (spec.md §3 invariant), which is why this walks the tree by hand
// rather than handing a map[string]any to encoding/json — Go's encoder
// alphabetizes map keys, which would silently reorder every object.
func ToJSON(v hoconparser.Value, indent string) string {
	var b strings.Builder
	writeJSON(&b, v, indent, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v hoconparser.Value, indent string, depth int) {
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
		b.WriteString(strconv.FormatFloat(float64(v.Duration)/float64(time.Millisecond), 'g', -1, 64))
	case hoconparser.KindString:
		writeJSONString(b, v.Str)
	case hoconparser.KindList:
		writeJSONList(b, v.List, indent, depth)
	case hoconparser.KindTree:
		writeJSONTree(b, v.Tree, indent, depth)
	default:
		b.WriteString("null")
	}
}

func writeJSONString(b *strings.Builder, s string) {
	out, _ := json.Marshal(s)
	b.Write(out)
}

func newline(b *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(indent, depth))
}

func writeJSONList(b *strings.Builder, items []hoconparser.Value, indent string, depth int) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, indent, depth+1)
		writeJSON(b, item, indent, depth+1)
	}
	newline(b, indent, depth)
	b.WriteByte(']')
}

func writeJSONTree(b *strings.Builder, t *hoconparser.ConfigTree, indent string, depth int) {
	keys := t.Keys()
	if len(keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, indent, depth+1)
		writeJSONString(b, k)
		b.WriteByte(':')
		if indent != "" {
			b.WriteByte(' ')
		}
		v, _ := t.Get(k)
		writeJSON(b, v, indent, depth+1)
	}
	newline(b, indent, depth)
	b.WriteByte('}')
}
