package hoconparser

import "strings"

// unquoteBody processes the body of a QuotedStringToken (including its
// surrounding quotes) into its logical string value, honoring standard
// JSON escapes plus the relaxed `\=`, `\#`, `\!` HOCON extends them with
// (spec.md §4.1/§6).
func unquoteBody(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '=':
			b.WriteByte('=')
		case '#':
			b.WriteByte('#')
		case '!':
			b.WriteByte('!')
		case 'u':
			if i+4 < len(body) {
				var r rune
				ok := true
				for _, h := range body[i+1 : i+5] {
					r <<= 4
					switch {
					case h >= '0' && h <= '9':
						r |= rune(h - '0')
					case h >= 'a' && h <= 'f':
						r |= rune(h-'a') + 10
					case h >= 'A' && h <= 'F':
						r |= rune(h-'A') + 10
					default:
						ok = false
					}
				}
				if ok {
					b.WriteRune(r)
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// tripleBody strips the """ ... """ delimiters from a TripleQuotedStringToken,
// performing no escape processing (spec.md §4.1: "no escape processing,
// runs over newlines").
func tripleBody(raw string) string {
	if len(raw) < 6 {
		return ""
	}
	return raw[3 : len(raw)-3]
}
