package ollama

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// extractPartialCode pulls the current value of the "code" property out of a
// possibly incomplete JSON document. The stream delivers the object as raw
// text, so the value has to be decoded even before the closing quote arrives.
// A trailing incomplete escape sequence is dropped rather than guessed at.
func extractPartialCode(partial string) (string, bool) {
	idx := strings.Index(partial, `"code"`)
	if idx < 0 {
		return "", false
	}

	rest := partial[idx+len(`"code"`):]
	i := skipSpace(rest, 0)
	if i >= len(rest) || rest[i] != ':' {
		return "", false
	}
	i = skipSpace(rest, i+1)
	if i >= len(rest) || rest[i] != '"' {
		return "", false
	}
	i++

	var b strings.Builder
	for i < len(rest) {
		c := rest[i]
		if c == '"' {
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}

		// Escape sequence; stop at an incomplete one.
		if i+1 >= len(rest) {
			break
		}
		switch rest[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'u':
			if i+6 > len(rest) {
				return b.String(), true
			}
			v, err := strconv.ParseUint(rest[i+2:i+6], 16, 32)
			if err != nil {
				i += 6
				continue
			}
			r := rune(v)
			if isHighSurrogate(r) {
				// Non-BMP characters arrive as two escapes; wait for the low
				// half instead of emitting half a pair.
				if i+12 > len(rest) {
					return b.String(), true
				}
				if rest[i+6] == '\\' && rest[i+7] == 'u' {
					if v2, err2 := strconv.ParseUint(rest[i+8:i+12], 16, 32); err2 == nil {
						if dec := utf16.DecodeRune(r, rune(v2)); dec != utf8.RuneError {
							b.WriteRune(dec)
							i += 12
							continue
						}
					}
				}
			}
			// WriteRune turns a lone surrogate into the replacement character.
			b.WriteRune(r)
			i += 6
			continue
		default:
			b.WriteByte(rest[i+1])
		}
		i += 2
	}

	return b.String(), true
}

func isHighSurrogate(r rune) bool {
	return r >= 0xD800 && r < 0xDC00
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
