package completion

import (
	"iter"
	"strings"
)

// Tokenize splits the part of line before cursor into words.
//
// Double quotes group words and are never part of a token. A backslash makes the
// next character literal, whatever it is; a trailing backslash is dropped. Runs of
// spaces outside quotes collapse. Unbalanced quotes are treated as still open at the
// end of input, so the word under the cursor is always the last token.
//
// cursor counts runes. The returned sequence can be ranged over any number of times.
func Tokenize(line string, cursor int) iter.Seq[string] {
	return func(yield func(string) bool) {
		var buf strings.Builder
		inQuote := false
		escaped := false

		for _, c := range truncate(line, cursor) {
			if escaped {
				buf.WriteRune(c)
				escaped = false
				continue
			}

			switch c {
			case '\\':
				escaped = true
			case '"':
				inQuote = !inQuote
			case ' ':
				if inQuote {
					buf.WriteRune(c)
				} else if buf.Len() > 0 {
					if !yield(buf.String()) {
						return
					}
					buf.Reset()
				}
			default:
				buf.WriteRune(c)
			}
		}

		if buf.Len() > 0 {
			yield(buf.String())
		}
	}
}

// Tokens collects Tokenize into a slice
func Tokens(line string, cursor int) []string {
	tokens := []string{}
	for token := range Tokenize(line, cursor) {
		tokens = append(tokens, token)
	}
	return tokens
}

// truncate returns the first cursor runes of line
func truncate(line string, cursor int) string {
	if cursor <= 0 {
		return ""
	}

	n := 0
	for i := range line {
		if n == cursor {
			return line[:i]
		}
		n++
	}
	return line
}
