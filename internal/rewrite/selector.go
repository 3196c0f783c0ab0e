package rewrite

import "strings"

// SwapScopedSelectors rewrites "<scope-run> <token>" into "<token><scope-run>".
//
// A scope run is one or more ".className" segments, each optionally carrying
// a "-<digits>" counting suffix, separated by optional whitespace. The run
// must be followed by whitespace and a bare selector token matching
// [-_a-zA-Z.#~][-_a-zA-Z0-9]*. The token is moved to the front and the run is
// appended to it with no whitespace:
//
//	.styled-7 .styled-7 .icon { }  ->  .icon.styled-7.styled-7 { }
//	.styled-1 button:hover { }     ->  button.styled-1:hover { }
func SwapScopedSelectors(text, className string) string {
	if className == "" {
		return text
	}

	var b strings.Builder
	last := 0
	swapped := false

	for i := 0; i < len(text); i++ {
		if text[i] != '.' || (i > 0 && !isSelectorStart(text[i-1])) {
			continue
		}

		end := segmentEnd(text, i, className)
		if end < 0 {
			continue
		}

		segments := []string{text[i:end]}
		j := end
		for {
			k := skipSpace(text, j)
			if k == j {
				break
			}
			next := segmentEnd(text, k, className)
			if next < 0 {
				break
			}
			segments = append(segments, text[k:next])
			j = next
		}

		// Later segments of the run end at j too and would fail the same way
		tokStart := skipSpace(text, j)
		if tokStart == j {
			i = j - 1
			continue
		}
		tokEnd := tokenEnd(text, tokStart)
		if tokEnd < 0 {
			i = j - 1
			continue
		}

		b.WriteString(text[last:i])
		b.WriteString(text[tokStart:tokEnd])
		for _, seg := range segments {
			b.WriteString(seg)
		}
		last = tokEnd
		i = tokEnd - 1
		swapped = true
	}

	if !swapped {
		return text
	}

	b.WriteString(text[last:])
	return b.String()
}

// segmentEnd returns the end of a ".className(-digits)*" segment starting at
// i, or -1 when there is none.
func segmentEnd(text string, i int, className string) int {
	if i >= len(text) || text[i] != '.' || !strings.HasPrefix(text[i+1:], className) {
		return -1
	}

	j := i + 1 + len(className)
	for j+1 < len(text) && text[j] == '-' && isDigit(text[j+1]) {
		j += 2
		for j < len(text) && isDigit(text[j]) {
			j++
		}
	}

	if j < len(text) && isNameChar(text[j]) {
		return -1
	}
	return j
}

// tokenEnd returns the end of a bare selector token starting at i, or -1.
// The token must name something: a lone "~" or "." is a combinator or noise.
func tokenEnd(text string, i int) int {
	if i >= len(text) || !isTokenStart(text[i]) {
		return -1
	}

	named := isAlpha(text[i]) || text[i] == '_'
	j := i + 1
	for j < len(text) && isNameChar(text[j]) {
		if isAlpha(text[j]) || text[j] == '_' {
			named = true
		}
		j++
	}

	if !named {
		return -1
	}
	return j
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func isSelectorStart(c byte) bool {
	switch c {
	case ',', '{', '}', ';', '>', '+', '~', '(', '/':
		return true
	}
	return isSpace(c)
}

func isTokenStart(c byte) bool {
	return isAlpha(c) || c == '-' || c == '_' || c == '.' || c == '#' || c == '~'
}

func isNameChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
