// Package rewrite retargets stylesheet text emitted by the styling engine at
// a generated scoping class.
//
// The transformations work on the textual conventions the engine is known to
// emit. They are not a general CSS parser: input that does not contain a
// pattern passes through that step unchanged.
package rewrite

import "strings"

// DefaultPlaceholderPrefix is the prefix the styling engine puts in front of
// every class it generates.
const DefaultPlaceholderPrefix = "stylist-"

// Placeholder describes the engine-assigned class token: Prefix followed by
// a maximal run of alphanumeric characters.
type Placeholder struct {
	Prefix string
}

// PlaceholderFor derives the placeholder pattern from a class name produced
// by the engine ("stylist-abc123" -> "stylist-").
func PlaceholderFor(engineClass string) Placeholder {
	i := len(engineClass)
	for i > 0 && isAlnum(engineClass[i-1]) {
		i--
	}
	if i == 0 {
		// A bare alphanumeric name has no recognizable prefix
		return Placeholder{Prefix: DefaultPlaceholderPrefix}
	}
	return Placeholder{Prefix: engineClass[:i]}
}

// Options tunes the rewrite.
type Options struct {
	// LoosePixelFix inserts a space into every "px-" instead of only the ones
	// that follow a digit.
	LoosePixelFix bool
}

// Rewrite replaces every placeholder token with className, repairs the
// "10px-5px" spacing defect and moves bare selector tokens in front of the
// scoping class. It never fails.
func Rewrite(text string, p Placeholder, className string, opts Options) string {
	text = ReplacePlaceholder(text, p, className)

	// Pixel repair runs before the swap so "-5px" can never be taken for a
	// selector token.
	if opts.LoosePixelFix {
		text = FixPixelUnitsLoose(text)
	} else {
		text = FixPixelUnits(text)
	}

	return SwapScopedSelectors(text, className)
}

// ReplacePlaceholder substitutes className for every occurrence of the
// placeholder token.
func ReplacePlaceholder(text string, p Placeholder, className string) string {
	if p.Prefix == "" {
		return text
	}

	var b strings.Builder
	rest := text
	replaced := false

	for {
		i := strings.Index(rest, p.Prefix)
		if i < 0 {
			break
		}

		start := i + len(p.Prefix)
		end := start
		for end < len(rest) && isAlnum(rest[end]) {
			end++
		}

		if end == start {
			// Prefix without a suffix is ordinary text
			b.WriteString(rest[:start])
			rest = rest[start:]
			continue
		}

		b.WriteString(rest[:i])
		b.WriteString(className)
		rest = rest[end:]
		replaced = true
	}

	if !replaced {
		return text
	}

	b.WriteString(rest)
	return b.String()
}

// FixPixelUnits inserts a space between "px" and a following hyphen whenever
// the unit follows a digit: "10px-5px" becomes "10px -5px".
func FixPixelUnits(text string) string {
	return fixPixelUnits(text, true)
}

// FixPixelUnitsLoose inserts a space into every "px-" substring.
func FixPixelUnitsLoose(text string) string {
	return fixPixelUnits(text, false)
}

func fixPixelUnits(text string, digitGated bool) string {
	var b strings.Builder
	last := 0

	for i := 0; i+3 <= len(text); i++ {
		if text[i:i+3] != "px-" {
			continue
		}
		if digitGated && (i == 0 || !isDigit(text[i-1])) {
			continue
		}

		b.WriteString(text[last : i+2])
		b.WriteByte(' ')
		last = i + 2
	}

	if last == 0 {
		return text
	}

	b.WriteString(text[last:])
	return b.String()
}
