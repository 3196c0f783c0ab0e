package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is a lexer token with its source position
type token struct {
	tt     css.TokenType
	text   string
	line   int
	column int
}

// rule is one output block
type rule struct {
	selector string // scoped selector, empty for at-rules
	atRule   string // "@media (...)" wrapping root-scoped declarations
	decls    []string
}

// compiler maintains state while turning a style source into a stylesheet
type compiler struct {
	lexer     *css.Lexer
	line      int
	column    int
	root      string // ".stylist-xxx"
	rootDecls []string
	rules     []rule
}

// compile parses source and renders it scoped to className
func compile(source, className string) (string, error) {
	c := &compiler{
		lexer:  css.NewLexer(parse.NewInputString(source)),
		line:   1,
		column: 1,
		root:   "." + className,
	}

	if err := c.run(); err != nil {
		return "", err
	}
	return c.render(), nil
}

// next returns the next non-comment token and advances the position
func (c *compiler) next() token {
	for {
		tt, data := c.lexer.Next()
		t := token{tt: tt, text: string(data), line: c.line, column: c.column}

		for _, r := range t.text {
			if r == '\n' {
				c.line++
				c.column = 1
			} else {
				c.column++
			}
		}

		if tt != css.CommentToken {
			return t
		}
	}
}

func (c *compiler) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Column: t.column, Msg: fmt.Sprintf(format, args...)}
}

// eof checks whether an ErrorToken is a clean end of input
func (c *compiler) eof(t token) error {
	if err := c.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
		return c.errorf(t, "%v", err)
	}
	return nil
}

// run handles the top level: root declarations and nested blocks
func (c *compiler) run() error {
	var pending []token

	for {
		t := c.next()

		switch t.tt {
		case css.ErrorToken:
			if err := c.eof(t); err != nil {
				return err
			}
			// Final declaration may omit its semicolon
			return c.declaration(&c.rootDecls, pending)

		case css.BadStringToken, css.BadURLToken:
			return c.errorf(t, "malformed %s", strings.TrimSpace(t.text))

		case css.SemicolonToken:
			if err := c.declaration(&c.rootDecls, pending); err != nil {
				return err
			}
			pending = nil

		case css.LeftBraceToken:
			head := trim(pending)
			if len(head) == 0 {
				return c.errorf(t, "block without a selector")
			}
			if err := c.block(head); err != nil {
				return err
			}
			pending = nil

		case css.RightBraceToken:
			return c.errorf(t, "unexpected '}'")

		default:
			pending = append(pending, t)
		}
	}
}

// block reads the declarations of a nested rule up to its closing brace
func (c *compiler) block(head []token) error {
	r := rule{}
	if head[0].tt == css.AtKeywordToken {
		r.atRule = join(head)
	} else {
		r.selector = c.scope(join(head))
	}

	var pending []token
	for {
		t := c.next()

		switch t.tt {
		case css.ErrorToken:
			if err := c.eof(t); err != nil {
				return err
			}
			return c.errorf(head[0], "unclosed block %q", join(head))

		case css.BadStringToken, css.BadURLToken:
			return c.errorf(t, "malformed %s", strings.TrimSpace(t.text))

		case css.SemicolonToken:
			if err := c.declaration(&r.decls, pending); err != nil {
				return err
			}
			pending = nil

		case css.LeftBraceToken:
			return c.errorf(t, "nested block inside %q is not supported", join(head))

		case css.RightBraceToken:
			if err := c.declaration(&r.decls, pending); err != nil {
				return err
			}
			c.rules = append(c.rules, r)
			return nil

		default:
			pending = append(pending, t)
		}
	}
}

// declaration validates "property: value" and appends it to dst
func (c *compiler) declaration(dst *[]string, toks []token) error {
	toks = trim(toks)
	if len(toks) == 0 {
		return nil
	}

	if toks[0].tt == css.AtKeywordToken {
		return c.errorf(toks[0], "unsupported at-rule %s", toks[0].text)
	}

	colon := -1
	for i, t := range toks {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon <= 0 {
		return c.errorf(toks[0], "expected ':' in declaration %q", join(toks))
	}

	property := join(trim(toks[:colon]))
	value := strings.TrimSpace(join(trim(toks[colon+1:])))
	if value == "" {
		return c.errorf(toks[colon], "missing value for %q", property)
	}

	*dst = append(*dst, property+": "+value)
	return nil
}

// scope prefixes each comma-separated selector with the root class.
// '&' refers to the root class itself.
func (c *compiler) scope(selector string) string {
	parts := splitTopLevel(selector)
	scoped := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "&") {
			scoped = append(scoped, strings.ReplaceAll(part, "&", c.root))
		} else {
			scoped = append(scoped, c.root+" "+part)
		}
	}

	return strings.Join(scoped, ", ")
}

// render writes the stylesheet: root rule first, then nested rules in
// source order
func (c *compiler) render() string {
	var sb strings.Builder

	if len(c.rootDecls) > 0 {
		writeRule(&sb, c.root, c.rootDecls, "")
	}

	for _, r := range c.rules {
		if len(r.decls) == 0 {
			continue
		}
		if r.atRule != "" {
			sb.WriteString(r.atRule + " {\n")
			writeRule(&sb, c.root, r.decls, "  ")
			sb.WriteString("}\n")
			continue
		}
		writeRule(&sb, r.selector, r.decls, "")
	}

	return sb.String()
}

func writeRule(sb *strings.Builder, selector string, decls []string, indent string) {
	sb.WriteString(indent + selector + " {\n")
	for _, d := range decls {
		sb.WriteString(indent + "  " + d + ";\n")
	}
	sb.WriteString(indent + "}\n")
}

// splitTopLevel splits on commas outside parentheses and brackets
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// trim drops leading and trailing whitespace tokens
func trim(toks []token) []token {
	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// join concatenates token text, collapsing whitespace runs to one space
func join(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.tt == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}
