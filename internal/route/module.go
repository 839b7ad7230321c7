package route

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dchest/jsmin"
)

const componentFactory = "ComponentCreator"

// ParseModule reads a generated routes module, the `export default [...]`
// JavaScript file a static-site build writes next to its bundle.
func ParseModule(src []byte) (Table, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	minified, err := jsmin.Minify(src)
	if err != nil {
		return nil, fmt.Errorf("%w: stripping comments failed: %w", ErrSyntax, err)
	}

	toks, err := tokenize(string(minified))
	if err != nil {
		return nil, err
	}

	p := &moduleParser{toks: toks}

	if err := p.seekExportDefault(); err != nil {
		return nil, err
	}

	return p.records()
}

type tokenKind int

const (
	tokPunct tokenKind = iota
	tokString
	tokIdent
)

type token struct {
	kind tokenKind
	text string
	off  int
}

func tokenize(src string) ([]token, error) {
	var toks []token

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.IndexByte("{}[]:,();", c) >= 0:
			toks = append(toks, token{kind: tokPunct, text: string(c), off: i})
			i++
		case c == '\'' || c == '"':
			s, n, err := scanString(src[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: offset %d: %w", ErrSyntax, i, err)
			}

			toks = append(toks, token{kind: tokString, text: s, off: i})
			i += n
		case isIdentByte(c):
			start := i
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}

			toks = append(toks, token{kind: tokIdent, text: src[start:i], off: start})
		default:
			// import specifiers and the like; only the exported literal matters
			toks = append(toks, token{kind: tokPunct, text: string(c), off: i})
			i++
		}
	}

	return toks, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' || c == '@' || c == '-' || c == '/' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// scanString reads a quoted literal at the start of s and returns its value
// and the number of bytes consumed.
func scanString(s string) (string, int, error) {
	quote := s[0]

	var b strings.Builder

	for i := 1; i < len(s); i++ {
		c := s[i]

		switch c {
		case quote:
			return b.String(), i + 1, nil
		case '\n':
			return "", 0, fmt.Errorf("newline in string literal")
		case '\\':
			text, n, err := unescape(s[i+1:])
			if err != nil {
				return "", 0, err
			}

			b.WriteString(text)
			i += n
		default:
			b.WriteByte(c)
		}
	}

	return "", 0, fmt.Errorf("unterminated string literal")
}

type moduleParser struct {
	toks []token
	pos  int
}

func (p *moduleParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}

	return p.toks[p.pos], true
}

func (p *moduleParser) next() (token, error) {
	tok, ok := p.peek()
	if !ok {
		return token{}, fmt.Errorf("%w: unexpected end of module", ErrSyntax)
	}

	p.pos++

	return tok, nil
}

func (p *moduleParser) expect(kind tokenKind, text string) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.kind != kind || (text != "" && tok.text != text) {
		want := text
		if want == "" {
			want = kindName(kind)
		}

		return tok, fmt.Errorf("%w: offset %d: expected %s, found %q", ErrSyntax, tok.off, want, tok.text)
	}

	return tok, nil
}

func kindName(kind tokenKind) string {
	switch kind {
	case tokString:
		return "string"
	case tokIdent:
		return "identifier"
	default:
		return "punctuation"
	}
}

// accept consumes the next token if it is the given punctuation.
func (p *moduleParser) accept(punct string) bool {
	if tok, ok := p.peek(); ok && tok.kind == tokPunct && tok.text == punct {
		p.pos++
		return true
	}

	return false
}

func (p *moduleParser) seekExportDefault() error {
	for i := 0; i+1 < len(p.toks); i++ {
		if p.toks[i].kind == tokIdent && p.toks[i].text == "export" &&
			p.toks[i+1].kind == tokIdent && p.toks[i+1].text == "default" {
			p.pos = i + 2
			return nil
		}
	}

	return fmt.Errorf("%w: no default export", ErrSyntax)
}

func (p *moduleParser) records() ([]Record, error) {
	if _, err := p.expect(tokPunct, "["); err != nil {
		return nil, err
	}

	records := []Record{}

	for !p.accept("]") {
		r, err := p.record()
		if err != nil {
			return nil, err
		}

		records = append(records, r)

		if !p.accept(",") {
			if _, err := p.expect(tokPunct, "]"); err != nil {
				return nil, err
			}

			break
		}
	}

	return records, nil
}

func (p *moduleParser) record() (Record, error) {
	var r Record

	if _, err := p.expect(tokPunct, "{"); err != nil {
		return r, err
	}

	for !p.accept("}") {
		key, err := p.next()
		if err != nil {
			return r, err
		}

		if key.kind == tokPunct {
			return r, fmt.Errorf("%w: offset %d: expected property name, found %q", ErrSyntax, key.off, key.text)
		}

		if _, err := p.expect(tokPunct, ":"); err != nil {
			return r, err
		}

		switch key.text {
		case "path":
			err = p.stringValue(&r.Path)
		case "sidebar":
			err = p.stringValue(&r.Sidebar)
		case "exact":
			err = p.boolValue(&r.Exact)
		case "component":
			r.Component, err = p.component()
		case "routes":
			r.Routes, err = p.records()
		default:
			err = p.skipValue()
		}

		if err != nil {
			return r, err
		}

		if !p.accept(",") {
			if _, err := p.expect(tokPunct, "}"); err != nil {
				return r, err
			}

			break
		}
	}

	return r, nil
}

func (p *moduleParser) stringValue(dst *string) error {
	tok, err := p.expect(tokString, "")
	if err != nil {
		return err
	}

	*dst = tok.text

	return nil
}

func (p *moduleParser) boolValue(dst *bool) error {
	tok, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}

	switch tok.text {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return fmt.Errorf("%w: offset %d: expected boolean, found %q", ErrSyntax, tok.off, tok.text)
	}

	return nil
}

func (p *moduleParser) component() (Component, error) {
	var c Component

	if _, err := p.expect(tokIdent, componentFactory); err != nil {
		return c, err
	}

	if _, err := p.expect(tokPunct, "("); err != nil {
		return c, err
	}

	if err := p.stringValue(&c.Key); err != nil {
		return c, err
	}

	if p.accept(",") {
		if tok, ok := p.peek(); ok && tok.kind == tokString {
			c.Hash = tok.text
			p.pos++
		}
	}

	if _, err := p.expect(tokPunct, ")"); err != nil {
		return c, err
	}

	return c, nil
}

// skipValue steps over a value of a property this package does not model.
func (p *moduleParser) skipValue() error {
	depth := 0

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		if tok.kind == tokPunct {
			switch tok.text {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
			}
		}

		if depth < 0 {
			return fmt.Errorf("%w: offset %d: unbalanced %q", ErrSyntax, tok.off, tok.text)
		}

		if depth == 0 {
			if next, ok := p.peek(); !ok || (next.kind == tokPunct && (next.text == "," || next.text == "}")) {
				return nil
			}
		}
	}
}

// RenderModule writes t in the generated routes module format read by
// ParseModule.
func RenderModule(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("import React from 'react';\n")
	bw.WriteString("import ComponentCreator from '@docusaurus/ComponentCreator';\n\n")
	bw.WriteString("export default [\n")

	renderRecords(bw, t, 1, true)

	bw.WriteString("];\n")

	return bw.Flush()
}

func renderRecords(bw *bufio.Writer, records []Record, depth int, trailingComma bool) {
	indent := strings.Repeat("  ", depth)
	fieldIndent := indent + "  "

	for i := range records {
		r := &records[i]

		var fields []string

		fields = append(fields, fieldIndent+"path: "+jsQuote(r.Path, '\''))

		if r.Component.Hash == "" {
			fields = append(fields, fmt.Sprintf("%scomponent: %s(%s)", fieldIndent, componentFactory, jsQuote(r.Component.Key, '\'')))
		} else {
			fields = append(fields, fmt.Sprintf("%scomponent: %s(%s, %s)", fieldIndent, componentFactory, jsQuote(r.Component.Key, '\''), jsQuote(r.Component.Hash, '\'')))
		}

		if r.Exact {
			fields = append(fields, fieldIndent+"exact: true")
		}

		if r.Sidebar != "" {
			fields = append(fields, fieldIndent+"sidebar: "+jsQuote(r.Sidebar, '"'))
		}

		bw.WriteString(indent + "{\n")
		bw.WriteString(strings.Join(fields, ",\n"))

		if !r.IsLeaf() {
			bw.WriteString(",\n" + fieldIndent + "routes: [\n")
			renderRecords(bw, r.Routes, depth+2, false)
			bw.WriteString(fieldIndent + "]")
		}

		bw.WriteString("\n" + indent + "}")

		if trailingComma || i < len(records)-1 {
			bw.WriteString(",")
		}

		bw.WriteString("\n")
	}
}
