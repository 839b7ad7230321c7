package route

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// checkSource rejects the inputs jsmin cannot minify: unterminated strings
// and block comments, and any slash that would start a regular expression.
// jsmin also rewrites control characters inside string literals, so those
// must be escaped.
func checkSource(src []byte) error {
	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '\'' || c == '"':
			n, err := checkString(src[i:])
			if err != nil {
				return fmt.Errorf("%w: offset %d: %w", ErrSyntax, i, err)
			}

			i += n
		case c == '`':
			return fmt.Errorf("%w: offset %d: template literals are not supported", ErrSyntax, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(string(src[i+2:]), "*/")
			if end < 0 {
				return fmt.Errorf("%w: offset %d: unterminated comment", ErrSyntax, i)
			}

			i += end + 4
		case c == '/':
			return fmt.Errorf("%w: offset %d: unexpected '/' outside a string", ErrSyntax, i)
		default:
			i++
		}
	}

	return nil
}

func checkString(s []byte) (int, error) {
	quote := s[0]

	for i := 1; i < len(s); i++ {
		c := s[i]

		switch {
		case c == quote:
			return i + 1, nil
		case c == '\\':
			i++
			if i >= len(s) {
				return 0, fmt.Errorf("unterminated escape")
			}

			if s[i] < 0x20 {
				return 0, fmt.Errorf("control character after escape")
			}
		case c < 0x20:
			return 0, fmt.Errorf("control character %q in string literal", c)
		}
	}

	return 0, fmt.Errorf("unterminated string literal")
}

// unescape decodes the escape sequence that follows a backslash and
// returns the decoded text and the number of bytes consumed.
func unescape(s string) (string, int, error) {
	if s == "" {
		return "", 0, fmt.Errorf("unterminated escape")
	}

	switch s[0] {
	case 'n':
		return "\n", 1, nil
	case 'r':
		return "\r", 1, nil
	case 't':
		return "\t", 1, nil
	case 'b':
		return "\b", 1, nil
	case 'f':
		return "\f", 1, nil
	case 'v':
		return "\v", 1, nil
	case '0':
		if len(s) == 1 || s[1] < '0' || s[1] > '9' {
			return "\x00", 1, nil
		}

		return "", 0, fmt.Errorf("octal escapes are not supported")
	case 'x':
		if len(s) < 3 {
			return "", 0, fmt.Errorf("short \\x escape")
		}

		v, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return "", 0, fmt.Errorf("bad \\x escape %q", s[:3])
		}

		return string(rune(v)), 3, nil
	case 'u':
		return unescapeUnicode(s)
	}

	_, size := utf8.DecodeRuneInString(s)

	return s[:size], size, nil
}

func unescapeUnicode(s string) (string, int, error) {
	if len(s) > 1 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated \\u{ escape")
		}

		v, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return "", 0, fmt.Errorf("bad \\u escape %q", s[:end+1])
		}

		return string(rune(v)), end + 1, nil
	}

	r, err := codeUnit(s)
	if err != nil {
		return "", 0, err
	}

	if utf16.IsSurrogate(r) && len(s) >= 11 && s[5] == '\\' && s[6] == 'u' {
		if low, err := codeUnit(s[6:]); err == nil {
			if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
				return string(pair), 11, nil
			}
		}
	}

	return string(r), 5, nil
}

// codeUnit parses the four hex digits of a \uNNNN escape starting at s[0]=='u'.
func codeUnit(s string) (rune, error) {
	if len(s) < 5 {
		return 0, fmt.Errorf("short \\u escape")
	}

	v, err := strconv.ParseUint(s[1:5], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad \\u escape %q", s[:5])
	}

	return rune(v), nil
}

// jsQuote writes s as a JavaScript string literal that checkSource accepts
// and scanString decodes back to s.
func jsQuote(s string, quote byte) string {
	var b strings.Builder

	b.WriteByte(quote)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte(quote)

	return b.String()
}
