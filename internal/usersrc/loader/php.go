package loader

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
)

// phpNames maps userSrc.php variable names (without the $) to bindings.
var phpNames = map[string]usersrc.Binding{
	"userSrc_setEnv":   usersrc.BindingEnv,
	"userSrc_alias":    usersrc.BindingAlias,
	"userSrc_bashCode": usersrc.BindingBashCode,
	"userSrc_cmdCode":  usersrc.BindingCmdCode,
}

type phpTokKind int

const (
	phpEOF phpTokKind = iota
	phpVar
	phpIdent
	phpString
	phpNumber
	phpPunct
)

type phpToken struct {
	kind phpTokKind
	text string
	line int
}

// phpLexer tokenizes the literal subset of PHP found in userSrc files.
// Text outside <?php ... ?> is skipped; a closing tag ends a statement.
type phpLexer struct {
	src    []byte
	pos    int
	line   int
	inCode bool
}

func newPHPLexer(src []byte) *phpLexer {
	return &phpLexer{src: src, line: 1}
}

func (l *phpLexer) advance(n int) {
	l.line += bytes.Count(l.src[l.pos:l.pos+n], []byte{'\n'})
	l.pos += n
}

func (l *phpLexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.src[l.pos:], []byte(s))
}

func (l *phpLexer) syntaxErr(format string, args ...any) error {
	return &lexError{line: l.line, err: errors.Wrapf(usersrc.ErrSyntax, format, args...)}
}

// lexError carries a line number out of the lexer.
type lexError struct {
	line int
	err  error
}

func (e *lexError) Error() string { return e.err.Error() }
func (e *lexError) Unwrap() error { return e.err }

func (l *phpLexer) next() (phpToken, error) {
	if !l.inCode {
		idx := bytes.Index(bytes.ToLower(l.src[l.pos:]), []byte("<?php"))
		if idx < 0 {
			l.advance(len(l.src) - l.pos)
			return phpToken{kind: phpEOF, line: l.line}, nil
		}
		l.advance(idx + len("<?php"))
		l.inCode = true
	}

	if err := l.skipSpaceAndComments(); err != nil {
		return phpToken{}, err
	}
	if l.pos >= len(l.src) {
		return phpToken{kind: phpEOF, line: l.line}, nil
	}
	if l.hasPrefix("?>") {
		l.advance(2)
		l.inCode = false
		return phpToken{kind: phpPunct, text: ";", line: l.line}, nil
	}
	return l.token()
}

func (l *phpLexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(1)
		case c == '#' || l.hasPrefix("//"):
			// Line comments end at a newline or a closing tag
			end := l.pos
			for end < len(l.src) && l.src[end] != '\n' && !bytes.HasPrefix(l.src[end:], []byte("?>")) {
				end++
			}
			l.advance(end - l.pos)
		case l.hasPrefix("/*"):
			idx := bytes.Index(l.src[l.pos+2:], []byte("*/"))
			if idx < 0 {
				return l.syntaxErr("unterminated comment")
			}
			l.advance(idx + 4)
		default:
			return nil
		}
	}
	return nil
}

func (l *phpLexer) token() (phpToken, error) {
	line := l.line
	c := l.src[l.pos]

	switch {
	case c == '$':
		n := identLen(l.src[l.pos+1:])
		if n == 0 {
			return phpToken{}, l.syntaxErr("expected variable name after $")
		}
		name := string(l.src[l.pos+1 : l.pos+1+n])
		l.advance(n + 1)
		return phpToken{kind: phpVar, text: name, line: line}, nil

	case isIdentStart(c):
		n := identLen(l.src[l.pos:])
		name := string(l.src[l.pos : l.pos+n])
		l.advance(n)
		return phpToken{kind: phpIdent, text: name, line: line}, nil

	case c >= '0' && c <= '9' || c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.number()

	case c == '\'':
		return l.singleQuoted()

	case c == '"':
		return l.doubleQuoted()

	case l.hasPrefix("=>"):
		l.advance(2)
		return phpToken{kind: phpPunct, text: "=>", line: line}, nil

	case l.hasPrefix("<<<"):
		return phpToken{}, &lexError{line: line, err: errors.Wrap(usersrc.ErrUnsupported, "heredoc strings")}

	case strings.IndexByte("=;,()[].-+", c) >= 0:
		l.advance(1)
		return phpToken{kind: phpPunct, text: string(c), line: line}, nil
	}

	r, _ := utf8.DecodeRune(l.src[l.pos:])
	return phpToken{}, l.syntaxErr("unexpected character %q", r)
}

func (l *phpLexer) number() (phpToken, error) {
	line := l.line
	end := l.pos
	for end < len(l.src) {
		c := l.src[end]
		if isIdentChar(c) || c == '.' {
			end++
			continue
		}
		// exponent sign, as in 1e-3
		if (c == '+' || c == '-') && end > l.pos && (l.src[end-1] == 'e' || l.src[end-1] == 'E') &&
			!bytes.HasPrefix(bytes.ToLower(l.src[l.pos:end]), []byte("0x")) {
			end++
			continue
		}
		break
	}
	raw := string(l.src[l.pos:end])
	l.advance(end - l.pos)

	text, err := phpNumberText(raw)
	if err != nil {
		return phpToken{}, &lexError{line: line, err: errors.Wrapf(usersrc.ErrSyntax, "invalid number %q", raw)}
	}
	return phpToken{kind: phpNumber, text: text, line: line}, nil
}

// phpNumberText renders a PHP numeric literal the way PHP prints it for
// integers (hex, octal and binary become decimal); floats keep their text.
func phpNumberText(raw string) (string, error) {
	clean := strings.ReplaceAll(raw, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	// PHP's legacy octal form: leading zero without 0o
	if len(clean) > 1 && clean[0] == '0' && !strings.ContainsAny(clean, ".eExXbBoO") {
		if i, err := strconv.ParseInt(clean[1:], 8, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
	}
	if _, err := strconv.ParseFloat(clean, 64); err != nil {
		return "", err
	}
	return raw, nil
}

func (l *phpLexer) singleQuoted() (phpToken, error) {
	line := l.line
	var b strings.Builder
	i := l.pos + 1
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case c == '\'':
			l.advance(i + 1 - l.pos)
			return phpToken{kind: phpString, text: b.String(), line: line}, nil
		case c == '\\' && i+1 < len(l.src) && (l.src[i+1] == '\'' || l.src[i+1] == '\\'):
			b.WriteByte(l.src[i+1])
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return phpToken{}, &lexError{line: line, err: errors.Wrap(usersrc.ErrSyntax, "unterminated string")}
}

var phpSimpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", 'v': "\v", 'e': "\x1b", 'f': "\f",
	'\\': "\\", '$': "$", '"': "\"",
}

func (l *phpLexer) doubleQuoted() (phpToken, error) {
	line := l.line
	var b strings.Builder
	i := l.pos + 1
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case c == '"':
			l.advance(i + 1 - l.pos)
			return phpToken{kind: phpString, text: b.String(), line: line}, nil

		case c == '$' && i+1 < len(l.src) && (isIdentStart(l.src[i+1]) || l.src[i+1] == '{'):
			return phpToken{}, &lexError{
				line: line + bytes.Count(l.src[l.pos:i], []byte{'\n'}),
				err:  errors.Wrap(usersrc.ErrUnsupported, "variable interpolation in double-quoted string; use single quotes"),
			}

		case c == '{' && i+1 < len(l.src) && l.src[i+1] == '$':
			return phpToken{}, &lexError{
				line: line + bytes.Count(l.src[l.pos:i], []byte{'\n'}),
				err:  errors.Wrap(usersrc.ErrUnsupported, "variable interpolation in double-quoted string; use single quotes"),
			}

		case c == '\\' && i+1 < len(l.src):
			n, consumed := phpEscape(l.src[i+1:])
			b.WriteString(n)
			i += 1 + consumed

		default:
			b.WriteByte(c)
			i++
		}
	}
	return phpToken{}, &lexError{line: line, err: errors.Wrap(usersrc.ErrSyntax, "unterminated string")}
}

// phpEscape decodes the escape sequence following a backslash and reports
// how many bytes it used. Unknown escapes keep the backslash, as PHP does.
func phpEscape(rest []byte) (string, int) {
	c := rest[0]
	if s, ok := phpSimpleEscapes[c]; ok {
		return s, 1
	}
	switch {
	case c >= '0' && c <= '7':
		n := 1
		for n < 3 && n < len(rest) && rest[n] >= '0' && rest[n] <= '7' {
			n++
		}
		v, _ := strconv.ParseUint(string(rest[:n]), 8, 16)
		return string([]byte{byte(v)}), n
	case c == 'x' && len(rest) > 1 && isHex(rest[1]):
		n := 2
		if len(rest) > 2 && isHex(rest[2]) {
			n = 3
		}
		v, _ := strconv.ParseUint(string(rest[1:n]), 16, 8)
		return string([]byte{byte(v)}), n
	case c == 'u' && len(rest) > 2 && rest[1] == '{':
		end := bytes.IndexByte(rest, '}')
		if end > 2 {
			if v, err := strconv.ParseUint(string(rest[2:end]), 16, 32); err == nil && utf8.ValidRune(rune(v)) {
				return string(rune(v)), end + 1
			}
		}
	}
	return "\\" + string(c), 1
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func identLen(b []byte) int {
	if len(b) == 0 || !isIdentStart(b[0]) {
		return 0
	}
	n := 1
	for n < len(b) && isIdentChar(b[n]) {
		n++
	}
	return n
}

// phpParser reads assignment statements into a builder.
type phpParser struct {
	lex *phpLexer
	tok phpToken
	b   *builder
}

func parsePHP(path string, data []byte) (*usersrc.Source, error) {
	p := &phpParser{
		lex: newPHPLexer(data),
		b:   newBuilder(path, phpNames, func(s string) string { return "$" + s }),
	}
	if err := p.run(); err != nil {
		var le *lexError
		if errors.As(err, &le) {
			return nil, &usersrc.ParseError{Path: path, Line: le.line, Err: le.err}
		}
		return nil, err
	}
	return p.b.build(), nil
}

func (p *phpParser) run() error {
	if err := p.advance(); err != nil {
		return err
	}
	for p.tok.kind != phpEOF {
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *phpParser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *phpParser) is(text string) bool {
	return p.tok.kind == phpPunct && p.tok.text == text
}

func (p *phpParser) expect(text string) error {
	if !p.is(text) {
		return p.errorf("expected %q, found %s", text, p.describe())
	}
	return p.advance()
}

func (p *phpParser) describe() string {
	switch p.tok.kind {
	case phpEOF:
		return "end of file"
	case phpVar:
		return "$" + p.tok.text
	case phpString:
		return "string"
	default:
		return strconv.Quote(p.tok.text)
	}
}

func (p *phpParser) errorf(format string, args ...any) error {
	return p.b.failf(p.tok.line, errors.Wrapf(usersrc.ErrSyntax, format, args...))
}

func (p *phpParser) statement() error {
	if p.is(";") {
		return p.advance()
	}
	if p.tok.kind == phpIdent {
		return p.b.failf(p.tok.line, errors.Wrapf(usersrc.ErrUnsupported, "statement %q", p.tok.text))
	}
	if p.tok.kind != phpVar {
		return p.errorf("expected assignment, found %s", p.describe())
	}

	name, line := p.tok.text, p.tok.line
	if err := p.advance(); err != nil {
		return err
	}

	switch {
	case p.is("="):
		if err := p.advance(); err != nil {
			return err
		}
		v, err := p.expr()
		if err != nil {
			return err
		}
		if err := p.b.assign(name, v); err != nil {
			return err
		}

	case p.is("["):
		if err := p.advance(); err != nil {
			return err
		}
		it := item{line: line}
		if !p.is("]") {
			k, err := p.expr()
			if err != nil {
				return err
			}
			if k.kind == kindArray {
				return p.b.fail(name, line, errors.Wrap(usersrc.ErrShape, "array used as key"))
			}
			it.key, it.keyed = k.text, true
		}
		if err := p.expect("]"); err != nil {
			return err
		}
		if err := p.expect("="); err != nil {
			return err
		}
		v, err := p.expr()
		if err != nil {
			return err
		}
		it.val = v
		if err := p.b.addNamed(name, it); err != nil {
			return err
		}

	default:
		return p.errorf("expected '=' after $%s, found %s", name, p.describe())
	}

	if p.tok.kind == phpEOF {
		return nil
	}
	return p.expect(";")
}

// expr parses a term optionally followed by '.' concatenations.
func (p *phpParser) expr() (value, error) {
	v, err := p.term()
	if err != nil {
		return value{}, err
	}
	for p.is(".") {
		line := p.tok.line
		if err := p.advance(); err != nil {
			return value{}, err
		}
		rhs, err := p.term()
		if err != nil {
			return value{}, err
		}
		if v.kind == kindArray || rhs.kind == kindArray {
			return value{}, p.b.failf(line, errors.Wrap(usersrc.ErrUnsupported, "concatenation with an array"))
		}
		v = scalar(v.text+rhs.text, v.line)
	}
	return v, nil
}

func (p *phpParser) term() (value, error) {
	tok := p.tok
	switch tok.kind {
	case phpString, phpNumber:
		return scalar(tok.text, tok.line), p.advance()

	case phpIdent:
		switch strings.ToLower(tok.text) {
		case "true":
			return scalar("1", tok.line), p.advance()
		case "false":
			return scalar("", tok.line), p.advance()
		case "null":
			return null(tok.line), p.advance()
		case "array":
			if err := p.advance(); err != nil {
				return value{}, err
			}
			if err := p.expect("("); err != nil {
				return value{}, err
			}
			return p.items(")", tok.line)
		}
		return value{}, p.b.failf(tok.line, errors.Wrapf(usersrc.ErrUnsupported, "expression %q", tok.text))

	case phpVar:
		return value{}, p.b.failf(tok.line, errors.Wrapf(usersrc.ErrUnsupported, "reference to $%s", tok.text))

	case phpPunct:
		switch tok.text {
		case "[":
			if err := p.advance(); err != nil {
				return value{}, err
			}
			return p.items("]", tok.line)
		case "(":
			if err := p.advance(); err != nil {
				return value{}, err
			}
			v, err := p.expr()
			if err != nil {
				return value{}, err
			}
			return v, p.expect(")")
		case "-", "+":
			if err := p.advance(); err != nil {
				return value{}, err
			}
			if p.tok.kind != phpNumber {
				return value{}, p.errorf("expected number after %q", tok.text)
			}
			text := p.tok.text
			if tok.text == "-" && text != "0" {
				text = "-" + text
			}
			return scalar(text, tok.line), p.advance()
		}
	}
	return value{}, p.errorf("expected value, found %s", p.describe())
}

// items parses array entries up to the closing delimiter.
func (p *phpParser) items(closer string, line int) (value, error) {
	v := value{kind: kindArray, line: line}
	for !p.is(closer) {
		if p.tok.kind == phpEOF {
			return value{}, p.errorf("unterminated array")
		}
		first, err := p.expr()
		if err != nil {
			return value{}, err
		}
		it := item{val: first, line: first.line}
		if p.is("=>") {
			if err := p.advance(); err != nil {
				return value{}, err
			}
			if first.kind == kindArray {
				return value{}, p.b.failf(first.line, errors.Wrap(usersrc.ErrShape, "array used as key"))
			}
			val, err := p.expr()
			if err != nil {
				return value{}, err
			}
			it = item{key: first.text, keyed: true, val: val, line: first.line}
		}
		v.items = append(v.items, it)

		if p.is(",") {
			if err := p.advance(); err != nil {
				return value{}, err
			}
			continue
		}
		if !p.is(closer) {
			return value{}, p.errorf("expected ',' or %q in array, found %s", closer, p.describe())
		}
	}
	return v, p.advance()
}
