package usersrc

import (
	"fmt"
	"io"
)

// Header is the XML declaration that opens every document.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// RootElement names the document element.
const RootElement = "userSrc"

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithIndent sets the leading whitespace of child elements. Default is two spaces.
func WithIndent(indent string) EmitterOption {
	return func(e *Emitter) { e.indent = indent }
}

// WithEscaping controls escaping of names, values and code lines. When
// disabled, text is embedded verbatim as the legacy PHP converter did, and
// the output is only well-formed if the text contains no markup characters.
func WithEscaping(enabled bool) EmitterOption {
	return func(e *Emitter) { e.escape = enabled }
}

// Emitter streams a Source as an XML document, one line per write.
type Emitter struct {
	w      io.Writer
	indent string
	escape bool
}

// NewEmitter returns an Emitter writing to w.
func NewEmitter(w io.Writer, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		w:      w,
		indent: "  ",
		escape: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes the whole document for src. A nil src produces an empty
// root element. The first failed write stops emission and is returned as
// a *WriteError.
func (e *Emitter) Emit(src *Source) error {
	if src == nil {
		src = &Source{}
	}

	if err := e.line(Header); err != nil {
		return err
	}
	if err := e.line("<" + RootElement + ">"); err != nil {
		return err
	}

	for _, b := range Bindings {
		if err := e.binding(src, b); err != nil {
			return err
		}
	}

	return e.line("</" + RootElement + ">")
}

func (e *Emitter) binding(src *Source, b Binding) error {
	switch b {
	case BindingEnv, BindingAlias:
		tag := "env"
		if b == BindingAlias {
			tag = "alias"
		}
		for _, entry := range src.Mapping(b) {
			l := fmt.Sprintf(`%s<%s name="%s">%s</%s>`,
				e.indent, tag, e.text(entry.Name), e.text(entry.Value), tag)
			if err := e.line(l); err != nil {
				return err
			}
		}
	case BindingBashCode, BindingCmdCode:
		for _, code := range src.Sequence(b) {
			l := fmt.Sprintf(`%s<code shell="%s">%s</code>`, e.indent, b.Shell(), e.text(code))
			if err := e.line(l); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emitter) text(s string) string {
	if !e.escape {
		return s
	}
	return Escape(s)
}

func (e *Emitter) line(s string) error {
	if _, err := io.WriteString(e.w, s+"\n"); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Emit writes src to w with default options.
func Emit(w io.Writer, src *Source) error {
	return NewEmitter(w).Emit(src)
}
